package models

import "time"

// CartLineItem represents a single product/variant/quantity entry in the user's cart.
type CartLineItem struct {
	UserID    string    `json:"userId,omitempty" bson:"userId"`
	ProductID string    `json:"productId" bson:"productId"`
	Name      string    `json:"name" bson:"name"`
	UnitPrice float64   `json:"unitPrice" bson:"unitPrice"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	Size      string    `json:"size,omitempty" bson:"size,omitempty"`
	Color     string    `json:"color,omitempty" bson:"color,omitempty"`
	Image     string    `json:"image,omitempty" bson:"image,omitempty"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

// Cart is the wire shape returned by the cart endpoints.
type Cart struct {
	Items []CartLineItem `json:"items"`
}

// CheckoutSession is a pre-order snapshot of cart, address and totals,
// held in Redis while the user completes payment.
type CheckoutSession struct {
	SessionID  string         `json:"sessionId"`
	UserID     string         `json:"userId"`
	Items      []CartLineItem `json:"items"`
	AddressID  string         `json:"addressId,omitempty"`
	CouponCode string         `json:"couponCode,omitempty"`
	Totals     OrderTotals    `json:"totals"`
	CreatedAt  time.Time      `json:"createdAt"`
}
