package models

import "time"

// Address is a saved shipping address. At most one address per user
// carries IsDefault=true.
type Address struct {
	AddressID  string `json:"id" bson:"addressId"`
	UserID     string `json:"userId,omitempty" bson:"userId"`
	Label      string `json:"label" bson:"label"`
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	State      string `json:"state" bson:"state"`
	PostalCode string `json:"zipCode" bson:"postalCode"`
	Country    string `json:"country" bson:"country"`
	Phone      string `json:"phone" bson:"phone"`
	IsDefault  bool   `json:"isDefault" bson:"isDefault"`
}

// OrderTotals is the computed money breakdown for a cart or order.
type OrderTotals struct {
	Subtotal     float64 `json:"subtotal" bson:"subtotal"`
	ShippingCost float64 `json:"shipping" bson:"shipping"`
	Tax          float64 `json:"tax" bson:"tax"`
	Discount     float64 `json:"discount" bson:"discount"`
	Total        float64 `json:"total" bson:"total"`
}

// Order statuses. Transitions happen only through admin action after creation.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// Order is a finalized order. Items and the shipping address are snapshots
// taken at creation time; later edits to products or saved addresses must
// not alter historical orders.
type Order struct {
	OrderNumber       string         `json:"orderNumber" bson:"orderNumber"`
	UserID            string         `json:"userId" bson:"userId"`
	Items             []CartLineItem `json:"items" bson:"items"`
	ShippingAddress   Address        `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod     string         `json:"paymentMethod" bson:"paymentMethod"`
	Totals            OrderTotals    `json:"totals" bson:"totals"`
	Status            string         `json:"status" bson:"status"`
	TrackingNumber    string         `json:"trackingNumber,omitempty" bson:"trackingNumber,omitempty"`
	GatewayOrderID    string         `json:"razorpayOrderId,omitempty" bson:"gatewayOrderId,omitempty"`
	GatewayPaymentID  string         `json:"razorpayPaymentId,omitempty" bson:"gatewayPaymentId,omitempty"`
	GatewaySignature  string         `json:"-" bson:"gatewaySignature,omitempty"`
	CreatedAt         time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Coupon is a percent-off discount code.
type Coupon struct {
	Code      string    `bson:"code" json:"code"`
	Discount  float64   `bson:"discount" json:"discount"` // % value e.g. 10 means 10%
	MinSpend  float64   `bson:"minSpend" json:"minSpend"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	Active    bool      `bson:"active" json:"active"`
}
