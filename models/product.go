package models

import "time"

// Product is a catalog entry. Sizes/colors are the variants offered;
// the cart records which variant was chosen.
type Product struct {
	ProductID   string    `json:"id" bson:"productId"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Category    string    `json:"category" bson:"category"` // e.g. "men", "women", "accessories"
	Price       float64   `json:"price" bson:"price"`
	Sizes       []string  `json:"sizes,omitempty" bson:"sizes,omitempty"`
	Colors      []string  `json:"colors,omitempty" bson:"colors,omitempty"`
	Images      []string  `json:"images,omitempty" bson:"images,omitempty"`
	Stock       int       `json:"stock" bson:"stock"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Review is one user's review of a product; one review per user per product.
type Review struct {
	ReviewID  string    `json:"id" bson:"reviewId"`
	ProductID string    `json:"productId" bson:"productId"`
	UserID    string    `json:"userId" bson:"userId"`
	Username  string    `json:"username" bson:"username"`
	Rating    int       `json:"rating" bson:"rating"` // 1..5
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
