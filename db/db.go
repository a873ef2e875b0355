package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	ProductCollection     *mongo.Collection
	CartCollection        *mongo.Collection
	OrderCollection       *mongo.Collection
	AddressCollection     *mongo.Collection
	CouponCollection      *mongo.Collection
	ReviewsCollection     *mongo.Collection
	SettingsCollection    *mongo.Collection
	IdempotencyCollection *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("velora")
	UserCollection = database.Collection("users")
	ProductCollection = database.Collection("products")
	CartCollection = database.Collection("cart")
	OrderCollection = database.Collection("orders")
	AddressCollection = database.Collection("addresses")
	CouponCollection = database.Collection("coupons")
	ReviewsCollection = database.Collection("reviews")
	SettingsCollection = database.Collection("settings")
	IdempotencyCollection = database.Collection("idempotency")
}
