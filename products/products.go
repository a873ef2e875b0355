package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"velora/db"
	"velora/models"
	"velora/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildFilter translates catalog query params into a Mongo filter.
func buildFilter(r *http.Request) bson.M {
	filter := bson.M{}
	q := r.URL.Query()

	if category := q.Get("category"); category != "" {
		filter["category"] = category
	}
	if size := q.Get("size"); size != "" {
		filter["sizes"] = size
	}
	if color := q.Get("color"); color != "" {
		filter["colors"] = color
	}
	if q.Get("featured") == "true" {
		filter["featured"] = true
	}

	price := bson.M{}
	if min, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		price["$gte"] = min
	}
	if max, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		price["$lte"] = max
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if search := strings.TrimSpace(q.Get("q")); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	return filter
}

func sortOption(key string) bson.D {
	switch key {
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}
	case "newest":
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return bson.D{{Key: "name", Value: 1}}
}

// GetProducts lists the catalog with filters, sort and pagination.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit < 1 || limit > 100 {
		limit = 24
	}

	opts := options.Find().
		SetSort(sortOption(r.URL.Query().Get("sort"))).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := db.ProductCollection.Find(ctx, buildFilter(r), opts)
	if err != nil {
		log.Println("GetProducts error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading products")
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": products, "page": page})
}

// GetProduct returns one catalog entry.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productId": ps.ByName("id")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve product")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"product": product})
}

func validateProduct(p models.Product) string {
	if strings.TrimSpace(p.Name) == "" {
		return "Product name is required"
	}
	if p.Price <= 0 {
		return "Price must be positive"
	}
	if strings.TrimSpace(p.Category) == "" {
		return "Category is required"
	}
	return ""
}

// CreateProduct adds a catalog entry (admin only).
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := validateProduct(product); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	product.ProductID = uuid.NewString()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not create product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"product": product})
}

// UpdateProduct edits a catalog entry (admin only).
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := validateProduct(product); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	product.ProductID = ps.ByName("id")
	product.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"category":    product.Category,
		"price":       product.Price,
		"sizes":       product.Sizes,
		"colors":      product.Colors,
		"stock":       product.Stock,
		"featured":    product.Featured,
		"updatedAt":   product.UpdatedAt,
	}}
	res, err := db.ProductCollection.UpdateOne(ctx, bson.M{"productId": product.ProductID}, update)
	if err != nil {
		log.Println("UpdateProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"product": product})
}

// DeleteProduct removes a catalog entry (admin only).
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.ProductCollection.DeleteOne(ctx, bson.M{"productId": ps.ByName("id")})
	if err != nil {
		log.Println("DeleteProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}
