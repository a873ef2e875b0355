package reviews

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
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

// GetProductReviews lists reviews for a product, newest first.
func GetProductReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.ReviewsCollection.Find(ctx, bson.M{"productId": ps.ByName("id")}, opts)
	if err != nil {
		log.Println("GetProductReviews error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve reviews")
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading reviews")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reviews": reviews})
}

// CreateReview adds one review per user per product.
func CreateReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if review.Rating < 1 || review.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	if strings.TrimSpace(review.Comment) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment must not be empty")
		return
	}

	productID := ps.ByName("id")
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productId": productID}).Err(); err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	existing := db.ReviewsCollection.FindOne(ctx, bson.M{"productId": productID, "userId": userID})
	if existing.Err() == nil {
		utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this product")
		return
	}

	review.ReviewID = uuid.NewString()
	review.ProductID = productID
	review.UserID = userID
	review.CreatedAt = time.Now()

	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		log.Println("CreateReview error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save review")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"review": review})
}

// DeleteReview removes the caller's own review.
func DeleteReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	res, err := db.ReviewsCollection.DeleteOne(ctx,
		bson.M{"reviewId": ps.ByName("reviewId"), "userId": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not delete review")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Review not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}
