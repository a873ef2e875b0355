package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"velora/db"
	"velora/models"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lineKey identifies one cart line: the same product in another size or
// color is a separate line.
func lineKey(userID string, item models.CartLineItem) bson.M {
	return bson.M{
		"userId":    userID,
		"productId": item.ProductID,
		"size":      item.Size,
		"color":     item.Color,
	}
}

// ItemsForUser loads the user's cart lines.
func ItemsForUser(ctx context.Context, userID string) ([]models.CartLineItem, error) {
	cursor, err := db.CartCollection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CartLineItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartLineItem{}
	}
	return items, nil
}

// ClearForUser removes every cart line of the user.
func ClearForUser(ctx context.Context, userID string) error {
	_, err := db.CartCollection.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// GetCart returns the user's cart.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := ItemsForUser(ctx, userID)
	if err != nil {
		log.Println("GetCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"cart": models.Cart{Items: items}})
}

// AddToCart increments quantity if the line exists, or inserts a new line.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var item models.CartLineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		log.Println("AddToCart decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	item.UserID = userID

	if item.ProductID == "" || item.Name == "" || item.Quantity <= 0 || item.UnitPrice <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	// Verify the product still exists; the snapshot price comes from the
	// catalog, not the client.
	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productId": item.ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	item.UnitPrice = product.Price

	update := bson.M{
		"$inc": bson.M{"quantity": item.Quantity},
		"$setOnInsert": bson.M{
			"name":      product.Name,
			"unitPrice": item.UnitPrice,
			"image":     firstImage(product),
			"addedAt":   time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := db.CartCollection.UpdateOne(ctx, lineKey(userID, item), update, opts); err != nil {
		log.Println("AddToCart UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"status": "added"})
}

func firstImage(p models.Product) string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// UpdateCartItem sets the quantity of one line.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload struct {
		Quantity int    `json:"quantity"`
		Size     string `json:"size"`
		Color    string `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if payload.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	key := lineKey(userID, models.CartLineItem{
		ProductID: ps.ByName("productId"),
		Size:      payload.Size,
		Color:     payload.Color,
	})
	res, err := db.CartCollection.UpdateOne(ctx, key,
		bson.M{"$set": bson.M{"quantity": payload.Quantity}})
	if err != nil {
		log.Println("UpdateCartItem error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Cart item not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "updated"})
}

// RemoveCartItem deletes one line.
func RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	key := lineKey(userID, models.CartLineItem{
		ProductID: ps.ByName("productId"),
		Size:      r.URL.Query().Get("size"),
		Color:     r.URL.Query().Get("color"),
	})
	res, err := db.CartCollection.DeleteOne(ctx, key)
	if err != nil {
		log.Println("RemoveCartItem error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Cart item not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "removed"})
}

// ClearCart removes every line and returns the now-empty cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := ClearForUser(ctx, userID); err != nil {
		log.Println("ClearCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"cart": models.Cart{Items: []models.CartLineItem{}}})
}
