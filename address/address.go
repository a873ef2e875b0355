package address

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

// validate checks the required fields for a saved address.
func validate(a models.Address) string {
	required := map[string]string{
		"label":   a.Label,
		"street":  a.Street,
		"city":    a.City,
		"state":   a.State,
		"zipCode": a.PostalCode,
		"phone":   a.Phone,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			return "Missing required field: " + field
		}
	}
	return ""
}

// demoteDefaults unsets isDefault on every address of the user except keep.
func demoteDefaults(ctx context.Context, userID, keep string) error {
	_, err := db.AddressCollection.UpdateMany(ctx,
		bson.M{"userId": userID, "addressId": bson.M{"$ne": keep}},
		bson.M{"$set": bson.M{"isDefault": false}},
	)
	return err
}

// ListForUser loads a user's addresses, default first.
func ListForUser(ctx context.Context, userID string) ([]models.Address, error) {
	opts := options.Find().SetSort(bson.D{{Key: "isDefault", Value: -1}, {Key: "label", Value: 1}})
	cursor, err := db.AddressCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var addresses []models.Address
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	if addresses == nil {
		addresses = []models.Address{}
	}
	return addresses, nil
}

// GetAddresses returns all saved addresses for the user.
func GetAddresses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	addresses, err := ListForUser(ctx, userID)
	if err != nil {
		log.Println("GetAddresses error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve addresses")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"addresses": addresses})
}

// CreateAddress validates and saves a new address. When isDefault is
// requested, all other addresses of the user are demoted in the same
// operation so at most one default ever exists.
func CreateAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		log.Println("CreateAddress decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if msg := validate(addr); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	addr.UserID = userID
	addr.AddressID = uuid.NewString()

	// First address becomes the default automatically
	count, err := db.AddressCollection.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		log.Println("CreateAddress count error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save address")
		return
	}
	if count == 0 {
		addr.IsDefault = true
	}

	if _, err := db.AddressCollection.InsertOne(ctx, addr); err != nil {
		log.Println("CreateAddress InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save address")
		return
	}

	if addr.IsDefault {
		if err := demoteDefaults(ctx, userID, addr.AddressID); err != nil {
			log.Println("CreateAddress demote error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Could not update default address")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"address": addr})
}

// UpdateAddress edits a saved address the user owns.
func UpdateAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	addressID := ps.ByName("id")

	var addr models.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := validate(addr); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	addr.UserID = userID
	addr.AddressID = addressID

	res, err := db.AddressCollection.ReplaceOne(ctx,
		bson.M{"userId": userID, "addressId": addressID}, addr)
	if err != nil {
		log.Println("UpdateAddress error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not update address")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	if addr.IsDefault {
		if err := demoteDefaults(ctx, userID, addressID); err != nil {
			log.Println("UpdateAddress demote error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Could not update default address")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"address": addr})
}

// SetDefaultAddress marks one address default and demotes the rest.
func SetDefaultAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	addressID := ps.ByName("id")

	res, err := db.AddressCollection.UpdateOne(ctx,
		bson.M{"userId": userID, "addressId": addressID},
		bson.M{"$set": bson.M{"isDefault": true}},
	)
	if err != nil {
		log.Println("SetDefaultAddress error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not update address")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	if err := demoteDefaults(ctx, userID, addressID); err != nil {
		log.Println("SetDefaultAddress demote error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not update default address")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "default updated"})
}

// DeleteAddress removes a saved address the user owns.
func DeleteAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	addressID := ps.ByName("id")

	res, err := db.AddressCollection.DeleteOne(ctx, bson.M{"userId": userID, "addressId": addressID})
	if err != nil {
		log.Println("DeleteAddress error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not delete address")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "deleted"})
}

// FindForUser loads one address by id, scoped to the owner.
func FindForUser(ctx context.Context, userID, addressID string) (models.Address, error) {
	var addr models.Address
	err := db.AddressCollection.FindOne(ctx,
		bson.M{"userId": userID, "addressId": addressID}).Decode(&addr)
	if err == mongo.ErrNoDocuments {
		return models.Address{}, ErrUnknownAddress
	}
	return addr, err
}
