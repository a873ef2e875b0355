package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"velora/db"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const storeSettingsID = "store"

// StoreSettings holds the commercial configuration the checkout flow
// computes totals from. Admin-editable; defaults apply until changed.
type StoreSettings struct {
	ID                    string  `json:"-" bson:"_id"`
	Currency              string  `json:"currency" bson:"currency"`
	FreeShippingThreshold float64 `json:"freeShippingThreshold" bson:"freeShippingThreshold"`
	FlatShippingRate      float64 `json:"flatShippingRate" bson:"flatShippingRate"`
	TaxRate               float64 `json:"taxRate" bson:"taxRate"`
	GatewayKeyID          string  `json:"gatewayKeyId" bson:"gatewayKeyId"`
}

func defaultStoreSettings() StoreSettings {
	return StoreSettings{
		ID:                    storeSettingsID,
		Currency:              "INR",
		FreeShippingThreshold: 499,
		FlatShippingRate:      40,
		TaxRate:               0.08,
	}
}

// GetStoreSettings loads the settings document, initializing defaults if missing.
func GetStoreSettings(ctx context.Context) (StoreSettings, error) {
	var s StoreSettings
	err := db.SettingsCollection.FindOne(ctx, bson.M{"_id": storeSettingsID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		s = defaultStoreSettings()
		_, _ = db.SettingsCollection.InsertOne(ctx, s)
		return s, nil
	}
	if err != nil {
		return StoreSettings{}, err
	}
	return s, nil
}

// GetStoreSettingsHandler exposes the public commercial config.
func GetStoreSettingsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s, err := GetStoreSettings(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load store settings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}

// UpdateStoreSettingsHandler replaces the commercial config (admin only).
func UpdateStoreSettingsHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var s StoreSettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid settings payload")
		return
	}
	if s.FlatShippingRate < 0 || s.FreeShippingThreshold < 0 || s.TaxRate < 0 || s.TaxRate >= 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Settings values out of range")
		return
	}
	s.ID = storeSettingsID

	opts := options.Replace().SetUpsert(true)
	if _, err := db.SettingsCollection.ReplaceOne(r.Context(), bson.M{"_id": storeSettingsID}, s, opts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not save store settings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, s)
}
