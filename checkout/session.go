package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"velora/cart"
	"velora/models"
	"velora/pricing"
	"velora/rdx"
	"velora/settings"
	"velora/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Checkout sessions hold the reviewed cart snapshot while the user picks
// an address and payment method. They expire on their own; abandoning
// checkout leaves no residual state.
const sessionTTL = 30 * time.Minute

func sessionKey(sessionID string) string {
	return "checkout:session:" + sessionID
}

// SaveSession stores a session in Redis.
func SaveSession(ctx context.Context, session models.CheckoutSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return rdx.Conn.Set(ctx, sessionKey(session.SessionID), data, sessionTTL).Err()
}

// LoadSession fetches a session if it has not expired.
func LoadSession(ctx context.Context, sessionID string) (models.CheckoutSession, error) {
	var session models.CheckoutSession
	data, err := rdx.Conn.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return session, err
	}
	err = json.Unmarshal([]byte(data), &session)
	return session, err
}

// CreateCheckoutSession snapshots the current cart and its totals.
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		AddressID  string `json:"addressId"`
		CouponCode string `json:"couponCode"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	items, err := h.service.Cart.Items(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not read cart")
		return
	}
	if len(items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, ErrEmptyCart.Error())
		return
	}

	store, err := settings.GetStoreSettings(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not load store settings")
		return
	}

	cfg := pricing.FromStoreSettings(store)
	discount := 0.0
	if body.CouponCode != "" {
		subtotal := pricing.ComputeTotals(items, cfg, 0).Subtotal
		if res := cart.EvaluateCoupon(ctx, body.CouponCode, subtotal); res.Valid {
			discount = res.Discount
		}
	}

	session := models.CheckoutSession{
		SessionID:  uuid.NewString(),
		UserID:     userID,
		Items:      items,
		AddressID:  body.AddressID,
		CouponCode: body.CouponCode,
		Totals:     pricing.ComputeTotals(items, cfg, discount),
		CreatedAt:  time.Now(),
	}

	if err := SaveSession(ctx, session); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not create checkout session")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, session)
}
