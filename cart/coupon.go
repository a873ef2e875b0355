package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"velora/db"
	"velora/models"
	"velora/rdx"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

type CouponRequest struct {
	Code string  `json:"code"`
	Cart float64 `json:"cart"` // cart subtotal, for min-spend rules
}

type CouponResponse struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"` // absolute amount, not %
	Message  string  `json:"message"`
}

const couponCacheTTL = 5 * time.Minute

// lookupCoupon reads a coupon, consulting the Redis cache first.
func lookupCoupon(ctx context.Context, code string) (models.Coupon, error) {
	var coupon models.Coupon

	cacheKey := "coupon:" + code
	if cached, err := rdx.Conn.Get(ctx, cacheKey).Result(); err == nil {
		if json.Unmarshal([]byte(cached), &coupon) == nil {
			return coupon, nil
		}
	}

	if err := db.CouponCollection.FindOne(ctx, bson.M{"code": code}).Decode(&coupon); err != nil {
		return coupon, err
	}

	if data, err := json.Marshal(coupon); err == nil {
		if err := rdx.Conn.Set(ctx, cacheKey, data, couponCacheTTL).Err(); err != nil {
			log.Println("coupon cache write error:", err)
		}
	}
	return coupon, nil
}

// EvaluateCoupon validates a code against a subtotal and returns the
// absolute discount it grants.
func EvaluateCoupon(ctx context.Context, code string, subtotal float64) CouponResponse {
	code = strings.TrimSpace(strings.ToLower(code))
	if code == "" {
		return CouponResponse{Valid: false, Message: "No coupon provided"}
	}

	coupon, err := lookupCoupon(ctx, code)
	if err != nil {
		return CouponResponse{Valid: false, Message: "Coupon not found"}
	}

	if !coupon.Active {
		return CouponResponse{Valid: false, Message: "Coupon inactive"}
	}
	if time.Now().After(coupon.ExpiresAt) {
		return CouponResponse{Valid: false, Message: "Coupon expired"}
	}
	if subtotal < coupon.MinSpend {
		return CouponResponse{Valid: false, Message: "Cart total below coupon minimum"}
	}

	discount := 0.0
	if subtotal > 0 {
		discount = (subtotal * coupon.Discount) / 100
	}

	return CouponResponse{Valid: true, Discount: discount, Message: "Coupon applied successfully"}
}

func ValidateCouponHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, EvaluateCoupon(ctx, req.Code, req.Cart))
}
