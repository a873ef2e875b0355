package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"velora/address"
	"velora/cart"
	"velora/models"
	"velora/payment"
	"velora/pricing"
	"velora/settings"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler owns the HTTP surface of the checkout workflow.
type Handler struct {
	service    *Service
	authorizer payment.Authorizer
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		// card payments settle against the sandbox processor
		authorizer: payment.SandboxAuthorizer{Delay: 500 * time.Millisecond},
	}
}

// placeOrderRequest is the POST /api/orders body. Totals sent by the
// client are advisory; the server recomputes from the live cart.
type placeOrderRequest struct {
	AddressID        string               `json:"addressId"`
	ShippingAddress  *models.Address      `json:"shippingAddress"`
	PaymentMethod    string               `json:"paymentMethod"`
	Card             *payment.CardDetails `json:"card"`
	GatewayOrderID   string               `json:"razorpayOrderId"`
	GatewayPaymentID string               `json:"razorpayPaymentId"`
	GatewaySignature string               `json:"razorpaySignature"`
	CouponCode       string               `json:"couponCode"`
	Subtotal         float64              `json:"subtotal"`
	Shipping         float64              `json:"shipping"`
	Tax              float64              `json:"tax"`
	Discount         float64              `json:"discount"`
	Total            float64              `json:"total"`
}

// resolveShippingAddress prefers a saved address id, falling back to an
// inline address from the body.
func (h *Handler) resolveShippingAddress(ctx context.Context, userID string, req placeOrderRequest) (models.Address, error) {
	if req.AddressID != "" {
		return address.FindForUser(ctx, userID, req.AddressID)
	}
	if req.ShippingAddress != nil {
		return *req.ShippingAddress, nil
	}
	return models.Address{}, ErrMissingAddress
}

// PlaceOrder drives the full submission: recompute totals from the live
// cart, resolve the payment method to a confirmation, then submit.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("PlaceOrder decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order payload")
		return
	}

	kind, err := payment.ParseKind(req.PaymentMethod)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}
	method := payment.Method{Kind: kind, Card: req.Card}

	shippingAddress, err := h.resolveShippingAddress(ctx, userID, req)
	if err != nil {
		if errors.Is(err, address.ErrUnknownAddress) || errors.Is(err, ErrMissingAddress) {
			utils.RespondWithError(w, http.StatusNotFound, "Shipping address not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Could not load address")
		}
		return
	}

	// Totals come from the cart as it exists right now, so no intervening
	// mutation can silently change what gets ordered.
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
	if req.CouponCode != "" {
		subtotal := pricing.ComputeTotals(items, cfg, 0).Subtotal
		if res := cart.EvaluateCoupon(ctx, req.CouponCode, subtotal); res.Valid {
			discount = res.Discount
		}
	}
	totals := pricing.ComputeTotals(items, cfg, discount)

	conf, status, msg := h.resolvePayment(method, req, totals.Total)
	if msg != "" {
		utils.RespondWithError(w, status, msg)
		return
	}

	order, err := h.service.SubmitOrder(ctx, userID, shippingAddress, method, conf, totals)
	if err != nil {
		h.respondSubmitError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"order": order})
}

// resolvePayment runs the method's resolver to a confirmation, or returns
// an HTTP status and user-facing message on failure.
func (h *Handler) resolvePayment(method payment.Method, req placeOrderRequest, amount float64) (payment.Confirmation, int, string) {
	resolver := payment.NewResolver(method, h.authorizer)

	switch method.Kind {
	case payment.CashOnDelivery:
		if err := resolver.Begin("", amount); err != nil {
			return payment.Confirmation{}, http.StatusInternalServerError, "Payment failed"
		}

	case payment.DirectCard:
		if err := resolver.Begin("", amount); err != nil {
			// a card validation error keeps the attempt idle; surface the rule
			return payment.Confirmation{}, http.StatusBadRequest, err.Error()
		}

	case payment.GatewayRedirect:
		if err := resolver.Begin(req.GatewayOrderID, amount); err != nil {
			return payment.Confirmation{}, http.StatusBadRequest, err.Error()
		}
		cb := payment.GatewayCallback{
			OrderID:   req.GatewayOrderID,
			PaymentID: req.GatewayPaymentID,
			Signature: req.GatewaySignature,
		}
		if err := resolver.HandleGatewayCallback(cb); err != nil {
			return payment.Confirmation{}, http.StatusBadRequest, ErrPaymentNotConfirmed.Error()
		}
	}

	conf, ok := resolver.Confirmation()
	if !ok {
		return payment.Confirmation{}, http.StatusBadRequest, ErrPaymentNotConfirmed.Error()
	}
	return conf, 0, ""
}

func (h *Handler) respondSubmitError(w http.ResponseWriter, err error) {
	var pe *PersistenceError
	switch {
	case errors.Is(err, ErrEmptyCart):
		utils.RespondWithError(w, http.StatusBadRequest, ErrEmptyCart.Error())
	case errors.Is(err, ErrMissingAddress):
		utils.RespondWithError(w, http.StatusBadRequest, ErrMissingAddress.Error())
	case errors.Is(err, ErrPaymentNotConfirmed):
		utils.RespondWithError(w, http.StatusBadRequest, ErrPaymentNotConfirmed.Error())
	case errors.As(err, &pe):
		log.Println("PlaceOrder persistence error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Order could not be saved; please retry")
	default:
		log.Println("PlaceOrder error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Unexpected error")
	}
}

// CreateGatewayOrder mints the gateway-side order the redirect flow needs.
func (h *Handler) CreateGatewayOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

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
	totals := pricing.ComputeTotals(items, pricing.FromStoreSettings(store), 0)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"gatewayOrderId": payment.NewGatewayOrderID(),
		"keyId":          store.GatewayKeyID,
		"amount":         totals.Total,
		"currency":       store.Currency,
	})
}
