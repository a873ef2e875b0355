package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"velora/utils"
)

// GatewayCallback is the payload the external gateway posts back after the
// user completes the redirect flow.
type GatewayCallback struct {
	OrderID   string `json:"razorpayOrderId"`
	PaymentID string `json:"razorpayPaymentId"`
	Signature string `json:"razorpaySignature"`
}

var (
	ErrCallbackIncomplete = errors.New("gateway callback missing order id, payment id or signature")
	ErrBadSignature       = errors.New("gateway signature verification failed")
)

// gatewaySecret is the shared key the gateway signs callbacks with.
func gatewaySecret() []byte {
	if s := os.Getenv("GATEWAY_KEY_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("velora-gateway-sandbox")
}

// SignGatewayPayload produces the callback signature for orderID|paymentID.
// Exposed so the sandbox gateway and tests sign the same way it is verified.
func SignGatewayPayload(orderID, paymentID string) string {
	h := hmac.New(sha256.New, gatewaySecret())
	fmt.Fprintf(h, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyCallback checks the callback is structurally complete and its
// signature matches the signed order/payment pair.
func VerifyCallback(cb GatewayCallback) error {
	if cb.OrderID == "" || cb.PaymentID == "" || cb.Signature == "" {
		return ErrCallbackIncomplete
	}
	expected := SignGatewayPayload(cb.OrderID, cb.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(cb.Signature)) {
		return ErrBadSignature
	}
	return nil
}

// NewGatewayOrderID mints the gateway-side order id handed to the redirect
// flow. The real gateway would return its own id; the sandbox mimics its shape.
func NewGatewayOrderID() string {
	return "order_" + utils.GenerateRandomString(14)
}

// Authorizer settles a direct-card charge. The sandbox implementation
// always approves after a fixed delay; a real processor integration would
// satisfy the same interface.
type Authorizer interface {
	Authorize(card CardDetails, amount float64) (authCode string, err error)
}

// SandboxAuthorizer approves every validated card after Delay.
type SandboxAuthorizer struct {
	Delay time.Duration
}

func (s SandboxAuthorizer) Authorize(card CardDetails, amount float64) (string, error) {
	time.Sleep(s.Delay)
	return "AUTH-" + utils.GenerateRandomDigitString(8), nil
}
