// Package payment resolves a checkout attempt's payment method into a
// confirmation the order service can trust.
package payment

import "fmt"

// Kind tags the payment method variants.
type Kind int

const (
	// GatewayRedirect hands card entry to the external gateway, which
	// calls back with a signed confirmation.
	GatewayRedirect Kind = iota
	// DirectCard validates card details locally and authorizes against
	// the sandbox processor.
	DirectCard
	// CashOnDelivery needs no confirmation beyond the user's choice.
	CashOnDelivery
)

func (k Kind) String() string {
	switch k {
	case GatewayRedirect:
		return "gateway"
	case DirectCard:
		return "card"
	case CashOnDelivery:
		return "cod"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps the wire value onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "gateway", "razorpay":
		return GatewayRedirect, nil
	case "card":
		return DirectCard, nil
	case "cod":
		return CashOnDelivery, nil
	}
	return 0, fmt.Errorf("unknown payment method %q", s)
}

// Method is the tagged payment choice for one checkout attempt.
// Card is only set for DirectCard.
type Method struct {
	Kind Kind
	Card *CardDetails
}

// Confirmation is the proof of payment carried into order submission.
// The gateway identifiers are set only for the GatewayRedirect variant.
type Confirmation struct {
	State     State
	OrderID   string
	PaymentID string
	Signature string
	// AuthCode is the sandbox authorization code for the card variant.
	AuthCode string
}
