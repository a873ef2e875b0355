package payment

import (
	"errors"
	"fmt"
	"time"
)

// State of one checkout attempt's payment.
type State int

const (
	Idle State = iota
	AwaitingConfirmation
	Confirmed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Confirmed:
		return "confirmed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrNotAwaiting   = errors.New("no payment awaiting confirmation")
	ErrAttemptFailed = errors.New("payment attempt failed; re-initiate to retry")
)

// Resolver drives one checkout attempt through
// Idle → AwaitingConfirmation → Confirmed or Failed. A Failed attempt is
// terminal until Reset; nothing retries silently.
type Resolver struct {
	method     Method
	state      State
	failReason string
	conf       Confirmation
	authorizer Authorizer
	now        func() time.Time
}

// NewResolver starts an attempt for the chosen method. The authorizer is
// only consulted for the direct-card variant.
func NewResolver(method Method, authorizer Authorizer) *Resolver {
	return &Resolver{method: method, authorizer: authorizer, now: time.Now}
}

func (r *Resolver) State() State { return r.state }

// FailureMessage is the user-facing reason for the last Failed transition.
func (r *Resolver) FailureMessage() string { return r.failReason }

// Confirmation returns the settled confirmation once Confirmed.
func (r *Resolver) Confirmation() (Confirmation, bool) {
	if r.state != Confirmed {
		return Confirmation{}, false
	}
	return r.conf, true
}

// Begin triggers the payment for the attempt's method.
//
// CashOnDelivery confirms immediately with no identifiers. DirectCard
// validates locally, then authorizes against the sandbox processor; a
// validation failure keeps the attempt Idle so the form can be corrected.
// GatewayRedirect moves to AwaitingConfirmation until the gateway calls back.
func (r *Resolver) Begin(gatewayOrderID string, amount float64) error {
	if r.state == Failed {
		return ErrAttemptFailed
	}
	if r.state != Idle {
		return fmt.Errorf("payment already %s", r.state)
	}

	switch r.method.Kind {
	case CashOnDelivery:
		r.state = Confirmed
		r.conf = Confirmation{State: Confirmed}
		return nil

	case DirectCard:
		if r.method.Card == nil {
			return ErrCardNumberLength
		}
		if err := ValidateCard(*r.method.Card, r.now()); err != nil {
			// stays Idle: the user corrects the form and tries again
			return err
		}
		r.state = AwaitingConfirmation
		authCode, err := r.authorizer.Authorize(*r.method.Card, amount)
		if err != nil {
			r.fail("card authorization declined")
			return err
		}
		r.state = Confirmed
		r.conf = Confirmation{State: Confirmed, AuthCode: authCode}
		return nil

	case GatewayRedirect:
		r.state = AwaitingConfirmation
		r.conf = Confirmation{OrderID: gatewayOrderID}
		return nil
	}

	return fmt.Errorf("unknown payment method %v", r.method.Kind)
}

// HandleGatewayCallback settles a gateway-redirect attempt from the signed
// callback. Verification failure is a Failed transition, not an Idle one;
// the user must re-initiate.
func (r *Resolver) HandleGatewayCallback(cb GatewayCallback) error {
	if r.method.Kind != GatewayRedirect {
		return fmt.Errorf("callback for non-gateway method %v", r.method.Kind)
	}
	if r.state != AwaitingConfirmation {
		return ErrNotAwaiting
	}

	if err := VerifyCallback(cb); err != nil {
		r.fail("payment was not completed; please try again")
		return err
	}

	r.state = Confirmed
	r.conf = Confirmation{
		State:     Confirmed,
		OrderID:   cb.OrderID,
		PaymentID: cb.PaymentID,
		Signature: cb.Signature,
	}
	return nil
}

// Cancel records a user-cancelled or gateway-declined attempt.
func (r *Resolver) Cancel(reason string) {
	r.fail(reason)
}

// Reset returns a Failed attempt to Idle so the user can retry.
func (r *Resolver) Reset() {
	r.state = Idle
	r.failReason = ""
	r.conf = Confirmation{}
}

func (r *Resolver) fail(reason string) {
	r.state = Failed
	r.failReason = reason
	r.conf = Confirmation{State: Failed}
}
