package payment

import (
	"errors"
	"testing"
)

func TestCashOnDeliveryConfirmsImmediately(t *testing.T) {
	r := NewResolver(Method{Kind: CashOnDelivery}, nil)

	if err := r.Begin("", 100); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if r.State() != Confirmed {
		t.Fatalf("state = %v, want Confirmed", r.State())
	}

	conf, ok := r.Confirmation()
	if !ok {
		t.Fatal("confirmation missing")
	}
	if conf.OrderID != "" || conf.PaymentID != "" || conf.Signature != "" {
		t.Errorf("COD must carry no gateway identifiers, got %+v", conf)
	}
}

func TestDirectCardInvalidStaysIdle(t *testing.T) {
	card := validCard()
	card.CVV = "12"
	r := NewResolver(Method{Kind: DirectCard, Card: &card}, SandboxAuthorizer{})

	err := r.Begin("", 100)
	if !errors.Is(err, ErrCardCVV) {
		t.Fatalf("err = %v, want ErrCardCVV", err)
	}
	if r.State() != Idle {
		t.Errorf("state = %v, want Idle after validation failure", r.State())
	}
}

func TestDirectCardSandboxConfirms(t *testing.T) {
	card := validCard()
	r := NewResolver(Method{Kind: DirectCard, Card: &card}, SandboxAuthorizer{})

	if err := r.Begin("", 100); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if r.State() != Confirmed {
		t.Fatalf("state = %v, want Confirmed", r.State())
	}
	conf, _ := r.Confirmation()
	if conf.AuthCode == "" {
		t.Error("expected sandbox auth code")
	}
}

func TestGatewayCallbackMissingSignatureFails(t *testing.T) {
	r := NewResolver(Method{Kind: GatewayRedirect}, nil)
	if err := r.Begin("order_abc", 100); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if r.State() != AwaitingConfirmation {
		t.Fatalf("state = %v, want AwaitingConfirmation", r.State())
	}

	cb := GatewayCallback{OrderID: "order_abc", PaymentID: "pay_1"}
	if err := r.HandleGatewayCallback(cb); !errors.Is(err, ErrCallbackIncomplete) {
		t.Fatalf("err = %v, want ErrCallbackIncomplete", err)
	}
	if r.State() != Failed {
		t.Errorf("state = %v, want Failed", r.State())
	}
	if _, ok := r.Confirmation(); ok {
		t.Error("failed attempt must not expose a confirmation")
	}
}

func TestGatewayCallbackBadSignatureFails(t *testing.T) {
	r := NewResolver(Method{Kind: GatewayRedirect}, nil)
	_ = r.Begin("order_abc", 100)

	cb := GatewayCallback{OrderID: "order_abc", PaymentID: "pay_1", Signature: "deadbeef"}
	if err := r.HandleGatewayCallback(cb); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("err = %v, want ErrBadSignature", err)
	}
	if r.State() != Failed {
		t.Errorf("state = %v, want Failed", r.State())
	}
}

func TestGatewayCallbackValidConfirms(t *testing.T) {
	r := NewResolver(Method{Kind: GatewayRedirect}, nil)
	_ = r.Begin("order_abc", 100)

	cb := GatewayCallback{
		OrderID:   "order_abc",
		PaymentID: "pay_1",
		Signature: SignGatewayPayload("order_abc", "pay_1"),
	}
	if err := r.HandleGatewayCallback(cb); err != nil {
		t.Fatalf("HandleGatewayCallback: %v", err)
	}

	conf, ok := r.Confirmation()
	if !ok {
		t.Fatal("confirmation missing")
	}
	if conf.OrderID != "order_abc" || conf.PaymentID != "pay_1" || conf.Signature == "" {
		t.Errorf("identifiers not carried forward: %+v", conf)
	}
}

func TestFailedIsTerminalUntilReset(t *testing.T) {
	r := NewResolver(Method{Kind: GatewayRedirect}, nil)
	_ = r.Begin("order_abc", 100)
	r.Cancel("user cancelled")

	if err := r.Begin("order_abc", 100); !errors.Is(err, ErrAttemptFailed) {
		t.Fatalf("Begin after failure = %v, want ErrAttemptFailed", err)
	}

	r.Reset()
	if r.State() != Idle {
		t.Fatalf("state after reset = %v, want Idle", r.State())
	}
	if err := r.Begin("order_def", 100); err != nil {
		t.Errorf("Begin after reset: %v", err)
	}
}

func TestCallbackWhileNotAwaiting(t *testing.T) {
	r := NewResolver(Method{Kind: GatewayRedirect}, nil)
	cb := GatewayCallback{OrderID: "o", PaymentID: "p", Signature: SignGatewayPayload("o", "p")}
	if err := r.HandleGatewayCallback(cb); !errors.Is(err, ErrNotAwaiting) {
		t.Errorf("err = %v, want ErrNotAwaiting", err)
	}
}
