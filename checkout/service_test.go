package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"velora/models"
	"velora/mq"
	"velora/payment"
)

type fakeCart struct {
	items     []models.CartLineItem
	itemsErr  error
	clearErr  error
	clearedBy string
}

func (f *fakeCart) Items(_ context.Context, _ string) ([]models.CartLineItem, error) {
	return f.items, f.itemsErr
}

func (f *fakeCart) Clear(_ context.Context, userID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.clearedBy = userID
	return nil
}

type fakeOrders struct {
	inserted  []models.Order
	insertErr error
}

func (f *fakeOrders) Insert(_ context.Context, order models.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, order)
	return nil
}

func testService(cart *fakeCart, orders *fakeOrders) *Service {
	return &Service{
		Cart:   cart,
		Orders: orders,
		Notify: func(context.Context, mq.OrderEvent) {},
		Now:    func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
	}
}

func testAddress() models.Address {
	return models.Address{AddressID: "a1", Label: "Home", Street: "12 MG Road",
		City: "Pune", State: "MH", PostalCode: "411001", Country: "IN", Phone: "9999999999"}
}

func testItems() []models.CartLineItem {
	return []models.CartLineItem{
		{ProductID: "p1", Name: "Linen Shirt", UnitPrice: 1659, Quantity: 2},
	}
}

func testTotals() models.OrderTotals {
	return models.OrderTotals{Subtotal: 3318, Tax: 265.44, Total: 3583.44}
}

func TestSubmitOrderEmptyCart(t *testing.T) {
	orders := &fakeOrders{}
	svc := testService(&fakeCart{}, orders)

	_, err := svc.SubmitOrder(context.Background(), "u1", testAddress(),
		payment.Method{Kind: payment.CashOnDelivery}, payment.Confirmation{State: payment.Confirmed}, testTotals())

	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	if len(orders.inserted) != 0 {
		t.Error("no order may be persisted for an empty cart")
	}
}

func TestSubmitOrderMissingAddress(t *testing.T) {
	svc := testService(&fakeCart{items: testItems()}, &fakeOrders{})

	_, err := svc.SubmitOrder(context.Background(), "u1", models.Address{},
		payment.Method{Kind: payment.CashOnDelivery}, payment.Confirmation{State: payment.Confirmed}, testTotals())

	if !errors.Is(err, ErrMissingAddress) {
		t.Fatalf("err = %v, want ErrMissingAddress", err)
	}
}

func TestSubmitOrderCashOnDelivery(t *testing.T) {
	cartStore := &fakeCart{items: testItems()}
	orders := &fakeOrders{}
	svc := testService(cartStore, orders)

	order, err := svc.SubmitOrder(context.Background(), "u1", testAddress(),
		payment.Method{Kind: payment.CashOnDelivery}, payment.Confirmation{State: payment.Confirmed}, testTotals())
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	if order.Status != models.OrderPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if order.PaymentMethod != "cod" {
		t.Errorf("paymentMethod = %q, want cod", order.PaymentMethod)
	}
	if order.GatewayOrderID != "" || order.GatewayPaymentID != "" || order.GatewaySignature != "" {
		t.Error("COD order must carry no gateway identifiers")
	}
	if order.OrderNumber == "" {
		t.Error("order number not generated")
	}
	if cartStore.clearedBy != "u1" {
		t.Error("cart was not cleared after submission")
	}
}

func TestSubmitOrderGatewayRequiresConfirmation(t *testing.T) {
	svc := testService(&fakeCart{items: testItems()}, &fakeOrders{})
	method := payment.Method{Kind: payment.GatewayRedirect}

	partials := map[string]payment.Confirmation{
		"zero value":    {},
		"no signature":  {State: payment.Confirmed, OrderID: "o", PaymentID: "p"},
		"no payment id": {State: payment.Confirmed, OrderID: "o", Signature: "s"},
		"wrong state":   {State: payment.Failed, OrderID: "o", PaymentID: "p", Signature: "s"},
	}
	for name, conf := range partials {
		if _, err := svc.SubmitOrder(context.Background(), "u1", testAddress(), method, conf, testTotals()); !errors.Is(err, ErrPaymentNotConfirmed) {
			t.Errorf("%s: err = %v, want ErrPaymentNotConfirmed", name, err)
		}
	}
}

func TestSubmitOrderGatewayCarriesIdentifiers(t *testing.T) {
	orders := &fakeOrders{}
	svc := testService(&fakeCart{items: testItems()}, orders)

	conf := payment.Confirmation{State: payment.Confirmed, OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}
	order, err := svc.SubmitOrder(context.Background(), "u1", testAddress(),
		payment.Method{Kind: payment.GatewayRedirect}, conf, testTotals())
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if order.GatewayOrderID != "order_1" || order.GatewayPaymentID != "pay_1" {
		t.Errorf("gateway identifiers not persisted: %+v", order)
	}
}

func TestSubmitOrderSnapshotsItems(t *testing.T) {
	items := testItems()
	cartStore := &fakeCart{items: items}
	orders := &fakeOrders{}
	svc := testService(cartStore, orders)

	_, err := svc.SubmitOrder(context.Background(), "u1", testAddress(),
		payment.Method{Kind: payment.CashOnDelivery}, payment.Confirmation{State: payment.Confirmed}, testTotals())
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	// mutate the live cart line; the persisted order must not change
	items[0].Quantity = 99
	if got := orders.inserted[0].Items[0].Quantity; got != 2 {
		t.Errorf("snapshot quantity = %d, want 2", got)
	}
}

func TestSubmitOrderPersistenceFailure(t *testing.T) {
	cartStore := &fakeCart{items: testItems()}
	orders := &fakeOrders{insertErr: errors.New("mongo down")}
	svc := testService(cartStore, orders)

	_, err := svc.SubmitOrder(context.Background(), "u1", testAddress(),
		payment.Method{Kind: payment.CashOnDelivery}, payment.Confirmation{State: payment.Confirmed}, testTotals())

	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want PersistenceError", err)
	}
	if cartStore.clearedBy != "" {
		t.Error("cart must not be cleared when the order write fails")
	}
}

func TestSubmitOrderCartClearFailureIsNotSurfaced(t *testing.T) {
	cartStore := &fakeCart{items: testItems(), clearErr: errors.New("redis hiccup")}
	orders := &fakeOrders{}
	svc := testService(cartStore, orders)

	_, err := svc.SubmitOrder(context.Background(), "u1", testAddress(),
		payment.Method{Kind: payment.CashOnDelivery}, payment.Confirmation{State: payment.Confirmed}, testTotals())
	if err != nil {
		t.Fatalf("cart-clear failure must not fail the order, got %v", err)
	}
	if len(orders.inserted) != 1 {
		t.Fatal("order not persisted")
	}
}

func TestNewOrderNumberUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := NewOrderNumber(now)
		if seen[n] {
			t.Fatalf("duplicate order number %s", n)
		}
		seen[n] = true
	}
}
