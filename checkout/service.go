package checkout

import (
	"context"
	"log"
	"strings"
	"time"

	"velora/cart"
	"velora/db"
	"velora/models"
	"velora/mq"
	"velora/payment"

	"github.com/google/uuid"
)

// CartStore supplies and clears the line items of a user's cart.
type CartStore interface {
	Items(ctx context.Context, userID string) ([]models.CartLineItem, error)
	Clear(ctx context.Context, userID string) error
}

// OrderStore persists finalized orders.
type OrderStore interface {
	Insert(ctx context.Context, order models.Order) error
}

// Service coordinates order submission: precondition checks, snapshotting,
// persistence, and best-effort cart cleanup. Dependencies are explicit so
// the workflow is testable without Mongo.
type Service struct {
	Cart   CartStore
	Orders OrderStore
	Notify func(ctx context.Context, evt mq.OrderEvent)
	Now    func() time.Time
}

// NewService wires the Mongo-backed stores and the Redis event emitter.
func NewService() *Service {
	return &Service{
		Cart:   mongoCartStore{},
		Orders: mongoOrderStore{},
		Notify: mq.EmitOrderEvent,
		Now:    time.Now,
	}
}

type mongoCartStore struct{}

func (mongoCartStore) Items(ctx context.Context, userID string) ([]models.CartLineItem, error) {
	return cart.ItemsForUser(ctx, userID)
}

func (mongoCartStore) Clear(ctx context.Context, userID string) error {
	return cart.ClearForUser(ctx, userID)
}

type mongoOrderStore struct{}

func (mongoOrderStore) Insert(ctx context.Context, order models.Order) error {
	_, err := db.OrderCollection.InsertOne(ctx, order)
	return err
}

// NewOrderNumber mints a collision-resistant order number:
// timestamp plus a random suffix.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "VL" + now.UTC().Format("20060102150405") + suffix
}

// SubmitOrder finalizes a checkout attempt.
//
// The cart is re-read here so the persisted order reflects the state the
// user is charged for, not a stale review snapshot. Preconditions fail
// before any write: an empty cart, a missing address, or (for the gateway
// variant) a confirmation lacking any of its three identifiers. On success
// the order is persisted with status pending; clearing the cart afterwards
// is best-effort cleanup whose failure is logged, never surfaced, because
// the order record is the authoritative success signal.
func (s *Service) SubmitOrder(ctx context.Context, userID string, shippingAddress models.Address,
	method payment.Method, conf payment.Confirmation, totals models.OrderTotals) (models.Order, error) {

	items, err := s.Cart.Items(ctx, userID)
	if err != nil {
		return models.Order{}, &PersistenceError{Err: err}
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	if shippingAddress.AddressID == "" && shippingAddress.Street == "" {
		return models.Order{}, ErrMissingAddress
	}
	if conf.State != payment.Confirmed {
		return models.Order{}, ErrPaymentNotConfirmed
	}
	if method.Kind == payment.GatewayRedirect {
		if conf.OrderID == "" || conf.PaymentID == "" || conf.Signature == "" {
			return models.Order{}, ErrPaymentNotConfirmed
		}
	}

	now := s.Now()
	snapshot := make([]models.CartLineItem, len(items))
	copy(snapshot, items)

	order := models.Order{
		OrderNumber:     NewOrderNumber(now),
		UserID:          userID,
		Items:           snapshot,
		ShippingAddress: shippingAddress,
		PaymentMethod:   method.Kind.String(),
		Totals:          totals,
		Status:          models.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if method.Kind == payment.GatewayRedirect {
		order.GatewayOrderID = conf.OrderID
		order.GatewayPaymentID = conf.PaymentID
		order.GatewaySignature = conf.Signature
	}

	if err := s.Orders.Insert(ctx, order); err != nil {
		return models.Order{}, &PersistenceError{Err: err}
	}

	if err := s.Cart.Clear(ctx, userID); err != nil {
		log.Printf("SubmitOrder: cart cleanup failed for user %s: %v", userID, err)
	}

	if s.Notify != nil {
		s.Notify(ctx, mq.OrderEvent{
			Type:        mq.OrderCreated,
			OrderNumber: order.OrderNumber,
			UserID:      userID,
			Status:      order.Status,
			Total:       order.Totals.Total,
			OccurredAt:  now,
		})
	}

	return order, nil
}
