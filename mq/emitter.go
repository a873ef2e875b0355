package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"velora/rdx"
)

const orderEventsChannel = "order-events"

// Event types published on the order channel.
const (
	OrderCreated       = "order_created"
	OrderStatusChanged = "order_status_changed"
)

// OrderEvent is an order lifecycle message broadcast to back-office listeners.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderNumber string    `json:"orderNumber"`
	UserID      string    `json:"userId"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// EmitOrderEvent publishes an order event to Redis. Failures are logged,
// never surfaced; events are advisory.
func EmitOrderEvent(ctx context.Context, evt OrderEvent) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}

	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[EmitOrderEvent] marshal error: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, orderEventsChannel, data).Err(); err != nil {
		log.Printf("[EmitOrderEvent] publish error: %v", err)
	}
}

// StartOrderEventWorker subscribes to the order channel and hands each event
// to sink. Intended to run as a goroutine for the lifetime of the process.
func StartOrderEventWorker(sink func(OrderEvent)) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, orderEventsChannel)
	ch := sub.Channel()

	log.Println("[OrderEventWorker] Listening for order events...")

	for msg := range ch {
		var evt OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			log.Printf("[OrderEventWorker] Failed to parse event: %v", err)
			continue
		}
		sink(evt)
	}
}
