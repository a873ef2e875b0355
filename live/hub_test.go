package live

import (
	"encoding/json"
	"testing"
	"time"

	"velora/mq"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send: make(chan []byte, 10),
	}

	// register client
	hub.register <- client

	// broadcast an order event
	evt := mq.OrderEvent{Type: mq.OrderCreated, OrderNumber: "VL20260830TEST1234", Status: "pending", Total: 3583.44}
	hub.Publish(evt)

	select {
	case got := <-client.Send:
		var decoded mq.OrderEvent
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if decoded.OrderNumber != evt.OrderNumber || decoded.Type != mq.OrderCreated {
			t.Fatalf("expected %+v, got %+v", evt, decoded)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// zero-buffer channel with no reader: first broadcast drops the client
	client := &Client{Send: make(chan []byte)}
	hub.register <- client

	hub.Publish(mq.OrderEvent{Type: mq.OrderCreated, OrderNumber: "VL1"})

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed channel for slow client")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}
