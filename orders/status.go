package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"velora/db"
	"velora/models"
	"velora/mq"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// legalTransitions describes the admin-driven order lifecycle. Delivered
// and cancelled are terminal.
var legalTransitions = map[string][]string{
	models.OrderPending:    {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:    {models.OrderDelivered, models.OrderCancelled},
}

// CanTransition reports whether from → to is a legal status change.
func CanTransition(from, to string) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateOrderStatus applies an admin status change. Shipping requires a
// tracking number.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Status         string `json:"status"`
		TrackingNumber string `json:"trackingNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	orderNumber := ps.ByName("orderNumber")
	order, err := findOrder(ctx, orderNumber)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve order")
		return
	}

	if !CanTransition(order.Status, payload.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Cannot change status from "+order.Status+" to "+payload.Status)
		return
	}
	if payload.Status == models.OrderShipped && payload.TrackingNumber == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Tracking number required to mark shipped")
		return
	}

	update := bson.M{"status": payload.Status, "updatedAt": time.Now()}
	if payload.TrackingNumber != "" {
		update["trackingNumber"] = payload.TrackingNumber
	}

	if _, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderNumber": orderNumber}, bson.M{"$set": update}); err != nil {
		log.Println("UpdateOrderStatus error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not update order")
		return
	}

	mq.EmitOrderEvent(context.Background(), mq.OrderEvent{
		Type:        mq.OrderStatusChanged,
		OrderNumber: orderNumber,
		UserID:      order.UserID,
		Status:      payload.Status,
		Total:       order.Totals.Total,
	})

	order.Status = payload.Status
	if payload.TrackingNumber != "" {
		order.TrackingNumber = payload.TrackingNumber
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"order": order})
}
