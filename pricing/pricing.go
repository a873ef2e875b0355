// Package pricing computes order totals from cart line items.
// Pure arithmetic, no I/O; the same inputs always yield the same totals.
package pricing

import (
	"velora/models"
	"velora/settings"
)

// Config carries the commercial parameters totals are computed from.
type Config struct {
	FreeShippingThreshold float64
	FlatShippingRate      float64
	TaxRate               float64
}

// FromStoreSettings maps the persisted store settings onto a pricing config.
func FromStoreSettings(s settings.StoreSettings) Config {
	return Config{
		FreeShippingThreshold: s.FreeShippingThreshold,
		FlatShippingRate:      s.FlatShippingRate,
		TaxRate:               s.TaxRate,
	}
}

// ComputeTotals derives the money breakdown for a set of line items.
//
// subtotal is the sum of unitPrice*quantity. Shipping is free at or above the
// threshold and flat below it; an empty cart ships nothing and costs nothing.
// Tax applies to the subtotal only. The discount comes from a validated
// coupon (0 when none); the grand total is clamped at zero so an oversized
// discount can never produce a negative charge.
func ComputeTotals(items []models.CartLineItem, cfg Config, discount float64) models.OrderTotals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}

	var shipping float64
	if len(items) > 0 && subtotal < cfg.FreeShippingThreshold {
		shipping = cfg.FlatShippingRate
	}

	tax := subtotal * cfg.TaxRate

	if discount < 0 {
		discount = 0
	}

	total := subtotal + shipping + tax - discount
	if total < 0 {
		total = 0
	}

	return models.OrderTotals{
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Tax:          tax,
		Discount:     discount,
		Total:        total,
	}
}
