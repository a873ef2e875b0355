package pricing

import (
	"math"
	"testing"

	"velora/models"
)

var testCfg = Config{
	FreeShippingThreshold: 499,
	FlatShippingRate:      40,
	TaxRate:               0.08,
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func item(price float64, qty int) models.CartLineItem {
	return models.CartLineItem{ProductID: "p1", Name: "Linen Shirt", UnitPrice: price, Quantity: qty}
}

func TestComputeTotalsScenarioA(t *testing.T) {
	items := []models.CartLineItem{item(1659, 2)}

	got := ComputeTotals(items, testCfg, 0)

	if !almostEqual(got.Subtotal, 3318) {
		t.Errorf("subtotal = %v, want 3318", got.Subtotal)
	}
	if got.ShippingCost != 0 {
		t.Errorf("shipping = %v, want 0", got.ShippingCost)
	}
	if !almostEqual(got.Tax, 265.44) {
		t.Errorf("tax = %v, want 265.44", got.Tax)
	}
	if !almostEqual(got.Total, 3583.44) {
		t.Errorf("total = %v, want 3583.44", got.Total)
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	got := ComputeTotals(nil, testCfg, 0)
	if got.Subtotal != 0 || got.ShippingCost != 0 || got.Tax != 0 || got.Total != 0 {
		t.Errorf("empty cart totals = %+v, want all zero", got)
	}
}

func TestComputeTotalsDeterministic(t *testing.T) {
	items := []models.CartLineItem{item(1299, 1), item(349, 3)}
	first := ComputeTotals(items, testCfg, 100)
	second := ComputeTotals(items, testCfg, 100)
	if first != second {
		t.Errorf("two identical calls differ: %+v vs %+v", first, second)
	}
}

func TestComputeTotalsFreeShippingBoundary(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     float64
		wantShipping float64
	}{
		{"at threshold", 499, 0},
		{"one below threshold", 498, 40},
		{"above threshold", 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals([]models.CartLineItem{item(tt.subtotal, 1)}, testCfg, 0)
			if got.ShippingCost != tt.wantShipping {
				t.Errorf("shipping for subtotal %v = %v, want %v", tt.subtotal, got.ShippingCost, tt.wantShipping)
			}
		})
	}
}

func TestComputeTotalsDiscountClamp(t *testing.T) {
	items := []models.CartLineItem{item(100, 1)}

	got := ComputeTotals(items, testCfg, 100000)
	if got.Total != 0 {
		t.Errorf("total = %v, want clamp at 0", got.Total)
	}

	got = ComputeTotals(items, testCfg, -50)
	if got.Discount != 0 {
		t.Errorf("negative discount not normalized: %v", got.Discount)
	}
}

func TestComputeTotalsDiscountApplied(t *testing.T) {
	items := []models.CartLineItem{item(1000, 1)}
	got := ComputeTotals(items, testCfg, 200)

	want := 1000.0 + 0 + 80 - 200
	if !almostEqual(got.Total, want) {
		t.Errorf("total = %v, want %v", got.Total, want)
	}
}
