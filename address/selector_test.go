package address

import (
	"errors"
	"testing"

	"velora/models"
)

func addr(id string, def bool) models.Address {
	return models.Address{AddressID: id, Label: "Home", Street: "12 MG Road",
		City: "Pune", State: "MH", PostalCode: "411001", Phone: "9999999999", IsDefault: def}
}

func TestNewSelectorPicksDefault(t *testing.T) {
	s := NewSelector([]models.Address{addr("a1", false), addr("a2", true), addr("a3", false)})
	got, ok := s.Selected()
	if !ok || got.AddressID != "a2" {
		t.Errorf("selected = %v ok=%v, want a2", got.AddressID, ok)
	}
}

func TestNewSelectorFallsBackToFirst(t *testing.T) {
	s := NewSelector([]models.Address{addr("a1", false), addr("a2", false)})
	got, ok := s.Selected()
	if !ok || got.AddressID != "a1" {
		t.Errorf("selected = %v ok=%v, want a1", got.AddressID, ok)
	}
}

func TestNewSelectorEmptyListUnset(t *testing.T) {
	s := NewSelector(nil)
	if _, ok := s.Selected(); ok {
		t.Error("expected no selection for empty list")
	}
}

func TestSelectUnknownID(t *testing.T) {
	s := NewSelector([]models.Address{addr("a1", true)})
	err := s.Select("nope")
	if !errors.Is(err, ErrUnknownAddress) {
		t.Errorf("err = %v, want ErrUnknownAddress", err)
	}
	if got, _ := s.Selected(); got.AddressID != "a1" {
		t.Errorf("failed select must not change selection, got %v", got.AddressID)
	}
}

func TestSelectKnownID(t *testing.T) {
	s := NewSelector([]models.Address{addr("a1", true), addr("a2", false)})
	if err := s.Select("a2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := s.Selected(); got.AddressID != "a2" {
		t.Errorf("selected = %v, want a2", got.AddressID)
	}
}

func TestAddAutoSelectsFirstAddress(t *testing.T) {
	s := NewSelector(nil)
	s.Add(addr("a1", false))
	got, ok := s.Selected()
	if !ok || got.AddressID != "a1" {
		t.Errorf("selected = %v ok=%v, want a1 auto-selected", got.AddressID, ok)
	}
}

func TestAddDefaultDemotesOthers(t *testing.T) {
	s := NewSelector([]models.Address{addr("a1", true), addr("a2", false)})
	s.Add(addr("a3", true))

	defaults := 0
	for _, a := range s.Addresses() {
		if a.IsDefault {
			defaults++
			if a.AddressID != "a3" {
				t.Errorf("wrong default %v, want a3", a.AddressID)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("defaults = %d, want exactly 1", defaults)
	}
}
