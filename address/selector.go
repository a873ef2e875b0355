package address

import (
	"errors"
	"fmt"

	"velora/models"
)

// ErrUnknownAddress is returned when a selection targets an id the user
// does not own.
var ErrUnknownAddress = errors.New("address not in user's list")

// Selector holds a user's saved addresses and the currently selected one
// during a checkout attempt.
type Selector struct {
	addresses []models.Address
	selected  string
}

// NewSelector initializes selection to the default address, falling back to
// the first address, or leaves it unset when the list is empty.
func NewSelector(addresses []models.Address) *Selector {
	s := &Selector{addresses: addresses}
	for _, a := range addresses {
		if a.IsDefault {
			s.selected = a.AddressID
			return s
		}
	}
	if len(addresses) > 0 {
		s.selected = addresses[0].AddressID
	}
	return s
}

// Select switches the chosen address; unknown ids are rejected.
func (s *Selector) Select(id string) error {
	for _, a := range s.addresses {
		if a.AddressID == id {
			s.selected = id
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownAddress, id)
}

// Add appends a newly created address and auto-selects it when the list
// was previously empty. When the new address is the default, the rest are
// demoted so at most one default exists.
func (s *Selector) Add(addr models.Address) {
	if addr.IsDefault {
		for i := range s.addresses {
			s.addresses[i].IsDefault = false
		}
	}
	wasEmpty := len(s.addresses) == 0
	s.addresses = append(s.addresses, addr)
	if wasEmpty {
		s.selected = addr.AddressID
	}
}

// Selected returns the chosen address, or ok=false when nothing is selected.
func (s *Selector) Selected() (models.Address, bool) {
	for _, a := range s.addresses {
		if a.AddressID == s.selected {
			return a, true
		}
	}
	return models.Address{}, false
}

// Addresses returns the current list.
func (s *Selector) Addresses() []models.Address {
	return s.addresses
}
