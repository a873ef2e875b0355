package checkout

import (
	"errors"
	"fmt"
)

// Submission preconditions; each rejection maps to a distinct user-visible
// message at the HTTP boundary.
var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingAddress      = errors.New("no shipping address selected")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed")
)

// PersistenceError signals the order write itself failed; the client is
// told to retry since nothing was recorded.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
