package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateRequest  = errors.New("duplicate request")
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidDelta      = errors.New("quantity change must be a non-zero integer")

	// ErrStockConflict means a concurrent purchase won the race between
	// reconciliation and the guarded decrement. The caller may retry.
	ErrStockConflict = errors.New("stock changed concurrently, please retry")
)

// CartError carries the complete validation report for a cart: every
// per-line problem, never just the first. Conflict marks reports caused by
// concurrent state change (price mismatch, insufficient stock) as opposed to
// a malformed request.
type CartError struct {
	Problems []string
	Conflict bool
}

func (e *CartError) Error() string {
	return fmt.Sprintf("cart validation failed: %s", strings.Join(e.Problems, "; "))
}
