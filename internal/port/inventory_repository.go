package port

import (
	"context"

	"github.com/tradewell/storefront/internal/core/domain"
)

// DecrementOutcome reports whether one guarded decrement matched its guard.
type DecrementOutcome struct {
	ItemID  string
	Matched bool
}

// BatchDecrementResult is the per-item outcome of a batch decrement. Matched
// less than the number of instructions means a concurrent mutation won the
// race for at least one item; the batch is not atomic across items.
type BatchDecrementResult struct {
	Outcomes []DecrementOutcome
	Matched  int
}

type InventoryRepository interface {
	// GetItems fetches the items for a set of ids in one round-trip.
	// Missing ids are simply absent from the result.
	GetItems(ctx context.Context, ids []string) ([]domain.Item, error)

	// GetItem retrieves a single item, nil if it does not exist.
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)

	// DecrementStock applies each instruction as an atomic
	// "subtract N if current >= N" against the stored value.
	DecrementStock(ctx context.Context, decs []domain.StockDecrement) (*BatchDecrementResult, error)

	// AdjustStock atomically adds delta to the item's quantity if the result
	// stays non-negative. Returns false when the guard did not match,
	// including when the item does not exist.
	AdjustStock(ctx context.Context, itemID string, delta int) (bool, error)
}
