package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is a denormalized snapshot of an item at purchase time, so
// historical records stay stable if the catalog item is later edited or
// deleted.
type OrderLine struct {
	ItemID   string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Order is a completed purchase. Immutable once created; the same record is
// written to both the per-user ledger and the global sales ledger.
type Order struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	Lines     []OrderLine     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
