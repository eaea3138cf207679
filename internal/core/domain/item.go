package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockDecrement is a single guarded decrement instruction: subtract Quantity
// from the item's stock only if the live stock is still >= Quantity.
type StockDecrement struct {
	ItemID   string
	Quantity int
}
