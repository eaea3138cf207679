package domain

import "github.com/shopspring/decimal"

// CartLine is one client-supplied line of a purchase request. The echoed
// price and name are verification tokens checked against live inventory,
// never a source of truth. Cart lines are not persisted.
type CartLine struct {
	ItemID   string          `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Name     string          `json:"name"`
}
