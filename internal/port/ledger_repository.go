package port

import (
	"context"

	"github.com/tradewell/storefront/internal/core/domain"
)

type LedgerRepository interface {
	// AppendOrder writes the order to both the per-user ledger and the
	// global sales ledger. The two writes are one logical fact; a partial
	// outcome is surfaced as an error and never retried here.
	AppendOrder(ctx context.Context, order domain.Order) error
}
