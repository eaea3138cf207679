package port

import (
	"context"

	"github.com/tradewell/storefront/internal/core/domain"
)

type AuditRepository interface {
	// Append persists one audit entry. Entries are append-only.
	Append(ctx context.Context, entry domain.AuditEntry) error
}
