package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tradewell/storefront/internal/core/domain"
)

// ErrLedgerDiverged means exactly one of the two ledger views took the
// write. The two views now disagree and need out-of-band reconciliation.
var ErrLedgerDiverged = errors.New("ledger views diverged")

// MySQLLedger persists completed orders into two views of the same record:
// user_orders (per-user history) and sales_history (global).
type MySQLLedger struct {
	db *sql.DB
}

func NewMySQLLedger(db *sql.DB) *MySQLLedger {
	return &MySQLLedger{db: db}
}

// AppendOrder writes the order into both views concurrently. Both failing
// is a plain store error; one failing is a divergence.
func (m *MySQLLedger) AppendOrder(ctx context.Context, order domain.Order) error {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, table := range []string{"user_orders", "sales_history"} {
		wg.Add(1)
		go func(i int, table string) {
			defer wg.Done()
			_, errs[i] = m.db.ExecContext(ctx, fmt.Sprintf(`
				INSERT INTO %s (id, user_id, username, items, total, created_at)
				VALUES (?, ?, ?, ?, ?, ?)`, table),
				order.ID, order.UserID, order.Username, lines,
				order.Total.StringFixed(2), order.CreatedAt,
			)
		}(i, table)
	}
	wg.Wait()

	userErr, salesErr := errs[0], errs[1]
	switch {
	case userErr == nil && salesErr == nil:
		return nil
	case userErr != nil && salesErr != nil:
		return fmt.Errorf("append order %s: %w", order.ID, userErr)
	case userErr != nil:
		return fmt.Errorf("order %s recorded in sales_history only: %w (%w)", order.ID, ErrLedgerDiverged, userErr)
	default:
		return fmt.Errorf("order %s recorded in user_orders only: %w (%w)", order.ID, ErrLedgerDiverged, salesErr)
	}
}
