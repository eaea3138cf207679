package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tradewell/storefront/internal/core/domain"
	"github.com/tradewell/storefront/internal/port"
)

// MySQLInventory is the durable inventory store. All mutations are guarded
// UPDATEs decided by RowsAffected; it never does read-modify-write.
type MySQLInventory struct {
	db *sql.DB
}

func NewMySQLInventory(db *sql.DB) *MySQLInventory {
	return &MySQLInventory{db: db}
}

func (m *MySQLInventory) GetItems(ctx context.Context, ids []string) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := m.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, price, quantity, category, description, created_at, updated_at
		FROM items WHERE id IN (%s)`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Quantity,
			&item.Category, &item.Description, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}

func (m *MySQLInventory) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	var item domain.Item
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, price, quantity, category, description, created_at, updated_at
		FROM items WHERE id = ?`, itemID,
	).Scan(&item.ID, &item.Name, &item.Price, &item.Quantity,
		&item.Category, &item.Description, &item.CreatedAt, &item.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}

	return &item, nil
}

// DecrementStock applies each instruction as "subtract N if current >= N".
// Guards are re-checked at mutation time; there is no cross-item
// transaction, only per-item atomicity.
func (m *MySQLInventory) DecrementStock(ctx context.Context, decs []domain.StockDecrement) (*port.BatchDecrementResult, error) {
	result := &port.BatchDecrementResult{
		Outcomes: make([]port.DecrementOutcome, 0, len(decs)),
	}

	for _, dec := range decs {
		res, err := m.db.ExecContext(ctx, `
			UPDATE items
			SET quantity = quantity - ?, updated_at = NOW()
			WHERE id = ? AND quantity >= ?`,
			dec.Quantity, dec.ItemID, dec.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("decrement stock for %s: %w", dec.ItemID, err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("decrement stock for %s: %w", dec.ItemID, err)
		}

		matched := rows > 0
		if matched {
			result.Matched++
		}
		result.Outcomes = append(result.Outcomes, port.DecrementOutcome{
			ItemID:  dec.ItemID,
			Matched: matched,
		})
	}

	return result, nil
}

func (m *MySQLInventory) AdjustStock(ctx context.Context, itemID string, delta int) (bool, error) {
	res, err := m.db.ExecContext(ctx, `
		UPDATE items
		SET quantity = quantity + ?, updated_at = NOW()
		WHERE id = ? AND quantity + ? >= 0`,
		delta, itemID, delta,
	)
	if err != nil {
		return false, fmt.Errorf("adjust stock for %s: %w", itemID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("adjust stock for %s: %w", itemID, err)
	}

	return rows > 0, nil
}
