package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tradewell/storefront/internal/core/domain"
)

// MySQLAudit is the append-only audit table. Rows are never updated or
// deleted.
type MySQLAudit struct {
	db *sql.DB
}

func NewMySQLAudit(db *sql.DB) *MySQLAudit {
	return &MySQLAudit{db: db}
}

func (m *MySQLAudit) Append(ctx context.Context, entry domain.AuditEntry) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, action, actor_id, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, string(entry.Action), entry.ActorID, []byte(entry.Payload), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}
