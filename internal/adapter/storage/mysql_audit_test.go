package storage

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tradewell/storefront/internal/core/domain"
)

func TestAuditAppend(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	audit := NewMySQLAudit(db)

	entry := domain.AuditEntry{
		ID:        uuid.NewString(),
		Action:    domain.AuditStockDecrease,
		ActorID:   "owner-1",
		Payload:   json.RawMessage(`{"delta":-4,"new_quantity":6}`),
		CreatedAt: time.Now().UTC(),
	}

	if err := audit.Append(ctx, entry); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	var action, actorID string
	err := db.QueryRowContext(ctx,
		`SELECT action, actor_id FROM audit_log WHERE id = ?`, entry.ID,
	).Scan(&action, &actorID)
	if err != nil {
		t.Fatalf("query audit entry: %v", err)
	}
	if action != string(domain.AuditStockDecrease) {
		t.Errorf("expected action %s, got %s", domain.AuditStockDecrease, action)
	}
	if actorID != "owner-1" {
		t.Errorf("expected actor owner-1, got %s", actorID)
	}

	db.ExecContext(ctx, `DELETE FROM audit_log WHERE id = ?`, entry.ID)
}
