package domain

import (
	"encoding/json"
	"time"
)

type AuditAction string

// The catalog kinds (delete/restore/edit) share the audit table but are
// emitted by catalog management, not by this engine.
const (
	AuditStockIncrease AuditAction = "stock_increase"
	AuditStockDecrease AuditAction = "stock_decrease"
	AuditItemDelete    AuditAction = "item_delete"
	AuditItemRestore   AuditAction = "item_restore"
	AuditItemEdit      AuditAction = "item_edit"
)

// AuditEntry is one append-only record of an inventory-affecting action.
type AuditEntry struct {
	ID        string          `json:"id"`
	Action    AuditAction     `json:"action"`
	ActorID   string          `json:"actor_id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// StockChangePayload is the payload for stock_increase/stock_decrease entries.
type StockChangePayload struct {
	Item        Item `json:"item"`
	Delta       int  `json:"delta"`
	NewQuantity int  `json:"new_quantity"`
}
