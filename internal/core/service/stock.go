package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tradewell/storefront/internal/core/domain"
	"github.com/tradewell/storefront/internal/port"
)

// StockService handles owner-initiated stock adjustments outside the
// purchase flow (restock, correction).
type StockService struct {
	inventory port.InventoryRepository
	audit     *AuditLogger
	logger    *slog.Logger
}

func NewStockService(inventory port.InventoryRepository, audit *AuditLogger, logger *slog.Logger) *StockService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StockService{inventory: inventory, audit: audit, logger: logger}
}

// Adjust applies a non-zero delta to an item's stock. The guard (resulting
// quantity stays non-negative) is evaluated atomically by the store, never
// as a read-then-write here. On success exactly one audit entry is emitted,
// best-effort.
func (s *StockService) Adjust(ctx context.Context, actorID, itemID string, delta int) (*domain.Item, error) {
	if delta == 0 {
		return nil, ErrInvalidDelta
	}

	matched, err := s.inventory.AdjustStock(ctx, itemID, delta)
	if err != nil {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}
	if !matched {
		// Second read only classifies the failure; the decision not to
		// mutate was already made by the guard.
		item, err := s.inventory.GetItem(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("classify adjust failure: %w", err)
		}
		if item == nil {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("item %q has %d in stock: %w", itemID, item.Quantity, ErrInsufficientStock)
	}

	item, err := s.inventory.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("read adjusted item: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	action := domain.AuditStockIncrease
	if delta < 0 {
		action = domain.AuditStockDecrease
	}
	payload, err := json.Marshal(domain.StockChangePayload{
		Item:        *item,
		Delta:       delta,
		NewQuantity: item.Quantity,
	})
	if err != nil {
		s.logger.Warn("failed to encode audit payload", "item_id", itemID, "error", err)
	} else {
		s.audit.Record(action, actorID, payload)
	}

	return item, nil
}
