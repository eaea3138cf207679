package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tradewell/storefront/internal/core/domain"
	"github.com/tradewell/storefront/internal/port"
)

// PurchaseService coordinates a purchase as one logical unit of work:
// validate the cart, apply the guarded decrements, record the order in both
// ledger views. The caller only ever sees full success with an order id or a
// failure with none.
type PurchaseService struct {
	reconciler *Reconciler
	inventory  port.InventoryRepository
	ledger     port.LedgerRepository
	cache      port.CacheRepository
	logger     *slog.Logger
}

func NewPurchaseService(
	reconciler *Reconciler,
	inventory port.InventoryRepository,
	ledger port.LedgerRepository,
	cache port.CacheRepository,
	logger *slog.Logger,
) *PurchaseService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PurchaseService{
		reconciler: reconciler,
		inventory:  inventory,
		ledger:     ledger,
		cache:      cache,
		logger:     logger,
	}
}

// Purchase validates the cart against live inventory, decrements stock, and
// records the order. Validation and conflict failures leave inventory
// untouched. A decrement-count mismatch or a ledger failure after stock was
// decremented is logged and surfaced without compensating writes.
func (s *PurchaseService) Purchase(ctx context.Context, requestID, userID, username string, lines []domain.CartLine) (string, error) {
	claimed, err := s.cache.ClaimRequest(ctx, requestID)
	if err != nil {
		return "", fmt.Errorf("idempotency check failed: %w", err)
	}
	if !claimed {
		return "", ErrDuplicateRequest
	}

	result, err := s.reconciler.Reconcile(ctx, lines)
	if err != nil {
		s.release(ctx, requestID)
		return "", err
	}

	batch, err := s.inventory.DecrementStock(ctx, result.Decrements)
	if err != nil {
		s.release(ctx, requestID)
		return "", fmt.Errorf("stock decrement failed: %w", err)
	}
	if batch.Matched != len(result.Decrements) {
		var unmatched []string
		for _, out := range batch.Outcomes {
			if !out.Matched {
				unmatched = append(unmatched, out.ItemID)
			}
		}
		// Some items were decremented and others were not. There is no
		// cross-item transaction; the partial decrement stands and must
		// be reconciled out of band.
		s.logger.Error("partial stock decrement, order aborted",
			"user_id", userID,
			"request_id", requestID,
			"matched", batch.Matched,
			"attempted", len(result.Decrements),
			"unmatched_items", unmatched,
		)
		s.release(ctx, requestID)
		return "", ErrStockConflict
	}

	order := buildOrder(userID, username, lines, result)
	if err := s.ledger.AppendOrder(ctx, order); err != nil {
		// Stock is already decremented; the order record is the only
		// durable trace of the purchase and it failed to land.
		s.logger.Error("order not recorded after stock decrement",
			"order_id", order.ID,
			"user_id", userID,
			"request_id", requestID,
			"error", err,
		)
		s.release(ctx, requestID)
		return "", fmt.Errorf("record order %s: %w", order.ID, err)
	}

	return order.ID, nil
}

func (s *PurchaseService) release(ctx context.Context, requestID string) {
	if err := s.cache.ReleaseRequest(ctx, requestID); err != nil {
		s.logger.Warn("failed to release idempotency key", "request_id", requestID, "error", err)
	}
}

func buildOrder(userID, username string, lines []domain.CartLine, result *ReconcileResult) domain.Order {
	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		item := result.Items[line.ItemID]
		orderLines = append(orderLines, domain.OrderLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: line.Quantity,
		})
	}

	return domain.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Lines:     orderLines,
		Total:     result.Total,
		CreatedAt: time.Now().UTC(),
	}
}
