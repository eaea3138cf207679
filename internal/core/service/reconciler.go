package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradewell/storefront/internal/core/domain"
	"github.com/tradewell/storefront/internal/port"
)

// ReconcileResult is the outcome of a successful cart validation: the
// guarded decrement instructions, the live items they were validated
// against, and the order total rounded to two places.
type ReconcileResult struct {
	Decrements []domain.StockDecrement
	Items      map[string]domain.Item
	Total      decimal.Decimal
}

// Reconciler validates a cart against live inventory. It performs one batch
// read and no writes.
type Reconciler struct {
	inventory port.InventoryRepository
}

func NewReconciler(inventory port.InventoryRepository) *Reconciler {
	return &Reconciler{inventory: inventory}
}

// Reconcile checks every cart line and returns either the full decrement
// plan or a CartError listing every problem found. Malformed lines are
// reported together before any inventory read happens.
func (r *Reconciler) Reconcile(ctx context.Context, lines []domain.CartLine) (*ReconcileResult, error) {
	if shapeErrs := validateShape(lines); len(shapeErrs) > 0 {
		return nil, &CartError{Problems: shapeErrs}
	}

	items, err := r.fetchDistinct(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}

	var (
		problems   []string
		conflict   bool
		decrements []domain.StockDecrement
		total      decimal.Decimal
	)

	for i, line := range lines {
		item, ok := items[line.ItemID]
		if !ok {
			problems = append(problems, fmt.Sprintf("line %d: item %q not found", i+1, line.ItemID))
			continue
		}
		if !line.Price.Equal(item.Price) {
			problems = append(problems, fmt.Sprintf("line %d: price mismatch for %q: sent %s, current %s",
				i+1, line.ItemID, line.Price.StringFixed(2), item.Price.StringFixed(2)))
			conflict = true
			continue
		}
		if item.Quantity < line.Quantity {
			problems = append(problems, fmt.Sprintf("line %d: insufficient stock for %q: requested %d, available %d",
				i+1, line.ItemID, line.Quantity, item.Quantity))
			conflict = true
			continue
		}

		decrements = append(decrements, domain.StockDecrement{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if len(problems) > 0 {
		return nil, &CartError{Problems: problems, Conflict: conflict}
	}

	return &ReconcileResult{
		Decrements: decrements,
		Items:      items,
		Total:      total.Round(2),
	}, nil
}

func (r *Reconciler) fetchDistinct(ctx context.Context, lines []domain.CartLine) (map[string]domain.Item, error) {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}

	fetched, err := r.inventory.GetItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make(map[string]domain.Item, len(fetched))
	for _, item := range fetched {
		items[item.ID] = item
	}
	return items, nil
}

func validateShape(lines []domain.CartLine) []string {
	if len(lines) == 0 {
		return []string{"cart is empty"}
	}

	var problems []string
	for i, line := range lines {
		if line.ItemID == "" {
			problems = append(problems, fmt.Sprintf("line %d: missing item id", i+1))
		}
		if line.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("line %d: quantity must be a positive integer", i+1))
		}
		if line.Price.LessThanOrEqual(decimal.Zero) {
			problems = append(problems, fmt.Sprintf("line %d: price must be positive", i+1))
		}
		if line.Name == "" {
			problems = append(problems, fmt.Sprintf("line %d: missing item name", i+1))
		}
	}
	return problems
}
