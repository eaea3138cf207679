package service

import (
	"context"
	"errors"
	"sync"

	"github.com/tradewell/storefront/internal/core/domain"
	"github.com/tradewell/storefront/internal/port"
)

// mockInventory mirrors the store's guard semantics: every mutation is
// checked and applied under one lock, per item.
type mockInventory struct {
	mu             sync.Mutex
	items          map[string]domain.Item
	getErr         error
	refuseItems    map[string]bool // force unmatched decrements
	decrementCalls int
}

func newMockInventory(items ...domain.Item) *mockInventory {
	m := &mockInventory{
		items:       make(map[string]domain.Item),
		refuseItems: make(map[string]bool),
	}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

func (m *mockInventory) GetItems(ctx context.Context, ids []string) ([]domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	var out []domain.Item
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockInventory) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	item, ok := m.items[itemID]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (m *mockInventory) DecrementStock(ctx context.Context, decs []domain.StockDecrement) (*port.BatchDecrementResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decrementCalls++

	result := &port.BatchDecrementResult{}
	for _, dec := range decs {
		item, ok := m.items[dec.ItemID]
		matched := ok && !m.refuseItems[dec.ItemID] && item.Quantity >= dec.Quantity
		if matched {
			item.Quantity -= dec.Quantity
			m.items[dec.ItemID] = item
			result.Matched++
		}
		result.Outcomes = append(result.Outcomes, port.DecrementOutcome{
			ItemID:  dec.ItemID,
			Matched: matched,
		})
	}
	return result, nil
}

func (m *mockInventory) AdjustStock(ctx context.Context, itemID string, delta int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[itemID]
	if !ok || item.Quantity+delta < 0 {
		return false, nil
	}
	item.Quantity += delta
	m.items[itemID] = item
	return true, nil
}

func (m *mockInventory) quantity(itemID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[itemID].Quantity
}

type mockLedger struct {
	mu     sync.Mutex
	orders []domain.Order
	err    error
}

func (m *mockLedger) AppendOrder(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockLedger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type mockCache struct {
	mu      sync.Mutex
	claimed map[string]bool
}

func newMockCache() *mockCache {
	return &mockCache{claimed: make(map[string]bool)}
}

func (m *mockCache) ClaimRequest(ctx context.Context, requestID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimed[requestID] {
		return false, nil
	}
	m.claimed[requestID] = true
	return true, nil
}

func (m *mockCache) ReleaseRequest(ctx context.Context, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.claimed, requestID)
	return nil
}

type mockAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (m *mockAuditRepo) Append(ctx context.Context, entry domain.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepo) all() []domain.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AuditEntry(nil), m.entries...)
}

var errStoreDown = errors.New("store unreachable")
