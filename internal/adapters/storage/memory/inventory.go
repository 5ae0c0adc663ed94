package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
)

// --- InventoryRepository ---

func (s *Store) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[itemID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &item, nil
}

func (s *Store) ListItems(ctx context.Context, branchID string) ([]domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		if branchID != "" && item.BranchID != branchID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.ItemID]; exists {
		return apperrors.ErrDuplicate
	}
	s.items[item.ItemID] = item
	return nil
}

func (s *Store) UpdateItem(ctx context.Context, item domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.items[item.ItemID]
	if !ok {
		return apperrors.ErrNotFound
	}
	// Quantity is derived; keep the stored value.
	item.Quantity = current.Quantity
	s.items[item.ItemID] = item
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[itemID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.items, itemID)
	return nil
}

// --- MovementRepository ---

func (s *Store) ListMovements(ctx context.Context, itemID string) ([]domain.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StockMovement, 0)
	for _, movement := range s.movements {
		if itemID != "" && movement.ItemID != itemID {
			continue
		}
		out = append(out, movement)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].MovementID < out[j].MovementID
	})
	return out, nil
}

func (s *Store) SaveMovementWithQuantity(ctx context.Context, movement domain.StockMovement, newQuantity decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[movement.ItemID]
	if !ok {
		return apperrors.ErrItemNotFound
	}
	item.Quantity = newQuantity
	item.LastUpdatedAt = movement.CreatedAt
	item.LastUpdatedBy = movement.CreatedBy
	s.items[movement.ItemID] = item
	s.movements[movement.MovementID] = movement
	return nil
}
