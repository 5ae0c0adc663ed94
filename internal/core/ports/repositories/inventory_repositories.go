package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tableside/backoffice/internal/core/domain"
)

// InventoryRepository manages inventory items. Quantities are never written
// here; they change only through the movement repository's compound operation.
type InventoryRepository interface {
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, branchID string) ([]domain.InventoryItem, error)
	SaveItem(ctx context.Context, item domain.InventoryItem) error
	UpdateItem(ctx context.Context, item domain.InventoryItem) error
	DeleteItem(ctx context.Context, itemID string) error
}

// MovementRepository manages the append-only stock movement log.
type MovementRepository interface {
	ListMovements(ctx context.Context, itemID string) ([]domain.StockMovement, error)

	// SaveMovementWithQuantity appends the movement and writes the new derived
	// quantity of its owning item atomically.
	SaveMovementWithQuantity(ctx context.Context, movement domain.StockMovement, newQuantity decimal.Decimal) error
}
