package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem holds a derived quantity: the floor-clamped cumulative sum of
// all stock movements against this item. It is never negative.
type InventoryItem struct {
	ItemID   string          `json:"itemID"`
	BranchID string          `json:"branchID"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	MinStock decimal.Decimal `json:"minStock"`
	Unit     string          `json:"unit"` // e.g. "kg", "pcs"
	AuditFields
}

// BelowMinStock reports whether the item has fallen under its reorder level.
func (i InventoryItem) BelowMinStock() bool {
	return i.Quantity.LessThan(i.MinStock)
}

// MovementType indicates the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// SignedQuantity returns the effect of a movement of this type on an item
// quantity, before the floor clamp is applied.
func (t MovementType) SignedQuantity(quantity decimal.Decimal) decimal.Decimal {
	if t == MovementOut {
		return quantity.Neg()
	}
	return quantity
}

// StockMovement is append-only; each posting synchronously re-derives the
// owning item's quantity.
type StockMovement struct {
	MovementID   string          `json:"movementID"`
	ItemID       string          `json:"itemID"`
	MovementType MovementType    `json:"movementType"`
	Quantity     decimal.Decimal `json:"quantity"` // always positive
	Reason       string          `json:"reason"`
	Date         time.Time       `json:"date"`
	AuditFields
}
