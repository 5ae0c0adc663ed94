package domain

import "github.com/shopspring/decimal"

// MenuItem is a sellable dish or drink at a branch.
type MenuItem struct {
	MenuItemID  string          `json:"menuItemID"`
	BranchID    string          `json:"branchID"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"isAvailable"`
	AuditFields
}

// OrderStatus is the lifecycle state of an order. Paid and cancelled are terminal.
type OrderStatus string

const (
	OrderOpen      OrderStatus = "OPEN"
	OrderServed    OrderStatus = "SERVED"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

// CanTransitionTo reports whether the order state machine permits moving from
// the current status to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderOpen:
		return next == OrderServed || next == OrderCancelled
	case OrderServed:
		return next == OrderPaid || next == OrderCancelled
	default:
		return false
	}
}

// OrderLine is a single menu item position on an order. UnitPrice is captured
// at order time so later menu price changes do not rewrite history.
type OrderLine struct {
	MenuItemID string          `json:"menuItemID"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
}

// Order is a guest order at a table.
type Order struct {
	OrderID  string          `json:"orderID"`
	BranchID string          `json:"branchID"`
	TableID  string          `json:"tableID"`
	Lines    []OrderLine     `json:"lines"`
	Total    decimal.Decimal `json:"total"`
	Status   OrderStatus     `json:"status"`
	AuditFields
}

// RecalculateTotal re-derives Total from the order lines.
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	o.Total = total
}
