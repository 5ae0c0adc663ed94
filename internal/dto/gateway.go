package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tableside/backoffice/internal/core/domain"
)

// CreateBranchRequest creates a branch. Only admins manage branches.
type CreateBranchRequest struct {
	Name           string `json:"name" validate:"required"`
	Location       string `json:"location" validate:"required"`
	IsMain         bool   `json:"isMain"`
	OperatingHours string `json:"operatingHours"`
	Phone          string `json:"phone"`
	Email          string `json:"email" validate:"omitempty,email"`
}

// UpdateBranchRequest updates mutable branch details.
type UpdateBranchRequest struct {
	Name           *string `json:"name,omitempty"`
	Location       *string `json:"location,omitempty"`
	OperatingHours *string `json:"operatingHours,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
}

// CreateAccountRequest creates a finance account. Balance always starts at
// zero; opening balances are posted as regular transactions so the balance
// invariant holds from the first write.
type CreateAccountRequest struct {
	BranchID     string             `json:"branchID" validate:"required"`
	Name         string             `json:"name" validate:"required"`
	AccountType  domain.AccountType `json:"accountType" validate:"required,oneof=CASH BANK OTHER"`
	CurrencyCode string             `json:"currencyCode" validate:"required,len=3"`
}

// CreateDebtRequest records a receivable or payable. Remaining amount and
// status are derived at creation.
type CreateDebtRequest struct {
	BranchID   string          `json:"branchID" validate:"required"`
	DebtType   domain.DebtType `json:"debtType" validate:"required,oneof=RECEIVABLE PAYABLE"`
	Party      string          `json:"party" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	DueDate    time.Time       `json:"dueDate"`
}

// CreateItemRequest creates an inventory item with an optional opening quantity
// from the stock count.
type CreateItemRequest struct {
	BranchID string          `json:"branchID" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	MinStock decimal.Decimal `json:"minStock"`
	Unit     string          `json:"unit" validate:"required"`
}

// UpdateItemRequest updates item metadata; quantity is excluded on purpose,
// it only moves through stock movements.
type UpdateItemRequest struct {
	Name     *string          `json:"name,omitempty"`
	MinStock *decimal.Decimal `json:"minStock,omitempty"`
	Unit     *string          `json:"unit,omitempty"`
}

// CreateTableRequest adds a table to the floor plan.
type CreateTableRequest struct {
	BranchID string `json:"branchID" validate:"required"`
	Number   int    `json:"number" validate:"required,min=1"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

// CreateReservationRequest books a table; reservations always start pending.
type CreateReservationRequest struct {
	BranchID     string    `json:"branchID" validate:"required"`
	TableID      string    `json:"tableID" validate:"required"`
	CustomerName string    `json:"customerName" validate:"required"`
	PartySize    int       `json:"partySize" validate:"required,min=1"`
	Time         time.Time `json:"time"`
}

// CreateStaffRequest adds an employee record.
type CreateStaffRequest struct {
	BranchID string          `json:"branchID" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Position string          `json:"position" validate:"required"`
	Phone    string          `json:"phone"`
	Email    string          `json:"email" validate:"omitempty,email"`
	Salary   decimal.Decimal `json:"salary"`
}

// CreateCustomerRequest adds a guest record.
type CreateCustomerRequest struct {
	BranchID string `json:"branchID" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// CreateMenuItemRequest adds a dish or drink to a branch menu.
type CreateMenuItemRequest struct {
	BranchID string          `json:"branchID" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Price    decimal.Decimal `json:"price"`
}

// OrderLineRequest is one position of a new order.
type OrderLineRequest struct {
	MenuItemID string `json:"menuItemID" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest opens an order at a table. Line prices are captured from
// the menu at creation and the total derived from them.
type CreateOrderRequest struct {
	BranchID string             `json:"branchID" validate:"required"`
	TableID  string             `json:"tableID" validate:"required"`
	Lines    []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}
