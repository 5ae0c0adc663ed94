package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tableside/backoffice/internal/core/domain"
)

// PostTransactionRequest posts an income or expense against an account.
// Amount positivity is checked by the ledger service, not the validator,
// because decimal zero values are not visible to struct tags.
type PostTransactionRequest struct {
	TxnType   domain.TxnType  `json:"txnType" validate:"required,oneof=INCOME EXPENSE"`
	Category  string          `json:"category" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"accountID" validate:"required"`
	Date      time.Time       `json:"date"`
}

// PostMovementRequest records a stock movement against an inventory item.
type PostMovementRequest struct {
	ItemID       string              `json:"itemID" validate:"required"`
	MovementType domain.MovementType `json:"movementType" validate:"required,oneof=IN OUT"`
	Quantity     decimal.Decimal     `json:"quantity"`
	Reason       string              `json:"reason"`
	Date         time.Time           `json:"date"`
}

// PostPayrollRequest creates a payroll record; net pay is derived once at
// creation and never edited afterwards.
type PostPayrollRequest struct {
	StaffID    string          `json:"staffID" validate:"required"`
	Period     string          `json:"period" validate:"required"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Bonuses    decimal.Decimal `json:"bonuses"`
	Deductions decimal.Decimal `json:"deductions"`
}
