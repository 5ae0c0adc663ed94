package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a finance account.
type AccountType string

const (
	AccountCash  AccountType = "CASH"
	AccountBank  AccountType = "BANK"
	AccountOther AccountType = "OTHER"
)

// FinanceAccount holds a derived balance: it always equals the signed sum of
// all non-reversed transactions referencing this account.
type FinanceAccount struct {
	AccountID    string          `json:"accountID"`
	BranchID     string          `json:"branchID"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// TxnType indicates the direction of a finance transaction.
type TxnType string

const (
	TxnIncome  TxnType = "INCOME"
	TxnExpense TxnType = "EXPENSE"
)

// SignedAmount returns the effect of a transaction of this type on an account
// balance: income adds, expense subtracts.
func (t TxnType) SignedAmount(amount decimal.Decimal) decimal.Decimal {
	if t == TxnExpense {
		return amount.Neg()
	}
	return amount
}

// FinanceTransaction is immutable once posted, except for reversal (deletion),
// which exactly inverts its effect on the linked account balance.
type FinanceTransaction struct {
	TransactionID string          `json:"transactionID"`
	TxnType       TxnType         `json:"txnType"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"` // always positive
	AccountID     string          `json:"accountID"`
	BranchID      string          `json:"branchID"`
	Date          time.Time       `json:"date"`
	AuditFields
}

// DebtType indicates whether the business is owed or owes.
type DebtType string

const (
	DebtReceivable DebtType = "RECEIVABLE"
	DebtPayable    DebtType = "PAYABLE"
)

// DebtStatus is fully derived from the amounts and due date; callers never set
// it directly.
type DebtStatus string

const (
	DebtPending DebtStatus = "PENDING"
	DebtPartial DebtStatus = "PARTIAL"
	DebtPaid    DebtStatus = "PAID"
	DebtOverdue DebtStatus = "OVERDUE"
)

// Debt tracks a receivable or payable with a derived remaining amount and status.
type Debt struct {
	DebtID          string          `json:"debtID"`
	DebtType        DebtType        `json:"debtType"`
	Party           string          `json:"party"` // counterparty name
	Amount          decimal.Decimal `json:"amount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DueDate         time.Time       `json:"dueDate"`
	Status          DebtStatus      `json:"status"`
	BranchID        string          `json:"branchID"`
	AuditFields
}

// Recalculate re-derives RemainingAmount and Status from the source fields.
// Invariants: remaining = amount - paid; paid iff remaining is zero; overdue
// iff remaining > 0 and the due date is past.
func (d *Debt) Recalculate(now time.Time) {
	d.RemainingAmount = d.Amount.Sub(d.PaidAmount)
	switch {
	case d.RemainingAmount.IsZero():
		d.Status = DebtPaid
	case now.After(d.DueDate):
		d.Status = DebtOverdue
	case d.PaidAmount.IsPositive():
		d.Status = DebtPartial
	default:
		d.Status = DebtPending
	}
}

// PayrollStatus is the payment state of a payroll record.
type PayrollStatus string

const (
	PayrollPending PayrollStatus = "PENDING"
	PayrollPaid    PayrollStatus = "PAID"
)

// PayrollRecord stores NetPay computed once at creation
// (base + bonuses - deductions); it is never independently edited.
type PayrollRecord struct {
	PayrollID  string          `json:"payrollID"`
	StaffID    string          `json:"staffID"`
	BranchID   string          `json:"branchID"`
	Period     string          `json:"period"` // e.g. "2026-08"
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Bonuses    decimal.Decimal `json:"bonuses"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"netPay"`
	Status     PayrollStatus   `json:"status"`
	AuditFields
}
