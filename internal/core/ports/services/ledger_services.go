package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tableside/backoffice/internal/core/domain"
	"github.com/tableside/backoffice/internal/dto"
)

// LedgerSvcFacade guards the derived-value invariants: account balances equal
// the signed sum of posted transactions, item quantities the clamped sum of
// movements, debt remaining amounts the difference of amount and paid.
type LedgerSvcFacade interface {
	// PostFinanceTransaction appends a transaction and applies its signed
	// effect to the linked account balance as one unit.
	PostFinanceTransaction(ctx context.Context, session *domain.Session, req dto.PostTransactionRequest) (*domain.FinanceTransaction, error)

	// DeleteFinanceTransaction reverses a posted transaction: the account
	// balance afterwards equals what it would be had the transaction never
	// been posted. The inverse is arithmetic, not positional.
	DeleteFinanceTransaction(ctx context.Context, session *domain.Session, transactionID string) error

	// PostStockMovement records a movement and re-derives the item quantity,
	// clamped at a floor of zero. An over-withdrawal is still recorded; the
	// clamp is deliberate and silent.
	PostStockMovement(ctx context.Context, session *domain.Session, req dto.PostMovementRequest) (*domain.StockMovement, error)

	// RecordDebtPayment increases the paid amount and re-derives remaining
	// amount and status.
	RecordDebtPayment(ctx context.Context, session *domain.Session, debtID string, paidDelta decimal.Decimal) (*domain.Debt, error)

	// PostPayroll creates a payroll record with net pay derived once.
	PostPayroll(ctx context.Context, session *domain.Session, req dto.PostPayrollRequest) (*domain.PayrollRecord, error)

	// MarkPayrollPaid flips the record status; it never recomputes pay.
	MarkPayrollPaid(ctx context.Context, session *domain.Session, payrollID string) (*domain.PayrollRecord, error)

	// RefreshDebtStatuses re-derives every stored debt status so debts whose
	// due date passed read back as overdue. Returns the number of updates.
	// Called by the scheduler, not by presentation code.
	RefreshDebtStatuses(ctx context.Context) (int, error)
}
