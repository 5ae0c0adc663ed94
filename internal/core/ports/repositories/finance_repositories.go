package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tableside/backoffice/internal/core/domain"
)

// BranchRepository manages branch records.
type BranchRepository interface {
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// FindMainBranch returns the branch marked main, or nil when none exists.
	FindMainBranch(ctx context.Context) (*domain.Branch, error)

	// ListBranches returns all branches when branchID is empty, otherwise the
	// single matching branch.
	ListBranches(ctx context.Context, branchID string) ([]domain.Branch, error)

	SaveBranch(ctx context.Context, branch domain.Branch) error
	UpdateBranch(ctx context.Context, branch domain.Branch) error
	DeleteBranch(ctx context.Context, branchID string) error
}

// AccountReader defines read operations for finance accounts.
type AccountReader interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.FinanceAccount, error)

	// ListAccounts returns accounts, filtered to one branch when branchID is
	// non-empty.
	ListAccounts(ctx context.Context, branchID string) ([]domain.FinanceAccount, error)
}

// AccountWriter defines write operations for finance accounts. Balances are
// never written here; they change only through the transaction repository's
// compound operations.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.FinanceAccount) error
	UpdateAccount(ctx context.Context, account domain.FinanceAccount) error
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountRepository combines account reads and writes.
type AccountRepository interface {
	AccountReader
	AccountWriter
}

// TransactionRepository manages finance transactions. The compound operations
// apply the transaction record and the derived account balance as one unit: a
// caller observing the store never sees one without the other.
type TransactionRepository interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinanceTransaction, error)
	ListTransactions(ctx context.Context, branchID string) ([]domain.FinanceTransaction, error)

	// SaveTransactionWithBalance appends the transaction and writes the new
	// balance of its linked account atomically.
	SaveTransactionWithBalance(ctx context.Context, txn domain.FinanceTransaction, newBalance decimal.Decimal) error

	// DeleteTransactionWithBalance removes the transaction and writes the new
	// balance of the account atomically.
	DeleteTransactionWithBalance(ctx context.Context, transactionID, accountID string, newBalance decimal.Decimal) error
}

// DebtRepository manages debts.
type DebtRepository interface {
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)
	ListDebts(ctx context.Context, branchID string) ([]domain.Debt, error)
	SaveDebt(ctx context.Context, debt domain.Debt) error
	UpdateDebt(ctx context.Context, debt domain.Debt) error
	DeleteDebt(ctx context.Context, debtID string) error
}

// PayrollRepository manages payroll records.
type PayrollRepository interface {
	FindPayrollByID(ctx context.Context, payrollID string) (*domain.PayrollRecord, error)
	ListPayroll(ctx context.Context, branchID string) ([]domain.PayrollRecord, error)
	SavePayroll(ctx context.Context, record domain.PayrollRecord) error
	UpdatePayroll(ctx context.Context, record domain.PayrollRecord) error
}
