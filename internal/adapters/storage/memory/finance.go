package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
)

// --- BranchRepository ---

func (s *Store) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	branch, ok := s.branches[branchID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &branch, nil
}

func (s *Store) FindMainBranch(ctx context.Context) (*domain.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, branch := range s.branches {
		if branch.IsMain {
			return &branch, nil
		}
	}
	return nil, nil
}

func (s *Store) ListBranches(ctx context.Context, branchID string) ([]domain.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Branch, 0, len(s.branches))
	for _, branch := range s.branches {
		if branchID != "" && branch.BranchID != branchID {
			continue
		}
		out = append(out, branch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveBranch(ctx context.Context, branch domain.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.branches[branch.BranchID]; exists {
		return apperrors.ErrDuplicate
	}
	s.branches[branch.BranchID] = branch
	return nil
}

func (s *Store) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.branches[branch.BranchID]; !ok {
		return apperrors.ErrNotFound
	}
	s.branches[branch.BranchID] = branch
	return nil
}

func (s *Store) DeleteBranch(ctx context.Context, branchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.branches[branchID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.branches, branchID)
	return nil
}

// --- AccountRepository ---

func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.FinanceAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (s *Store) ListAccounts(ctx context.Context, branchID string) ([]domain.FinanceAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FinanceAccount, 0, len(s.accounts))
	for _, account := range s.accounts {
		if branchID != "" && account.BranchID != branchID {
			continue
		}
		out = append(out, account)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveAccount(ctx context.Context, account domain.FinanceAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.AccountID]; exists {
		return apperrors.ErrDuplicate
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.FinanceAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.accounts[account.AccountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	// Balance is derived; keep the stored value regardless of what the caller
	// passed in.
	account.Balance = current.Balance
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return apperrors.ErrNotFound
	}
	account.IsActive = false
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID
	s.accounts[accountID] = account
	return nil
}

// --- TransactionRepository ---

func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.FinanceTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (s *Store) ListTransactions(ctx context.Context, branchID string) ([]domain.FinanceTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FinanceTransaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		if branchID != "" && txn.BranchID != branchID {
			continue
		}
		out = append(out, txn)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].TransactionID < out[j].TransactionID
	})
	return out, nil
}

func (s *Store) SaveTransactionWithBalance(ctx context.Context, txn domain.FinanceTransaction, newBalance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[txn.AccountID]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	account.Balance = newBalance
	account.LastUpdatedAt = txn.CreatedAt
	account.LastUpdatedBy = txn.CreatedBy
	s.accounts[txn.AccountID] = account
	s.transactions[txn.TransactionID] = txn
	return nil
}

func (s *Store) DeleteTransactionWithBalance(ctx context.Context, transactionID, accountID string, newBalance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[transactionID]; !ok {
		return apperrors.ErrNotFound
	}
	account, ok := s.accounts[accountID]
	if !ok {
		return apperrors.ErrAccountNotFound
	}
	account.Balance = newBalance
	s.accounts[accountID] = account
	delete(s.transactions, transactionID)
	return nil
}

// --- DebtRepository ---

func (s *Store) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	debt, ok := s.debts[debtID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &debt, nil
}

func (s *Store) ListDebts(ctx context.Context, branchID string) ([]domain.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Debt, 0, len(s.debts))
	for _, debt := range s.debts {
		if branchID != "" && debt.BranchID != branchID {
			continue
		}
		out = append(out, debt)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].DebtID < out[j].DebtID
	})
	return out, nil
}

func (s *Store) SaveDebt(ctx context.Context, debt domain.Debt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.debts[debt.DebtID]; exists {
		return apperrors.ErrDuplicate
	}
	s.debts[debt.DebtID] = debt
	return nil
}

func (s *Store) UpdateDebt(ctx context.Context, debt domain.Debt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.debts[debt.DebtID]; !ok {
		return apperrors.ErrNotFound
	}
	s.debts[debt.DebtID] = debt
	return nil
}

func (s *Store) DeleteDebt(ctx context.Context, debtID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.debts[debtID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.debts, debtID)
	return nil
}

// --- PayrollRepository ---

func (s *Store) FindPayrollByID(ctx context.Context, payrollID string) (*domain.PayrollRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.payroll[payrollID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &record, nil
}

func (s *Store) ListPayroll(ctx context.Context, branchID string) ([]domain.PayrollRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PayrollRecord, 0, len(s.payroll))
	for _, record := range s.payroll {
		if branchID != "" && record.BranchID != branchID {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period < out[j].Period
		}
		return out[i].PayrollID < out[j].PayrollID
	})
	return out, nil
}

func (s *Store) SavePayroll(ctx context.Context, record domain.PayrollRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.payroll[record.PayrollID]; exists {
		return apperrors.ErrDuplicate
	}
	s.payroll[record.PayrollID] = record
	return nil
}

func (s *Store) UpdatePayroll(ctx context.Context, record domain.PayrollRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payroll[record.PayrollID]; !ok {
		return apperrors.ErrNotFound
	}
	s.payroll[record.PayrollID] = record
	return nil
}
