package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
	portsrepo "github.com/tableside/backoffice/internal/core/ports/repositories"
	portssvc "github.com/tableside/backoffice/internal/core/ports/services"
	"github.com/tableside/backoffice/internal/dto"
)

// ledgerService owns every derived value: account balances, item quantities,
// debt remaining amounts and statuses, payroll net pay. Nothing else in the
// codebase writes those fields.
type ledgerService struct {
	BaseService
	validate     *validator.Validate
	accounts     portsrepo.AccountRepository
	transactions portsrepo.TransactionRepository
	debts        portsrepo.DebtRepository
	payroll      portsrepo.PayrollRepository
	items        portsrepo.InventoryRepository
	movements    portsrepo.MovementRepository
	staff        portsrepo.StaffRepository
	bus          portssvc.EventBusSvc
	now          func() time.Time
}

// LedgerOption is a functional option for configuring the ledger service.
type LedgerOption func(*ledgerService)

// WithLedgerClock overrides the time source, used in tests.
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// NewLedgerService creates the ledger service.
func NewLedgerService(repos *portsrepo.RepositoryProvider, bus portssvc.EventBusSvc, options ...LedgerOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		accounts:     repos.Accounts,
		transactions: repos.Transactions,
		debts:        repos.Debts,
		payroll:      repos.Payroll,
		items:        repos.Items,
		movements:    repos.Movements,
		staff:        repos.Staff,
		bus:          bus,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) PostFinanceTransaction(ctx context.Context, session *domain.Session, req dto.PostTransactionRequest) (*domain.FinanceTransaction, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	account, err := s.accounts.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if err := AuthorizeBranch(session, account.BranchID); err != nil {
		return nil, err
	}

	now := s.now()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	txn := domain.FinanceTransaction{
		TransactionID: uuid.NewString(),
		TxnType:       req.TxnType,
		Category:      req.Category,
		Amount:        req.Amount,
		AccountID:     account.AccountID,
		BranchID:      account.BranchID,
		Date:          date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     session.SubjectID,
			LastUpdatedAt: now,
			LastUpdatedBy: session.SubjectID,
		},
	}

	newBalance := account.Balance.Add(req.TxnType.SignedAmount(req.Amount))
	if err := s.transactions.SaveTransactionWithBalance(ctx, txn, newBalance); err != nil {
		return nil, fmt.Errorf("failed to post transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction posted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", account.AccountID),
		slog.String("new_balance", newBalance.String()))
	s.publish(domain.EntityTransaction, txn.TransactionID, domain.ChangeCreated)
	s.publish(domain.EntityAccount, account.AccountID, domain.ChangeUpdated)
	return &txn, nil
}

func (s *ledgerService) DeleteFinanceTransaction(ctx context.Context, session *domain.Session, transactionID string) error {
	txn, err := s.transactions.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := AuthorizeBranch(session, txn.BranchID); err != nil {
		return err
	}

	account, err := s.accounts.FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}

	// Arithmetic inverse: the balance ends where it would be had the
	// transaction never been posted, regardless of what came in between.
	newBalance := account.Balance.Sub(txn.TxnType.SignedAmount(txn.Amount))
	if err := s.transactions.DeleteTransactionWithBalance(ctx, transactionID, account.AccountID, newBalance); err != nil {
		return fmt.Errorf("failed to reverse transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction reversed",
		slog.String("transaction_id", transactionID),
		slog.String("new_balance", newBalance.String()))
	s.publish(domain.EntityTransaction, transactionID, domain.ChangeDeleted)
	s.publish(domain.EntityAccount, account.AccountID, domain.ChangeUpdated)
	return nil
}

func (s *ledgerService) PostStockMovement(ctx context.Context, session *domain.Session, req dto.PostMovementRequest) (*domain.StockMovement, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	if !req.Quantity.IsPositive() {
		return nil, apperrors.ErrInvalidQuantity
	}

	item, err := s.items.FindItemByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}
	if err := AuthorizeBranch(session, item.BranchID); err != nil {
		return nil, err
	}

	now := s.now()
	date := req.Date
	if date.IsZero() {
		date = now
	}

	movement := domain.StockMovement{
		MovementID:   uuid.NewString(),
		ItemID:       item.ItemID,
		MovementType: req.MovementType,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		Date:         date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     session.SubjectID,
			LastUpdatedAt: now,
			LastUpdatedBy: session.SubjectID,
		},
	}

	newQuantity := item.Quantity.Add(req.MovementType.SignedQuantity(req.Quantity))
	if newQuantity.IsNegative() {
		// Over-withdrawal: the movement is still recorded, the quantity floors
		// at zero.
		s.LogDebug(ctx, "Stock quantity clamped at zero",
			slog.String("item_id", item.ItemID),
			slog.String("unclamped", newQuantity.String()))
		newQuantity = decimal.Zero
	}
	if err := s.movements.SaveMovementWithQuantity(ctx, movement, newQuantity); err != nil {
		return nil, fmt.Errorf("failed to post movement: %w", err)
	}

	s.LogInfo(ctx, "Stock movement posted",
		slog.String("movement_id", movement.MovementID),
		slog.String("item_id", item.ItemID),
		slog.String("new_quantity", newQuantity.String()))
	s.publish(domain.EntityMovement, movement.MovementID, domain.ChangeCreated)
	s.publish(domain.EntityItem, item.ItemID, domain.ChangeUpdated)
	return &movement, nil
}

func (s *ledgerService) RecordDebtPayment(ctx context.Context, session *domain.Session, debtID string, paidDelta decimal.Decimal) (*domain.Debt, error) {
	if !paidDelta.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	debt, err := s.debts.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBranch(session, debt.BranchID); err != nil {
		return nil, err
	}

	if paidDelta.GreaterThan(debt.RemainingAmount) {
		return nil, apperrors.ErrOverPayment
	}

	now := s.now()
	debt.PaidAmount = debt.PaidAmount.Add(paidDelta)
	debt.Recalculate(now)
	debt.LastUpdatedAt = now
	debt.LastUpdatedBy = session.SubjectID

	if err := s.debts.UpdateDebt(ctx, *debt); err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	s.LogInfo(ctx, "Debt payment recorded",
		slog.String("debt_id", debt.DebtID),
		slog.String("remaining", debt.RemainingAmount.String()),
		slog.String("status", string(debt.Status)))
	s.publish(domain.EntityDebt, debt.DebtID, domain.ChangeUpdated)
	return debt, nil
}

func (s *ledgerService) PostPayroll(ctx context.Context, session *domain.Session, req dto.PostPayrollRequest) (*domain.PayrollRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	if req.BaseSalary.IsNegative() || req.Bonuses.IsNegative() || req.Deductions.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}

	staff, err := s.staff.FindStaffByID(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBranch(session, staff.BranchID); err != nil {
		return nil, err
	}

	now := s.now()
	record := domain.PayrollRecord{
		PayrollID:  uuid.NewString(),
		StaffID:    staff.StaffID,
		BranchID:   staff.BranchID,
		Period:     req.Period,
		BaseSalary: req.BaseSalary,
		Bonuses:    req.Bonuses,
		Deductions: req.Deductions,
		// Derived once here; later edits to staff salary never touch it.
		NetPay: req.BaseSalary.Add(req.Bonuses).Sub(req.Deductions),
		Status: domain.PayrollPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     session.SubjectID,
			LastUpdatedAt: now,
			LastUpdatedBy: session.SubjectID,
		},
	}

	if err := s.payroll.SavePayroll(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save payroll record: %w", err)
	}

	s.LogInfo(ctx, "Payroll posted",
		slog.String("payroll_id", record.PayrollID),
		slog.String("staff_id", staff.StaffID),
		slog.String("net_pay", record.NetPay.String()))
	s.publish(domain.EntityPayroll, record.PayrollID, domain.ChangeCreated)
	return &record, nil
}

func (s *ledgerService) MarkPayrollPaid(ctx context.Context, session *domain.Session, payrollID string) (*domain.PayrollRecord, error) {
	record, err := s.payroll.FindPayrollByID(ctx, payrollID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBranch(session, record.BranchID); err != nil {
		return nil, err
	}
	if record.Status == domain.PayrollPaid {
		return record, nil
	}

	record.Status = domain.PayrollPaid
	record.LastUpdatedAt = s.now()
	record.LastUpdatedBy = session.SubjectID
	if err := s.payroll.UpdatePayroll(ctx, *record); err != nil {
		return nil, fmt.Errorf("failed to update payroll record: %w", err)
	}

	s.LogInfo(ctx, "Payroll marked paid", slog.String("payroll_id", record.PayrollID))
	s.publish(domain.EntityPayroll, record.PayrollID, domain.ChangeUpdated)
	return record, nil
}

func (s *ledgerService) RefreshDebtStatuses(ctx context.Context) (int, error) {
	debts, err := s.debts.ListDebts(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("failed to list debts: %w", err)
	}

	now := s.now()
	updated := 0
	for i := range debts {
		debt := debts[i]
		before := debt.Status
		debt.Recalculate(now)
		if debt.Status == before {
			continue
		}
		debt.LastUpdatedAt = now
		if err := s.debts.UpdateDebt(ctx, debt); err != nil {
			return updated, fmt.Errorf("failed to update debt %s: %w", debt.DebtID, err)
		}
		s.publish(domain.EntityDebt, debt.DebtID, domain.ChangeUpdated)
		updated++
	}

	if updated > 0 {
		s.LogInfo(ctx, "Debt statuses refreshed", slog.Int("updated", updated))
	}
	return updated, nil
}

func (s *ledgerService) publish(entityType domain.EntityType, entityID string, op domain.ChangeOp) {
	s.bus.Publish(domain.ChangeEvent{
		EntityType: entityType,
		EntityID:   entityID,
		Op:         op,
		At:         s.now().UTC(),
	})
}
