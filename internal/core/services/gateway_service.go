package services

import (
	"context"
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

// gatewayService is the scoped CRUD surface for everything that is not a
// ledger-derived value. Derived fields (balances, quantities, debt status, net
// pay) are read-only here; the ledger service owns their writes.
type gatewayService struct {
	BaseService
	validate *validator.Validate
	repos    *portsrepo.RepositoryProvider
	bus      portssvc.EventBusSvc
	now      func() time.Time
}

// GatewayOption is a functional option for configuring the gateway service.
type GatewayOption func(*gatewayService)

// WithGatewayClock overrides the time source, used in tests.
func WithGatewayClock(now func() time.Time) GatewayOption {
	return func(s *gatewayService) {
		s.now = now
	}
}

// NewGatewayService creates the gateway service.
func NewGatewayService(repos *portsrepo.RepositoryProvider, bus portssvc.EventBusSvc, options ...GatewayOption) portssvc.GatewaySvcFacade {
	svc := &gatewayService{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		repos:    repos,
		bus:      bus,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.GatewaySvcFacade = (*gatewayService)(nil)

func (s *gatewayService) audit(session *domain.Session) domain.AuditFields {
	now := s.now()
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     session.SubjectID,
		LastUpdatedAt: now,
		LastUpdatedBy: session.SubjectID,
	}
}

func (s *gatewayService) publish(entityType domain.EntityType, entityID string, op domain.ChangeOp) {
	s.bus.Publish(domain.ChangeEvent{
		EntityType: entityType,
		EntityID:   entityID,
		Op:         op,
		At:         s.now().UTC(),
	})
}

// authorizeCreate validates the request struct and checks the target branch is
// inside the session scope and exists.
func (s *gatewayService) authorizeCreate(ctx context.Context, session *domain.Session, req any, branchID string) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	if err := AuthorizeBranch(session, branchID); err != nil {
		return err
	}
	if _, err := s.repos.Branches.FindBranchByID(ctx, branchID); err != nil {
		return err
	}
	return nil
}

// --- Generic listing ---

func (s *gatewayService) ListEntities(ctx context.Context, session *domain.Session, entityType domain.EntityType) ([]any, error) {
	switch entityType {
	case domain.EntityBranch:
		return collect(s.ListBranches(ctx, session))
	case domain.EntityAccount:
		return collect(s.ListAccounts(ctx, session))
	case domain.EntityTransaction:
		return collect(s.ListTransactions(ctx, session))
	case domain.EntityDebt:
		return collect(s.ListDebts(ctx, session))
	case domain.EntityPayroll:
		return collect(s.ListPayroll(ctx, session))
	case domain.EntityItem:
		return collect(s.ListItems(ctx, session))
	case domain.EntityTable:
		return collect(s.ListTables(ctx, session))
	case domain.EntityReservation:
		return collect(s.ListReservations(ctx, session))
	case domain.EntityStaff:
		return collect(s.ListStaff(ctx, session))
	case domain.EntityCustomer:
		return collect(s.ListCustomers(ctx, session))
	case domain.EntityMenuItem:
		return collect(s.ListMenuItems(ctx, session))
	case domain.EntityOrder:
		return collect(s.ListOrders(ctx, session))
	default:
		// Movements are listed per item, not as a flat collection.
		return nil, fmt.Errorf("%w: unsupported entity type %q", apperrors.ErrValidation, entityType)
	}
}

func collect[T any](items []T, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out, nil
}

// --- Branches ---

func (s *gatewayService) ListBranches(ctx context.Context, session *domain.Session) ([]domain.Branch, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Branches.ListBranches(ctx, scope.Filter())
}

func (s *gatewayService) AddBranch(ctx context.Context, session *domain.Session, req dto.CreateBranchRequest) (*domain.Branch, error) {
	if _, err := ResolveScope(session); err != nil {
		return nil, err
	}
	if session.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbiddenScope
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if req.IsMain {
		existing, err := s.repos.Branches.FindMainBranch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to look up main branch: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: a main branch already exists (%s)", apperrors.ErrValidation, existing.BranchID)
		}
	}

	branch := domain.Branch{
		BranchID:       uuid.NewString(),
		Name:           req.Name,
		Location:       req.Location,
		IsMain:         req.IsMain,
		OperatingHours: req.OperatingHours,
		Phone:          req.Phone,
		Email:          req.Email,
		AuditFields:    s.audit(session),
	}
	if err := s.repos.Branches.SaveBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to save branch: %w", err)
	}

	s.LogInfo(ctx, "Branch created", slog.String("branch_id", branch.BranchID))
	s.publish(domain.EntityBranch, branch.BranchID, domain.ChangeCreated)
	return &branch, nil
}

func (s *gatewayService) UpdateBranch(ctx context.Context, session *domain.Session, branchID string, req dto.UpdateBranchRequest) (*domain.Branch, error) {
	if _, err := ResolveScope(session); err != nil {
		return nil, err
	}
	if session.Role != domain.RoleAdmin {
		return nil, apperrors.ErrForbiddenScope
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	branch, err := s.repos.Branches.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Location != nil {
		branch.Location = *req.Location
	}
	if req.OperatingHours != nil {
		branch.OperatingHours = *req.OperatingHours
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	branch.LastUpdatedAt = s.now()
	branch.LastUpdatedBy = session.SubjectID

	if err := s.repos.Branches.UpdateBranch(ctx, *branch); err != nil {
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	s.publish(domain.EntityBranch, branch.BranchID, domain.ChangeUpdated)
	return branch, nil
}

func (s *gatewayService) DeleteBranch(ctx context.Context, session *domain.Session, branchID string) error {
	if _, err := ResolveScope(session); err != nil {
		return err
	}
	if session.Role != domain.RoleAdmin {
		return apperrors.ErrForbiddenScope
	}

	branch, err := s.repos.Branches.FindBranchByID(ctx, branchID)
	if err != nil {
		return err
	}
	if branch.IsMain {
		return fmt.Errorf("%w: the main branch cannot be deleted", apperrors.ErrValidation)
	}

	if err := s.repos.Branches.DeleteBranch(ctx, branchID); err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	s.LogInfo(ctx, "Branch deleted", slog.String("branch_id", branchID))
	s.publish(domain.EntityBranch, branchID, domain.ChangeDeleted)
	return nil
}

// --- Finance accounts and transactions (reads + account metadata writes) ---

func (s *gatewayService) ListAccounts(ctx context.Context, session *domain.Session) ([]domain.FinanceAccount, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Accounts.ListAccounts(ctx, scope.Filter())
}

func (s *gatewayService) ListTransactions(ctx context.Context, session *domain.Session) ([]domain.FinanceTransaction, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Transactions.ListTransactions(ctx, scope.Filter())
}

func (s *gatewayService) AddAccount(ctx context.Context, session *domain.Session, req dto.CreateAccountRequest) (*domain.FinanceAccount, error) {
	if err := s.authorizeCreate(ctx, session, req, req.BranchID); err != nil {
		return nil, err
	}

	account := domain.FinanceAccount{
		AccountID:    uuid.NewString(),
		BranchID:     req.BranchID,
		Name:         req.Name,
		AccountType:  req.AccountType,
		Balance:      decimal.Zero,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields:  s.audit(session),
	}
	if err := s.repos.Accounts.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	s.publish(domain.EntityAccount, account.AccountID, domain.ChangeCreated)
	return &account, nil
}

func (s *gatewayService) DeactivateAccount(ctx context.Context, session *domain.Session, accountID string) error {
	account, err := s.repos.Accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := AuthorizeBranch(session, account.BranchID); err != nil {
		return err
	}

	if err := s.repos.Accounts.DeactivateAccount(ctx, accountID, session.SubjectID); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	s.publish(domain.EntityAccount, accountID, domain.ChangeUpdated)
	return nil
}

// --- Debts ---

func (s *gatewayService) ListDebts(ctx context.Context, session *domain.Session) ([]domain.Debt, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Debts.ListDebts(ctx, scope.Filter())
}

func (s *gatewayService) AddDebt(ctx context.Context, session *domain.Session, req dto.CreateDebtRequest) (*domain.Debt, error) {
	if err := s.authorizeCreate(ctx, session, req, req.BranchID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if req.PaidAmount.IsNegative() || req.PaidAmount.GreaterThan(req.Amount) {
		return nil, apperrors.ErrInvalidAmount
	}

	debt := domain.Debt{
		DebtID:      uuid.NewString(),
		DebtType:    req.DebtType,
		Party:       req.Party,
		Amount:      req.Amount,
		PaidAmount:  req.PaidAmount,
		DueDate:     req.DueDate,
		BranchID:    req.BranchID,
		AuditFields: s.audit(session),
	}
	// Status and remaining amount are derived, never accepted from input.
	debt.Recalculate(s.now())

	if err := s.repos.Debts.SaveDebt(ctx, debt); err != nil {
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}
	s.LogInfo(ctx, "Debt recorded",
		slog.String("debt_id", debt.DebtID),
		slog.String("status", string(debt.Status)))
	s.publish(domain.EntityDebt, debt.DebtID, domain.ChangeCreated)
	return &debt, nil
}

func (s *gatewayService) DeleteDebt(ctx context.Context, session *domain.Session, debtID string) error {
	debt, err := s.repos.Debts.FindDebtByID(ctx, debtID)
	if err != nil {
		return err
	}
	if err := AuthorizeBranch(session, debt.BranchID); err != nil {
		return err
	}
	if err := s.repos.Debts.DeleteDebt(ctx, debtID); err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	s.publish(domain.EntityDebt, debtID, domain.ChangeDeleted)
	return nil
}

// --- Payroll ---

func (s *gatewayService) ListPayroll(ctx context.Context, session *domain.Session) ([]domain.PayrollRecord, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Payroll.ListPayroll(ctx, scope.Filter())
}

// --- Inventory ---

func (s *gatewayService) ListItems(ctx context.Context, session *domain.Session) ([]domain.InventoryItem, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Items.ListItems(ctx, scope.Filter())
}

func (s *gatewayService) ListMovements(ctx context.Context, session *domain.Session, itemID string) ([]domain.StockMovement, error) {
	item, err := s.repos.Items.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBranch(session, item.BranchID); err != nil {
		return nil, err
	}
	return s.repos.Movements.ListMovements(ctx, itemID)
}

func (s *gatewayService) AddItem(ctx context.Context, session *domain.Session, req dto.CreateItemRequest) (*domain.InventoryItem, error) {
	if err := s.authorizeCreate(ctx, session, req, req.BranchID); err != nil {
		return nil, err
	}
	if req.Quantity.IsNegative() || req.MinStock.IsNegative() {
		return nil, apperrors.ErrInvalidQuantity
	}

	item := domain.InventoryItem{
		ItemID:      uuid.NewString(),
		BranchID:    req.BranchID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
		Unit:        req.Unit,
		AuditFields: s.audit(session),
	}
	if err := s.repos.Items.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	s.LogInfo(ctx, "Inventory item created", slog.String("item_id", item.ItemID))
	s.publish(domain.EntityItem, item.ItemID, domain.ChangeCreated)
	return &item, nil
}

func (s *gatewayService) UpdateItem(ctx context.Context, session *domain.Session, itemID string, req dto.UpdateItemRequest) (*domain.InventoryItem, error) {
	item, err := s.repos.Items.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBranch(session, item.BranchID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.MinStock != nil {
		if req.MinStock.IsNegative() {
			return nil, apperrors.ErrInvalidQuantity
		}
		item.MinStock = *req.MinStock
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	item.LastUpdatedAt = s.now()
	item.LastUpdatedBy = session.SubjectID

	// The store keeps the derived quantity; this update cannot touch it.
	if err := s.repos.Items.UpdateItem(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	s.publish(domain.EntityItem, item.ItemID, domain.ChangeUpdated)
	return item, nil
}

func (s *gatewayService) DeleteItem(ctx context.Context, session *domain.Session, itemID string) error {
	item, err := s.repos.Items.FindItemByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := AuthorizeBranch(session, item.BranchID); err != nil {
		return err
	}
	if err := s.repos.Items.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	s.publish(domain.EntityItem, itemID, domain.ChangeDeleted)
	return nil
}

// --- Tables ---

func (s *gatewayService) ListTables(ctx context.Context, session *domain.Session) ([]domain.Table, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Tables.ListTables(ctx, scope.Filter())
}

func (s *gatewayService) AddTable(ctx context.Context, session *domain.Session, req dto.CreateTableRequest) (*domain.Table, error) {
	if err := s.authorizeCreate(ctx, session, req, req.BranchID); err != nil {
		return nil, err
	}

	table := domain.Table{
		TableID:     uuid.NewString(),
		BranchID:    req.BranchID,
		Number:      req.Number,
		Capacity:    req.Capacity,
		Status:      domain.TableAvailable,
		AuditFields: s.audit(session),
	}
	if err := s.repos.Tables.SaveTable(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to save table: %w", err)
	}
	s.publish(domain.EntityTable, table.TableID, domain.ChangeCreated)
	return &table, nil
}

func (s *gatewayService) SetTableStatus(ctx context.Context, session *domain.Session, tableID string, status domain.TableStatus) (*domain.Table, error) {
	table, err := s.repos.Tables.FindTableByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBranch(session, table.BranchID); err != nil {
		return nil, err
	}

	// Occupancy is observed on the floor; every transition is legal.
	table.Status = status
	table.LastUpdatedAt = s.now()
	table.LastUpdatedBy = session.SubjectID
	if err := s.repos.Tables.UpdateTable(ctx, *table); err != nil {
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	s.publish(domain.EntityTable, table.TableID, domain.ChangeUpdated)
	return table, nil
}

func (s *gatewayService) DeleteTable(ctx context.Context, session *domain.Session, tableID string) error {
	table, err := s.repos.Tables.FindTableByID(ctx, tableID)
	if err != nil {
		return err
	}
	if err := AuthorizeBranch(session, table.BranchID); err != nil {
		return err
	}
	if err := s.repos.Tables.DeleteTable(ctx, tableID); err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	s.publish(domain.EntityTable, tableID, domain.ChangeDeleted)
	return nil
}

// --- Reservations ---

func (s *gatewayService) ListReservations(ctx context.Context, session *domain.Session) ([]domain.Reservation, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Reservations.ListReservations(ctx, scope.Filter())
}

func (s *gatewayService) AddReservation(ctx context.Context, session *domain.Session, req dto.CreateReservationRequest) (*domain.Reservation, error) {
	if err := s.authorizeCreate(ctx, session, req, req.BranchID); err != nil {
		return nil, err
	}
	table, err := s.repos.Tables.FindTableByID(ctx, req.TableID)
	if err != nil {
		return nil, err
	}
	if table.BranchID != req.BranchID {
		return nil, fmt.Errorf("%w: table %s belongs to another branch", apperrors.ErrValidation, req.TableID)
	}

	reservation := domain.Reservation{
		ReservationID: uuid.NewString(),
		BranchID:      req.BranchID,
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		PartySize:     req.PartySize,
		Time:          req.Time,
		Status:        domain.ReservationPending,
		AuditFields:   s.audit(session),
	}
	if err := s.repos.Reservations.SaveReservation(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}
	s.LogInfo(ctx, "Reservation created", slog.String("reservation_id", reservation.ReservationID))
	s.publish(domain.EntityReservation, reservation.ReservationID, domain.ChangeCreated)
	return &reservation, nil
}

func (s *gatewayService) SetReservationStatus(ctx context.Context, session *domain.Session, reservationID string, status domain.ReservationStatus) (*domain.Reservation, error) {
	reservation, err := s.repos.Reservations.FindReservationByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBranch(session, reservation.BranchID); err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: reservation %s -> %s", apperrors.ErrInvalidTransition, reservation.Status, status)
	}

	reservation.Status = status
	reservation.LastUpdatedAt = s.now()
	reservation.LastUpdatedBy = session.SubjectID
	if err := s.repos.Reservations.UpdateReservation(ctx, *reservation); err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	s.publish(domain.EntityReservation, reservation.ReservationID, domain.ChangeUpdated)
	return reservation, nil
}

// --- Staff ---

func (s *gatewayService) ListStaff(ctx context.Context, session *domain.Session) ([]domain.Staff, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Staff.ListStaff(ctx, scope.Filter())
}

func (s *gatewayService) AddStaff(ctx context.Context, session *domain.Session, req dto.CreateStaffRequest) (*domain.Staff, error) {
	if err := s.authorizeCreate(ctx, session, req, req.BranchID); err != nil {
		return nil, err
	}
	if req.Salary.IsNegative() {
		return nil, apperrors.ErrInvalidAmount
	}

	staff := domain.Staff{
		StaffID:     uuid.NewString(),
		BranchID:    req.BranchID,
		Name:        req.Name,
		Position:    req.Position,
		Phone:       req.Phone,
		Email:       req.Email,
		Salary:      req.Salary,
		IsActive:    true,
		AuditFields: s.audit(session),
	}
	if err := s.repos.Staff.SaveStaff(ctx, staff); err != nil {
		return nil, fmt.Errorf("failed to save staff record: %w", err)
	}
	s.publish(domain.EntityStaff, staff.StaffID, domain.ChangeCreated)
	return &staff, nil
}

func (s *gatewayService) DeleteStaff(ctx context.Context, session *domain.Session, staffID string) error {
	staff, err := s.repos.Staff.FindStaffByID(ctx, staffID)
	if err != nil {
		return err
	}
	if err := AuthorizeBranch(session, staff.BranchID); err != nil {
		return err
	}
	if err := s.repos.Staff.DeleteStaff(ctx, staffID); err != nil {
		return fmt.Errorf("failed to delete staff record: %w", err)
	}
	s.publish(domain.EntityStaff, staffID, domain.ChangeDeleted)
	return nil
}

// --- Customers ---

func (s *gatewayService) ListCustomers(ctx context.Context, session *domain.Session) ([]domain.Customer, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Customers.ListCustomers(ctx, scope.Filter())
}

func (s *gatewayService) AddCustomer(ctx context.Context, session *domain.Session, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	if err := s.authorizeCreate(ctx, session, req, req.BranchID); err != nil {
		return nil, err
	}

	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		TotalSpent:  decimal.Zero,
		BranchID:    req.BranchID,
		AuditFields: s.audit(session),
	}
	if err := s.repos.Customers.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	s.publish(domain.EntityCustomer, customer.CustomerID, domain.ChangeCreated)
	return &customer, nil
}

// --- Menu ---

func (s *gatewayService) ListMenuItems(ctx context.Context, session *domain.Session) ([]domain.MenuItem, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.MenuItems.ListMenuItems(ctx, scope.Filter())
}

func (s *gatewayService) AddMenuItem(ctx context.Context, session *domain.Session, req dto.CreateMenuItemRequest) (*domain.MenuItem, error) {
	if err := s.authorizeCreate(ctx, session, req, req.BranchID); err != nil {
		return nil, err
	}
	if !req.Price.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	item := domain.MenuItem{
		MenuItemID:  uuid.NewString(),
		BranchID:    req.BranchID,
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		IsAvailable: true,
		AuditFields: s.audit(session),
	}
	if err := s.repos.MenuItems.SaveMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save menu item: %w", err)
	}
	s.publish(domain.EntityMenuItem, item.MenuItemID, domain.ChangeCreated)
	return &item, nil
}

func (s *gatewayService) DeleteMenuItem(ctx context.Context, session *domain.Session, menuItemID string) error {
	item, err := s.repos.MenuItems.FindMenuItemByID(ctx, menuItemID)
	if err != nil {
		return err
	}
	if err := AuthorizeBranch(session, item.BranchID); err != nil {
		return err
	}
	if err := s.repos.MenuItems.DeleteMenuItem(ctx, menuItemID); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	s.publish(domain.EntityMenuItem, menuItemID, domain.ChangeDeleted)
	return nil
}

// --- Orders ---

func (s *gatewayService) ListOrders(ctx context.Context, session *domain.Session) ([]domain.Order, error) {
	scope, err := ResolveScope(session)
	if err != nil {
		return nil, err
	}
	return s.repos.Orders.ListOrders(ctx, scope.Filter())
}

func (s *gatewayService) AddOrder(ctx context.Context, session *domain.Session, req dto.CreateOrderRequest) (*domain.Order, error) {
	if err := s.authorizeCreate(ctx, session, req, req.BranchID); err != nil {
		return nil, err
	}
	table, err := s.repos.Tables.FindTableByID(ctx, req.TableID)
	if err != nil {
		return nil, err
	}
	if table.BranchID != req.BranchID {
		return nil, fmt.Errorf("%w: table %s belongs to another branch", apperrors.ErrValidation, req.TableID)
	}

	lines := make([]domain.OrderLine, 0, len(req.Lines))
	for _, lineReq := range req.Lines {
		menuItem, err := s.repos.MenuItems.FindMenuItemByID(ctx, lineReq.MenuItemID)
		if err != nil {
			return nil, err
		}
		if menuItem.BranchID != req.BranchID {
			return nil, fmt.Errorf("%w: menu item %s belongs to another branch", apperrors.ErrValidation, lineReq.MenuItemID)
		}
		if !menuItem.IsAvailable {
			return nil, fmt.Errorf("%w: menu item %s is not available", apperrors.ErrValidation, menuItem.Name)
		}
		// Price and name are frozen into the line so later menu edits do not
		// rewrite order history.
		lines = append(lines, domain.OrderLine{
			MenuItemID: menuItem.MenuItemID,
			Name:       menuItem.Name,
			UnitPrice:  menuItem.Price,
			Quantity:   lineReq.Quantity,
		})
	}

	order := domain.Order{
		OrderID:     uuid.NewString(),
		BranchID:    req.BranchID,
		TableID:     req.TableID,
		Lines:       lines,
		Status:      domain.OrderOpen,
		AuditFields: s.audit(session),
	}
	order.RecalculateTotal()

	if err := s.repos.Orders.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	s.LogInfo(ctx, "Order opened",
		slog.String("order_id", order.OrderID),
		slog.String("total", order.Total.String()))
	s.publish(domain.EntityOrder, order.OrderID, domain.ChangeCreated)
	return &order, nil
}

func (s *gatewayService) SetOrderStatus(ctx context.Context, session *domain.Session, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.repos.Orders.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeBranch(session, order.BranchID); err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: order %s -> %s", apperrors.ErrInvalidTransition, order.Status, status)
	}

	order.Status = status
	order.LastUpdatedAt = s.now()
	order.LastUpdatedBy = session.SubjectID
	if err := s.repos.Orders.UpdateOrder(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	s.publish(domain.EntityOrder, order.OrderID, domain.ChangeUpdated)
	return order, nil
}
