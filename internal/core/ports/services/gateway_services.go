package services

import (
	"context"

	"github.com/tableside/backoffice/internal/core/domain"
	"github.com/tableside/backoffice/internal/dto"
)

// GatewaySvcFacade is the mutation and query surface for every entity that is
// not ledger-derived. Each operation resolves the session's branch scope
// before touching the store and emits a change event on success.
type GatewaySvcFacade interface {
	// ListEntities returns the scope-filtered collection for the entity type.
	// Typed accessors below are preferred inside the codebase; this generic
	// form exists for table-driven consumers such as dashboards.
	ListEntities(ctx context.Context, session *domain.Session, entityType domain.EntityType) ([]any, error)

	ListBranches(ctx context.Context, session *domain.Session) ([]domain.Branch, error)
	AddBranch(ctx context.Context, session *domain.Session, req dto.CreateBranchRequest) (*domain.Branch, error)
	UpdateBranch(ctx context.Context, session *domain.Session, branchID string, req dto.UpdateBranchRequest) (*domain.Branch, error)
	// DeleteBranch refuses to delete the branch marked main.
	DeleteBranch(ctx context.Context, session *domain.Session, branchID string) error

	ListAccounts(ctx context.Context, session *domain.Session) ([]domain.FinanceAccount, error)
	ListTransactions(ctx context.Context, session *domain.Session) ([]domain.FinanceTransaction, error)
	AddAccount(ctx context.Context, session *domain.Session, req dto.CreateAccountRequest) (*domain.FinanceAccount, error)
	DeactivateAccount(ctx context.Context, session *domain.Session, accountID string) error

	ListDebts(ctx context.Context, session *domain.Session) ([]domain.Debt, error)
	AddDebt(ctx context.Context, session *domain.Session, req dto.CreateDebtRequest) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, session *domain.Session, debtID string) error

	ListPayroll(ctx context.Context, session *domain.Session) ([]domain.PayrollRecord, error)

	ListItems(ctx context.Context, session *domain.Session) ([]domain.InventoryItem, error)
	ListMovements(ctx context.Context, session *domain.Session, itemID string) ([]domain.StockMovement, error)
	AddItem(ctx context.Context, session *domain.Session, req dto.CreateItemRequest) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, session *domain.Session, itemID string, req dto.UpdateItemRequest) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, session *domain.Session, itemID string) error

	ListTables(ctx context.Context, session *domain.Session) ([]domain.Table, error)
	AddTable(ctx context.Context, session *domain.Session, req dto.CreateTableRequest) (*domain.Table, error)
	// SetTableStatus accepts any transition; occupancy is staff-observed.
	SetTableStatus(ctx context.Context, session *domain.Session, tableID string, status domain.TableStatus) (*domain.Table, error)
	DeleteTable(ctx context.Context, session *domain.Session, tableID string) error

	ListReservations(ctx context.Context, session *domain.Session) ([]domain.Reservation, error)
	AddReservation(ctx context.Context, session *domain.Session, req dto.CreateReservationRequest) (*domain.Reservation, error)
	// SetReservationStatus rejects transitions out of terminal states.
	SetReservationStatus(ctx context.Context, session *domain.Session, reservationID string, status domain.ReservationStatus) (*domain.Reservation, error)

	ListStaff(ctx context.Context, session *domain.Session) ([]domain.Staff, error)
	AddStaff(ctx context.Context, session *domain.Session, req dto.CreateStaffRequest) (*domain.Staff, error)
	DeleteStaff(ctx context.Context, session *domain.Session, staffID string) error

	ListCustomers(ctx context.Context, session *domain.Session) ([]domain.Customer, error)
	AddCustomer(ctx context.Context, session *domain.Session, req dto.CreateCustomerRequest) (*domain.Customer, error)

	ListMenuItems(ctx context.Context, session *domain.Session) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, session *domain.Session, req dto.CreateMenuItemRequest) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, session *domain.Session, menuItemID string) error

	ListOrders(ctx context.Context, session *domain.Session) ([]domain.Order, error)
	AddOrder(ctx context.Context, session *domain.Session, req dto.CreateOrderRequest) (*domain.Order, error)
	// SetOrderStatus rejects transitions out of terminal states.
	SetOrderStatus(ctx context.Context, session *domain.Session, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

// EventBusSvc is the explicit subscription channel change events flow over.
type EventBusSvc interface {
	// Publish delivers the event to every live subscriber without blocking the
	// mutator; a subscriber with a full buffer misses the event.
	Publish(event domain.ChangeEvent)

	// Subscribe registers a buffered subscriber. The returned cancel func
	// releases it and closes the channel.
	Subscribe(buffer int) (<-chan domain.ChangeEvent, func())
}
