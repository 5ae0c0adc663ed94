package repositories

import (
	"context"

	"github.com/tableside/backoffice/internal/core/domain"
)

// TableRepository manages floor-plan tables.
type TableRepository interface {
	FindTableByID(ctx context.Context, tableID string) (*domain.Table, error)
	ListTables(ctx context.Context, branchID string) ([]domain.Table, error)
	SaveTable(ctx context.Context, table domain.Table) error
	UpdateTable(ctx context.Context, table domain.Table) error
	DeleteTable(ctx context.Context, tableID string) error
}

// ReservationRepository manages reservations.
type ReservationRepository interface {
	FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, branchID string) ([]domain.Reservation, error)
	SaveReservation(ctx context.Context, reservation domain.Reservation) error
	UpdateReservation(ctx context.Context, reservation domain.Reservation) error
	DeleteReservation(ctx context.Context, reservationID string) error
}

// StaffRepository manages staff records.
type StaffRepository interface {
	FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)
	ListStaff(ctx context.Context, branchID string) ([]domain.Staff, error)
	SaveStaff(ctx context.Context, staff domain.Staff) error
	UpdateStaff(ctx context.Context, staff domain.Staff) error
	DeleteStaff(ctx context.Context, staffID string) error
}

// CustomerRepository manages customer records.
type CustomerRepository interface {
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, branchID string) ([]domain.Customer, error)
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error
}

// MenuItemRepository manages menu items.
type MenuItemRepository interface {
	FindMenuItemByID(ctx context.Context, menuItemID string) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, branchID string) ([]domain.MenuItem, error)
	SaveMenuItem(ctx context.Context, item domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, menuItemID string) error
}

// OrderRepository manages orders.
type OrderRepository interface {
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, branchID string) ([]domain.Order, error)
	SaveOrder(ctx context.Context, order domain.Order) error
	UpdateOrder(ctx context.Context, order domain.Order) error
	DeleteOrder(ctx context.Context, orderID string) error
}
