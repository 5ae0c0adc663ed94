package memory

import (
	"context"
	"sort"

	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
)

// --- TableRepository ---

func (s *Store) FindTableByID(ctx context.Context, tableID string) (*domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[tableID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &table, nil
}

func (s *Store) ListTables(ctx context.Context, branchID string) ([]domain.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Table, 0, len(s.tables))
	for _, table := range s.tables {
		if branchID != "" && table.BranchID != branchID {
			continue
		}
		out = append(out, table)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].TableID < out[j].TableID
	})
	return out, nil
}

func (s *Store) SaveTable(ctx context.Context, table domain.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tables[table.TableID]; exists {
		return apperrors.ErrDuplicate
	}
	s.tables[table.TableID] = table
	return nil
}

func (s *Store) UpdateTable(ctx context.Context, table domain.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[table.TableID]; !ok {
		return apperrors.ErrNotFound
	}
	s.tables[table.TableID] = table
	return nil
}

func (s *Store) DeleteTable(ctx context.Context, tableID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tables[tableID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.tables, tableID)
	return nil
}

// --- ReservationRepository ---

func (s *Store) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reservation, ok := s.reservations[reservationID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &reservation, nil
}

func (s *Store) ListReservations(ctx context.Context, branchID string) ([]domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Reservation, 0, len(s.reservations))
	for _, reservation := range s.reservations {
		if branchID != "" && reservation.BranchID != branchID {
			continue
		}
		out = append(out, reservation)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.Before(out[j].Time)
		}
		return out[i].ReservationID < out[j].ReservationID
	})
	return out, nil
}

func (s *Store) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reservations[reservation.ReservationID]; exists {
		return apperrors.ErrDuplicate
	}
	s.reservations[reservation.ReservationID] = reservation
	return nil
}

func (s *Store) UpdateReservation(ctx context.Context, reservation domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[reservation.ReservationID]; !ok {
		return apperrors.ErrNotFound
	}
	s.reservations[reservation.ReservationID] = reservation
	return nil
}

func (s *Store) DeleteReservation(ctx context.Context, reservationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[reservationID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.reservations, reservationID)
	return nil
}

// --- StaffRepository ---

func (s *Store) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.staff[staffID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &member, nil
}

func (s *Store) ListStaff(ctx context.Context, branchID string) ([]domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Staff, 0, len(s.staff))
	for _, member := range s.staff {
		if branchID != "" && member.BranchID != branchID {
			continue
		}
		out = append(out, member)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveStaff(ctx context.Context, member domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.staff[member.StaffID]; exists {
		return apperrors.ErrDuplicate
	}
	s.staff[member.StaffID] = member
	return nil
}

func (s *Store) UpdateStaff(ctx context.Context, member domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[member.StaffID]; !ok {
		return apperrors.ErrNotFound
	}
	s.staff[member.StaffID] = member
	return nil
}

func (s *Store) DeleteStaff(ctx context.Context, staffID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[staffID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.staff, staffID)
	return nil
}

// --- CustomerRepository ---

func (s *Store) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[customerID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &customer, nil
}

func (s *Store) ListCustomers(ctx context.Context, branchID string) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		if branchID != "" && customer.BranchID != branchID {
			continue
		}
		out = append(out, customer)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.customers[customer.CustomerID]; exists {
		return apperrors.ErrDuplicate
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *Store) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customer.CustomerID]; !ok {
		return apperrors.ErrNotFound
	}
	s.customers[customer.CustomerID] = customer
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[customerID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.customers, customerID)
	return nil
}

// --- MenuItemRepository ---

func (s *Store) FindMenuItemByID(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.menuItems[menuItemID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &item, nil
}

func (s *Store) ListMenuItems(ctx context.Context, branchID string) ([]domain.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MenuItem, 0, len(s.menuItems))
	for _, item := range s.menuItems {
		if branchID != "" && item.BranchID != branchID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) SaveMenuItem(ctx context.Context, item domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.menuItems[item.MenuItemID]; exists {
		return apperrors.ErrDuplicate
	}
	s.menuItems[item.MenuItemID] = item
	return nil
}

func (s *Store) UpdateMenuItem(ctx context.Context, item domain.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menuItems[item.MenuItemID]; !ok {
		return apperrors.ErrNotFound
	}
	s.menuItems[item.MenuItemID] = item
	return nil
}

func (s *Store) DeleteMenuItem(ctx context.Context, menuItemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menuItems[menuItemID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.menuItems, menuItemID)
	return nil
}

// --- OrderRepository ---

func (s *Store) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context, branchID string) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		if branchID != "" && order.BranchID != branchID {
			continue
		}
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].OrderID < out[j].OrderID
	})
	return out, nil
}

func (s *Store) SaveOrder(ctx context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.orders[order.OrderID]; exists {
		return apperrors.ErrDuplicate
	}
	s.orders[order.OrderID] = order
	return nil
}

func (s *Store) UpdateOrder(ctx context.Context, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.OrderID]; !ok {
		return apperrors.ErrNotFound
	}
	s.orders[order.OrderID] = order
	return nil
}

func (s *Store) DeleteOrder(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[orderID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.orders, orderID)
	return nil
}
