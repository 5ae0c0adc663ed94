// Package memory implements every repository port on plain keyed collections.
// It is the authoritative dataset of the application: the entity model is
// transient by design and lives only for the process lifetime.
package memory

import (
	"sync"

	"github.com/tableside/backoffice/internal/core/domain"
	portsrepo "github.com/tableside/backoffice/internal/core/ports/repositories"
)

// Store is the in-memory entity store. One mutex guards all collections so
// compound record+derive writes are observed atomically and read-modify-write
// of derived values never interleaves.
type Store struct {
	mu sync.RWMutex

	subjects     map[string]domain.Subject
	resetTokens  map[string]domain.ResetToken
	branches     map[string]domain.Branch
	accounts     map[string]domain.FinanceAccount
	transactions map[string]domain.FinanceTransaction
	debts        map[string]domain.Debt
	payroll      map[string]domain.PayrollRecord
	items        map[string]domain.InventoryItem
	movements    map[string]domain.StockMovement
	tables       map[string]domain.Table
	reservations map[string]domain.Reservation
	staff        map[string]domain.Staff
	customers    map[string]domain.Customer
	menuItems    map[string]domain.MenuItem
	orders       map[string]domain.Order
}

// NewStore creates an empty entity store.
func NewStore() *Store {
	return &Store{
		subjects:     make(map[string]domain.Subject),
		resetTokens:  make(map[string]domain.ResetToken),
		branches:     make(map[string]domain.Branch),
		accounts:     make(map[string]domain.FinanceAccount),
		transactions: make(map[string]domain.FinanceTransaction),
		debts:        make(map[string]domain.Debt),
		payroll:      make(map[string]domain.PayrollRecord),
		items:        make(map[string]domain.InventoryItem),
		movements:    make(map[string]domain.StockMovement),
		tables:       make(map[string]domain.Table),
		reservations: make(map[string]domain.Reservation),
		staff:        make(map[string]domain.Staff),
		customers:    make(map[string]domain.Customer),
		menuItems:    make(map[string]domain.MenuItem),
		orders:       make(map[string]domain.Order),
	}
}

// Repositories returns a provider wiring every repository port to this store.
func (s *Store) Repositories() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Subjects:     s,
		ResetTokens:  s,
		Branches:     s,
		Accounts:     s,
		Transactions: s,
		Debts:        s,
		Payroll:      s,
		Items:        s,
		Movements:    s,
		Tables:       s,
		Reservations: s,
		Staff:        s,
		Customers:    s,
		MenuItems:    s,
		Orders:       s,
	}
}
