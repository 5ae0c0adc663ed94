// Package repositories defines the persistence ports of the core. The entity
// dataset lives in the in-memory adapter; sessions and branch preferences have
// a durable adapter as well.
package repositories

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	Subjects     SubjectRepository
	ResetTokens  ResetTokenRepository
	Branches     BranchRepository
	Accounts     AccountRepository
	Transactions TransactionRepository
	Debts        DebtRepository
	Payroll      PayrollRepository
	Items        InventoryRepository
	Movements    MovementRepository
	Tables       TableRepository
	Reservations ReservationRepository
	Staff        StaffRepository
	Customers    CustomerRepository
	MenuItems    MenuItemRepository
	Orders       OrderRepository
}
