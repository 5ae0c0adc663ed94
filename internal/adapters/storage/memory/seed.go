package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tableside/backoffice/internal/core/domain"
	"github.com/tableside/backoffice/internal/utils"
)

// Seed loads the bootstrap dataset: two branches, three subjects covering
// every role, and a starter set of operational entities per branch. It is
// called once on an empty store at process start.
func Seed(ctx context.Context, store *Store, now time.Time) error {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     "seed",
		LastUpdatedAt: now,
		LastUpdatedBy: "seed",
	}

	branches := []domain.Branch{
		{
			BranchID:       "branch-main",
			Name:           "Downtown",
			Location:       "14 Harbor St",
			IsMain:         true,
			OperatingHours: "09:00-23:00",
			Phone:          "+1-555-0100",
			Email:          "downtown@tableside.example",
			AuditFields:    audit,
		},
		{
			BranchID:       "branch-riverside",
			Name:           "Riverside",
			Location:       "3 Mill Rd",
			OperatingHours: "10:00-22:00",
			Phone:          "+1-555-0101",
			Email:          "riverside@tableside.example",
			AuditFields:    audit,
		},
	}
	for _, branch := range branches {
		if err := store.SaveBranch(ctx, branch); err != nil {
			return fmt.Errorf("failed to seed branch %s: %w", branch.BranchID, err)
		}
	}

	riverside := "branch-riverside"
	subjects := []struct {
		id, name, email, password string
		role                      domain.Role
		assigned                  *string
		twoFactor                 bool
	}{
		{"subject-admin", "Alex Admin", "admin@tableside.example", "admin-pass-1", domain.RoleAdmin, nil, true},
		{"subject-manager", "Morgan Manager", "manager@tableside.example", "manager-pass-1", domain.RoleManager, nil, false},
		{"subject-staff", "Sam Staff", "staff@tableside.example", "staff-pass-1", domain.RoleStaff, &riverside, false},
	}
	for _, s := range subjects {
		hash, err := utils.HashPassword(s.password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		subject := domain.Subject{
			SubjectID:        s.id,
			Name:             s.name,
			Email:            s.email,
			PasswordHash:     hash,
			Role:             s.role,
			AssignedBranchID: s.assigned,
			TwoFactorEnabled: s.twoFactor,
			AuditFields:      audit,
		}
		if err := store.SaveSubject(ctx, subject); err != nil {
			return fmt.Errorf("failed to seed subject %s: %w", s.id, err)
		}
	}

	accounts := []domain.FinanceAccount{
		{AccountID: "account-main-cash", BranchID: "branch-main", Name: "Register Cash", AccountType: domain.AccountCash, Balance: decimal.Zero, CurrencyCode: "USD", IsActive: true, AuditFields: audit},
		{AccountID: "account-main-bank", BranchID: "branch-main", Name: "Operating Bank", AccountType: domain.AccountBank, Balance: decimal.Zero, CurrencyCode: "USD", IsActive: true, AuditFields: audit},
		{AccountID: "account-riverside-cash", BranchID: "branch-riverside", Name: "Register Cash", AccountType: domain.AccountCash, Balance: decimal.Zero, CurrencyCode: "USD", IsActive: true, AuditFields: audit},
	}
	for _, account := range accounts {
		if err := store.SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", account.AccountID, err)
		}
	}

	items := []domain.InventoryItem{
		{ItemID: "item-flour", BranchID: "branch-main", Name: "Flour", Quantity: decimal.NewFromInt(40), MinStock: decimal.NewFromInt(10), Unit: "kg", AuditFields: audit},
		{ItemID: "item-tomatoes", BranchID: "branch-main", Name: "Tomatoes", Quantity: decimal.NewFromInt(25), MinStock: decimal.NewFromInt(8), Unit: "kg", AuditFields: audit},
		{ItemID: "item-coffee", BranchID: "branch-riverside", Name: "Coffee Beans", Quantity: decimal.NewFromInt(12), MinStock: decimal.NewFromInt(4), Unit: "kg", AuditFields: audit},
	}
	for _, item := range items {
		if err := store.SaveItem(ctx, item); err != nil {
			return fmt.Errorf("failed to seed item %s: %w", item.ItemID, err)
		}
	}

	for branchID, count := range map[string]int{"branch-main": 8, "branch-riverside": 5} {
		for n := 1; n <= count; n++ {
			table := domain.Table{
				TableID:     fmt.Sprintf("table-%s-%d", branchID, n),
				BranchID:    branchID,
				Number:      n,
				Capacity:    4,
				Status:      domain.TableAvailable,
				AuditFields: audit,
			}
			if err := store.SaveTable(ctx, table); err != nil {
				return fmt.Errorf("failed to seed table %s: %w", table.TableID, err)
			}
		}
	}

	menuItems := []domain.MenuItem{
		{MenuItemID: "menu-margherita", BranchID: "branch-main", Name: "Margherita", Category: "Pizza", Price: decimal.RequireFromString("12.50"), IsAvailable: true, AuditFields: audit},
		{MenuItemID: "menu-lemonade", BranchID: "branch-main", Name: "Lemonade", Category: "Drinks", Price: decimal.RequireFromString("2.75"), IsAvailable: true, AuditFields: audit},
		{MenuItemID: "menu-espresso", BranchID: "branch-riverside", Name: "Espresso", Category: "Drinks", Price: decimal.RequireFromString("3.00"), IsAvailable: true, AuditFields: audit},
	}
	for _, item := range menuItems {
		if err := store.SaveMenuItem(ctx, item); err != nil {
			return fmt.Errorf("failed to seed menu item %s: %w", item.MenuItemID, err)
		}
	}

	staff := []domain.Staff{
		{StaffID: "staff-cook", BranchID: "branch-main", Name: "Casey Cook", Position: "Chef", Salary: decimal.NewFromInt(3200), IsActive: true, AuditFields: audit},
		{StaffID: "staff-server", BranchID: "branch-riverside", Name: "Riley Server", Position: "Server", Salary: decimal.NewFromInt(2400), IsActive: true, AuditFields: audit},
	}
	for _, member := range staff {
		if err := store.SaveStaff(ctx, member); err != nil {
			return fmt.Errorf("failed to seed staff %s: %w", member.StaffID, err)
		}
	}

	debt := domain.Debt{
		DebtID:      "debt-produce-supplier",
		DebtType:    domain.DebtPayable,
		Party:       "Greenfield Produce",
		Amount:      decimal.RequireFromString("840.00"),
		PaidAmount:  decimal.RequireFromString("200.00"),
		DueDate:     now.AddDate(0, 0, 14),
		BranchID:    "branch-main",
		AuditFields: audit,
	}
	debt.Recalculate(now)
	if err := store.SaveDebt(ctx, debt); err != nil {
		return fmt.Errorf("failed to seed debt %s: %w", debt.DebtID, err)
	}

	customer := domain.Customer{
		CustomerID:  "customer-blake",
		Name:        "Blake Regular",
		Phone:       "+1-555-0199",
		VisitCount:  6,
		TotalSpent:  decimal.RequireFromString("214.30"),
		BranchID:    "branch-main",
		AuditFields: audit,
	}
	if err := store.SaveCustomer(ctx, customer); err != nil {
		return fmt.Errorf("failed to seed customer %s: %w", customer.CustomerID, err)
	}

	return nil
}
