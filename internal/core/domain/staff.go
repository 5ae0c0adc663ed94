package domain

import "github.com/shopspring/decimal"

// Staff is an employee record at a branch.
type Staff struct {
	StaffID  string          `json:"staffID"`
	BranchID string          `json:"branchID"`
	Name     string          `json:"name"`
	Position string          `json:"position"`
	Phone    string          `json:"phone"`
	Email    string          `json:"email"`
	Salary   decimal.Decimal `json:"salary"` // monthly base, payroll input
	IsActive bool            `json:"isActive"`
	AuditFields
}

// Customer is a guest record shared across branches.
type Customer struct {
	CustomerID string          `json:"customerID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	VisitCount int             `json:"visitCount"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
	BranchID   string          `json:"branchID"` // branch of first visit
	AuditFields
}
