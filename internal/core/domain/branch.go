package domain

// Branch represents a single restaurant location. Exactly one branch may have
// IsMain set; a branch marked main cannot be deleted.
type Branch struct {
	BranchID       string `json:"branchID"`
	Name           string `json:"name"`
	Location       string `json:"location"`
	IsMain         bool   `json:"isMain"`
	OperatingHours string `json:"operatingHours"` // e.g. "09:00-23:00"
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	AuditFields
}
