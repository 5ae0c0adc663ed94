package domain

import "time"

// Role defines the authorization role of a registered subject.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

// SessionStage is the position of a session in the authentication state machine.
type SessionStage string

const (
	StageAnonymous              SessionStage = "ANONYMOUS"
	StagePendingSecondFactor    SessionStage = "PENDING_SECOND_FACTOR"
	StagePendingBranchSelection SessionStage = "PENDING_BRANCH_SELECTION"
	StageAuthenticated          SessionStage = "AUTHENTICATED"
)

// ScopeAll is the admin-only aggregate branch scope. It is only ever carried on
// a session's EffectiveBranchID; entities never store it.
const ScopeAll = "all"

// Session is the authenticated (or partially authenticated) state of a subject.
// It is owned exclusively by the session service and destroyed on logout or expiry.
type Session struct {
	SubjectID         string       `json:"subjectID"`
	Role              Role         `json:"role"`
	AssignedBranchID  *string      `json:"assignedBranchID,omitempty"`
	EffectiveBranchID string       `json:"effectiveBranchID,omitempty"`
	Stage             SessionStage `json:"stage"`
	RememberMe        bool         `json:"rememberMe"`
	Token             string       `json:"token"` // signed session token
	IssuedAt          time.Time    `json:"issuedAt"`
	ExpiresAt         time.Time    `json:"expiresAt"`
}

// ResetToken is a single-use password reset token. It is invalid after expiry;
// both conditions are checked at use time, never by a background sweep.
type ResetToken struct {
	Token        string    `json:"token"`
	SubjectEmail string    `json:"subjectEmail"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t ResetToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Subject is a registered user of the back office.
type Subject struct {
	SubjectID        string  `json:"subjectID"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	PasswordHash     string  `json:"-"`
	Role             Role    `json:"role"`
	AssignedBranchID *string `json:"assignedBranchID,omitempty"`
	TwoFactorEnabled bool    `json:"twoFactorEnabled"`
	AuditFields
}
