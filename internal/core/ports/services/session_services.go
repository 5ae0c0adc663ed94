package services

import (
	"context"

	"github.com/tableside/backoffice/internal/core/domain"
	"github.com/tableside/backoffice/internal/dto"
)

// SessionSvcFacade owns credential verification, the optional second-factor
// step, the optional branch-selection gate, and session persistence policy.
type SessionSvcFacade interface {
	// Login verifies credentials. Subjects with two-factor enabled receive a
	// challenge instead of a session; everyone else is authenticated directly
	// and persisted per the rememberMe flag.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error)

	// VerifySecondFactor promotes a provisional identity to a full session.
	// The provisional identity survives wrong codes up to the attempt limit.
	VerifySecondFactor(ctx context.Context, req dto.VerifyCodeRequest) (*domain.Session, error)

	// RequestPasswordReset always reports success so callers cannot enumerate
	// registered emails; a token is issued only for known subjects.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes a reset token exactly once.
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error

	// SelectBranch sets the session's effective branch. It exits the
	// branch-selection gate, and lets authenticated admins narrow or widen
	// their view at any time.
	SelectBranch(ctx context.Context, session *domain.Session, branchID string) error

	// Logout clears the session from every store; it is idempotent.
	Logout(ctx context.Context, session *domain.Session) error

	// Resume reloads a remembered session from the durable store on process
	// start. It returns (nil, nil) when nothing was remembered.
	Resume(ctx context.Context) (*domain.Session, error)
}
