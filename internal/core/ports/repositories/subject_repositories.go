package repositories

import (
	"context"

	"github.com/tableside/backoffice/internal/core/domain"
)

// SubjectRepository manages the registered-subject set credentials are
// verified against.
type SubjectRepository interface {
	// FindSubjectByID retrieves a subject by its unique identifier.
	FindSubjectByID(ctx context.Context, subjectID string) (*domain.Subject, error)

	// FindSubjectByEmail retrieves a subject by email (case-insensitive).
	FindSubjectByEmail(ctx context.Context, email string) (*domain.Subject, error)

	// SaveSubject persists a new subject.
	SaveSubject(ctx context.Context, subject domain.Subject) error

	// UpdateSubject updates an existing subject, including its credential hash.
	UpdateSubject(ctx context.Context, subject domain.Subject) error
}

// ResetTokenRepository manages single-use password reset tokens.
type ResetTokenRepository interface {
	// FindResetToken retrieves a reset token by its opaque value.
	FindResetToken(ctx context.Context, token string) (*domain.ResetToken, error)

	// SaveResetToken persists a freshly issued token.
	SaveResetToken(ctx context.Context, token domain.ResetToken) error

	// DeleteResetToken removes a token after consumption or expiry.
	DeleteResetToken(ctx context.Context, token string) error
}

// SessionStore persists the single live session of a client. The durable
// implementation survives process restarts; the scoped one is cleared with the
// process.
type SessionStore interface {
	// SaveSession stores the session, replacing any previous one.
	SaveSession(ctx context.Context, session domain.Session) error

	// LoadSession returns the stored session, or nil when none exists.
	LoadSession(ctx context.Context) (*domain.Session, error)

	// DeleteSession removes the stored session for the subject. Removing an
	// absent session is not an error.
	DeleteSession(ctx context.Context, subjectID string) error
}

// BranchPreferenceStore remembers the branch a subject last selected,
// independently of the session persistence policy.
type BranchPreferenceStore interface {
	// SaveBranchPreference records the subject's chosen branch.
	SaveBranchPreference(ctx context.Context, subjectID, branchID string) error

	// LoadBranchPreference returns the remembered branch id, or "" when the
	// subject never chose one.
	LoadBranchPreference(ctx context.Context, subjectID string) (string, error)
}
