package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tableside/backoffice/internal/core/domain"
)

// SessionStore persists rememberMe sessions across process restarts. The
// store holds at most one live session, mirroring the single-client model of
// the back office.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a durable session store over the given database.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) SaveSession(ctx context.Context, session domain.Session) error {
	// One live session at a time; a new login replaces whatever was remembered.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear previous session: %w", err)
	}

	var assigned sql.NullString
	if session.AssignedBranchID != nil {
		assigned = sql.NullString{String: *session.AssignedBranchID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (subject_id, role, assigned_branch_id, effective_branch_id,
			stage, remember_me, token, issued_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.SubjectID, string(session.Role), assigned, session.EffectiveBranchID,
		string(session.Stage), boolToInt(session.RememberMe), session.Token,
		session.IssuedAt.Unix(), session.ExpiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SessionStore) LoadSession(ctx context.Context) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT subject_id, role, assigned_branch_id, effective_branch_id,
			stage, remember_me, token, issued_at, expires_at
		FROM sessions
		ORDER BY issued_at DESC
		LIMIT 1`)

	var (
		session            domain.Session
		role, stage        string
		assigned           sql.NullString
		rememberMe         int
		issuedAt, expireAt int64
	)
	err := row.Scan(&session.SubjectID, &role, &assigned, &session.EffectiveBranchID,
		&stage, &rememberMe, &session.Token, &issuedAt, &expireAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	session.Role = domain.Role(role)
	session.Stage = domain.SessionStage(stage)
	session.RememberMe = rememberMe != 0
	if assigned.Valid {
		session.AssignedBranchID = &assigned.String
	}
	session.IssuedAt = time.Unix(issuedAt, 0).UTC()
	session.ExpiresAt = time.Unix(expireAt, 0).UTC()
	return &session, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, subjectID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE subject_id = ?`, subjectID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// BranchPreferenceStore remembers per-subject branch selections durably,
// independent of the session persistence policy.
type BranchPreferenceStore struct {
	db *sql.DB
}

// NewBranchPreferenceStore creates a durable branch preference store.
func NewBranchPreferenceStore(db *sql.DB) *BranchPreferenceStore {
	return &BranchPreferenceStore{db: db}
}

func (s *BranchPreferenceStore) SaveBranchPreference(ctx context.Context, subjectID, branchID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO branch_preferences (subject_id, branch_id, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(subject_id) DO UPDATE SET branch_id = excluded.branch_id, updated_at = excluded.updated_at`,
		subjectID, branchID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save branch preference: %w", err)
	}
	return nil
}

func (s *BranchPreferenceStore) LoadBranchPreference(ctx context.Context, subjectID string) (string, error) {
	var branchID string
	err := s.db.QueryRowContext(ctx,
		`SELECT branch_id FROM branch_preferences WHERE subject_id = ?`, subjectID,
	).Scan(&branchID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load branch preference: %w", err)
	}
	return branchID, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
