package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
)

// --- SubjectRepository ---

func (s *Store) FindSubjectByID(ctx context.Context, subjectID string) (*domain.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subject, ok := s.subjects[subjectID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &subject, nil
}

func (s *Store) FindSubjectByEmail(ctx context.Context, email string) (*domain.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(email)
	for _, subject := range s.subjects {
		if strings.ToLower(subject.Email) == needle {
			return &subject, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) SaveSubject(ctx context.Context, subject domain.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subjects[subject.SubjectID]; exists {
		return apperrors.ErrDuplicate
	}
	s.subjects[subject.SubjectID] = subject
	return nil
}

func (s *Store) UpdateSubject(ctx context.Context, subject domain.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subjects[subject.SubjectID]; !ok {
		return apperrors.ErrNotFound
	}
	s.subjects[subject.SubjectID] = subject
	return nil
}

// --- ResetTokenRepository ---

func (s *Store) FindResetToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.resetTokens[token]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *Store) SaveResetToken(ctx context.Context, token domain.ResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetTokens[token.Token] = token
	return nil
}

func (s *Store) DeleteResetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resetTokens, token)
	return nil
}

// SessionStore is the run-scoped session store: one live session, cleared with
// the process. It backs rememberMe=false logins.
type SessionStore struct {
	mu      sync.Mutex
	current *domain.Session
}

// NewSessionStore creates an empty run-scoped session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) SaveSession(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &session
	return nil
}

func (s *SessionStore) LoadSession(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, nil
	}
	session := *s.current
	return &session, nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.SubjectID == subjectID {
		s.current = nil
	}
	return nil
}

// BranchPreferenceStore is an in-memory branch preference store, used in tests
// where the durable SQLite store is not needed.
type BranchPreferenceStore struct {
	mu    sync.Mutex
	prefs map[string]string
}

// NewBranchPreferenceStore creates an empty preference store.
func NewBranchPreferenceStore() *BranchPreferenceStore {
	return &BranchPreferenceStore{prefs: make(map[string]string)}
}

func (s *BranchPreferenceStore) SaveBranchPreference(ctx context.Context, subjectID, branchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[subjectID] = branchID
	return nil
}

func (s *BranchPreferenceStore) LoadBranchPreference(ctx context.Context, subjectID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs[subjectID], nil
}
