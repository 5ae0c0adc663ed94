package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
	portsrepo "github.com/tableside/backoffice/internal/core/ports/repositories"
	portssvc "github.com/tableside/backoffice/internal/core/ports/services"
	"github.com/tableside/backoffice/internal/dto"
	"github.com/tableside/backoffice/internal/platform/config"
	"github.com/tableside/backoffice/internal/utils"
)

// secondFactorChallenge is the provisional identity held between a successful
// password check and second-factor verification. No session exists yet.
type secondFactorChallenge struct {
	subjectID  string
	code       string
	rememberMe bool
	expiresAt  time.Time
	attempts   int
}

// sessionService implements the session and authentication state machine.
type sessionService struct {
	BaseService
	cfg         *config.Config
	validate    *validator.Validate
	subjects    portsrepo.SubjectRepository
	resetTokens portsrepo.ResetTokenRepository
	branches    portsrepo.BranchRepository
	durable     portsrepo.SessionStore
	scoped      portsrepo.SessionStore
	prefs       portsrepo.BranchPreferenceStore

	loginLimiter *limiter.Limiter
	deliverCode  func(subjectID, code string)
	now          func() time.Time

	mu         sync.Mutex
	challenges map[string]*secondFactorChallenge
}

// SessionOption is a functional option for configuring the session service.
type SessionOption func(*sessionService)

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *sessionService) {
		s.now = now
	}
}

// WithCodeDelivery sets the handler that carries a second-factor code to the
// subject (SMS or email in production).
func WithCodeDelivery(deliver func(subjectID, code string)) SessionOption {
	return func(s *sessionService) {
		s.deliverCode = deliver
	}
}

// WithLoginLimiter overrides the per-email login attempt limiter.
func WithLoginLimiter(l *limiter.Limiter) SessionOption {
	return func(s *sessionService) {
		s.loginLimiter = l
	}
}

// NewSessionService creates the session service. The durable store backs
// rememberMe logins; the scoped store is cleared with the process.
func NewSessionService(
	cfg *config.Config,
	repos *portsrepo.RepositoryProvider,
	durable portsrepo.SessionStore,
	scoped portsrepo.SessionStore,
	prefs portsrepo.BranchPreferenceStore,
	options ...SessionOption,
) portssvc.SessionSvcFacade {
	svc := &sessionService{
		cfg:         cfg,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		subjects:    repos.Subjects,
		resetTokens: repos.ResetTokens,
		branches:    repos.Branches,
		durable:     durable,
		scoped:      scoped,
		prefs:       prefs,
		now:         time.Now,
		challenges:  make(map[string]*secondFactorChallenge),
	}

	for _, option := range options {
		option(svc)
	}

	if svc.loginLimiter == nil {
		rate, err := limiter.NewRateFromFormatted(cfg.LoginAttemptRate)
		if err != nil {
			rate = limiter.Rate{Period: time.Minute, Limit: 10}
		}
		svc.loginLimiter = limiter.New(limitermemory.NewStore(), rate)
	}

	return svc
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	email := strings.ToLower(req.Email)

	lctx, err := s.loginLimiter.Get(ctx, "login:"+email)
	if err != nil {
		return nil, fmt.Errorf("failed to check login attempt limit: %w", err)
	}
	if lctx.Reached {
		s.LogInfo(ctx, "Login attempt limit reached", slog.String("email", email))
		return nil, apperrors.ErrTooManyAttempts
	}

	subject, err := s.subjects.FindSubjectByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up subject: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, subject.PasswordHash) {
		s.LogInfo(ctx, "Password mismatch", slog.String("subject_id", subject.SubjectID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if subject.TwoFactorEnabled {
		token, err := s.issueChallenge(ctx, subject, req.RememberMe)
		if err != nil {
			return nil, err
		}
		return &dto.LoginResult{RequiresSecondFactor: true, ChallengeToken: token}, nil
	}

	session, err := s.establishSession(ctx, subject, req.RememberMe)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{Session: session}, nil
}

func (s *sessionService) issueChallenge(ctx context.Context, subject *domain.Subject, rememberMe bool) (string, error) {
	code, err := utils.GenerateNumericCode(6)
	if err != nil {
		return "", fmt.Errorf("failed to generate second factor code: %w", err)
	}
	token, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate challenge token: %w", err)
	}

	s.mu.Lock()
	s.challenges[token] = &secondFactorChallenge{
		subjectID:  subject.SubjectID,
		code:       code,
		rememberMe: rememberMe,
		expiresAt:  s.now().Add(s.cfg.SecondFactorTTL),
	}
	s.mu.Unlock()

	if s.deliverCode != nil {
		s.deliverCode(subject.SubjectID, code)
	} else {
		// No delivery channel configured; surfaced at debug level for local
		// development.
		s.LogDebug(ctx, "Second factor code issued", slog.String("code", code))
	}
	s.LogInfo(ctx, "Second factor required", slog.String("subject_id", subject.SubjectID))
	return token, nil
}

func (s *sessionService) VerifySecondFactor(ctx context.Context, req dto.VerifyCodeRequest) (*domain.Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	s.mu.Lock()
	challenge, ok := s.challenges[req.ChallengeToken]
	if ok && s.now().After(challenge.expiresAt) {
		delete(s.challenges, req.ChallengeToken)
		ok = false
	}
	if !ok {
		s.mu.Unlock()
		return nil, apperrors.ErrSessionExpired
	}
	if challenge.code != req.Code {
		challenge.attempts++
		if challenge.attempts >= s.cfg.SecondFactorMaxAttempts {
			// The provisional identity is discarded; the subject must log in
			// again from scratch.
			delete(s.challenges, req.ChallengeToken)
		}
		s.mu.Unlock()
		s.LogInfo(ctx, "Second factor code mismatch")
		return nil, apperrors.ErrInvalidCode
	}
	delete(s.challenges, req.ChallengeToken)
	s.mu.Unlock()

	subject, err := s.subjects.FindSubjectByID(ctx, challenge.subjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to look up subject: %w", err)
	}

	return s.establishSession(ctx, subject, challenge.rememberMe)
}

// establishSession transitions a verified subject to Authenticated, entering
// the branch-selection gate when no branch is assigned or remembered, and
// persists the session per the rememberMe policy.
func (s *sessionService) establishSession(ctx context.Context, subject *domain.Subject, rememberMe bool) (*domain.Session, error) {
	now := s.now()

	token, err := utils.GenerateSessionToken(subject.SubjectID, s.cfg.SessionSecret, s.cfg.SessionExpiry, s.cfg.SessionIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	session := &domain.Session{
		SubjectID:        subject.SubjectID,
		Role:             subject.Role,
		AssignedBranchID: subject.AssignedBranchID,
		Stage:            domain.StageAuthenticated,
		RememberMe:       rememberMe,
		Token:            token,
		IssuedAt:         now,
		ExpiresAt:        now.Add(s.cfg.SessionExpiry),
	}

	switch {
	case subject.AssignedBranchID != nil && *subject.AssignedBranchID != "":
		session.EffectiveBranchID = *subject.AssignedBranchID
	default:
		// A previously chosen branch is re-applied independently of the
		// rememberMe policy.
		pref, err := s.prefs.LoadBranchPreference(ctx, subject.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to load branch preference: %w", err)
		}
		if pref != "" {
			session.EffectiveBranchID = pref
		} else {
			session.Stage = domain.StagePendingBranchSelection
		}
	}

	if err := s.persistSession(ctx, session); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Session established",
		slog.String("subject_id", subject.SubjectID),
		slog.String("stage", string(session.Stage)),
		slog.Bool("remember_me", rememberMe))
	return session, nil
}

func (s *sessionService) persistSession(ctx context.Context, session *domain.Session) error {
	if session.RememberMe {
		if err := s.durable.SaveSession(ctx, *session); err != nil {
			return fmt.Errorf("failed to persist session durably: %w", err)
		}
		// A stale scoped copy from an earlier login must not shadow this one.
		if err := s.scoped.DeleteSession(ctx, session.SubjectID); err != nil {
			return fmt.Errorf("failed to clear scoped session: %w", err)
		}
		return nil
	}
	if err := s.scoped.SaveSession(ctx, *session); err != nil {
		return fmt.Errorf("failed to persist scoped session: %w", err)
	}
	if err := s.durable.DeleteSession(ctx, session.SubjectID); err != nil {
		return fmt.Errorf("failed to clear durable session: %w", err)
	}
	return nil
}

func (s *sessionService) RequestPasswordReset(ctx context.Context, email string) error {
	subject, err := s.subjects.FindSubjectByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Report success either way so callers cannot enumerate accounts.
			s.LogDebug(ctx, "Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up subject: %w", err)
	}

	raw, err := utils.GenerateSecureRandomString(24)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := domain.ResetToken{
		Token:        raw,
		SubjectEmail: subject.Email,
		ExpiresAt:    s.now().Add(s.cfg.ResetTokenTTL),
	}
	if err := s.resetTokens.SaveResetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	s.LogInfo(ctx, "Password reset token issued", slog.String("subject_id", subject.SubjectID))
	return nil
}

func (s *sessionService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	token, err := s.resetTokens.FindResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if token.Expired(s.now()) {
		_ = s.resetTokens.DeleteResetToken(ctx, token.Token)
		return apperrors.ErrInvalidOrExpiredToken
	}

	subject, err := s.subjects.FindSubjectByEmail(ctx, token.SubjectEmail)
	if err != nil {
		return fmt.Errorf("failed to look up subject for reset: %w", err)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	subject.PasswordHash = hash
	subject.LastUpdatedAt = s.now()
	subject.LastUpdatedBy = subject.SubjectID
	if err := s.subjects.UpdateSubject(ctx, *subject); err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}

	// Single use: the token dies with its consumption.
	if err := s.resetTokens.DeleteResetToken(ctx, token.Token); err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}

	s.LogInfo(ctx, "Password reset completed", slog.String("subject_id", subject.SubjectID))
	return nil
}

func (s *sessionService) SelectBranch(ctx context.Context, session *domain.Session, branchID string) error {
	if session == nil || session.Stage == domain.StageAnonymous || session.Stage == domain.StagePendingSecondFactor {
		return apperrors.ErrSessionExpired
	}

	// Assigned subjects may only "select" their own branch.
	if session.AssignedBranchID != nil && *session.AssignedBranchID != "" && branchID != *session.AssignedBranchID {
		return apperrors.ErrForbiddenScope
	}

	if branchID == domain.ScopeAll {
		if session.Role != domain.RoleAdmin {
			return apperrors.ErrForbiddenScope
		}
	} else {
		if _, err := s.branches.FindBranchByID(ctx, branchID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to look up branch: %w", err)
		}
	}

	if session.Stage == domain.StageAuthenticated && session.Role != domain.RoleAdmin &&
		(session.AssignedBranchID == nil || *session.AssignedBranchID == "") &&
		branchID != session.EffectiveBranchID {
		// Non-admins without an assignment pick once through the gate; after
		// that only an admin may hop between branches.
		return apperrors.ErrForbiddenScope
	}

	session.EffectiveBranchID = branchID
	session.Stage = domain.StageAuthenticated

	// Branch choice is remembered durably regardless of the session policy,
	// except the aggregate view which is session-local.
	if branchID != domain.ScopeAll {
		if err := s.prefs.SaveBranchPreference(ctx, session.SubjectID, branchID); err != nil {
			return fmt.Errorf("failed to save branch preference: %w", err)
		}
	}

	if err := s.persistSession(ctx, session); err != nil {
		return err
	}

	s.LogInfo(ctx, "Branch selected",
		slog.String("subject_id", session.SubjectID),
		slog.String("branch_id", branchID))
	return nil
}

func (s *sessionService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	// Both stores are cleared unconditionally; logging out twice is fine.
	if err := s.durable.DeleteSession(ctx, session.SubjectID); err != nil {
		return fmt.Errorf("failed to clear durable session: %w", err)
	}
	if err := s.scoped.DeleteSession(ctx, session.SubjectID); err != nil {
		return fmt.Errorf("failed to clear scoped session: %w", err)
	}
	session.Stage = domain.StageAnonymous
	session.Token = ""
	s.LogInfo(ctx, "Logged out", slog.String("subject_id", session.SubjectID))
	return nil
}

func (s *sessionService) Resume(ctx context.Context) (*domain.Session, error) {
	session, err := s.durable.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load remembered session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	if _, err := utils.ParseAndValidateSessionToken(session.Token, s.cfg.SessionSecret); err != nil {
		// A remembered session with a dead token is garbage; drop it.
		_ = s.durable.DeleteSession(ctx, session.SubjectID)
		return nil, apperrors.ErrSessionExpired
	}

	s.LogInfo(ctx, "Session resumed", slog.String("subject_id", session.SubjectID))
	return session, nil
}
