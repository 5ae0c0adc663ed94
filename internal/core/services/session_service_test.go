package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/tableside/backoffice/internal/adapters/storage/memory"
	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
	portssvc "github.com/tableside/backoffice/internal/core/ports/services"
	"github.com/tableside/backoffice/internal/core/services"
	"github.com/tableside/backoffice/internal/dto"
	"github.com/tableside/backoffice/internal/platform/config"
	"github.com/tableside/backoffice/internal/utils"
)

const (
	adminPassword   = "admin-secret-1"
	managerPassword = "manager-secret-1"
	staffPassword   = "staff-secret-1"
)

type SessionServiceTestSuite struct {
	suite.Suite

	ctx     context.Context
	cfg     *config.Config
	store   *memory.Store
	durable *memory.SessionStore
	scoped  *memory.SessionStore
	prefs   *memory.BranchPreferenceStore
	service portssvc.SessionSvcFacade

	nowTime   time.Time
	lastCodes map[string]string // subjectID -> most recent 2FA code
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.cfg = &config.Config{
		SessionSecret:           "test-secret",
		SessionIssuer:           "test",
		SessionExpiry:           time.Hour,
		ResetTokenTTL:           time.Hour,
		SecondFactorTTL:         5 * time.Minute,
		SecondFactorMaxAttempts: 3,
		LoginAttemptRate:        "10-M",
	}
	s.store = memory.NewStore()
	s.durable = memory.NewSessionStore()
	s.scoped = memory.NewSessionStore()
	s.prefs = memory.NewBranchPreferenceStore()
	s.nowTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s.lastCodes = make(map[string]string)

	s.Require().NoError(s.store.SaveBranch(s.ctx, domain.Branch{BranchID: "b1", Name: "Downtown", Location: "here", IsMain: true}))
	s.Require().NoError(s.store.SaveBranch(s.ctx, domain.Branch{BranchID: "b2", Name: "Riverside", Location: "there"}))

	s.addSubject("admin-1", "admin@test.local", adminPassword, domain.RoleAdmin, nil, true)
	s.addSubject("manager-1", "manager@test.local", managerPassword, domain.RoleManager, nil, false)
	b1 := "b1"
	s.addSubject("staff-1", "staff@test.local", staffPassword, domain.RoleStaff, &b1, false)

	s.service = services.NewSessionService(
		s.cfg,
		s.store.Repositories(),
		s.durable,
		s.scoped,
		s.prefs,
		services.WithClock(func() time.Time { return s.nowTime }),
		services.WithCodeDelivery(func(subjectID, code string) {
			s.lastCodes[subjectID] = code
		}),
	)
}

func (s *SessionServiceTestSuite) addSubject(id, email, password string, role domain.Role, assigned *string, twoFactor bool) {
	hash, err := utils.HashPassword(password)
	s.Require().NoError(err)
	s.Require().NoError(s.store.SaveSubject(s.ctx, domain.Subject{
		SubjectID:        id,
		Name:             id,
		Email:            email,
		PasswordHash:     hash,
		Role:             role,
		AssignedBranchID: assigned,
		TwoFactorEnabled: twoFactor,
	}))
}

func (s *SessionServiceTestSuite) TestLogin_AssignedStaff_AuthenticatedDirectly() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "staff@test.local", Password: staffPassword})

	s.Require().NoError(err)
	s.Require().NotNil(result.Session)
	s.False(result.RequiresSecondFactor)
	s.Equal(domain.StageAuthenticated, result.Session.Stage)
	s.Equal("b1", result.Session.EffectiveBranchID)
	s.NotEmpty(result.Session.Token)
}

func (s *SessionServiceTestSuite) TestLogin_WrongPassword() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "staff@test.local", Password: "nope-nope-1"})

	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
	s.Nil(result)
}

func (s *SessionServiceTestSuite) TestLogin_UnknownEmail_SameErrorAsWrongPassword() {
	_, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "ghost@test.local", Password: "whatever-1"})

	// Unknown email and wrong password are indistinguishable to the caller.
	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *SessionServiceTestSuite) TestLogin_AttemptLimit() {
	rate := limiter.Rate{Period: time.Minute, Limit: 2}
	service := services.NewSessionService(
		s.cfg, s.store.Repositories(), s.durable, s.scoped, s.prefs,
		services.WithLoginLimiter(limiter.New(limitermemory.NewStore(), rate)),
	)

	req := dto.LoginRequest{Email: "staff@test.local", Password: "wrong-wrong-1"}
	for i := 0; i < 2; i++ {
		_, err := service.Login(s.ctx, req)
		s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
	}

	_, err := service.Login(s.ctx, req)
	s.Require().ErrorIs(err, apperrors.ErrTooManyAttempts)

	// Even the right password is refused while the window is hot.
	_, err = service.Login(s.ctx, dto.LoginRequest{Email: "staff@test.local", Password: staffPassword})
	s.Require().ErrorIs(err, apperrors.ErrTooManyAttempts)
}

func (s *SessionServiceTestSuite) TestLogin_ManagerWithoutAssignment_EntersBranchGate() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "manager@test.local", Password: managerPassword})

	s.Require().NoError(err)
	s.Require().NotNil(result.Session)
	s.Equal(domain.StagePendingBranchSelection, result.Session.Stage)
	s.Empty(result.Session.EffectiveBranchID)
}

func (s *SessionServiceTestSuite) TestSelectBranch_ExitsGateAndRemembersChoice() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "manager@test.local", Password: managerPassword})
	s.Require().NoError(err)

	s.Require().NoError(s.service.SelectBranch(s.ctx, result.Session, "b2"))
	s.Equal(domain.StageAuthenticated, result.Session.Stage)
	s.Equal("b2", result.Session.EffectiveBranchID)

	// Next login skips the gate: the choice was remembered.
	again, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "manager@test.local", Password: managerPassword})
	s.Require().NoError(err)
	s.Equal(domain.StageAuthenticated, again.Session.Stage)
	s.Equal("b2", again.Session.EffectiveBranchID)
}

func (s *SessionServiceTestSuite) TestSelectBranch_UnknownBranch() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "manager@test.local", Password: managerPassword})
	s.Require().NoError(err)

	err = s.service.SelectBranch(s.ctx, result.Session, "b-missing")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.Equal(domain.StagePendingBranchSelection, result.Session.Stage)
}

func (s *SessionServiceTestSuite) TestSelectBranch_StaffCannotLeaveAssignedBranch() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "staff@test.local", Password: staffPassword})
	s.Require().NoError(err)

	err = s.service.SelectBranch(s.ctx, result.Session, "b2")
	s.Require().ErrorIs(err, apperrors.ErrForbiddenScope)
	s.Equal("b1", result.Session.EffectiveBranchID)

	// Re-selecting the assigned branch is a no-op, not an error.
	s.Require().NoError(s.service.SelectBranch(s.ctx, result.Session, "b1"))
}

func (s *SessionServiceTestSuite) TestSelectBranch_AggregateViewIsAdminOnly() {
	manager, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "manager@test.local", Password: managerPassword})
	s.Require().NoError(err)
	err = s.service.SelectBranch(s.ctx, manager.Session, domain.ScopeAll)
	s.Require().ErrorIs(err, apperrors.ErrForbiddenScope)

	admin := s.loginAdmin()
	s.Require().NoError(s.service.SelectBranch(s.ctx, admin, domain.ScopeAll))
	s.Equal(domain.ScopeAll, admin.EffectiveBranchID)

	// Admins can narrow back down afterwards.
	s.Require().NoError(s.service.SelectBranch(s.ctx, admin, "b1"))
	s.Equal("b1", admin.EffectiveBranchID)
}

func (s *SessionServiceTestSuite) TestSecondFactor_CorrectCodePromotes() {
	s.Require().NoError(s.prefs.SaveBranchPreference(s.ctx, "admin-1", "b1"))
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "admin@test.local", Password: adminPassword, RememberMe: true})
	s.Require().NoError(err)
	s.True(result.RequiresSecondFactor)
	s.NotEmpty(result.ChallengeToken)
	s.Nil(result.Session)

	code := s.lastCodes["admin-1"]
	s.Require().Len(code, 6)

	session, err := s.service.VerifySecondFactor(s.ctx, dto.VerifyCodeRequest{
		ChallengeToken: result.ChallengeToken,
		Code:           code,
	})
	s.Require().NoError(err)
	s.Equal(domain.StageAuthenticated, session.Stage)
	s.True(session.RememberMe)

	// The challenge is single use.
	_, err = s.service.VerifySecondFactor(s.ctx, dto.VerifyCodeRequest{
		ChallengeToken: result.ChallengeToken,
		Code:           code,
	})
	s.Require().ErrorIs(err, apperrors.ErrSessionExpired)
}

func (s *SessionServiceTestSuite) TestSecondFactor_WrongCodeKeepsChallengeUntilLimit() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "admin@test.local", Password: adminPassword})
	s.Require().NoError(err)

	// Two wrong codes leave the provisional identity intact.
	for i := 0; i < s.cfg.SecondFactorMaxAttempts-1; i++ {
		_, err = s.service.VerifySecondFactor(s.ctx, dto.VerifyCodeRequest{
			ChallengeToken: result.ChallengeToken,
			Code:           "000000",
		})
		s.Require().ErrorIs(err, apperrors.ErrInvalidCode)
	}

	// The final wrong attempt clears it.
	_, err = s.service.VerifySecondFactor(s.ctx, dto.VerifyCodeRequest{
		ChallengeToken: result.ChallengeToken,
		Code:           "000000",
	})
	s.Require().ErrorIs(err, apperrors.ErrInvalidCode)

	// Even the correct code is now refused; a fresh login is required.
	_, err = s.service.VerifySecondFactor(s.ctx, dto.VerifyCodeRequest{
		ChallengeToken: result.ChallengeToken,
		Code:           s.lastCodes["admin-1"],
	})
	s.Require().ErrorIs(err, apperrors.ErrSessionExpired)
}

func (s *SessionServiceTestSuite) TestSecondFactor_ChallengeExpires() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "admin@test.local", Password: adminPassword})
	s.Require().NoError(err)

	s.nowTime = s.nowTime.Add(s.cfg.SecondFactorTTL + time.Second)

	_, err = s.service.VerifySecondFactor(s.ctx, dto.VerifyCodeRequest{
		ChallengeToken: result.ChallengeToken,
		Code:           s.lastCodes["admin-1"],
	})
	s.Require().ErrorIs(err, apperrors.ErrSessionExpired)
}

func (s *SessionServiceTestSuite) TestRememberMe_PersistsDurablyAndResumes() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "staff@test.local", Password: staffPassword, RememberMe: true})
	s.Require().NoError(err)

	stored, err := s.durable.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal("staff-1", stored.SubjectID)

	resumed, err := s.service.Resume(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(resumed)
	s.Equal(result.Session.SubjectID, resumed.SubjectID)
	s.Equal(domain.StageAuthenticated, resumed.Stage)
}

func (s *SessionServiceTestSuite) TestNoRememberMe_NothingToResume() {
	_, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "staff@test.local", Password: staffPassword})
	s.Require().NoError(err)

	stored, err := s.durable.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Nil(stored)

	resumed, err := s.service.Resume(s.ctx)
	s.Require().NoError(err)
	s.Nil(resumed)
}

func (s *SessionServiceTestSuite) TestLogout_ClearsBothStoresAndIsIdempotent() {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "staff@test.local", Password: staffPassword, RememberMe: true})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(s.ctx, result.Session))
	s.Equal(domain.StageAnonymous, result.Session.Stage)

	stored, err := s.durable.LoadSession(s.ctx)
	s.Require().NoError(err)
	s.Nil(stored)

	s.Require().NoError(s.service.Logout(s.ctx, result.Session))
}

func (s *SessionServiceTestSuite) TestResetPassword_SingleUseToken() {
	s.Require().NoError(s.store.SaveResetToken(s.ctx, domain.ResetToken{
		Token:        "reset-token-1",
		SubjectEmail: "staff@test.local",
		ExpiresAt:    s.nowTime.Add(time.Hour),
	}))

	err := s.service.ResetPassword(s.ctx, dto.ResetPasswordRequest{Token: "reset-token-1", NewPassword: "brand-new-pass-1"})
	s.Require().NoError(err)

	// Old password is dead, the new one works.
	_, err = s.service.Login(s.ctx, dto.LoginRequest{Email: "staff@test.local", Password: staffPassword})
	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "staff@test.local", Password: "brand-new-pass-1"})
	s.Require().NoError(err)
	s.NotNil(result.Session)

	// Second use of the token is refused.
	err = s.service.ResetPassword(s.ctx, dto.ResetPasswordRequest{Token: "reset-token-1", NewPassword: "another-pass-1"})
	s.Require().ErrorIs(err, apperrors.ErrInvalidOrExpiredToken)
}

func (s *SessionServiceTestSuite) TestResetPassword_ExpiredToken() {
	s.Require().NoError(s.store.SaveResetToken(s.ctx, domain.ResetToken{
		Token:        "reset-token-2",
		SubjectEmail: "staff@test.local",
		ExpiresAt:    s.nowTime.Add(-time.Minute),
	}))

	err := s.service.ResetPassword(s.ctx, dto.ResetPasswordRequest{Token: "reset-token-2", NewPassword: "whatever-pass-1"})
	s.Require().ErrorIs(err, apperrors.ErrInvalidOrExpiredToken)
}

func (s *SessionServiceTestSuite) TestRequestPasswordReset_NeverRevealsRegistration() {
	s.Require().NoError(s.service.RequestPasswordReset(s.ctx, "staff@test.local"))
	s.Require().NoError(s.service.RequestPasswordReset(s.ctx, "ghost@test.local"))
}

func (s *SessionServiceTestSuite) loginAdmin() *domain.Session {
	result, err := s.service.Login(s.ctx, dto.LoginRequest{Email: "admin@test.local", Password: adminPassword})
	s.Require().NoError(err)
	session, err := s.service.VerifySecondFactor(s.ctx, dto.VerifyCodeRequest{
		ChallengeToken: result.ChallengeToken,
		Code:           s.lastCodes["admin-1"],
	})
	s.Require().NoError(err)
	return session
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
