package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
	"github.com/tableside/backoffice/internal/core/services"
)

func TestResolveScope(t *testing.T) {
	b1 := "b1"

	tests := []struct {
		name      string
		session   *domain.Session
		wantAll   bool
		wantID    string
		wantError error
	}{
		{
			name:      "nil session",
			session:   nil,
			wantError: apperrors.ErrSessionExpired,
		},
		{
			name:      "anonymous",
			session:   &domain.Session{Stage: domain.StageAnonymous},
			wantError: apperrors.ErrSessionExpired,
		},
		{
			name:      "pending second factor",
			session:   &domain.Session{Stage: domain.StagePendingSecondFactor},
			wantError: apperrors.ErrSessionExpired,
		},
		{
			name:      "pending branch selection blocks scoped reads",
			session:   &domain.Session{Role: domain.RoleManager, Stage: domain.StagePendingBranchSelection},
			wantError: apperrors.ErrForbiddenScope,
		},
		{
			name:    "admin with aggregate view",
			session: &domain.Session{Role: domain.RoleAdmin, EffectiveBranchID: domain.ScopeAll, Stage: domain.StageAuthenticated},
			wantAll: true,
		},
		{
			name:    "admin with no selection sees everything",
			session: &domain.Session{Role: domain.RoleAdmin, Stage: domain.StageAuthenticated},
			wantAll: true,
		},
		{
			name:    "admin narrowed to one branch",
			session: &domain.Session{Role: domain.RoleAdmin, EffectiveBranchID: "b2", Stage: domain.StageAuthenticated},
			wantID:  "b2",
		},
		{
			name:    "assigned staff pinned regardless of selection",
			session: &domain.Session{Role: domain.RoleStaff, AssignedBranchID: &b1, EffectiveBranchID: "b2", Stage: domain.StageAuthenticated},
			wantID:  "b1",
		},
		{
			name:    "manager with selected branch",
			session: &domain.Session{Role: domain.RoleManager, EffectiveBranchID: "b2", Stage: domain.StageAuthenticated},
			wantID:  "b2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := services.ResolveScope(tt.session)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAll, scope.All)
			assert.Equal(t, tt.wantID, scope.BranchID)
		})
	}
}

func TestAuthorizeBranch(t *testing.T) {
	b1 := "b1"
	staff := &domain.Session{Role: domain.RoleStaff, AssignedBranchID: &b1, EffectiveBranchID: "b1", Stage: domain.StageAuthenticated}
	admin := &domain.Session{Role: domain.RoleAdmin, EffectiveBranchID: domain.ScopeAll, Stage: domain.StageAuthenticated}

	assert.NoError(t, services.AuthorizeBranch(staff, "b1"))
	assert.ErrorIs(t, services.AuthorizeBranch(staff, "b2"), apperrors.ErrForbiddenScope)
	assert.NoError(t, services.AuthorizeBranch(admin, "b1"))
	assert.NoError(t, services.AuthorizeBranch(admin, "b2"))
}

func TestBranchScopeFilter(t *testing.T) {
	assert.Equal(t, "", services.BranchScope{All: true}.Filter())
	assert.Equal(t, "b1", services.BranchScope{BranchID: "b1"}.Filter())
}
