package services

import (
	"github.com/tableside/backoffice/internal/apperrors"
	"github.com/tableside/backoffice/internal/core/domain"
)

// BranchScope is the resolved branch visibility of a session: either every
// branch (admin aggregate view) or exactly one.
type BranchScope struct {
	All      bool
	BranchID string
}

// Contains reports whether an entity in the given branch is visible.
func (s BranchScope) Contains(branchID string) bool {
	return s.All || s.BranchID == branchID
}

// Filter returns the branch filter value for repository list calls: "" for
// the aggregate view, otherwise the single branch id.
func (s BranchScope) Filter() string {
	if s.All {
		return ""
	}
	return s.BranchID
}

// ResolveScope computes the effective branch visibility of a session. It is a
// pure function of the session; every read and write passes through it before
// touching the entity store.
func ResolveScope(session *domain.Session) (BranchScope, error) {
	if session == nil || session.Stage == domain.StageAnonymous || session.Stage == domain.StagePendingSecondFactor {
		return BranchScope{}, apperrors.ErrSessionExpired
	}
	if session.Stage == domain.StagePendingBranchSelection {
		// No scoped query succeeds until the subject picks a branch.
		return BranchScope{}, apperrors.ErrForbiddenScope
	}

	// Assigned subjects are pinned to their branch regardless of selection.
	if session.AssignedBranchID != nil && *session.AssignedBranchID != "" {
		return BranchScope{BranchID: *session.AssignedBranchID}, nil
	}

	if session.Role == domain.RoleAdmin {
		if session.EffectiveBranchID == "" || session.EffectiveBranchID == domain.ScopeAll {
			return BranchScope{All: true}, nil
		}
		return BranchScope{BranchID: session.EffectiveBranchID}, nil
	}

	if session.EffectiveBranchID == "" {
		return BranchScope{}, apperrors.ErrForbiddenScope
	}
	return BranchScope{BranchID: session.EffectiveBranchID}, nil
}

// AuthorizeBranch verifies that a write targeting the given branch falls
// inside the session's resolved scope.
func AuthorizeBranch(session *domain.Session, branchID string) error {
	scope, err := ResolveScope(session)
	if err != nil {
		return err
	}
	if !scope.Contains(branchID) {
		return apperrors.ErrForbiddenScope
	}
	return nil
}
