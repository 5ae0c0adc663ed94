package dto

import "github.com/tableside/backoffice/internal/core/domain"

// LoginRequest carries the credentials presented at login.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResult signals either a materialized session or a pending second-factor
// challenge. When RequiresSecondFactor is set, Session is nil and the caller
// must present ChallengeToken together with the delivered code.
type LoginResult struct {
	RequiresSecondFactor bool            `json:"requiresSecondFactor"`
	ChallengeToken       string          `json:"challengeToken,omitempty"`
	Session              *domain.Session `json:"session,omitempty"`
}

// VerifyCodeRequest carries the second-factor code for a pending challenge.
type VerifyCodeRequest struct {
	ChallengeToken string `json:"challengeToken" validate:"required"`
	Code           string `json:"code" validate:"required,len=6,numeric"`
	RememberMe     bool   `json:"rememberMe"`
}

// ResetPasswordRequest consumes a reset token and sets a fresh credential.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
