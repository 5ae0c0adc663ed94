package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Session and authentication errors.
var (
	// ErrInvalidCredentials indicates an email/password mismatch during login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidCode indicates a second-factor code mismatch.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrSessionExpired indicates that no live session or provisional identity
	// exists for the attempted operation.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidOrExpiredToken indicates a password-reset token that is unknown,
	// already consumed, or past its expiry.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrForbiddenScope indicates an operation targeting a branch outside the
	// session's resolved branch scope.
	ErrForbiddenScope = errors.New("branch outside permitted scope")

	// ErrTooManyAttempts indicates the per-subject authentication attempt limit
	// was reached.
	ErrTooManyAttempts = errors.New("too many attempts")
)

// Ledger errors.
var (
	// ErrAccountNotFound indicates a finance transaction referencing an unknown account.
	ErrAccountNotFound = errors.New("finance account not found")

	// ErrItemNotFound indicates a stock movement referencing an unknown inventory item.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrInvalidAmount indicates a non-positive monetary amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidQuantity indicates a non-positive stock movement quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrOverPayment indicates a debt payment that would drive the paid amount
	// beyond the debt amount.
	ErrOverPayment = errors.New("payment exceeds remaining debt")
)

// ErrInvalidTransition indicates a status change out of a terminal state.
var ErrInvalidTransition = errors.New("invalid status transition")
