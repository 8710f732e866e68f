package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Game profile errors
	ErrGameProfileNotFound = errors.New("game profile not found")

	// Payment method errors
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrPaymentMethodInactive = errors.New("payment method is inactive")

	// Team errors
	ErrTeamNotFound    = errors.New("team not found")
	ErrAlreadyInTeam   = errors.New("user is already a team member")
	ErrNotInTeam       = errors.New("user is not a team member")
	ErrInvalidJoinCode = errors.New("invalid team join code")

	// Storage errors
	// ErrConflict is returned when a concurrent write interfered with an
	// atomic collection update; the caller should retry the operation.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrIntegrityViolation is returned when a read observes more than one
	// primary item in an owner's collection. It indicates a data-integrity
	// bug and is never masked by picking an arbitrary item.
	ErrIntegrityViolation = errors.New("multiple primary items for owner")
)
