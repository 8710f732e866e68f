package handler

import (
	"net/http"

	"github.com/eytgaming/eytgaming/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest        = apierr.CodeInvalidRequest
	CodeUnauthorized          = apierr.CodeUnauthorized
	CodeForbidden             = apierr.CodeForbidden
	CodeUserNotFound          = apierr.CodeUserNotFound
	CodeGameProfileNotFound   = apierr.CodeGameProfileNotFound
	CodePaymentMethodNotFound = apierr.CodePaymentMethodNotFound
	CodePaymentMethodInactive = apierr.CodePaymentMethodInactive
	CodeTeamNotFound          = apierr.CodeTeamNotFound
	CodeAlreadyInTeam         = apierr.CodeAlreadyInTeam
	CodeNotInTeam             = apierr.CodeNotInTeam
	CodeInvalidJoinCode       = apierr.CodeInvalidJoinCode
	CodeUsernameExists        = apierr.CodeUsernameExists
	CodeInvalidCredentials    = apierr.CodeInvalidCredentials
	CodeConflict              = apierr.CodeConflict
	CodeIntegrityViolation    = apierr.CodeIntegrityViolation
	CodeInternalError         = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return apierr.NewForbiddenError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
