package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eytgaming/eytgaming/internal/model"
	"github.com/eytgaming/eytgaming/internal/services/account"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeForbidden              = "FORBIDDEN"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeGameProfileNotFound    = "GAME_PROFILE_NOT_FOUND"
	CodePaymentMethodNotFound  = "PAYMENT_METHOD_NOT_FOUND"
	CodePaymentMethodInactive  = "PAYMENT_METHOD_INACTIVE"
	CodeTeamNotFound           = "TEAM_NOT_FOUND"
	CodeAlreadyInTeam          = "ALREADY_IN_TEAM"
	CodeNotInTeam              = "NOT_IN_TEAM"
	CodeInvalidJoinCode        = "INVALID_JOIN_CODE"
	CodeUsernameExists         = "USERNAME_EXISTS"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeConflict               = "CONFLICT"
	CodeIntegrityViolation     = "INTEGRITY_VIOLATION"
	CodeInternalError          = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrGameProfileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameProfileNotFound, "Game profile not found"}}
	case errors.Is(err, model.ErrPaymentMethodNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePaymentMethodNotFound, "Payment method not found"}}
	case errors.Is(err, model.ErrPaymentMethodInactive):
		return &httpError{http.StatusConflict, APIError{CodePaymentMethodInactive, "Payment method is inactive"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrAlreadyInTeam):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInTeam, "Already a member of this team"}}
	case errors.Is(err, model.ErrNotInTeam):
		return &httpError{http.StatusNotFound, APIError{CodeNotInTeam, "Not a member of this team"}}
	case errors.Is(err, model.ErrInvalidJoinCode):
		return &httpError{http.StatusNotFound, APIError{CodeInvalidJoinCode, "No team with that join code"}}
	case errors.Is(err, model.ErrConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Concurrent update conflict, retry the request"}}
	case errors.Is(err, model.ErrIntegrityViolation):
		return &httpError{http.StatusInternalServerError, APIError{CodeIntegrityViolation, "Data integrity violation"}}

	// Map account errors
	case errors.Is(err, account.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, account.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, account.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
