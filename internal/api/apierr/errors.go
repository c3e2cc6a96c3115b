package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tilematch/backend/internal/model"
	"github.com/tilematch/backend/internal/services/identity"
	"github.com/tilematch/backend/internal/services/ingest"
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
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidLevel        = "INVALID_LEVEL"
	CodeInvalidProgress     = "INVALID_PROGRESS"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeProgressNotFound    = "PROGRESS_NOT_FOUND"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeAchievementNotFound = "ACHIEVEMENT_NOT_FOUND"
	CodeThemeNotFound       = "THEME_NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeEmailExists         = "EMAIL_EXISTS"
	CodeStoreUnavailable    = "STORE_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
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

	var ve *ingest.ValidationError
	if errors.As(err, &ve) {
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, ve.Error()}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidLevelNumber):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLevel, "Level number out of range"}}
	case errors.Is(err, model.ErrInvalidProgress):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidProgress, "Progress must be between 0 and 100"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrLevelProgressNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProgressNotFound, "Level progress not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Arcade session not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrAchievementNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAchievementNotFound, "Achievement not found"}}
	case errors.Is(err, model.ErrThemeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeThemeNotFound, "Theme not found"}}

	// Map identity errors
	case errors.Is(err, identity.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}
	case errors.Is(err, identity.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, identity.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}

	// A timed-out or cancelled store call is a transient outage, not a
	// server bug
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeStoreUnavailable, "Store temporarily unavailable"}}

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

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
