package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/report"
	"github.com/diagnosis/patrol-checkpoints/pkg/auth"
	"github.com/diagnosis/patrol-checkpoints/pkg/logger"
)

// Envelope wraps every API response body.
type Envelope struct {
	OK      bool              `json:"ok"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeInvalidPeriod      = "INVALID_PERIOD"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInactive           = "ACCOUNT_INACTIVE"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeCheckpointNotFound = "CHECKPOINT_NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeGeofenceRejected   = "GEOFENCE_REJECTED"
	CodeRateLimit          = "RATE_LIMIT_EXCEEDED"
	CodeInternalError      = "INTERNAL_ERROR"
)

func write(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	write(w, statusCode, Envelope{OK: true, Data: data})
}

func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	write(w, statusCode, Envelope{Error: message, Code: code})
}

// WriteErrorWithDetails also carries per-field messages or a data payload.
func WriteErrorWithDetails(w http.ResponseWriter, statusCode int, message, code string, details map[string]string, data interface{}) {
	write(w, statusCode, Envelope{Error: message, Code: code, Details: details, Data: data})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message, CodeForbidden)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}

// FromError maps service errors to a status code and error code. Unknown errors are
// logged and answered with a generic 500.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	var v *domain.ValidationError
	switch {
	case errors.As(err, &v):
		WriteErrorWithDetails(w, http.StatusBadRequest, "validation failed", CodeInvalidInput, v.Fields, nil)
	case errors.Is(err, report.ErrInvalidPeriod):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidPeriod)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid username or password", CodeInvalidCredentials)
	case errors.Is(err, auth.ErrInvalidToken):
		WriteError(w, http.StatusUnauthorized, "invalid or expired token", CodeInvalidToken)
	case errors.Is(err, domain.ErrInactive):
		WriteError(w, http.StatusForbidden, "account is inactive", CodeInactive)
	case errors.Is(err, domain.ErrForbidden):
		WriteError(w, http.StatusForbidden, err.Error(), CodeForbidden)
	case errors.Is(err, domain.ErrCheckpointNotFound):
		WriteError(w, http.StatusNotFound, "checkpoint not found or inactive", CodeCheckpointNotFound)
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, "resource not found")
	case errors.Is(err, domain.ErrConflict):
		WriteError(w, http.StatusConflict, "resource already exists", CodeConflict)
	case errors.Is(err, domain.ErrRateLimited):
		RateLimit(w, "too many attempts, try again later")
	default:
		logger.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		InternalError(w, "internal server error")
	}
}
