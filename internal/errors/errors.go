package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a single field that violated a construction rule.
// Entities are never half-built: the first failing rule aborts construction.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Rule)
}

// AuthReason narrows an authentication failure.
type AuthReason string

const (
	// AuthUserNotFound means no user exists for the submitted email.
	AuthUserNotFound AuthReason = "user_not_found"
	// AuthBadCredentials means the password did not verify against the stored hash.
	AuthBadCredentials AuthReason = "bad_credentials"
)

// AuthError is returned when login fails. Exposing which reason applied leaks
// account existence; known weakness, kept for compatibility with existing
// clients.
type AuthError struct {
	Reason AuthReason
}

func (e *AuthError) Error() string {
	if e.Reason == AuthUserNotFound {
		return "user not found"
	}
	return "invalid credentials"
}

var (
	// ErrForbidden is returned when an entry belongs to a different user.
	// Ownership violations are never downgraded to not-found.
	ErrForbidden = errors.New("entry belongs to another user")
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("entry not found")
	// ErrConflict is returned when a unique constraint is violated, e.g. a
	// duplicate email at registration.
	ErrConflict = errors.New("email is already registered")
)

// OracleError wraps a failed or timed-out call to the price-estimation oracle.
// Raw oracle errors never propagate past this type.
type OracleError struct {
	Timeout bool
	Err     error
}

func (e *OracleError) Error() string {
	if e.Timeout {
		return "price oracle timed out"
	}
	return fmt.Sprintf("price oracle failed: %v", e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// StorageError wraps a generic persistence failure. The prediction pipeline
// uses it to tell "prediction computed but not recorded" apart from earlier
// failure stages.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failed: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. This is the only place
// taxonomy kinds meet transport status codes; core operations return the
// kinds above and nothing else.
func MapErrorToHTTP(err error) *HTTPError {
	var (
		validationErr *ValidationError
		authErr       *AuthError
		oracleErr     *OracleError
		storageErr    *StorageError
	)
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Error(), "VALIDATION_FAILED")
	case errors.As(err, &authErr):
		if authErr.Reason == AuthUserNotFound {
			return NewHTTPError(http.StatusUnauthorized, authErr.Error(), "USER_NOT_FOUND")
		}
		return NewHTTPError(http.StatusUnauthorized, authErr.Error(), "BAD_CREDENTIALS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "EMAIL_TAKEN")
	case errors.As(err, &oracleErr):
		if oracleErr.Timeout {
			return NewHTTPError(http.StatusInternalServerError, oracleErr.Error(), "ORACLE_TIMEOUT")
		}
		return NewHTTPError(http.StatusInternalServerError, "price oracle failed", "ORACLE_FAILED")
	case errors.As(err, &storageErr):
		return NewHTTPError(http.StatusInternalServerError, "could not persist record", "STORAGE_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
