package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "validation error",
			err:            &ValidationError{Field: "accomodates", Rule: "positive"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_FAILED",
		},
		{
			name:           "unknown user",
			err:            &AuthError{Reason: AuthUserNotFound},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "USER_NOT_FOUND",
		},
		{
			name:           "wrong password",
			err:            &AuthError{Reason: AuthBadCredentials},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "BAD_CREDENTIALS",
		},
		{
			name:           "foreign entry",
			err:            ErrForbidden,
			expectedStatus: http.StatusForbidden,
			expectedCode:   "FORBIDDEN",
		},
		{
			name:           "missing entry",
			err:            ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:           "duplicate email",
			err:            ErrConflict,
			expectedStatus: http.StatusConflict,
			expectedCode:   "EMAIL_TAKEN",
		},
		{
			name:           "oracle timeout",
			err:            &OracleError{Timeout: true},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "ORACLE_TIMEOUT",
		},
		{
			name:           "oracle failure",
			err:            &OracleError{Err: fmt.Errorf("boom")},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "ORACLE_FAILED",
		},
		{
			name:           "storage failure",
			err:            &StorageError{Op: "create entry", Err: fmt.Errorf("gone")},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "STORAGE_FAILED",
		},
		{
			name:           "anything else",
			err:            fmt.Errorf("surprise"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_WrappedKindsSurvive(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", &StorageError{Op: "list entries", Err: fmt.Errorf("timeout")})
	assert.Equal(t, "STORAGE_FAILED", MapErrorToHTTP(wrapped).Code)

	wrapped = fmt.Errorf("handling request: %w", ErrForbidden)
	assert.Equal(t, "FORBIDDEN", MapErrorToHTTP(wrapped).Code)
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := fmt.Errorf("connection lost")
	err := &StorageError{Op: "create entry", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "create entry")
}
