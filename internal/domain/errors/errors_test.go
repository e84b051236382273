package errors

import (
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessagePreservesIdentity(t *testing.T) {
	err := ErrInvalidCredentials.WrapMessage("login failed")

	// The wrap must stay matchable against the sentinel and still
	// expose the AppError contract for the HTTP error handler.
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	var appErr AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.ErrorCode())
	assert.Equal(t, "Invalid credentials", appErr.Message())
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("email is required")

	assert.Equal(t, "email is required", detailed.Details())
	assert.Empty(t, ErrValidationFailed.Details())
	assert.Equal(t, ErrValidationFailed.ErrorCode(), detailed.ErrorCode())
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := pkgerrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to create user")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Equal(t, "Internal server error", err.Message())
	assert.Equal(t, "failed to create user", err.Details())
	assert.Contains(t, err.Error(), "connection reset")
}
