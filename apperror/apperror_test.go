package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NewDatabaseError("db", nil), http.StatusInternalServerError},
		{NewConfigError("config", nil), http.StatusInternalServerError},
		{NewInternalError("internal", nil), http.StatusInternalServerError},
		{NewMigrationError("migration", nil), http.StatusInternalServerError},
		{NewAuthError("auth", nil), http.StatusUnauthorized},
		{NewNotFoundError("missing", nil), http.StatusNotFound},
		{NewValidationError("invalid", nil), http.StatusBadRequest},
		{NewBadRequestError("bad", nil), http.StatusBadRequest},
		{NewConflictError("conflict", nil), http.StatusConflict},
		{NewAppError(UnknownError, "unknown", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestErrorIncludesUnderlying(t *testing.T) {
	underlying := errors.New("connection refused")
	err := NewDatabaseError("failed to query articles", underlying)

	assert.Equal(t, "failed to query articles: connection refused", err.Error())
	assert.Equal(t, underlying, errors.Unwrap(err))

	bare := NewNotFoundError("article not found: 7", nil)
	assert.Equal(t, "article not found: 7", bare.Error())
}

func TestToResponseHidesUnderlying(t *testing.T) {
	err := NewDatabaseError("failed to query articles", errors.New("dsn=postgres://secret"))
	assert.Equal(t, ErrorResponse{Error: "failed to query articles"}, err.ToResponse())
}

func TestFromError(t *testing.T) {
	appErr, ok := FromError(NewConflictError("email already exists", nil))
	require.True(t, ok)
	assert.Equal(t, ConflictError, appErr.Type)

	// AppErrors are found through fmt.Errorf wrapping.
	wrapped := fmt.Errorf("register: %w", NewConflictError("email already exists", nil))
	appErr, ok = FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ConflictError, appErr.Type)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)
	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestPredicatesThroughWrapping(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", NewNotFoundError("missing", nil))))
	assert.True(t, IsAuthError(fmt.Errorf("login: %w", NewAuthError("invalid credentials", nil))))
	assert.True(t, IsValidationError(fmt.Errorf("insert: %w", NewValidationError("empty title", nil))))
	assert.True(t, IsConflict(fmt.Errorf("create: %w", NewConflictError("duplicate", nil))))

	assert.False(t, IsNotFound(NewConflictError("duplicate", nil)))
	assert.False(t, IsAuthError(errors.New("plain")))
	assert.False(t, IsConflict(nil))
}
