package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mirinai/goblog/apperror"
)

// stubSource serves a single account, the way the user store adapter does.
type stubSource struct {
	details UserDetails
}

func (s *stubSource) LoadByEmail(_ context.Context, email string) (*UserDetails, error) {
	if email != s.details.Email {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	out := s.details
	return &out, nil
}

func newStubSource(t *testing.T, email, password string) *stubSource {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &stubSource{details: UserDetails{
		ID:           7,
		Email:        email,
		PasswordHash: string(hash),
		Authorities:  []string{"users"},
	}}
}

func TestAuthenticateSuccess(t *testing.T) {
	service := NewService(newStubSource(t, "user@example.com", "secret"))

	principal, err := service.Authenticate(context.Background(), "User@Example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, int64(7), principal.UserID)
	assert.Equal(t, "user@example.com", principal.Email)
	assert.Equal(t, []string{"users"}, principal.Authorities)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	service := NewService(newStubSource(t, "user@example.com", "secret"))
	ctx := context.Background()

	_, unknownErr := service.Authenticate(ctx, "nobody@example.com", "secret")
	require.Error(t, unknownErr)
	assert.True(t, apperror.IsAuthError(unknownErr))

	_, wrongErr := service.Authenticate(ctx, "user@example.com", "wrong")
	require.Error(t, wrongErr)
	assert.True(t, apperror.IsAuthError(wrongErr))

	// Same message either way, so a caller cannot enumerate accounts.
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}
