package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mirinai/goblog/apperror"
)

func newTestService() (*RegistrationService, Store) {
	store := NewMemStore()
	// MinCost keeps the tests fast; the production cost comes from config.
	return NewRegistrationService(store, bcrypt.MinCost, zap.NewNop().Sugar()), store
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	id, err := service.Register(ctx, "User@Example.com", "secret")
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Emails are stored lowercase.
	stored, err := store.GetByEmail(ctx, "user@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, "secret", stored.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("secret")))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, "user@example.com", "secret")
	require.NoError(t, err)

	_, err = service.Register(ctx, "user@example.com", "other")
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestAuthAdapterMapsUserDetails(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	id, err := service.Register(ctx, "user@example.com", "secret")
	require.NoError(t, err)

	details, err := NewAuthAdapter(store).LoadByEmail(ctx, "user@example.com")
	require.NoError(t, err)

	assert.Equal(t, id, details.ID)
	assert.Equal(t, "user@example.com", details.Email)
	assert.Equal(t, []string{"users"}, details.Authorities)
	assert.NotEmpty(t, details.PasswordHash)
}

func TestAuthAdapterUnknownEmail(t *testing.T) {
	_, store := newTestService()

	_, err := NewAuthAdapter(store).LoadByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
