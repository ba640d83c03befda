package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCreateAndGet(t *testing.T) {
	store := NewSessionStore(time.Hour)
	defer store.Close()

	session, err := store.Create(Principal{UserID: 1, Email: "user@example.com"})
	require.NoError(t, err)
	assert.Len(t, session.Token, 64) // 32 random bytes, hex encoded

	principal, ok := store.Get(session.Token)
	require.True(t, ok)
	assert.Equal(t, int64(1), principal.UserID)
	assert.Equal(t, "user@example.com", principal.Email)
}

func TestSessionTokensAreUnique(t *testing.T) {
	store := NewSessionStore(time.Hour)
	defer store.Close()

	first, err := store.Create(Principal{UserID: 1})
	require.NoError(t, err)
	second, err := store.Create(Principal{UserID: 1})
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 2, store.Count())
}

func TestSessionExpiry(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)
	defer store.Close()

	session, err := store.Create(Principal{UserID: 1})
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, ok := store.Get(session.Token)
	assert.False(t, ok)
	// The expired session is removed on lookup, not left for the sweeper.
	assert.Equal(t, 0, store.Count())
}

func TestSessionDestroy(t *testing.T) {
	store := NewSessionStore(time.Hour)
	defer store.Close()

	session, err := store.Create(Principal{UserID: 1})
	require.NoError(t, err)

	store.Destroy(session.Token)
	_, ok := store.Get(session.Token)
	assert.False(t, ok)

	// Destroying again is a no-op.
	store.Destroy(session.Token)
}

func TestSessionUnknownToken(t *testing.T) {
	store := NewSessionStore(time.Hour)
	defer store.Close()

	_, ok := store.Get("no-such-token")
	assert.False(t, ok)
}

func TestSessionSweep(t *testing.T) {
	store := NewSessionStore(time.Nanosecond)
	defer store.Close()

	_, err := store.Create(Principal{UserID: 1})
	require.NoError(t, err)
	_, err = store.Create(Principal{UserID: 2})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)
	store.sweep()

	assert.Equal(t, 0, store.Count())
}
