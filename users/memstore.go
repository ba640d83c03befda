package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mirinai/goblog/apperror"
)

// MemStore is an in-memory Store with the same error contract as the
// PostgreSQL one. It backs the tests and the database-free storage mode.
type MemStore struct {
	mu      sync.RWMutex
	byEmail map[string]User
	nextID  int64
}

// NewMemStore creates an empty in-memory user store.
func NewMemStore() *MemStore {
	return &MemStore{
		byEmail: make(map[string]User),
		nextID:  1,
	}
}

// Create stores a copy of the user, enforcing email uniqueness.
func (s *MemStore) Create(_ context.Context, user *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return nil, apperror.NewConflictError("email already exists", nil)
	}

	stored := *user
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	s.nextID++
	s.byEmail[stored.Email] = stored

	out := stored
	return &out, nil
}

// GetByEmail returns a copy of the user with the given email.
func (s *MemStore) GetByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("user with email '%s' not found", email), nil)
	}
	out := user
	return &out, nil
}
