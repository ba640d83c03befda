package users

import "context"

// Store is the persistence boundary for user records. Email uniqueness is a
// store-level invariant: Create returns apperror.ConflictError when the email
// is already taken, and GetByEmail returns apperror.NotFoundError for an
// unknown email.
type Store interface {
	// Create persists a new user and returns it with its assigned id.
	Create(ctx context.Context, user *User) (*User, error)
	// GetByEmail looks a user up by their unique email.
	GetByEmail(ctx context.Context, email string) (*User, error)
}
