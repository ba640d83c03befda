package users

import (
	"context"

	"github.com/mirinai/goblog/auth"
)

// defaultAuthority is the fixed role granted to every account; there is no
// role management in this system.
const defaultAuthority = "users"

// detailsAdapter maps the persisted user record into the shape the
// authentication pipeline consumes. Keeping this mapping out of the entity
// means the stored shape and the security pipeline's expected shape can
// evolve independently.
type detailsAdapter struct {
	store Store
}

// NewAuthAdapter wraps a user Store as an auth.UserDetailsSource.
func NewAuthAdapter(store Store) auth.UserDetailsSource {
	return &detailsAdapter{store: store}
}

// LoadByEmail loads a user and converts it to auth.UserDetails. A missing
// user propagates the store's NotFoundError, which the auth service folds
// into a generic credentials failure.
func (a *detailsAdapter) LoadByEmail(ctx context.Context, email string) (*auth.UserDetails, error) {
	user, err := a.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &auth.UserDetails{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.HashedPassword,
		Authorities:  []string{defaultAuthority},
	}, nil
}
