// Package auth is responsible for authentication and authorization: checking
// credentials against the user store, managing browser sessions, and
// enforcing the route-level security policy.
package auth

import "context"

// Principal is the authenticated identity attached to a session. It is a
// plain record, deliberately decoupled from the persisted user shape: the
// users package maps its entity into UserDetails, and the login pipeline maps
// that into a Principal.
type Principal struct {
	UserID      int64
	Email       string
	Authorities []string
}

// UserDetails is the shape the credential-checking pipeline consumes: the
// stored password hash plus the identity fields needed to build a Principal.
// The persisted user entity never implements this directly; an adapter in the
// users package produces it.
type UserDetails struct {
	ID           int64
	Email        string
	PasswordHash string
	Authorities  []string
}

// UserDetailsSource loads the details for a login attempt by email. A missing
// email is reported as apperror.NotFoundError; the authentication service
// folds that into the same failure as a wrong password so callers cannot
// distinguish the two.
type UserDetailsSource interface {
	LoadByEmail(ctx context.Context, email string) (*UserDetails, error)
}
