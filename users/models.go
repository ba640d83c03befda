// Package users implements user accounts: the persisted user record, its
// stores, the registration service, and the signup form handler.
package users

import "time"

// User represents an account record. The password is stored only as a bcrypt
// hash, never serialized, and there is no exposed operation that updates or
// deletes a user once created.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Do not expose the hash
	CreatedAt      time.Time `json:"created_at"`
}
