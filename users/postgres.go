package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mirinai/goblog/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations, raised by the unique index on users.email.
const pgUniqueViolation = "23505"

// PostgresStore persists users in the users table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a new user. A duplicate email surfaces as a ConflictError
// straight from the unique index; there is no pre-check.
func (s *PostgresStore) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (email, password)
	          VALUES ($1, $2)
	          RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, user.Email, user.HashedPassword).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("email already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// GetByEmail returns the user with the given email, including the password
// hash for the credential-checking pipeline.
func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, email, password, created_at FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with email '%s' not found", email), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by email", err)
	}
	return &user, nil
}
