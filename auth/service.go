package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mirinai/goblog/apperror"
)

// Service checks submitted credentials against the user store.
type Service struct {
	source UserDetailsSource
}

// NewService creates an authentication Service over the given details source.
func NewService(source UserDetailsSource) *Service {
	return &Service{source: source}
}

// Authenticate verifies an email/password pair and returns the resulting
// Principal. An unknown email and a wrong password both produce the same
// "invalid credentials" error, so a caller cannot probe which one was wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Principal, error) {
	details, err := s.source.LoadByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(details.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}

	return &Principal{
		UserID:      details.ID,
		Email:       details.Email,
		Authorities: details.Authorities,
	}, nil
}
