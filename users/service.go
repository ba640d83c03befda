package users

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegistrationService creates new user accounts. The bcrypt cost is taken
// from configuration at construction time; the hash is the only form in
// which a password ever reaches the store.
type RegistrationService struct {
	store      Store
	bcryptCost int
	logger     *zap.SugaredLogger
}

// NewRegistrationService creates a RegistrationService.
func NewRegistrationService(store Store, bcryptCost int, logger *zap.SugaredLogger) *RegistrationService {
	return &RegistrationService{store: store, bcryptCost: bcryptCost, logger: logger}
}

// Register hashes the password, persists the user, and returns the generated
// id. Emails are stored lowercase so uniqueness is case-insensitive in
// practice. A duplicate email propagates as the store's ConflictError.
func (s *RegistrationService) Register(ctx context.Context, email, password string) (int64, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Email:          strings.ToLower(email),
		HashedPassword: string(hashed),
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		s.logger.Errorw("failed to register user", "email", user.Email, "error", err)
		return 0, err
	}

	s.logger.Infow("user registered", "user_id", created.ID)
	return created.ID, nil
}
