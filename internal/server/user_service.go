package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mgarcia/jobscout/internal/config"
	"github.com/mgarcia/jobscout/internal/db"
)

// UserStore is the subset of the database the auth flow needs.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
}

// UserService provides registration and credential verification.
type UserService struct {
	store          UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(store UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{store: store, passwordConfig: passwordConfig}
}

// Register creates a new user with a hashed password and returns its ID.
func (s *UserService) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	passwordHash, err := s.passwordConfig.HashPassword(password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.store.CreateUser(ctx, email, passwordHash)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateEmail) {
			return uuid.Nil, &ErrEmailAlreadyExists{Email: email}
		}
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return userID, nil
}

// Authenticate verifies credentials and returns the user's ID. Unknown
// email and wrong password produce the same error, so login responses do
// not reveal which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (uuid.UUID, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !s.passwordConfig.VerifyPassword(password, user.PasswordHash) {
		return uuid.Nil, &ErrInvalidCredentials{}
	}
	return user.ID, nil
}
