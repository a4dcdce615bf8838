package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careergenie/careergenie-api/internal/domain"
	"github.com/careergenie/careergenie-api/internal/service/auth"
	"github.com/careergenie/careergenie-api/internal/store"
)

// UserService provides account registration and authentication.
type UserService interface {
	// Register creates a new user with the given email and password.
	// Returns store.ErrEmailExists if the email is already taken and
	// domain validation errors for a bad email or password.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate verifies an email/password pair and returns the user.
	// Returns ErrInvalidCredentials for an unknown email or wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, verifier auth.PasswordVerifier, logger *slog.Logger) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
	}
}

// Register creates a new user with the specified email and password.
// Password hashing happens in the store layer as part of Create.
func (s *UserServiceImpl) Register(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Debug("rejected invalid registration",
			"error", err,
			"email", email)
		return nil, err
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register existing email",
				"email", email)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"email", email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// Authenticate verifies the email/password pair against the stored hash.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email",
				"email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user by email",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Debug("user authenticated",
		"user_id", user.ID)

	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}
