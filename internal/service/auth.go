// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes the database
//
// Handlers know HTTP and nothing else. Services know the rules and nothing
// about transport or SQL. Repositories know SQL and nothing about the rules.
// Each service takes its repository as an INTERFACE, so tests swap in mocks
// and the storage backend can change without touching business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pawhaus/dog-adoption/internal/apperror"
	"github.com/pawhaus/dog-adoption/internal/auth"
	"github.com/pawhaus/dog-adoption/internal/model"
	"github.com/pawhaus/dog-adoption/internal/repository"
)

// MinPasswordLength is the floor for new account passwords.
// The ceiling (72 bytes) is bcrypt's own limit, enforced in auth.PasswordService.
const MinPasswordLength = 8

// AuthService handles registration and login.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users     repository.UserRepository → read/write user records
//   - tokens    *auth.TokenService        → issue JWTs on login
//   - passwords *auth.PasswordService     → bcrypt hashing/verification
//   - logger    *slog.Logger              → structured logging
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account.
//
// No token is issued here — registration and login are separate steps, and
// the client logs in afterwards. Fails with a validation error on missing
// or too-short credentials and with a conflict error on a taken username
// (the UNIQUE constraint in the store is the authority on uniqueness).
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)

	if username == "" {
		return apperror.ValidationFailed("username", "username is required")
	}
	if password == "" {
		return apperror.ValidationFailed("password", "password is required")
	}
	if len(password) < MinPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		// Hash only fails on over-long input (>72 bytes) or a broken cost —
		// the former is caller input, so report it as validation.
		return apperror.ValidationFailed("password", "password must be 72 bytes or fewer")
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return err // already a proper apperror (conflict) or wrapped DB error
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// Login verifies credentials and returns a signed token on success.
//
// WHY ONE ERROR FOR BOTH FAILURE MODES?
// An unknown username and a wrong password both come back as the same
// "Invalid credentials" unauthorized error. Distinguishing them would let
// an attacker enumerate which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", apperror.Unauthorized("Invalid credentials")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.Unauthorized("Invalid credentials")
		}
		return "", fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return "", apperror.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return token, nil
}
