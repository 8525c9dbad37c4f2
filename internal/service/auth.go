// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Handlers only know HTTP; services only know business rules and return
// apperror values; repositories only know SQL. Services receive repository
// INTERFACES, so tests swap in fakes with plain Go function calls — no HTTP
// requests, no database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/todo-api/internal/apperror"
	"github.com/sakif/todo-api/internal/auth"
	"github.com/sakif/todo-api/internal/model"
	"github.com/sakif/todo-api/internal/repository"
)

// AuthService handles registration, login, and current-user lookup.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users     repository.UserRepository → read/write user records
//   - tokens    *auth.TokenService        → issue/validate JWTs
//   - passwords *auth.PasswordService     → bcrypt hashing
//   - logger    *slog.Logger              → structured logging
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
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

// AuthResult is returned by Register and Login — the token plus the display
// fields the client shows after signing in. ExpiresAt is the exact expiry
// instant embedded in the token.
type AuthResult struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register creates a new account and signs the user in.
//
// FLOW:
//  1. Validate all fields (collects every field error in one response)
//  2. Normalize the email — "  Bob@Example.COM " and "bob@example.com" are
//     the same account
//  3. Reject if the email is taken (the DB's UNIQUE constraint backs this
//     up against concurrent registrations)
//  4. Hash the password, store the user, issue a token
//
// The plaintext password exists only in this call frame; it is never stored
// or logged.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*AuthResult, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, apperror.ValidationFailed(errs)
	}

	email := model.NormalizeEmail(req.Email)

	// Duplicate check. GetByEmail returning ErrNotFound is the happy path
	// here; any other error is a real database failure.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("a user with this email already exists")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("service/auth: checking email availability: %w", err)
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The UNIQUE constraint may fire even though the pre-check passed
		// (two concurrent registrations). Let the conflict through as-is.
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("email", user.Email),
	)

	return s.issueToken(user)
}

// Login verifies credentials and signs the user in.
//
// INFORMATION-LEAK AVOIDANCE:
// "No such email", "account deactivated", and "wrong password" all return
// the SAME apperror.InvalidCredentials() — identical status, title, and
// detail. An attacker probing the login endpoint learns nothing about which
// emails are registered.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*AuthResult, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, apperror.ValidationFailed(errs)
	}

	user, err := s.users.GetByEmail(ctx, model.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if !user.IsActive {
		return nil, apperror.InvalidCredentials()
	}

	if err := s.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		return nil, apperror.InvalidCredentials()
	}

	s.logger.Info("user logged in", slog.Int64("userID", user.ID))

	return s.issueToken(user)
}

// GetUserByID returns the user record for a validated token's subject.
//
// Used by GET /api/auth/me after the middleware extracts the user ID. The
// user may have been deleted since the token was issued — that surfaces as
// not-found, not as an auth failure.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service/auth: fetching user %d: %w", id, err)
	}
	return user, nil
}

// issueToken generates a JWT for the user and bundles the auth response.
// Register and Login responses are identical in shape by construction.
func (s *AuthService) issueToken(user *model.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	return &AuthResult{
		Token:     token,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ExpiresAt: expiresAt,
	}, nil
}
