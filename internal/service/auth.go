// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/metrics"
	"github.com/taskvault/taskvault/internal/model"
	"github.com/taskvault/taskvault/internal/repository"
)

// Service errors.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so the response shape cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingCredentials = errors.New("username and password are required")
)

// UserStore is the persistence contract the auth service depends on.
type UserStore interface {
	CreateUser(ctx context.Context, username string, hash, salt []byte) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	DeleteUser(ctx context.Context, id int) (int64, error)
}

// AuthService handles registration, login and account removal.
type AuthService struct {
	users   UserStore
	tokens  *auth.TokenIssuer
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *auth.TokenIssuer, recorder metrics.Recorder) *AuthService {
	return &AuthService{users: users, tokens: tokens, metrics: recorder}
}

// Register hashes the password and persists a new user.
// Usernames are matched case-sensitively: "Alice" and "alice" are distinct.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("register lookup: %w", err)
	}

	hash, salt, err := auth.CreateHash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, hash, salt)
	if err != nil {
		// Lost a race with a concurrent registration of the same name.
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.IncUserRegistered()
	return user, nil
}

// Login verifies credentials and issues a bearer token. An absent user and a
// failed password check produce the identical error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailure()
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login lookup: %w", err)
	}

	if !auth.VerifyHash(password, user.PasswordHash, user.PasswordSalt) {
		s.metrics.IncLoginFailure()
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()
	return token, nil
}

// DeleteUser removes a user by id. Any authenticated caller may delete any
// user; the endpoint intentionally mirrors the original behavior and carries
// no ownership check.
func (s *AuthService) DeleteUser(ctx context.Context, id int) error {
	affected, err := s.users.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	s.metrics.IncUserDeleted()
	return nil
}
