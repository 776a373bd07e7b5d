package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taskvault/taskvault/internal/model"
)

// Common errors for user store operations.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// CreateUser inserts a new user and returns it with the generated id.
func (r *Repository) CreateUser(ctx context.Context, username string, hash, salt []byte) (*model.User, error) {
	query := `SELECT sp_users_create($1, $2, $3)`

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
	}

	err := r.pool.QueryRow(ctx, query, username, hash, salt).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUserByUsername retrieves a user by exact, case-sensitive username match.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, password_salt
		FROM sp_users_get_by_username($1)
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.PasswordSalt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by their id.
func (r *Repository) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, password_salt
		FROM sp_users_get_by_id($1)
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.PasswordSalt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// DeleteUser removes a user by id and returns the affected-row count.
func (r *Repository) DeleteUser(ctx context.Context, id int) (int64, error) {
	query := `SELECT sp_users_delete($1)`

	var affected int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&affected); err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	return affected, nil
}
