// Package testutil provides helpers for integration tests that need a real
// database or Redis instance. Tests calling these helpers skip themselves
// when the backing service is not configured.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taskvault/taskvault/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 730731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// applyMigration runs a migration file by name against the pool.
func applyMigration(ctx context.Context, pool *pgxpool.Pool, name string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	sql, err := os.ReadFile(filepath.Join(root, "migrations", name))
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	return nil
}

// ResetSchemas drops and recreates the users and todos schemas for tests.
// Todos reference users, so the drops run in reverse migration order.
func ResetSchemas(ctx context.Context, pool *pgxpool.Pool) error {
	steps := []string{
		"000002_todos.down.sql",
		"000001_users.down.sql",
		"000001_users.up.sql",
		"000002_todos.up.sql",
	}
	for _, name := range steps {
		if err := applyMigration(ctx, pool, name); err != nil {
			return err
		}
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// NewTestUser creates a test user with sensible defaults. The hash and salt
// are placeholders, not real password material.
func NewTestUser(t testing.TB, username string) *model.User {
	t.Helper()
	now := time.Now().UnixNano()
	return &model.User{
		Username:     username,
		PasswordHash: []byte(fmt.Sprintf("hash-%d", now)),
		PasswordSalt: []byte(fmt.Sprintf("salt-%d", now)),
	}
}

// NewTestTodo creates a test todo owned by the given user.
func NewTestTodo(t testing.TB, ownerID int, task string) *model.Todo {
	t.Helper()
	return &model.Todo{
		Task:       task,
		AssignedTo: ownerID,
	}
}

// UniqueUsername generates a unique username for tests.
func UniqueUsername(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
