package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/metrics"
	"github.com/taskvault/taskvault/internal/model"
	"github.com/taskvault/taskvault/internal/repository"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	users  map[string]*model.User
	nextID int
	err    error // forced store fault
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, username string, hash, salt []byte) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.users[username]; ok {
		return nil, repository.ErrUsernameTaken
	}
	user := &model.User{ID: f.nextID, Username: username, PasswordHash: hash, PasswordSalt: salt}
	f.nextID++
	f.users[username] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	for username, user := range f.users {
		if user.ID == id {
			delete(f.users, username)
			return 1, nil
		}
	}
	return 0, nil
}

func newAuthService(store *fakeUserStore) *AuthService {
	tokens := auth.NewTokenIssuer(auth.TokenConfig{
		Secret: []byte("test-secret"),
		TTL:    time.Hour,
	})
	return NewAuthService(store, tokens, metrics.NewNoop())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("registered user should have a generated id")
	}

	// Stored hash and salt are non-empty and distinct from the plaintext.
	stored, err := store.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if len(stored.PasswordHash) == 0 || len(stored.PasswordSalt) == 0 {
		t.Error("stored hash and salt should be non-empty")
	}
	if bytes.Equal(stored.PasswordHash, []byte("s3cret")) {
		t.Error("password must not be stored as plaintext")
	}

	token, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Error("login should return a token")
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	if _, err := svc.Register(ctx, "alice", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_RegisterCaseSensitive(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Exact-match semantics: a different casing is a different account.
	if _, err := svc.Register(ctx, "Alice", "pw"); err != nil {
		t.Errorf("differently-cased username should register, got %v", err)
	}
}

func TestAuthService_RegisterMissingFields(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "pw"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials for empty username, got %v", err)
	}
	if _, err := svc.Register(ctx, "alice", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials for empty password, got %v", err)
	}
}

func TestAuthService_LoginFailuresAreUniform(t *testing.T) {
	t.Parallel()

	svc := newAuthService(newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "rightpw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, unknownErr := svc.Login(ctx, "nobody", "whatever")
	_, wrongPwErr := svc.Login(ctx, "alice", "wrongpw")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown username should fail with ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPwErr, ErrInvalidCredentials) {
		t.Errorf("wrong password should fail with ErrInvalidCredentials, got %v", wrongPwErr)
	}
	// Identical error values, so the caller cannot tell the cases apart.
	if unknownErr.Error() != wrongPwErr.Error() {
		t.Error("both login failures must be indistinguishable")
	}
}

func TestAuthService_DeleteUser(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := newAuthService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "pw")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if err := svc.DeleteUser(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("deleting an absent user should fail with ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_StoreFaultPropagates(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	store.err = errors.New("connection refused")
	svc := newAuthService(store)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "alice", "pw"); errors.Is(err, ErrInvalidCredentials) {
		t.Error("a store fault must not be reported as bad credentials")
	} else if err == nil {
		t.Error("expected a propagated store fault")
	}
}
