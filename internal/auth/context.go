package auth

import "context"

// Identity is the authenticated caller, established once per request by
// token validation. There are no further state transitions.
type Identity struct {
	UserID   int
	Username string
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const identityKey contextKey = "identity"

// ContextWithIdentity adds the caller identity to the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext retrieves the caller identity from the context.
// Returns nil if not present.
func IdentityFromContext(ctx context.Context) *Identity {
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok {
		return nil
	}
	return id
}

// UserIDFromContext is a convenience accessor for the caller's user id.
// Returns 0 if not authenticated.
func UserIDFromContext(ctx context.Context) int {
	id := IdentityFromContext(ctx)
	if id == nil {
		return 0
	}
	return id.UserID
}
