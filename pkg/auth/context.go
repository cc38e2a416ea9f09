package auth

import (
	"context"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// IdentityKey is the context key under which middleware stores the caller
// identity.
const IdentityKey contextKey = "identity"

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, ident)
}

// GetIdentity retrieves the caller identity from the request context.
// Returns nil and false for anonymous requests.
func GetIdentity(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(IdentityKey).(*Identity)
	if !ok || ident == nil {
		return nil, false
	}
	return ident, true
}
