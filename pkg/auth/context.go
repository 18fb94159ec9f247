package auth

import "context"

// identityKey is a private type for the identity context key.
type identityKey struct{}

// SetIdentity stores the resolved identity in the context.
func SetIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext retrieves the resolved identity.
// Returns nil if no identity is set (unauthenticated request).
func IdentityFromContext(ctx context.Context) *Identity {
	if v, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return v
	}
	return nil
}
