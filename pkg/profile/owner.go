package profile

import "context"

// ownerKey is a private type for the owner context key, preventing
// collisions with other packages.
type ownerKey struct{}

// SetOwner injects the profile owner identifier into the context.
func SetOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// GetOwner extracts the profile owner identifier from the context.
// Returns an empty string if no owner is set.
func GetOwner(ctx context.Context) string {
	if v, ok := ctx.Value(ownerKey{}).(string); ok {
		return v
	}
	return ""
}
