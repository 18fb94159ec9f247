package auth

import (
	"context"
	"errors"
	"net/http"
)

// Decision represents the three possible outcomes of session resolution.
type Decision int

const (
	// Yes means the session is valid. The chain stops and the identity is used.
	Yes Decision = iota

	// No means a credential is present but invalid. The chain stops and
	// the request is rejected.
	No

	// Abstain means this provider cannot handle the credential type.
	// The chain continues to the next provider.
	Abstain
)

// Result carries the outcome of a session resolution attempt.
type Result struct {
	Decision Decision
	Identity *Identity // populated only when Decision == Yes
	Err      error     // populated only when Decision == No
}

// Identity represents an authenticated caller together with the bearer
// credential forwarded to the upstream backend on the caller's behalf.
type Identity struct {
	// Subject is the unique user identifier (required, non-empty).
	Subject string

	// Credential is the bearer token forwarded upstream. It is valid
	// only for the lifetime of the inbound request. When empty the
	// caller is authenticated but no upstream call may be attempted.
	Credential string
}

// SessionProvider examines request cookies or headers and returns a
// three-outcome vote.
type SessionProvider interface {
	Resolve(ctx context.Context, r *http.Request) Result
}

// Failure messages. The two 401 variants are deliberately distinct:
// "Unauthorized" means no authenticated user, "No session token" means
// the user is known but the session carries nothing forwardable.
var (
	ErrUnauthorized   = errors.New("Unauthorized")
	ErrNoSessionToken = errors.New("No session token")
)

// Chain evaluates session providers in order. It stops on the first
// Yes or No; when every provider abstains the request is rejected
// with ErrUnauthorized.
type Chain struct {
	Providers []SessionProvider
}

// Resolve runs the chain exactly once per request. No retries: session
// resolution is a single lookup.
func (c *Chain) Resolve(ctx context.Context, r *http.Request) Result {
	for _, p := range c.Providers {
		result := p.Resolve(ctx, r)
		if result.Decision != Abstain {
			return result
		}
	}
	return Result{Decision: No, Err: ErrUnauthorized}
}
