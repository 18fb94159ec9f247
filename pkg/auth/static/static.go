// Package static provides a SessionProvider that validates bearer
// tokens against a static table using SHA-256 hashing and
// constant-time comparison. Intended for development and tests.
package static

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/pathlight-ai/pathlight/pkg/auth"
)

// Entry maps a token hash to an identity.
type Entry struct {
	TokenHash [32]byte
	Identity  auth.Identity
}

// RawEntry is the configuration format for static tokens. Credential
// may be empty, in which case the caller is authenticated but proxy
// routes will fail with "No session token".
type RawEntry struct {
	Token      string
	Subject    string
	Credential string
}

// Provider validates bearer tokens against a static table.
type Provider struct {
	entries []Entry
}

// New creates a static provider from raw entries. Tokens are hashed
// immediately; plaintext tokens are not retained.
func New(raw []RawEntry) *Provider {
	p := &Provider{}
	for _, e := range raw {
		p.entries = append(p.entries, Entry{
			TokenHash: sha256.Sum256([]byte(e.Token)),
			Identity:  auth.Identity{Subject: e.Subject, Credential: e.Credential},
		})
	}
	return p
}

// Resolve extracts the bearer token and matches it against the table.
// Returns Yes on a match, No when a bearer token is present but
// unknown, Abstain when there is no bearer header.
func (p *Provider) Resolve(_ context.Context, r *http.Request) auth.Result {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.Result{Decision: auth.Abstain}
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return auth.Result{Decision: auth.No, Err: auth.ErrUnauthorized}
	}

	tokenHash := sha256.Sum256([]byte(token))
	for _, entry := range p.entries {
		if subtle.ConstantTimeCompare(tokenHash[:], entry.TokenHash[:]) == 1 {
			id := entry.Identity
			return auth.Result{Decision: auth.Yes, Identity: &id}
		}
	}

	return auth.Result{Decision: auth.No, Err: auth.ErrUnauthorized}
}
