// Package session provides a SessionProvider that validates signed
// session tokens (JWT, HMAC-SHA256) carried in the pathlight session
// cookie or in an Authorization bearer header.
//
// The validated raw token doubles as the caller credential forwarded
// to the upstream backend, which verifies it with the shared secret.
package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/pathlight-ai/pathlight/pkg/auth"
)

// CookieName is the session cookie inspected by the provider.
const CookieName = "pathlight_session"

// Config holds the session provider configuration.
type Config struct {
	// Secret is the HMAC signing secret shared with the upstream backend.
	Secret string

	// Issuer is the expected iss claim. If empty, issuer is not validated.
	Issuer string

	// Leeway tolerates clock skew when validating exp/nbf. Default: 30s.
	Leeway time.Duration
}

func (c *Config) applyDefaults() {
	if c.Leeway == 0 {
		c.Leeway = 30 * time.Second
	}
}

// Provider validates session JWTs.
type Provider struct {
	config Config
}

// New creates a session provider with the given configuration.
func New(cfg Config) *Provider {
	cfg.applyDefaults()
	return &Provider{config: cfg}
}

// Resolve extracts a session token from the cookie or Authorization
// header and validates it.
//
// Decision outcomes:
//   - Abstain: no session cookie and no bearer header
//   - No: token present but invalid (expired, bad signature, no subject)
//   - Yes: valid token; the raw token is the forwardable credential
func (p *Provider) Resolve(_ context.Context, r *http.Request) auth.Result {
	tokenStr, found := extractToken(r)
	if !found {
		return auth.Result{Decision: auth.Abstain}
	}
	if tokenStr == "" {
		return auth.Result{Decision: auth.No, Err: auth.ErrNoSessionToken}
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{"HS256"}),
		jwtlib.WithLeeway(p.config.Leeway),
		jwtlib.WithExpirationRequired(),
	}
	if p.config.Issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(p.config.Issuer))
	}

	token, err := jwtlib.Parse(tokenStr, func(*jwtlib.Token) (interface{}, error) {
		return []byte(p.config.Secret), nil
	}, opts...)
	if err != nil {
		return auth.Result{Decision: auth.No, Err: auth.ErrUnauthorized}
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok || !token.Valid {
		return auth.Result{Decision: auth.No, Err: auth.ErrUnauthorized}
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return auth.Result{Decision: auth.No, Err: auth.ErrUnauthorized}
	}

	return auth.Result{
		Decision: auth.Yes,
		Identity: &auth.Identity{Subject: subject, Credential: tokenStr},
	}
}

// extractToken returns the session token and whether any carrier
// (cookie or bearer header) was present at all.
func extractToken(r *http.Request) (token string, found bool) {
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value, true
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), true
	}
	return "", false
}

// Mint issues a signed session token for the given subject, valid for
// ttl. Used by tests and development tooling.
func (p *Provider) Mint(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtlib.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	if p.config.Issuer != "" {
		claims["iss"] = p.config.Issuer
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(p.config.Secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}
