package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/pathlight-ai/pathlight/pkg/auth"
)

const testSecret = "test-signing-secret"

func newProvider(t *testing.T) *Provider {
	t.Helper()
	return New(Config{Secret: testSecret})
}

func requestWithCookie(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	return r
}

func requestWithBearer(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestResolveAbstainsWithoutToken(t *testing.T) {
	p := newProvider(t)
	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)

	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.Abstain {
		t.Errorf("Decision = %v, want Abstain", result.Decision)
	}
}

func TestResolveValidCookie(t *testing.T) {
	p := newProvider(t)
	token, err := p.Mint("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	r := requestWithCookie(token)
	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.Yes {
		t.Fatalf("Decision = %v, want Yes (err: %v)", result.Decision, result.Err)
	}
	if result.Identity.Subject != "user-42" {
		t.Errorf("Subject = %q", result.Identity.Subject)
	}
	if result.Identity.Credential != token {
		t.Error("Credential should be the raw token")
	}
}

func TestResolveValidBearer(t *testing.T) {
	p := newProvider(t)
	token, err := p.Mint("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	r := requestWithBearer(token)
	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.Yes {
		t.Fatalf("Decision = %v, want Yes (err: %v)", result.Decision, result.Err)
	}
}

func TestResolveEmptyCookie(t *testing.T) {
	p := newProvider(t)
	r := requestWithCookie("")

	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.No {
		t.Fatalf("Decision = %v, want No", result.Decision)
	}
	if !errors.Is(result.Err, auth.ErrNoSessionToken) {
		t.Errorf("Err = %v, want ErrNoSessionToken", result.Err)
	}
}

func TestResolveExpiredToken(t *testing.T) {
	p := newProvider(t)
	token, err := p.Mint("user-42", -5*time.Minute)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	r := requestWithCookie(token)
	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.No {
		t.Errorf("expired token: Decision = %v, want No", result.Decision)
	}
}

func TestResolveWrongSecret(t *testing.T) {
	other := New(Config{Secret: "different-secret"})
	token, err := other.Mint("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	p := newProvider(t)
	r := requestWithCookie(token)
	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.No {
		t.Errorf("bad signature: Decision = %v, want No", result.Decision)
	}
}

func TestResolveMissingSubject(t *testing.T) {
	claims := jwtlib.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	p := newProvider(t)
	r := requestWithCookie(token)
	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.No {
		t.Errorf("no sub claim: Decision = %v, want No", result.Decision)
	}
}

func TestResolveMissingExpiration(t *testing.T) {
	claims := jwtlib.MapClaims{"sub": "user-42"}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	p := newProvider(t)
	r := requestWithCookie(token)
	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.No {
		t.Errorf("no exp claim: Decision = %v, want No", result.Decision)
	}
}

func TestResolveRejectsUnsignedAlgorithm(t *testing.T) {
	claims := jwtlib.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	p := newProvider(t)
	r := requestWithCookie(token)
	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.No {
		t.Errorf("alg=none: Decision = %v, want No", result.Decision)
	}
}

func TestResolveIssuerValidation(t *testing.T) {
	issuing := New(Config{Secret: testSecret, Issuer: "pathlight"})
	token, err := issuing.Mint("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	r := requestWithCookie(token)
	if result := issuing.Resolve(r.Context(), r); result.Decision != auth.Yes {
		t.Errorf("matching issuer: Decision = %v, want Yes", result.Decision)
	}

	strict := New(Config{Secret: testSecret, Issuer: "someone-else"})
	if result := strict.Resolve(r.Context(), r); result.Decision != auth.No {
		t.Errorf("wrong issuer: Decision = %v, want No", result.Decision)
	}
}

func TestResolveExpirationLeeway(t *testing.T) {
	p := New(Config{Secret: testSecret, Leeway: time.Minute})
	token, err := p.Mint("user-42", -10*time.Second)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}

	r := requestWithCookie(token)
	result := p.Resolve(r.Context(), r)
	if result.Decision != auth.Yes {
		t.Errorf("within leeway: Decision = %v, want Yes (err: %v)", result.Decision, result.Err)
	}
}
