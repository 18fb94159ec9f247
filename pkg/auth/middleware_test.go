package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pathlight-ai/pathlight/pkg/api"
)

func serveThrough(t *testing.T, mw func(http.Handler) http.Handler, path string) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()
	var seen *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IdentityFromContext(r.Context())
		api.WriteSuccess(w, map[string]bool{"ok": true})
	})
	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w, seen
}

func decodeError(t *testing.T, body []byte) *api.APIError {
	t.Helper()
	var env struct {
		Data  json.RawMessage `json:"data"`
		Error *api.APIError   `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if string(env.Data) != "null" {
		t.Errorf("data = %s, want null on error", env.Data)
	}
	if env.Error == nil {
		t.Fatal("error half of envelope is nil")
	}
	return env.Error
}

func TestMiddlewareInjectsIdentity(t *testing.T) {
	chain := &Chain{Providers: []SessionProvider{yes("user-1", "tok")}}
	mw := Middleware(chain, nil, nil)

	w, seen := serveThrough(t, mw, "/api/me")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if seen == nil || seen.Subject != "user-1" {
		t.Errorf("identity = %+v, want user-1", seen)
	}
}

func TestMiddlewareRejectsUnauthenticated(t *testing.T) {
	chain := &Chain{Providers: []SessionProvider{abstain()}}
	mw := Middleware(chain, nil, nil)

	w, seen := serveThrough(t, mw, "/api/me")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if seen != nil {
		t.Error("handler should not run for unauthenticated request")
	}
	apiErr := decodeError(t, w.Body.Bytes())
	if apiErr.Message != "Unauthorized" {
		t.Errorf("message = %q, want Unauthorized", apiErr.Message)
	}
}

func TestMiddlewareCarriesProviderMessage(t *testing.T) {
	chain := &Chain{Providers: []SessionProvider{no(ErrNoSessionToken)}}
	mw := Middleware(chain, nil, nil)

	w, _ := serveThrough(t, mw, "/api/me")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	apiErr := decodeError(t, w.Body.Bytes())
	if apiErr.Message != "No session token" {
		t.Errorf("message = %q, want No session token", apiErr.Message)
	}
}

func TestMiddlewareEmptySubject(t *testing.T) {
	chain := &Chain{Providers: []SessionProvider{yes("", "tok")}}
	mw := Middleware(chain, nil, nil)

	w, _ := serveThrough(t, mw, "/api/me")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestMiddlewareBypassEndpoints(t *testing.T) {
	chain := &Chain{Providers: []SessionProvider{abstain()}}
	mw := Middleware(chain, nil, DefaultBypassEndpoints)

	for _, path := range DefaultBypassEndpoints {
		w, _ := serveThrough(t, mw, path)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200 (bypassed)", path, w.Code)
		}
	}

	w, _ := serveThrough(t, mw, "/api/me")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("/api/me: status = %d, want 401", w.Code)
	}
}

func TestMiddlewareRateLimit(t *testing.T) {
	chain := &Chain{Providers: []SessionProvider{yes("user-1", "tok")}}
	limiter := NewRateLimiter(1, 2)
	mw := Middleware(chain, limiter, nil)

	codes := make([]int, 0, 3)
	for range 3 {
		w, _ := serveThrough(t, mw, "/api/me")
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests should pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request should be limited, got %v", codes)
	}
}

func TestNewRateLimiterDisabled(t *testing.T) {
	if NewRateLimiter(0, 10) != nil {
		t.Error("zero rate should disable limiting")
	}
	if NewRateLimiter(-1, 10) != nil {
		t.Error("negative rate should disable limiting")
	}
}

func TestRateLimiterPerSubject(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	if !limiter.Allow("a") {
		t.Error("first request for subject a should pass")
	}
	if limiter.Allow("a") {
		t.Error("second burst request for subject a should be limited")
	}
	if !limiter.Allow("b") {
		t.Error("subject b has an independent bucket")
	}
}
