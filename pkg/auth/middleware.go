package auth

import (
	"log/slog"
	"net/http"

	"github.com/pathlight-ai/pathlight/pkg/api"
	"github.com/pathlight-ai/pathlight/pkg/observability"
)

// Middleware creates HTTP middleware from a session provider chain and
// an optional rate limiter. It checks the bypass list, resolves the
// session, and injects the identity into the request context.
//
// A request that fails resolution is rejected with a 401 envelope
// carrying the provider's failure message. No upstream or store call
// is ever reached by an unauthenticated request.
func Middleware(chain *Chain, limiter *RateLimiter, bypassEndpoints []string) func(http.Handler) http.Handler {
	bypass := make(map[string]bool, len(bypassEndpoints))
	for _, ep := range bypassEndpoints {
		bypass[ep] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			result := chain.Resolve(r.Context(), r)

			if result.Decision != Yes || result.Identity == nil {
				message := ErrUnauthorized.Error()
				if result.Err != nil {
					message = result.Err.Error()
				}
				slog.Warn("session resolution failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", message,
				)
				observability.AuthFailuresTotal.WithLabelValues("unauthorized").Inc()
				api.WriteFailure(w, message, http.StatusUnauthorized, "")
				return
			}

			if result.Identity.Subject == "" {
				slog.Error("session provider returned identity with empty subject")
				api.WriteFailure(w, "Internal authentication error", http.StatusInternalServerError, "")
				return
			}

			if limiter != nil && !limiter.Allow(result.Identity.Subject) {
				slog.Warn("rate limit exceeded", "subject", result.Identity.Subject)
				observability.AuthFailuresTotal.WithLabelValues("rate_limited").Inc()
				api.WriteFailure(w, "Rate limit exceeded", http.StatusTooManyRequests, "")
				return
			}

			slog.Debug("session resolved",
				"subject", result.Identity.Subject,
				"path", r.URL.Path,
			)

			ctx := SetIdentity(r.Context(), result.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DefaultBypassEndpoints lists endpoints that skip session resolution.
var DefaultBypassEndpoints = []string{"/healthz", "/readyz", "/metrics"}
