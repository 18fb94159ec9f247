package transport

import (
	"log/slog"
	"net/http"

	"github.com/pathlight-ai/pathlight/pkg/api"
)

// Recovery returns middleware that catches panics in route handlers
// and converts them to 500 envelopes. The server continues to accept
// new requests after a panic is recovered.
func Recovery() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic in handler",
						"path", r.URL.Path,
						"panic", rec,
					)
					api.WriteFailure(w, "Internal server error", http.StatusInternalServerError, "")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
