package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pathlight-ai/pathlight/pkg/api"
	"github.com/pathlight-ai/pathlight/pkg/auth"
	"github.com/pathlight-ai/pathlight/pkg/observability"
	"github.com/pathlight-ai/pathlight/pkg/profile"
	"github.com/pathlight-ai/pathlight/pkg/upstream"
)

// Handler implements the pathlight routes. Each handler method runs
// the same pipeline: identity, input validation, upstream or store
// call, envelope. Dependencies are explicit so handlers are functions
// of (request, session, upstream client, store).
type Handler struct {
	upstream *upstream.Client
	store    profile.Store
	config   Config
}

// Config holds handler settings.
type Config struct {
	// LongTimeout bounds AI parsing/generation and GitHub sync calls.
	// These routes are explicitly allow-listed; everything else uses
	// the upstream client's default.
	LongTimeout time.Duration

	// MaxUploadSize bounds resume uploads in bytes.
	MaxUploadSize int64
}

// DefaultConfig returns the default handler configuration.
func DefaultConfig() Config {
	return Config{
		LongTimeout:   upstream.LongTimeout,
		MaxUploadSize: 10 << 20, // 10 MB
	}
}

// NewHandler creates a Handler. The store may be nil, in which case
// the profile routes report the store as unavailable.
func NewHandler(client *upstream.Client, store profile.Store, cfg Config) *Handler {
	if cfg.LongTimeout == 0 {
		cfg.LongTimeout = upstream.LongTimeout
	}
	if cfg.MaxUploadSize == 0 {
		cfg.MaxUploadSize = 10 << 20
	}
	return &Handler{upstream: client, store: store, config: cfg}
}

// identity returns the resolved identity, writing a 401 envelope when
// the request is unauthenticated.
func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		api.WriteFailure(w, auth.ErrUnauthorized.Error(), http.StatusUnauthorized, "")
		return nil, false
	}
	return id, true
}

// credential returns an identity that carries a forwardable upstream
// credential. An authenticated session without one is rejected with
// the distinct "No session token" message, still 401.
func (h *Handler) credential(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	id, ok := h.identity(w, r)
	if !ok {
		return nil, false
	}
	if id.Credential == "" {
		api.WriteFailure(w, auth.ErrNoSessionToken.Error(), http.StatusUnauthorized, "")
		return nil, false
	}
	return id, true
}

// writeUpstreamError translates a normalized upstream error back into
// an envelope: coded errors echo the backend status, transport
// failures surface as 500.
func writeUpstreamError(w http.ResponseWriter, err *upstream.Error) {
	api.WriteFailure(w, err.Message, err.Status(), "")
}

// getJSON wraps an upstream GET with per-operation metrics.
func (h *Handler) getJSON(ctx context.Context, operation, path, credential string, opts *upstream.Options) (json.RawMessage, *upstream.Error) {
	start := time.Now()
	raw, err := h.upstream.GetJSON(ctx, path, credential, opts)
	observeUpstream(operation, start, err)
	return raw, err
}

// postJSON wraps an upstream POST with per-operation metrics.
func (h *Handler) postJSON(ctx context.Context, operation, path string, body any, credential string, opts *upstream.Options) (json.RawMessage, *upstream.Error) {
	start := time.Now()
	raw, err := h.upstream.PostJSON(ctx, path, body, credential, opts)
	observeUpstream(operation, start, err)
	return raw, err
}

func observeUpstream(operation string, start time.Time, err *upstream.Error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.UpstreamRequestsTotal.WithLabelValues(operation, status).Inc()
	observability.UpstreamLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// decodeBody decodes a required JSON body into dst, writing a 400
// validation envelope on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		api.WriteFailure(w, "Invalid JSON body", http.StatusBadRequest, api.CodeValidation)
		return false
	}
	return true
}
