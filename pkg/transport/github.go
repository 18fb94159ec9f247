package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pathlight-ai/pathlight/pkg/api"
	"github.com/pathlight-ai/pathlight/pkg/upstream"
)

// handleGitHubSync handles POST /api/github/sync. The body is
// optional; when absent the documented defaults are forwarded. Sync
// walks and analyzes repositories, so it runs under the long timeout.
func (h *Handler) handleGitHubSync(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	// The body is optional: an empty body means the documented
	// defaults, a present body replaces them entirely.
	body := api.DefaultGitHubSyncRequest()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		api.WriteFailure(w, "Invalid JSON body", http.StatusBadRequest, api.CodeValidation)
		return
	}
	if len(data) > 0 {
		body = api.GitHubSyncRequest{}
		if err := json.Unmarshal(data, &body); err != nil {
			api.WriteFailure(w, "Invalid JSON body", http.StatusBadRequest, api.CodeValidation)
			return
		}
	}

	raw, uerr := h.postJSON(r.Context(), "github_sync", "/v1/github/sync", body,
		id.Credential, &upstream.Options{Timeout: h.config.LongTimeout})
	if uerr != nil {
		writeUpstreamError(w, uerr)
		return
	}
	api.WriteSuccess(w, raw)
}

// handleGitHubStatus handles GET /api/github/status.
func (h *Handler) handleGitHubStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	raw, uerr := h.getJSON(r.Context(), "github_status", "/v1/github/status", id.Credential, nil)
	if uerr != nil {
		writeUpstreamError(w, uerr)
		return
	}
	api.WriteSuccess(w, raw)
}

// handleGitHubDisconnect handles POST /api/github/disconnect.
func (h *Handler) handleGitHubDisconnect(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	raw, uerr := h.postJSON(r.Context(), "github_disconnect", "/v1/github/disconnect", nil, id.Credential, nil)
	if uerr != nil {
		writeUpstreamError(w, uerr)
		return
	}
	api.WriteSuccess(w, raw)
}
