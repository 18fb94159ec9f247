package transport

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/pathlight-ai/pathlight/pkg/api"
)

// handleChatHistory handles GET /api/chat/history. An optional limit
// query parameter is validated locally and forwarded verbatim.
func (h *Handler) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	path := "/v1/chat/history"
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			api.WriteFailure(w, "Invalid limit parameter", http.StatusBadRequest, api.CodeValidation)
			return
		}
		path += "?limit=" + url.QueryEscape(limit)
	}

	raw, uerr := h.getJSON(r.Context(), "chat_history", path, id.Credential, nil)
	if uerr != nil {
		writeUpstreamError(w, uerr)
		return
	}
	api.WriteSuccess(w, raw)
}
