package transport

import (
	"net/http"
	"time"

	"github.com/pathlight-ai/pathlight/pkg/api"
	"github.com/pathlight-ai/pathlight/pkg/upstream"
)

// handleResumeUpload handles POST /api/resume/upload. The multipart
// body must carry a "file" field; the file is forwarded to the backend
// under the long timeout since parsing starts server-side.
func (h *Handler) handleResumeUpload(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	if err := r.ParseMultipartForm(h.config.MaxUploadSize); err != nil {
		api.WriteFailure(w, "Missing or invalid file", http.StatusBadRequest, api.CodeValidation)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.WriteFailure(w, "Missing or invalid file", http.StatusBadRequest, api.CodeValidation)
		return
	}
	defer file.Close()

	start := time.Now()
	raw, uerr := h.upstream.PostFile(r.Context(), "/v1/resume/upload", "file",
		header.Filename, file, id.Credential, &upstream.Options{Timeout: h.config.LongTimeout})
	observeUpstream("resume_upload", start, uerr)
	if uerr != nil {
		writeUpstreamError(w, uerr)
		return
	}
	api.WriteSuccess(w, raw)
}

// handleResumeParse handles POST /api/resume/parse. AI parsing is a
// long-running operation and runs under the long timeout.
func (h *Handler) handleResumeParse(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	var req struct {
		ResumeID string `json:"resume_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ResumeID == "" {
		api.WriteFailure(w, "Missing resume_id", http.StatusBadRequest, api.CodeValidation)
		return
	}

	raw, uerr := h.postJSON(r.Context(), "resume_parse", "/v1/resume/parse", req,
		id.Credential, &upstream.Options{Timeout: h.config.LongTimeout})
	if uerr != nil {
		writeUpstreamError(w, uerr)
		return
	}
	api.WriteSuccess(w, raw)
}

// handleResumeApply handles POST /api/resume/apply, applying parsed
// resume sections to the caller's profile.
func (h *Handler) handleResumeApply(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	var req api.ResumeApplyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if verr := api.ValidateResumeApply(&req); verr != nil {
		api.WriteFailure(w, verr.Message, http.StatusBadRequest, verr.Code)
		return
	}

	raw, uerr := h.postJSON(r.Context(), "resume_apply", "/v1/resume/apply", req, id.Credential, nil)
	if uerr != nil {
		writeUpstreamError(w, uerr)
		return
	}
	api.WriteSuccess(w, raw)
}
