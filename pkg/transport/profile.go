package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/pathlight-ai/pathlight/pkg/api"
	"github.com/pathlight-ai/pathlight/pkg/observability"
	"github.com/pathlight-ai/pathlight/pkg/profile"
)

// ownerContext scopes the context to the caller's profile. Profile
// routes do not need an upstream credential, only an authenticated
// subject.
func ownerContext(r *http.Request, subject string) context.Context {
	return profile.SetOwner(r.Context(), subject)
}

// writeStoreError maps store sentinel errors onto the envelope.
func writeStoreError(w http.ResponseWriter, entity, operation string, err error) {
	observability.StoreOperationsTotal.WithLabelValues(entity, operation, "error").Inc()
	switch {
	case errors.Is(err, profile.ErrNotFound):
		api.WriteFailure(w, "Not found", http.StatusNotFound, "")
	case errors.Is(err, profile.ErrConflict):
		api.WriteFailure(w, "Already exists", http.StatusConflict, "")
	default:
		api.WriteFailure(w, "Storage error", http.StatusInternalServerError, "")
	}
}

func storeOK(entity, operation string) {
	observability.StoreOperationsTotal.WithLabelValues(entity, operation, "ok").Inc()
}

// requireStore writes a 503 when no store is configured.
func (h *Handler) requireStore(w http.ResponseWriter) bool {
	if h.store == nil {
		api.WriteFailure(w, "Profile storage not configured", http.StatusServiceUnavailable, "")
		return false
	}
	return true
}

func (h *Handler) handleListEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	items, err := h.store.ListEducation(ownerContext(r, id.Subject))
	if err != nil {
		writeStoreError(w, "education", "list", err)
		return
	}
	storeOK("education", "list")
	api.WriteSuccess(w, items)
}

func (h *Handler) handleCreateEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	var e profile.Education
	if !decodeBody(w, r, &e) {
		return
	}
	if e.Institution == "" || e.Degree == "" {
		api.WriteFailure(w, "Missing institution or degree", http.StatusBadRequest, api.CodeValidation)
		return
	}
	if err := h.store.InsertEducation(ownerContext(r, id.Subject), &e); err != nil {
		writeStoreError(w, "education", "insert", err)
		return
	}
	storeOK("education", "insert")
	api.WriteSuccess(w, e)
}

func (h *Handler) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	var e profile.Education
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = r.PathValue("id")
	if e.Institution == "" || e.Degree == "" {
		api.WriteFailure(w, "Missing institution or degree", http.StatusBadRequest, api.CodeValidation)
		return
	}
	if err := h.store.UpdateEducation(ownerContext(r, id.Subject), &e); err != nil {
		writeStoreError(w, "education", "update", err)
		return
	}
	storeOK("education", "update")
	api.WriteSuccess(w, e)
}

func (h *Handler) handleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	if err := h.store.DeleteEducation(ownerContext(r, id.Subject), r.PathValue("id")); err != nil {
		writeStoreError(w, "education", "delete", err)
		return
	}
	storeOK("education", "delete")
	api.WriteSuccess(w, map[string]bool{"deleted": true})
}

func (h *Handler) handleListExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	items, err := h.store.ListExperience(ownerContext(r, id.Subject))
	if err != nil {
		writeStoreError(w, "experience", "list", err)
		return
	}
	storeOK("experience", "list")
	api.WriteSuccess(w, items)
}

func (h *Handler) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	var e profile.Experience
	if !decodeBody(w, r, &e) {
		return
	}
	if e.Company == "" || e.Title == "" {
		api.WriteFailure(w, "Missing company or title", http.StatusBadRequest, api.CodeValidation)
		return
	}
	if err := h.store.InsertExperience(ownerContext(r, id.Subject), &e); err != nil {
		writeStoreError(w, "experience", "insert", err)
		return
	}
	storeOK("experience", "insert")
	api.WriteSuccess(w, e)
}

func (h *Handler) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	var e profile.Experience
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = r.PathValue("id")
	if e.Company == "" || e.Title == "" {
		api.WriteFailure(w, "Missing company or title", http.StatusBadRequest, api.CodeValidation)
		return
	}
	if err := h.store.UpdateExperience(ownerContext(r, id.Subject), &e); err != nil {
		writeStoreError(w, "experience", "update", err)
		return
	}
	storeOK("experience", "update")
	api.WriteSuccess(w, e)
}

func (h *Handler) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	if err := h.store.DeleteExperience(ownerContext(r, id.Subject), r.PathValue("id")); err != nil {
		writeStoreError(w, "experience", "delete", err)
		return
	}
	storeOK("experience", "delete")
	api.WriteSuccess(w, map[string]bool{"deleted": true})
}

func (h *Handler) handleListSkills(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	items, err := h.store.ListSkills(ownerContext(r, id.Subject))
	if err != nil {
		writeStoreError(w, "skills", "list", err)
		return
	}
	storeOK("skills", "list")
	api.WriteSuccess(w, items)
}

func (h *Handler) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	var s profile.Skill
	if !decodeBody(w, r, &s) {
		return
	}
	if s.Name == "" {
		api.WriteFailure(w, "Missing skill name", http.StatusBadRequest, api.CodeValidation)
		return
	}
	if err := h.store.InsertSkill(ownerContext(r, id.Subject), &s); err != nil {
		writeStoreError(w, "skills", "insert", err)
		return
	}
	storeOK("skills", "insert")
	api.WriteSuccess(w, s)
}

func (h *Handler) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	if err := h.store.DeleteSkill(ownerContext(r, id.Subject), r.PathValue("id")); err != nil {
		writeStoreError(w, "skills", "delete", err)
		return
	}
	storeOK("skills", "delete")
	api.WriteSuccess(w, map[string]bool{"deleted": true})
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	items, err := h.store.ListProjects(ownerContext(r, id.Subject))
	if err != nil {
		writeStoreError(w, "projects", "list", err)
		return
	}
	storeOK("projects", "list")
	api.WriteSuccess(w, items)
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	var p profile.Project
	if !decodeBody(w, r, &p) {
		return
	}
	if p.Name == "" {
		api.WriteFailure(w, "Missing project name", http.StatusBadRequest, api.CodeValidation)
		return
	}
	if err := h.store.InsertProject(ownerContext(r, id.Subject), &p); err != nil {
		writeStoreError(w, "projects", "insert", err)
		return
	}
	storeOK("projects", "insert")
	api.WriteSuccess(w, p)
}

func (h *Handler) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	var p profile.Project
	if !decodeBody(w, r, &p) {
		return
	}
	p.ID = r.PathValue("id")
	if p.Name == "" {
		api.WriteFailure(w, "Missing project name", http.StatusBadRequest, api.CodeValidation)
		return
	}
	if err := h.store.UpdateProject(ownerContext(r, id.Subject), &p); err != nil {
		writeStoreError(w, "projects", "update", err)
		return
	}
	storeOK("projects", "update")
	api.WriteSuccess(w, p)
}

func (h *Handler) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	if err := h.store.DeleteProject(ownerContext(r, id.Subject), r.PathValue("id")); err != nil {
		writeStoreError(w, "projects", "delete", err)
		return
	}
	storeOK("projects", "delete")
	api.WriteSuccess(w, map[string]bool{"deleted": true})
}

func (h *Handler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	u, err := h.store.GetUser(ownerContext(r, id.Subject))
	if err != nil {
		writeStoreError(w, "users", "get", err)
		return
	}
	storeOK("users", "get")
	api.WriteSuccess(w, u)
}

func (h *Handler) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok || !h.requireStore(w) {
		return
	}
	var u profile.User
	if !decodeBody(w, r, &u) {
		return
	}
	if u.Email == "" {
		api.WriteFailure(w, "Missing email", http.StatusBadRequest, api.CodeValidation)
		return
	}
	if err := h.store.UpsertUser(ownerContext(r, id.Subject), &u); err != nil {
		writeStoreError(w, "users", "upsert", err)
		return
	}
	storeOK("users", "upsert")
	api.WriteSuccess(w, u)
}
