package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pathlight-ai/pathlight/pkg/api"
	"github.com/pathlight-ai/pathlight/pkg/auth"
)

// handleMarketSkills handles GET /api/market/skills. The backend's
// skill list is de-duplicated by name and ordered by percentage
// descending before it reaches the caller.
func (h *Handler) handleMarketSkills(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	raw, uerr := h.getJSON(r.Context(), "market_skills", "/v1/market/skills", id.Credential, nil)
	if uerr != nil {
		writeUpstreamError(w, uerr)
		return
	}

	var payload api.MarketSkills
	if err := json.Unmarshal(raw, &payload); err != nil {
		api.WriteFailure(w, "Malformed market skills response", http.StatusInternalServerError, "")
		return
	}

	payload.Skills = dedupeSkills(payload.Skills)
	api.WriteSuccess(w, payload)
}

// dedupeSkills drops duplicate skill names (case-insensitive, first
// occurrence wins) and sorts by percentage descending.
func dedupeSkills(skills []api.MarketSkill) []api.MarketSkill {
	seen := make(map[string]bool, len(skills))
	out := skills[:0]
	for _, s := range skills {
		key := strings.ToLower(s.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percentage > out[j].Percentage })
	return out
}

// skillsGapResponse is the backend's multi-result envelope for the
// skills-gap endpoint.
type skillsGapResponse struct {
	Results []api.SkillsGapResult `json:"results"`
}

// fetchSkillsGap queries the backend for one role's skills-gap
// analysis. A nominal success with zero results is surfaced as an
// error so a single-role view never renders an empty gap.
func (h *Handler) fetchSkillsGap(ctx context.Context, role, credential string) (*api.SkillsGapResult, *api.APIError) {
	path := "/v1/market/skills-gap?role=" + url.QueryEscape(role)
	raw, uerr := h.getJSON(ctx, "skills_gap", path, credential, nil)
	if uerr != nil {
		return nil, api.NewUpstreamError(uerr.Message, uerr.Status())
	}

	var resp skillsGapResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &api.APIError{Message: "Malformed skills gap response"}
	}
	if len(resp.Results) == 0 {
		return nil, &api.APIError{Message: "No results returned from backend"}
	}
	// The route is a single-resource view over a multi-result
	// endpoint: take the first element.
	result := resp.Results[0]
	result.Role = role
	return &result, nil
}

// handleSkillsGap handles GET /api/market/skills-gap?role=... for a
// single target role.
func (h *Handler) handleSkillsGap(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	role := r.URL.Query().Get("role")
	if role == "" {
		api.WriteFailure(w, "Missing role parameter", http.StatusBadRequest, api.CodeValidation)
		return
	}

	result, aerr := h.fetchSkillsGap(r.Context(), role, id.Credential)
	if aerr != nil {
		api.WriteFailure(w, aerr.Message, api.StatusFromCode(aerr.Code), "")
		return
	}
	api.WriteSuccess(w, result)
}

// handleSkillsGapBatch handles POST /api/market/skills-gap. The roles
// are fetched concurrently; a failure in any branch fails the whole
// aggregate.
func (h *Handler) handleSkillsGapBatch(w http.ResponseWriter, r *http.Request) {
	id, ok := h.credential(w, r)
	if !ok {
		return
	}

	var req api.SkillsGapBatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if verr := api.ValidateSkillsGapBatch(&req); verr != nil {
		api.WriteFailure(w, verr.Message, http.StatusBadRequest, verr.Code)
		return
	}

	results, aerr := h.fetchSkillsGapBatch(r.Context(), req.Roles, id)
	if aerr != nil {
		api.WriteFailure(w, aerr.Message, api.StatusFromCode(aerr.Code), "")
		return
	}
	api.WriteSuccess(w, api.SkillsGapBatch{Results: results})
}

// fetchSkillsGapBatch fans out one upstream query per role and waits
// for all branches. Results keep the request order.
func (h *Handler) fetchSkillsGapBatch(ctx context.Context, roles []string, id *auth.Identity) ([]api.SkillsGapResult, *api.APIError) {
	results := make([]api.SkillsGapResult, len(roles))

	g, gctx := errgroup.WithContext(ctx)
	for i, role := range roles {
		g.Go(func() error {
			result, aerr := h.fetchSkillsGap(gctx, role, id.Credential)
			if aerr != nil {
				return aerr
			}
			results[i] = *result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if aerr, ok := err.(*api.APIError); ok {
			return nil, aerr
		}
		return nil, &api.APIError{Message: err.Error()}
	}
	return results, nil
}
