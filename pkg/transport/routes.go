package transport

import "net/http"

// Routes builds the ServeMux with every pathlight route registered.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/chat/history", h.handleChatHistory)

	mux.HandleFunc("POST /api/github/sync", h.handleGitHubSync)
	mux.HandleFunc("GET /api/github/status", h.handleGitHubStatus)
	mux.HandleFunc("POST /api/github/disconnect", h.handleGitHubDisconnect)

	mux.HandleFunc("POST /api/resume/upload", h.handleResumeUpload)
	mux.HandleFunc("POST /api/resume/parse", h.handleResumeParse)
	mux.HandleFunc("POST /api/resume/apply", h.handleResumeApply)

	mux.HandleFunc("GET /api/market/skills", h.handleMarketSkills)
	mux.HandleFunc("GET /api/market/skills-gap", h.handleSkillsGap)
	mux.HandleFunc("POST /api/market/skills-gap", h.handleSkillsGapBatch)

	mux.HandleFunc("GET /api/profile/education", h.handleListEducation)
	mux.HandleFunc("POST /api/profile/education", h.handleCreateEducation)
	mux.HandleFunc("PUT /api/profile/education/{id}", h.handleUpdateEducation)
	mux.HandleFunc("DELETE /api/profile/education/{id}", h.handleDeleteEducation)

	mux.HandleFunc("GET /api/profile/experience", h.handleListExperience)
	mux.HandleFunc("POST /api/profile/experience", h.handleCreateExperience)
	mux.HandleFunc("PUT /api/profile/experience/{id}", h.handleUpdateExperience)
	mux.HandleFunc("DELETE /api/profile/experience/{id}", h.handleDeleteExperience)

	mux.HandleFunc("GET /api/profile/skills", h.handleListSkills)
	mux.HandleFunc("POST /api/profile/skills", h.handleCreateSkill)
	mux.HandleFunc("DELETE /api/profile/skills/{id}", h.handleDeleteSkill)

	mux.HandleFunc("GET /api/profile/projects", h.handleListProjects)
	mux.HandleFunc("POST /api/profile/projects", h.handleCreateProject)
	mux.HandleFunc("PUT /api/profile/projects/{id}", h.handleUpdateProject)
	mux.HandleFunc("DELETE /api/profile/projects/{id}", h.handleDeleteProject)

	mux.HandleFunc("GET /api/profile/me", h.handleGetMe)
	mux.HandleFunc("PUT /api/profile/me", h.handleUpdateMe)

	return mux
}
