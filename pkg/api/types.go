package api

import "time"

// ChatMessage is a single entry in a user's advisor chat history.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatHistory is the payload of GET /api/chat/history.
type ChatHistory struct {
	Items []ChatMessage `json:"items"`
}

// GitHubSyncRequest is the body of POST /api/github/sync. A missing
// body falls back to DefaultGitHubSyncRequest.
type GitHubSyncRequest struct {
	AnalyzeSkills  bool `json:"analyze_skills"`
	CreateProjects bool `json:"create_projects"`
}

// DefaultGitHubSyncRequest returns the sync defaults used when the
// caller sends no body.
func DefaultGitHubSyncRequest() GitHubSyncRequest {
	return GitHubSyncRequest{AnalyzeSkills: true, CreateProjects: true}
}

// GitHubSyncResult reports the outcome of a repository sync.
type GitHubSyncResult struct {
	SyncedRepos     int      `json:"synced_repos"`
	SkillsDetected  []string `json:"skills_detected,omitempty"`
	ProjectsCreated int      `json:"projects_created"`
}

// GitHubStatus reports whether a GitHub account is connected and when
// it was last synced.
type GitHubStatus struct {
	Connected  bool       `json:"connected"`
	Username   string     `json:"username,omitempty"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
}

// ResumeUploadResult is returned after a resume file has been stored
// upstream and queued for parsing.
type ResumeUploadResult struct {
	ResumeID string `json:"resume_id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// ParsedResume is the structured output of AI resume parsing.
type ParsedResume struct {
	ResumeID   string             `json:"resume_id"`
	Education  []ParsedEducation  `json:"education"`
	Experience []ParsedExperience `json:"experience"`
	Skills     []string           `json:"skills"`
	Summary    string             `json:"summary,omitempty"`
}

// ParsedEducation is one education entry extracted from a resume.
type ParsedEducation struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartYear   int    `json:"start_year,omitempty"`
	EndYear     int    `json:"end_year,omitempty"`
}

// ParsedExperience is one work experience entry extracted from a resume.
type ParsedExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// ResumeApplyRequest selects which parsed sections to apply to the
// caller's profile.
type ResumeApplyRequest struct {
	ResumeID   string `json:"resume_id"`
	Education  bool   `json:"education"`
	Experience bool   `json:"experience"`
	Skills     bool   `json:"skills"`
}

// MarketSkill is one entry of market skill-demand intelligence.
// Percentage is the share of postings mentioning the skill.
type MarketSkill struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Trend      string  `json:"trend,omitempty"`
}

// MarketSkills is the payload of GET /api/market/skills, ordered by
// percentage descending, de-duplicated by skill name.
type MarketSkills struct {
	Skills []MarketSkill `json:"skills"`
}

// SkillsGapResult is the skills-gap analysis for a single target role.
type SkillsGapResult struct {
	Role           string        `json:"role"`
	MatchScore     float64       `json:"match_score"`
	MatchingSkills []string      `json:"matching_skills"`
	MissingSkills  []MissingSkill `json:"missing_skills"`
	Summary        string        `json:"summary,omitempty"`
}

// MissingSkill is a skill required by a role but absent from the
// caller's profile.
type MissingSkill struct {
	Name     string `json:"name"`
	Priority string `json:"priority,omitempty"`
}

// SkillsGapBatchRequest is the body of POST /api/market/skills-gap.
type SkillsGapBatchRequest struct {
	Roles []string `json:"roles"`
}

// SkillsGapBatch is the aggregate result of a multi-role analysis,
// in the same order as the requested roles.
type SkillsGapBatch struct {
	Results []SkillsGapResult `json:"results"`
}
