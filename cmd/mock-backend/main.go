// Command mock-backend runs a deterministic career-intelligence
// backend for local development and conformance testing. It serves
// canned chat history, GitHub, resume, and market responses under the
// same /v1 paths the real backend exposes.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/chat/history", handleChatHistory)
	mux.HandleFunc("POST /v1/github/sync", handleGitHubSync)
	mux.HandleFunc("GET /v1/github/status", handleGitHubStatus)
	mux.HandleFunc("POST /v1/github/disconnect", handleGitHubDisconnect)
	mux.HandleFunc("POST /v1/resume/upload", handleResumeUpload)
	mux.HandleFunc("POST /v1/resume/parse", handleResumeParse)
	mux.HandleFunc("POST /v1/resume/apply", handleResumeApply)
	mux.HandleFunc("GET /v1/market/skills", handleMarketSkills)
	mux.HandleFunc("GET /v1/market/skills-gap", handleSkillsGap)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: requireBearer(mux)}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

// requireBearer rejects requests without a bearer token, matching the
// real backend's behavior. Health checks are exempt.
func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func handleChatHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"items": []map[string]any{
			{
				"id":         uuid.NewString(),
				"role":       "assistant",
				"content":    "Based on your profile, consider strengthening your cloud skills.",
				"created_at": time.Now().UTC().Format(time.RFC3339),
			},
		},
	})
}

func handleGitHubSync(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AnalyzeSkills  bool `json:"analyze_skills"`
		CreateProjects bool `json:"create_projects"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	resp := map[string]any{"synced_repos": 4, "projects_created": 0}
	if req.AnalyzeSkills {
		resp["skills_detected"] = []string{"Go", "PostgreSQL", "Docker"}
	}
	if req.CreateProjects {
		resp["projects_created"] = 2
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleGitHubStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"connected":    true,
		"username":     "octocat",
		"last_sync_at": time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339),
	})
}

func handleGitHubDisconnect(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"connected": false})
}

func handleResumeUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "expected multipart body"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "file field is required"})
		return
	}
	file.Close()

	writeJSON(w, http.StatusOK, map[string]any{
		"resume_id": uuid.NewString(),
		"filename":  header.Filename,
		"status":    "uploaded",
	})
}

func handleResumeParse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResumeID string `json:"resume_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ResumeID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "resume_id is required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"resume_id": req.ResumeID,
		"education": []map[string]any{
			{"institution": "State University", "degree": "BSc", "field": "Computer Science", "start_year": 2016, "end_year": 2020},
		},
		"experience": []map[string]any{
			{"company": "Acme Corp", "title": "Backend Engineer", "start_date": "2020-07", "end_date": ""},
		},
		"skills":  []string{"Go", "Kubernetes", "SQL"},
		"summary": "Backend engineer with four years of experience.",
	})
}

func handleResumeApply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ResumeID string `json:"resume_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ResumeID == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "resume_id is required"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applied": true, "resume_id": req.ResumeID})
}

func handleMarketSkills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"skills": []map[string]any{
			{"name": "Go", "percentage": 34.2, "trend": "up"},
			{"name": "Kubernetes", "percentage": 28.7, "trend": "up"},
			{"name": "Python", "percentage": 41.5, "trend": "flat"},
		},
	})
}

func handleSkillsGap(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "role is required"})
		return
	}
	// The "Unknown" prefix simulates a role the backend has no data for.
	if strings.HasPrefix(role, "Unknown") {
		writeJSON(w, http.StatusOK, map[string]any{"results": []any{}})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results": []map[string]any{
			{
				"role":            role,
				"match_score":     62.5,
				"matching_skills": []string{"sql", "go"},
				"missing_skills": []map[string]string{
					{"name": "spark", "priority": "high"},
					{"name": "airflow", "priority": "medium"},
				},
				"summary": "Solid foundation; data engineering tooling is the main gap.",
			},
		},
	})
}
