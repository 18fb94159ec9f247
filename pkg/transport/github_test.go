package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func captureSyncBody(t *testing.T) (*Handler, *[]byte) {
	t.Helper()
	var got []byte
	h, _ := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"synced_repos":1}`)
	}))
	return h, &got
}

func TestGitHubSyncDefaultBody(t *testing.T) {
	h, got := captureSyncBody(t)

	r := asUser(httptest.NewRequest(http.MethodPost, "/api/github/sync", nil), "alice", "tok")
	w := serve(h, r)
	wantSuccess(t, w)

	var body struct {
		AnalyzeSkills  bool `json:"analyze_skills"`
		CreateProjects bool `json:"create_projects"`
	}
	if err := json.Unmarshal(*got, &body); err != nil {
		t.Fatalf("upstream body not JSON: %v", err)
	}
	if !body.AnalyzeSkills || !body.CreateProjects {
		t.Errorf("empty body should forward defaults, got %s", *got)
	}
}

func TestGitHubSyncExplicitBodyReplacesDefaults(t *testing.T) {
	h, got := captureSyncBody(t)

	r := asUser(httptest.NewRequest(http.MethodPost, "/api/github/sync",
		strings.NewReader(`{"analyze_skills":true}`)), "alice", "tok")
	w := serve(h, r)
	wantSuccess(t, w)

	var body struct {
		AnalyzeSkills  bool `json:"analyze_skills"`
		CreateProjects bool `json:"create_projects"`
	}
	if err := json.Unmarshal(*got, &body); err != nil {
		t.Fatalf("upstream body not JSON: %v", err)
	}
	// A present body replaces the defaults entirely: unset fields are false.
	if !body.AnalyzeSkills || body.CreateProjects {
		t.Errorf("partial body should not inherit defaults, got %s", *got)
	}
}

func TestGitHubSyncMalformedBody(t *testing.T) {
	h, backend := newTestHandler(t, nil)

	r := asUser(httptest.NewRequest(http.MethodPost, "/api/github/sync",
		strings.NewReader(`{"analyze`)), "alice", "tok")
	w := serve(h, r)
	wantFailure(t, w, http.StatusBadRequest, "Invalid JSON body")
	if backend.calls.Load() != 0 {
		t.Error("malformed body must not reach the backend")
	}
}

func TestGitHubStatusPassThrough(t *testing.T) {
	payload := `{"connected":true,"username":"octocat"}`
	h, _ := newTestHandler(t, jsonBackend(200, payload))

	r := asUser(httptest.NewRequest(http.MethodGet, "/api/github/status", nil), "alice", "tok")
	w := serve(h, r)
	if data := wantSuccess(t, w); string(data) != payload {
		t.Errorf("data = %s", data)
	}
}

func TestGitHubDisconnectSendsNoBody(t *testing.T) {
	var gotLength int64
	h, _ := newTestHandler(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLength = r.ContentLength
		w.WriteHeader(http.StatusNoContent)
	}))

	r := asUser(httptest.NewRequest(http.MethodPost, "/api/github/disconnect", nil), "alice", "tok")
	w := serve(h, r)
	data := wantSuccess(t, w)
	if gotLength > 0 {
		t.Errorf("disconnect sent a body of %d bytes", gotLength)
	}
	if string(data) != "null" {
		t.Errorf("empty upstream body should surface as null data, got %s", data)
	}
}
