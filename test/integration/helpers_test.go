// Package integration provides end-to-end tests for the pathlight
// gateway.
//
// Tests run against a real gateway HTTP server backed by a mock
// career-intelligence backend, both started in-process using
// net/http/httptest.
package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/pathlight-ai/pathlight/pkg/api"
	"github.com/pathlight-ai/pathlight/pkg/auth"
	"github.com/pathlight-ai/pathlight/pkg/auth/static"
	"github.com/pathlight-ai/pathlight/pkg/observability"
	"github.com/pathlight-ai/pathlight/pkg/profile/memory"
	"github.com/pathlight-ai/pathlight/pkg/transport"
	"github.com/pathlight-ai/pathlight/pkg/upstream"
)

// Static tokens shared by the tests. The notoken user is authenticated
// but carries no forwardable backend credential.
const (
	tokenAlice   = "integration-token-alice"
	tokenNoToken = "integration-token-bare"
)

// testEnv holds the shared servers for all integration tests.
var testEnv *TestEnvironment

// TestEnvironment holds the gateway server and mock backend for testing.
type TestEnvironment struct {
	Gateway     *httptest.Server
	MockBackend *httptest.Server
}

func (e *TestEnvironment) BaseURL() string { return e.Gateway.URL }

func (e *TestEnvironment) Teardown() {
	e.Gateway.Close()
	e.MockBackend.Close()
}

// TestMain starts the mock backend and gateway server before running tests.
func TestMain(m *testing.M) {
	testEnv = setupTestEnvironment()
	code := m.Run()
	testEnv.Teardown()
	os.Exit(code)
}

// setupTestEnvironment creates a mock backend and a gateway wired to it,
// matching the production wiring in cmd/server.
func setupTestEnvironment() *TestEnvironment {
	mockBackend := startMockBackend()

	client := upstream.NewClient(mockBackend.URL, 0)
	store := memory.New()
	handler := transport.NewHandler(client, store, transport.DefaultConfig())

	chain := &auth.Chain{Providers: []auth.SessionProvider{
		static.New([]static.RawEntry{
			{Token: tokenAlice, Subject: "alice", Credential: "backend-cred-alice"},
			{Token: tokenNoToken, Subject: "bare"},
		}),
	}}

	mux := handler.Routes()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	root := transport.Chain(
		transport.Recovery(),
		transport.RequestID(),
		auth.Middleware(chain, nil, auth.DefaultBypassEndpoints),
	)(observability.MetricsMiddleware(mux))

	return &TestEnvironment{
		Gateway:     httptest.NewServer(root),
		MockBackend: mockBackend,
	}
}

// startMockBackend serves deterministic career-intelligence responses.
func startMockBackend() *httptest.Server {
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}

	mux.HandleFunc("GET /v1/chat/history", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"items":[{"id":"m-1","role":"assistant","content":"hello"}]}`)
	})
	mux.HandleFunc("POST /v1/github/sync", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"synced_repos":3,"projects_created":1}`)
	})
	mux.HandleFunc("GET /v1/github/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"connected":true,"username":"octocat"}`)
	})
	mux.HandleFunc("GET /v1/market/skills", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"skills":[{"name":"Go","percentage":34.2},{"name":"Python","percentage":41.5}]}`)
	})
	mux.HandleFunc("GET /v1/market/skills-gap", func(w http.ResponseWriter, r *http.Request) {
		role := r.URL.Query().Get("role")
		if role == "Data Scientist" {
			writeJSON(w, http.StatusOK, `{"results":[]}`)
			return
		}
		if role == "Missing Role" {
			writeJSON(w, http.StatusNotFound, `{"detail":"role not tracked"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"results":[{"role":"`+role+`","match_score":70,"matching_skills":["go"]}]}`)
	})

	return httptest.NewServer(mux)
}

// doRequest performs an HTTP request against the gateway with the given
// bearer token. An empty token sends no Authorization header.
func doRequest(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, testEnv.BaseURL()+path, reader)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// readEnvelope decodes the uniform response body and closes it.
func readEnvelope(t *testing.T, resp *http.Response) (json.RawMessage, *api.APIError) {
	t.Helper()
	defer resp.Body.Close()
	var env struct {
		Data  json.RawMessage `json:"data"`
		Error *api.APIError   `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	return env.Data, env.Error
}
