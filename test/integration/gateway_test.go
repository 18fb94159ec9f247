package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestHealthEndpointNoAuth(t *testing.T) {
	resp, err := http.Get(testEnv.BaseURL() + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 without auth, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "ok") {
		t.Errorf("body = %q", body)
	}
}

func TestUnauthenticatedRejected(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/chat/history", "", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	data, apiErr := readEnvelope(t, resp)
	if string(data) != "null" {
		t.Errorf("data = %s, want null", data)
	}
	if apiErr == nil || apiErr.Message != "Unauthorized" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestUnknownTokenRejected(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/chat/history", "wrong-token", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	readEnvelope(t, resp)
}

func TestCredentiallessSessionOnProxyRoute(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/chat/history", tokenNoToken, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	_, apiErr := readEnvelope(t, resp)
	if apiErr == nil || apiErr.Message != "No session token" {
		t.Errorf("error = %+v, want No session token", apiErr)
	}
}

func TestChatHistoryProxied(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/chat/history?limit=5", tokenAlice, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, apiErr := readEnvelope(t, resp)
	if apiErr != nil {
		t.Fatalf("error = %+v", apiErr)
	}
	if !strings.Contains(string(data), `"m-1"`) {
		t.Errorf("data = %s", data)
	}
}

func TestGitHubSyncDefaults(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/github/sync", tokenAlice, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, _ := readEnvelope(t, resp)
	if !strings.Contains(string(data), `"synced_repos":3`) {
		t.Errorf("data = %s", data)
	}
}

func TestMarketSkillsOrdered(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/market/skills", tokenAlice, "")
	data, apiErr := readEnvelope(t, resp)
	if apiErr != nil {
		t.Fatalf("error = %+v", apiErr)
	}

	var payload struct {
		Skills []struct {
			Name       string  `json:"name"`
			Percentage float64 `json:"percentage"`
		} `json:"skills"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(payload.Skills) != 2 || payload.Skills[0].Name != "Python" {
		t.Errorf("skills = %+v, want percentage-descending order", payload.Skills)
	}
}

func TestSkillsGapEmptyResultsIs500(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/market/skills-gap?role=Data+Scientist", tokenAlice, "")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	_, apiErr := readEnvelope(t, resp)
	if apiErr == nil || apiErr.Message != "No results returned from backend" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestSkillsGapBackendStatusEcho(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/market/skills-gap?role=Missing+Role", tokenAlice, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	_, apiErr := readEnvelope(t, resp)
	if apiErr == nil || apiErr.Message != "role not tracked" {
		t.Errorf("error = %+v", apiErr)
	}
}

func TestSkillsGapBatch(t *testing.T) {
	resp := doRequest(t, http.MethodPost, "/api/market/skills-gap", tokenAlice,
		`{"roles":["Backend Engineer","SRE"]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data, _ := readEnvelope(t, resp)

	var batch struct {
		Results []struct {
			Role string `json:"role"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &batch); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(batch.Results) != 2 || batch.Results[0].Role != "Backend Engineer" || batch.Results[1].Role != "SRE" {
		t.Errorf("results = %+v, want request order", batch.Results)
	}
}

func TestProfileLifecycleThroughGateway(t *testing.T) {
	// Profile routes work with the credential-less session: they only
	// need an authenticated subject.
	resp := doRequest(t, http.MethodPost, "/api/profile/skills", tokenNoToken, `{"name":"Terraform"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	data, _ := readEnvelope(t, resp)
	var skill struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &skill); err != nil || skill.ID == "" {
		t.Fatalf("created skill = %s (err %v)", data, err)
	}

	// Duplicate (case-insensitive) conflicts.
	resp = doRequest(t, http.MethodPost, "/api/profile/skills", tokenNoToken, `{"name":"terraform"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}
	readEnvelope(t, resp)

	// Another user does not see it.
	resp = doRequest(t, http.MethodGet, "/api/profile/skills", tokenAlice, "")
	data, _ = readEnvelope(t, resp)
	if strings.Contains(string(data), "Terraform") {
		t.Errorf("alice sees another user's skill: %s", data)
	}

	// Delete.
	resp = doRequest(t, http.MethodDelete, "/api/profile/skills/"+skill.ID, tokenNoToken, "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	readEnvelope(t, resp)
}

func TestValidationNeverReachesBackend(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/api/chat/history?limit=zero", tokenAlice, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	_, apiErr := readEnvelope(t, resp)
	if apiErr == nil || apiErr.Code != "validation" {
		t.Errorf("error = %+v, want validation code", apiErr)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, testEnv.BaseURL()+"/healthz", nil)
	req.Header.Set("X-Request-ID", "it-test-42")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "it-test-42" {
		t.Errorf("X-Request-ID = %q", got)
	}
}
