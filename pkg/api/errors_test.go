package api

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestAPIErrorInterface(t *testing.T) {
	var _ error = &APIError{}
}

func TestAPIErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			"with code",
			&APIError{Message: "Invalid limit parameter", Code: CodeValidation},
			"validation: Invalid limit parameter",
		},
		{
			"without code",
			&APIError{Message: "Backend unreachable"},
			"Backend unreachable",
		},
		{
			"upstream echo",
			NewUpstreamError("Resume not found", http.StatusNotFound),
			"HTTP_404: Resume not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("APIError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{400, "HTTP_400"},
		{404, "HTTP_404"},
		{422, "HTTP_422"},
		{503, "HTTP_503"},
	}
	for _, tt := range tests {
		if got := CodeForStatus(tt.status); got != tt.want {
			t.Errorf("CodeForStatus(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"valid 404", "HTTP_404", 404},
		{"valid 422", "HTTP_422", 422},
		{"valid 599", "HTTP_599", 599},
		{"empty", "", 500},
		{"no prefix", "404", 500},
		{"validation code", CodeValidation, 500},
		{"non-numeric", "HTTP_abc", 500},
		{"below range", "HTTP_99", 500},
		{"above range", "HTTP_600", 500},
		{"negative", "HTTP_-1", 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFromCode(tt.code); got != tt.want {
				t.Errorf("StatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestStatusCodeRoundTrip(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 409, 422, 429, 500, 502, 503} {
		if got := StatusFromCode(CodeForStatus(status)); got != status {
			t.Errorf("StatusFromCode(CodeForStatus(%d)) = %d", status, got)
		}
	}
}

func TestAPIErrorJSONOmitsEmptyCode(t *testing.T) {
	data, err := json.Marshal(&APIError{Message: "Backend unreachable"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := raw["code"]; ok {
		t.Errorf("empty code should be omitted, got %s", data)
	}
	if raw["message"] != "Backend unreachable" {
		t.Errorf("message = %v", raw["message"])
	}
}
