package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Well-known error codes carried in the envelope.
const (
	// CodeValidation marks a request rejected before any upstream or
	// store call was made.
	CodeValidation = "validation"

	// codeHTTPPrefix prefixes codes that echo an upstream HTTP status,
	// e.g. "HTTP_404".
	codeHTTPPrefix = "HTTP_"
)

// APIError is the error half of the envelope. Code is optional; when
// present it is either "validation" or an upstream status echo of the
// form "HTTP_<n>".
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// NewValidationError creates an APIError for rejected input.
func NewValidationError(message string) *APIError {
	return &APIError{Message: message, Code: CodeValidation}
}

// NewUpstreamError creates an APIError echoing an upstream HTTP status.
func NewUpstreamError(message string, status int) *APIError {
	return &APIError{Message: message, Code: CodeForStatus(status)}
}

// CodeForStatus renders an HTTP status as an envelope code ("HTTP_502").
func CodeForStatus(status int) string {
	return codeHTTPPrefix + strconv.Itoa(status)
}

// StatusFromCode re-derives the numeric status from an "HTTP_<n>" code.
// Codes that are absent, malformed, or out of the valid status range
// map to 500, as do upstream transport failures which carry no code.
func StatusFromCode(code string) int {
	if !strings.HasPrefix(code, codeHTTPPrefix) {
		return http.StatusInternalServerError
	}
	n, err := strconv.Atoi(strings.TrimPrefix(code, codeHTTPPrefix))
	if err != nil || n < 100 || n > 599 {
		return http.StatusInternalServerError
	}
	return n
}
