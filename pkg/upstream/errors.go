package upstream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pathlight-ai/pathlight/pkg/api"
)

// Error is the normalized upstream failure. Code is "HTTP_<status>"
// for non-2xx backend responses and empty for transport failures.
type Error struct {
	Message string
	Code    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Status re-derives the HTTP status callers should return: the echoed
// backend status for coded errors, 500 otherwise.
func (e *Error) Status() int {
	return api.StatusFromCode(e.Code)
}

// mapHTTPError converts a non-2xx backend response into an Error. The
// body is parsed as JSON to extract a descriptive message, falling
// back to a generic one when it cannot be parsed.
func mapHTTPError(resp *http.Response) *Error {
	message := extractErrorMessage(resp.Body)
	if message == "" {
		message = fmt.Sprintf("Backend error (HTTP %d)", resp.StatusCode)
	}
	return &Error{
		Message: message,
		Code:    api.CodeForStatus(resp.StatusCode),
	}
}

// mapTransportError converts a network-level failure (connection
// refused, timeout, DNS) into an Error carrying the transport's own
// description and no code.
func mapTransportError(err error) *Error {
	return &Error{Message: err.Error()}
}

// backendError matches the JSON error bodies the backend emits: a
// "detail" field (FastAPI style) or a "message" field.
type backendError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// extractErrorMessage tries to parse the response body as a backend
// error and returns the message if found.
func extractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var be backendError
	if err := json.Unmarshal(data, &be); err == nil {
		if be.Detail != "" {
			return be.Detail
		}
		if be.Message != "" {
			return be.Message
		}
	}

	return ""
}
