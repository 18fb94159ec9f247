package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Timeout defaults. Long-running AI parsing and GitHub sync calls are
// explicitly allow-listed by the calling route via Options; the client
// never decides on its own which calls are long-running.
const (
	DefaultTimeout = 30 * time.Second
	LongTimeout    = 60 * time.Second
)

// Client performs HTTP requests against the upstream backend. The base
// URL is explicit construction-time configuration, never ambient
// state, so the client is testable against a mock backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// Options adjusts a single call.
type Options struct {
	// Timeout overrides the client's default request timeout.
	Timeout time.Duration
}

// NewClient creates a Client for the backend at baseURL. A zero
// defaultTimeout falls back to DefaultTimeout.
func NewClient(baseURL string, defaultTimeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if defaultTimeout == 0 {
		defaultTimeout = DefaultTimeout
	}
	return &Client{
		// Per-call deadlines come from the request context, so the
		// shared client carries no timeout of its own.
		httpClient: &http.Client{},
		baseURL:    baseURL,
		timeout:    defaultTimeout,
	}
}

// GetJSON issues a GET and returns the decoded 2xx body.
func (c *Client) GetJSON(ctx context.Context, path, credential string, opts *Options) (json.RawMessage, *Error) {
	return c.do(ctx, http.MethodGet, path, nil, "", credential, opts)
}

// PostJSON issues a POST with a JSON-serialized body. A nil body sends
// no payload.
func (c *Client) PostJSON(ctx context.Context, path string, body any, credential string, opts *Options) (json.RawMessage, *Error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to marshal request: %s", err.Error())}
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, http.MethodPost, path, reader, contentType, credential, opts)
}

// PostFile issues a multipart POST attaching content under the given
// form field and filename. The multipart writer sets the content type
// (including the boundary); no explicit override is applied.
func (c *Client) PostFile(ctx context.Context, path, field, filename string, content io.Reader, credential string, opts *Options) (json.RawMessage, *Error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to build multipart body: %s", err.Error())}
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read file content: %s", err.Error())}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to finalize multipart body: %s", err.Error())}
	}

	return c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), credential, opts)
}

// do executes one request. The path is always prefixed with the
// configured base URL; the credential is always attached as a bearer
// header when present.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType, credential string, opts *Options) (json.RawMessage, *Error) {
	timeout := c.timeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to create request: %s", err.Error())}
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport failure: no code, surfaced as 500 by callers.
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapHTTPError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read backend response: %s", err.Error())}
	}
	if len(data) == 0 {
		data = []byte("null")
	}
	if !json.Valid(data) {
		return nil, &Error{Message: "backend returned a non-JSON response"}
	}

	return json.RawMessage(data), nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
