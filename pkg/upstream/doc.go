// Package upstream implements the HTTP client used to forward
// authenticated calls to the career-intelligence backend.
//
// Every call attaches the caller's bearer credential, applies a
// bounded timeout (a 30s default, with a 60s override allow-listed by
// routes for AI parsing and GitHub sync), and normalizes failures into
// a single error shape: transport failures carry the underlying
// message with no code, non-2xx responses carry the backend's error
// message with an "HTTP_<status>" code. There are no retries and no
// circuit breaking; each call is independent.
package upstream
