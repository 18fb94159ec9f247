// Package transport exposes the pathlight HTTP API: one route handler
// per external operation, each composing the same fixed pipeline.
//
// Resolve the caller's session, validate and decode route-specific
// inputs, forward to the upstream intelligence backend (or the profile
// store), and wrap the result in the uniform {data, error} envelope.
// Auth and validation failures short-circuit before any upstream call;
// upstream failures are translated back to the status they carried.
package transport
