package api

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response body returned by every route.
// Exactly one of Data and Error is non-nil: a 2xx response carries
// Data with a nil Error, any failure carries Error with a nil Data.
type Envelope struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// Success builds a 200 envelope wrapping the given payload.
func Success(data any) (int, Envelope) {
	return http.StatusOK, Envelope{Data: data}
}

// Failure builds an error envelope with the given message and status.
// An optional code (e.g. "validation", "HTTP_404") is attached when
// non-empty. A zero status defaults to 400.
func Failure(message string, status int, code string) (int, Envelope) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return status, Envelope{Error: &APIError{Message: message, Code: code}}
}

// WriteEnvelope serializes an envelope as JSON with the given status.
func WriteEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// WriteSuccess writes a 200 envelope wrapping data.
func WriteSuccess(w http.ResponseWriter, data any) {
	status, env := Success(data)
	WriteEnvelope(w, status, env)
}

// WriteFailure writes an error envelope.
func WriteFailure(w http.ResponseWriter, message string, status int, code string) {
	s, env := Failure(message, status, code)
	WriteEnvelope(w, s, env)
}
