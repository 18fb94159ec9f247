package observability

import (
	"net/http"
	"strconv"
	"time"
)

// MetricsMiddleware wraps a ServeMux to record request metrics.
//
// It captures:
//   - pathlight_requests_total: per request, with method, route pattern, and status class
//   - pathlight_request_duration_seconds: request duration with method and route labels
//
// The route label uses the mux pattern rather than the raw path to
// keep label cardinality bounded.
func MetricsMiddleware(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		mux.ServeHTTP(sw, r)

		duration := time.Since(start).Seconds()

		_, route := mux.Handler(r)
		if route == "" {
			route = "unmatched"
		}

		statusClass := strconv.Itoa(sw.status/100) + "xx"

		RequestsTotal.WithLabelValues(r.Method, route, statusClass).Inc()
		RequestDuration.WithLabelValues(r.Method, route).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

// WriteHeader captures the status code and delegates to the underlying writer.
func (w *statusWriter) WriteHeader(status int) {
	if !w.written {
		w.status = status
		w.written = true
	}
	w.ResponseWriter.WriteHeader(status)
}

// Write delegates to the underlying writer and marks the status as written.
func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter, enabling
// http.ResponseController to access the original writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
