// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the pathlight gateway.
package observability

import "github.com/prometheus/client_golang/prometheus"

// ProxyBuckets defines histogram buckets suited for proxied calls,
// from fast CRUD reads up to the 60s long-operation timeout.
var ProxyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

var (
	// RequestsTotal counts all HTTP requests by method, route, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathlight_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathlight_request_duration_seconds",
			Help:    "Request duration",
			Buckets: ProxyBuckets,
		},
		[]string{"method", "route"},
	)

	// UpstreamRequestsTotal counts calls forwarded to the intelligence backend.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathlight_upstream_requests_total",
			Help: "Upstream backend requests",
		},
		[]string{"operation", "status"},
	)

	// UpstreamLatency records backend call latency in seconds.
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pathlight_upstream_latency_seconds",
			Help:    "Upstream backend latency",
			Buckets: ProxyBuckets,
		},
		[]string{"operation"},
	)

	// AuthFailuresTotal counts rejected requests by reason.
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathlight_auth_failures_total",
			Help: "Authentication failures",
		},
		[]string{"reason"},
	)

	// StoreOperationsTotal counts profile store operations by entity and outcome.
	StoreOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathlight_store_operations_total",
			Help: "Profile store operations",
		},
		[]string{"entity", "operation", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		UpstreamRequestsTotal,
		UpstreamLatency,
		AuthFailuresTotal,
		StoreOperationsTotal,
	)
}
