// Package metrics holds the Prometheus collectors for the auth service and
// the HTTP middleware that feeds them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method, route and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authcore_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request latency in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "authcore_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthEventsTotal counts register/login/authenticate outcomes.
	AuthEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authcore_auth_events_total",
			Help: "Authentication events by type and outcome",
		},
		[]string{"event", "outcome"},
	)

	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "authcore_rate_limit_rejected_total",
			Help: "Requests rejected by the login rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthEventsTotal,
		RateLimitRejectedTotal,
	)
}

func RecordAuthEvent(event, outcome string) {
	AuthEventsTotal.WithLabelValues(event, outcome).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
