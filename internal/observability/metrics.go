package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "softphone_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "softphone_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	authAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "softphone_auth_attempts_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	mediaDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "softphone_media_access_decisions_total",
			Help: "Media access gate decisions.",
		},
		[]string{"decision"},
	)

	lookupJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "softphone_lookup_jobs_total",
			Help: "Caller lookup jobs consumed by the worker.",
		},
		[]string{"kind", "outcome"},
	)

	crmRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "softphone_crm_requests_total",
			Help: "Caller-id lookups against the CRM upstream.",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

// RegisterMetrics registers collectors in the default registry.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			authAttempts,
			mediaDecisions,
			lookupJobs,
			crmRequests,
		)
	})
}

// MetricsHandler exposes the default registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one served HTTP request.
func ObserveRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// CountAuthAttempt records a login outcome ("success" or "failure").
func CountAuthAttempt(outcome string) {
	authAttempts.WithLabelValues(outcome).Inc()
}

// CountMediaDecision records a media gate decision ("grant" or "deny").
func CountMediaDecision(decision string) {
	mediaDecisions.WithLabelValues(decision).Inc()
}

// CountLookupJob records a consumed worker job.
func CountLookupJob(kind, outcome string) {
	lookupJobs.WithLabelValues(kind, outcome).Inc()
}

// CountCRMRequest records a CRM lookup outcome ("hit", "miss" or "error").
func CountCRMRequest(outcome string) {
	crmRequests.WithLabelValues(outcome).Inc()
}
