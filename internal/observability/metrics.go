package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "request_errors_total",
			Help: "Total number of request errors by error code",
		},
		[]string{"code"},
	)

	leadSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Total number of accepted lead registrations",
		},
	)

	adminLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"status"},
	)

	csvExportsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "csv_exports_total",
			Help: "Total number of CSV exports served",
		},
	)
)

// RecordRequest records one handled HTTP request.
func RecordRequest(method, path string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, statusText(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// RecordError counts a request failure by domain error code.
func RecordError(code string) {
	errorsTotal.WithLabelValues(code).Inc()
}

// RecordLeadSubmission counts an accepted public registration.
func RecordLeadSubmission() {
	leadSubmissionsTotal.Inc()
}

// RecordAdminLogin counts a login attempt.
func RecordAdminLogin(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	adminLoginsTotal.WithLabelValues(status).Inc()
}

// RecordCSVExport counts a served export.
func RecordCSVExport() {
	csvExportsTotal.Inc()
}

func statusText(status int) string {
	switch {
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
