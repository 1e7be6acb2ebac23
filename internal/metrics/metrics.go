package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HobbiesCreated counts hobby records created since process start.
	HobbiesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hobbylog_hobbies_created_total",
			Help: "Total number of hobbies created",
		},
	)

	// SessionsLogged counts session entries logged since process start.
	SessionsLogged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hobbylog_sessions_logged_total",
			Help: "Total number of sessions logged",
		},
	)

	// SessionMinutes accumulates the minutes of all logged sessions.
	SessionMinutes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hobbylog_session_minutes_total",
			Help: "Total minutes across all logged sessions",
		},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, HobbiesCreated, SessionsLogged, SessionMinutes)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/hobbies/123 -> /api/hobbies/{id}, /api/hobbies/123/sessions -> /api/hobbies/{id}/sessions.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}
