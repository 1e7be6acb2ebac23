package middleware

import (
	"net/http"
	"time"

	"github.com/mpetrun5/hobbylog/internal/metrics"
)

// Prometheus records duration and count per request. The /metrics endpoint
// itself is excluded so scrapes do not inflate the series.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(cw, r)

		if r.URL.Path == "/metrics" {
			return
		}
		metrics.RecordRequest(r.Method, r.URL.Path, cw.status, time.Since(start).Seconds())
	})
}
