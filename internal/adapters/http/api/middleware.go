// Package api declares the JSON API contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lm-xiao-fen/my-inft-repo/internal/session"
	"github.com/lm-xiao-fen/my-inft-repo/pkg/metrics"
)

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		durationMs := float64(time.Since(start).Milliseconds())
		statusCodeStr := strconv.Itoa(wrapped.statusCode)
		metrics.RecordHTTPRequest(endpoint, r.Method, statusCodeStr)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, statusCodeStr, durationMs)
	}
}

// requireAuth gates mutating handlers behind a live session. It writes the
// 401 envelope itself and reports whether the caller may proceed.
func requireAuth(w http.ResponseWriter, r *http.Request, deps Dependencies) bool {
	authed, err := deps.Authenticated(r.Context(), session.TokenFromRequest(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return false
	}
	if !authed {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}
