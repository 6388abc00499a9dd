// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package proxy

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// Request Logging Middleware
// =============================================================================

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader captures the status code before writing it.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs every request with method, path, status and timing.
func loggingMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			logger.Printf("%s %s | %d | %.3fs",
				r.Method,
				r.URL.Path,
				wrapped.statusCode,
				time.Since(start).Seconds(),
			)
		})
	}
}

// =============================================================================
// Rate Limiting Middleware
// =============================================================================

// rateLimitMiddleware enforces a process-wide token bucket. The proxy fronts
// a single browser client, so per-IP buckets would add bookkeeping without
// changing behavior.
func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Printf("RATE_LIMIT_EXCEEDED | path=%s", r.URL.Path)
				writeJSON(w, http.StatusTooManyRequests, map[string]string{
					"message": "Too many requests, slow down.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
