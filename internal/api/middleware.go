package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ccdi-federation/ccdi-catalog/internal/metrics"
)

// RequestIDHeader carries the request ID on requests and responses.
const RequestIDHeader = "X-Request-Id"

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// middleware tags each request with an ID, logs it, and records metrics.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// The mux fills in r.Pattern while routing.
		route := r.Pattern
		if route == "" || route == "/" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.ObserveRequest(route, rec.status, elapsed)

		attrs := []any{
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", elapsed,
		}
		switch {
		case rec.status >= 500:
			s.logger.Error("request failed", attrs...)
		case rec.status >= 400:
			s.logger.Info("request rejected", attrs...)
		default:
			s.logger.Debug("request served", attrs...)
		}
	})
}
