// Package metrics provides application-level Prometheus collectors.
// They are registered with the default registry and served on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request collectors.
var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ccdi_catalog_requests_total",
		Help: "HTTP requests handled, by route and status code.",
	}, []string{"route", "status"})

	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ccdi_catalog_request_duration_seconds",
		Help:    "Latency of HTTP requests, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	ErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ccdi_catalog_errors_total",
		Help: "Error responses, by error kind.",
	}, []string{"kind"})

	EntitiesReturned = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ccdi_catalog_entities_returned_total",
		Help: "Entities returned in list pages, by entity type.",
	}, []string{"entity"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ErrorsTotal)
	prometheus.MustRegister(EntitiesReturned)
}

// ObserveRequest records one handled request.
func ObserveRequest(route string, status int, d time.Duration) {
	RequestsTotal.WithLabelValues(route, statusLabel(status)).Inc()
	RequestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// IncError counts one error response of the given kind.
func IncError(kind string) { ErrorsTotal.WithLabelValues(kind).Inc() }

// AddEntities counts entities returned for an entity type.
func AddEntities(entity string, n int) {
	EntitiesReturned.WithLabelValues(entity).Add(float64(n))
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
