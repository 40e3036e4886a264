// Package metrics holds the Prometheus collectors for the direction service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the service collectors.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	adaptations *prometheus.CounterVec
	rewritten   prometheus.Counter
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gotrs_rtl_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gotrs_rtl_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		adaptations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gotrs_rtl_adaptations_total",
			Help: "Total number of adaptations by operation and direction",
		}, []string{"operation", "direction"}),
		rewritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "gotrs_rtl_classes_rewritten_total",
			Help: "Total number of individual classes rewritten in HTML documents",
		}),
	}
}

// Registry returns the registry to expose over HTTP.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	m.requests.WithLabelValues(method, route, status).Inc()
	m.latency.WithLabelValues(method, route).Observe(seconds)
}

// ObserveAdaptation records one adapter operation.
func (m *Metrics) ObserveAdaptation(operation, direction string) {
	m.adaptations.WithLabelValues(operation, direction).Inc()
}

// AddRewrittenClasses records classes rewritten by an HTML mirror pass.
func (m *Metrics) AddRewrittenClasses(n int) {
	if n > 0 {
		m.rewritten.Add(float64(n))
	}
}
