// Package metrics exposes Prometheus collectors for pronunciation lookups
// and the upstream content-API calls they make.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pronounce"

// Metrics groups the collectors recorded by the resolver and the content-API client.
type Metrics struct {
	resolutions *prometheus.CounterVec
	attempts    prometheus.Histogram
	duration    *prometheus.HistogramVec
	upstream    *prometheus.CounterVec
	breakers    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// It panics if a collector is already registered, like prometheus.MustRegister.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Word resolutions by outcome.",
		}, []string{"status", "source"}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "attempts",
			Help:      "Source/variant combinations attempted per resolution.",
			Buckets:   []float64{1, 2, 3, 4, 6, 9, 12},
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "duration_seconds",
			Help:      "Wall time of a resolution.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Content-API requests by source, query kind and HTTP status (0 on transport error).",
		}, []string{"source", "kind", "code"}),
		breakers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker state transitions by source.",
		}, []string{"source", "to"}),
	}

	reg.MustRegister(m.resolutions, m.attempts, m.duration, m.upstream, m.breakers)
	return m
}

// ObserveResolution records the outcome of one resolution.
func (m *Metrics) ObserveResolution(status, source string, attempts int, elapsed time.Duration) {
	m.resolutions.WithLabelValues(status, source).Inc()
	m.attempts.Observe(float64(attempts))
	m.duration.WithLabelValues(status).Observe(elapsed.Seconds())
}

// ObserveUpstream records a single content-API request.
func (m *Metrics) ObserveUpstream(source, kind string, code int) {
	m.upstream.WithLabelValues(source, kind, strconv.Itoa(code)).Inc()
}

// ObserveBreakerTransition records a circuit breaker state change.
func (m *Metrics) ObserveBreakerTransition(source, to string) {
	m.breakers.WithLabelValues(source, to).Inc()
}
