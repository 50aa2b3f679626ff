// Package metrics exposes Prometheus counters for the generation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for adforge.
type Metrics struct {
	// Generation pipeline counters
	GenerationsTotal     *prometheus.CounterVec
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	ReformatsTotal       prometheus.Counter
	ScoringFailuresTotal prometheus.Counter

	// Model transport counters
	ModelCallsTotal      *prometheus.CounterVec
	TransportErrorsTotal prometheus.Counter
	InvalidOutputTotal   prometheus.Counter

	// Model call latency
	ModelCallDurationSeconds *prometheus.HistogramVec

	// API metrics
	APIRequestsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with all metrics registered on a private
// registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adforge_generations_total",
				Help: "Total number of generation requests by outcome",
			},
			[]string{"outcome"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "adforge_history_cache_hits_total",
				Help: "Total number of generation requests served from history",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "adforge_history_cache_misses_total",
				Help: "Total number of generation requests that required a model call",
			},
		),
		ReformatsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "adforge_reformats_total",
				Help: "Total number of one-shot strict-JSON resubmissions",
			},
		),
		ScoringFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "adforge_scoring_failures_total",
				Help: "Total number of per-variant scoring failures",
			},
		),
		ModelCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adforge_model_calls_total",
				Help: "Total number of model round trips by operation",
			},
			[]string{"op"},
		),
		TransportErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "adforge_transport_errors_total",
				Help: "Total number of failed model round trips",
			},
		),
		InvalidOutputTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "adforge_invalid_model_output_total",
				Help: "Total number of model responses with no parsable JSON",
			},
		),
		ModelCallDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adforge_model_call_duration_seconds",
				Help:    "Model round trip duration in seconds",
				Buckets: []float64{.25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"op"},
		),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adforge_api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),

		registry: reg,
	}

	reg.MustRegister(
		m.GenerationsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.ReformatsTotal,
		m.ScoringFailuresTotal,
		m.ModelCallsTotal,
		m.TransportErrorsTotal,
		m.InvalidOutputTotal,
		m.ModelCallDurationSeconds,
		m.APIRequestsTotal,
	)

	return m
}

// Registry returns the private registry for the metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
