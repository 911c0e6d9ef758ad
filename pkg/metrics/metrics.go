// Package metrics exposes Prometheus instrumentation for the algorithm
// service: run counts, latencies, iteration counts, and input sizes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry bundles all graphkit collectors around a dedicated
// prometheus registry so embedding applications control exposure.
type Registry struct {
	registry *prometheus.Registry

	AlgorithmRunsTotal  *prometheus.CounterVec
	AlgorithmDuration   *prometheus.HistogramVec
	AlgorithmIterations *prometheus.HistogramVec
	GraphNodes          *prometheus.HistogramVec
	GraphEdges          *prometheus.HistogramVec
	ConvergenceFailures *prometheus.CounterVec
}

// NewRegistry creates a Registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initAlgorithmMetrics()
	return r
}

// PrometheusRegistry returns the underlying registry for exposition.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordRun records one algorithm invocation.
func (r *Registry) RecordRun(algorithm, status string, duration time.Duration, iterations, nodes, edges int) {
	r.AlgorithmRunsTotal.WithLabelValues(algorithm, status).Inc()
	r.AlgorithmDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	r.AlgorithmIterations.WithLabelValues(algorithm).Observe(float64(iterations))
	r.GraphNodes.WithLabelValues(algorithm).Observe(float64(nodes))
	r.GraphEdges.WithLabelValues(algorithm).Observe(float64(edges))
}

// RecordConvergenceFailure counts a run that hit its iteration cap
// without stabilizing.
func (r *Registry) RecordConvergenceFailure(algorithm string) {
	r.ConvergenceFailures.WithLabelValues(algorithm).Inc()
}
