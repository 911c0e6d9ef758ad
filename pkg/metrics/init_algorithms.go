package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAlgorithmMetrics() {
	r.AlgorithmRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphkit_algorithm_runs_total",
			Help: "Total number of algorithm invocations",
		},
		[]string{"algorithm", "status"},
	)

	r.AlgorithmDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphkit_algorithm_duration_seconds",
			Help:    "Algorithm execution duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"algorithm"},
	)

	r.AlgorithmIterations = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphkit_algorithm_iterations",
			Help:    "Iterations consumed per run",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"algorithm"},
	)

	r.GraphNodes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphkit_graph_nodes",
			Help:    "Node count of the input graph per run",
			Buckets: []float64{10, 100, 1000, 10000},
		},
		[]string{"algorithm"},
	)

	r.GraphEdges = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphkit_graph_edges",
			Help:    "Edge count of the input graph per run",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		},
		[]string{"algorithm"},
	)

	r.ConvergenceFailures = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphkit_convergence_failures_total",
			Help: "Runs that hit their iteration cap without stabilizing",
		},
		[]string{"algorithm"},
	)
}
