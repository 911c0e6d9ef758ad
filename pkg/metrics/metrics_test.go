package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all collectors are initialized
	if r.AlgorithmRunsTotal == nil {
		t.Error("AlgorithmRunsTotal not initialized")
	}
	if r.AlgorithmDuration == nil {
		t.Error("AlgorithmDuration not initialized")
	}
	if r.AlgorithmIterations == nil {
		t.Error("AlgorithmIterations not initialized")
	}
	if r.GraphNodes == nil {
		t.Error("GraphNodes not initialized")
	}
	if r.GraphEdges == nil {
		t.Error("GraphEdges not initialized")
	}
	if r.ConvergenceFailures == nil {
		t.Error("ConvergenceFailures not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRecordRun(t *testing.T) {
	r := NewRegistry()

	r.RecordRun("louvain", "ok", 20*time.Millisecond, 4, 100, 250)
	r.RecordRun("louvain", "ok", 30*time.Millisecond, 6, 100, 250)
	r.RecordRun("louvain", "error", 1*time.Millisecond, 0, 0, 0)

	counter, err := r.AlgorithmRunsTotal.GetMetricWithLabelValues("louvain", "ok")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Counter value = %v, want 2", metric.Counter.GetValue())
	}

	errCounter, err := r.AlgorithmRunsTotal.GetMetricWithLabelValues("louvain", "error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := errCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Error counter value = %v, want 1", metric.Counter.GetValue())
	}
}

func TestRecordRunHistograms(t *testing.T) {
	r := NewRegistry()

	r.RecordRun("leiden", "ok", 150*time.Millisecond, 8, 1000, 5000)

	families, err := r.PrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := map[string]bool{}
	for _, mf := range families {
		found[mf.GetName()] = true
		switch mf.GetName() {
		case "graphkit_algorithm_duration_seconds":
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleCount() != 1 {
				t.Errorf("duration sample count = %d, want 1", h.GetSampleCount())
			}
		case "graphkit_algorithm_iterations":
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleSum() != 8 {
				t.Errorf("iterations sum = %v, want 8", h.GetSampleSum())
			}
		}
	}
	for _, name := range []string{
		"graphkit_algorithm_runs_total",
		"graphkit_algorithm_duration_seconds",
		"graphkit_algorithm_iterations",
		"graphkit_graph_nodes",
		"graphkit_graph_edges",
	} {
		if !found[name] {
			t.Errorf("metric family %s not exported", name)
		}
	}
}

func TestRecordConvergenceFailure(t *testing.T) {
	r := NewRegistry()

	r.RecordConvergenceFailure("label_propagation")
	r.RecordConvergenceFailure("label_propagation")

	counter, err := r.ConvergenceFailures.GetMetricWithLabelValues("label_propagation")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Counter value = %v, want 2", metric.Counter.GetValue())
	}
}

func TestIndependentRegistries(t *testing.T) {
	r1 := NewRegistry()
	r2 := NewRegistry()

	r1.RecordRun("louvain", "ok", time.Millisecond, 1, 10, 10)

	counter, err := r2.AlgorithmRunsTotal.GetMetricWithLabelValues("louvain", "ok")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 0 {
		t.Errorf("registries leaked state: %v", metric.Counter.GetValue())
	}
}
