package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/citemesh/graphkit/pkg/graph"
)

// TestPredictLinkScore_Methods tests the three scoring formulas between
// a and b, which share the neighbors x and y.
func TestPredictLinkScore_Methods(t *testing.T) {
	g := coNeighborGraph(t)

	tests := []struct {
		name   string
		method LinkPredictionMethod
		want   float64
	}{
		{"common neighbours", LinkPredCommonNeighbours, 2.0},
		// x and y each have degree 2: 2 * 1/ln(2).
		{"adamic-adar", LinkPredAdamicAdar, 2.0 / math.Log(2.0)},
		{"preferential attachment", LinkPredPreferentialAttachment, 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultLinkPredictionOptions()
			opts.Method = tt.method
			got, err := PredictLinkScore(g, "a", "b", opts)
			if err != nil {
				t.Fatalf("PredictLinkScore failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

// TestPredictLinkScore_UnknownNode tests the lookup guard.
func TestPredictLinkScore_UnknownNode(t *testing.T) {
	g := coNeighborGraph(t)

	if _, err := PredictLinkScore(g, "ghost", "b", DefaultLinkPredictionOptions()); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if _, err := PredictLinkScore(g, "a", "ghost", DefaultLinkPredictionOptions()); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

// TestPredictLinksFor_ExcludesExisting tests that current neighbors are
// skipped as candidates.
func TestPredictLinksFor_ExcludesExisting(t *testing.T) {
	g := coNeighborGraph(t)

	res, err := PredictLinksFor(g, "a", DefaultLinkPredictionOptions())
	if err != nil {
		t.Fatalf("PredictLinksFor failed: %v", err)
	}
	if res.SourceNodeID != "a" {
		t.Errorf("expected source a, got %s", res.SourceNodeID)
	}
	if len(res.Predictions) != 1 {
		t.Fatalf("expected a single candidate, got %v", res.Predictions)
	}
	p := res.Predictions[0]
	if p.Source != "a" || p.Target != "b" || p.Score != 2.0 {
		t.Errorf("expected a->b with 2 common neighbors, got %+v", p)
	}
}

// TestPredictLinksFor_PreferentialOrder tests descending order with a
// deterministic tie-break when existing edges stay in play.
func TestPredictLinksFor_PreferentialOrder(t *testing.T) {
	g := coNeighborGraph(t)

	opts := DefaultLinkPredictionOptions()
	opts.Method = LinkPredPreferentialAttachment
	opts.ExcludeExisting = false
	res, err := PredictLinksFor(g, "a", opts)
	if err != nil {
		t.Fatalf("PredictLinksFor failed: %v", err)
	}

	wantTargets := []string{"b", "x", "y", "z"}
	wantScores := []float64{6, 4, 4, 2}
	if len(res.Predictions) != len(wantTargets) {
		t.Fatalf("expected %d predictions, got %v", len(wantTargets), res.Predictions)
	}
	for i, p := range res.Predictions {
		if p.Target != wantTargets[i] || p.Score != wantScores[i] {
			t.Errorf("position %d: expected %s/%f, got %s/%f",
				i, wantTargets[i], wantScores[i], p.Target, p.Score)
		}
	}
}

// TestPredictLinksFor_TopK tests result truncation.
func TestPredictLinksFor_TopK(t *testing.T) {
	g := coNeighborGraph(t)

	opts := DefaultLinkPredictionOptions()
	opts.Method = LinkPredPreferentialAttachment
	opts.ExcludeExisting = false
	opts.TopK = 2
	res, err := PredictLinksFor(g, "a", opts)
	if err != nil {
		t.Fatalf("PredictLinksFor failed: %v", err)
	}
	if len(res.Predictions) != 2 {
		t.Fatalf("expected 2 predictions, got %d", len(res.Predictions))
	}
	if res.Predictions[0].Target != "b" || res.Predictions[1].Target != "x" {
		t.Errorf("expected [b x], got %v", res.Predictions)
	}
}
