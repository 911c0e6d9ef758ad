package algorithms

import (
	"errors"
	"testing"
)

// TestSCC_TwoCyclesAndABridge tests the classic two-SCC layout.
func TestSCC_TwoCyclesAndABridge(t *testing.T) {
	// {a,b,c} cycle -> {d,e} cycle, plus sink f
	g := buildGraph(t, true, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"c", "d"},
		{"d", "e"}, {"e", "d"},
		{"e", "f"},
	})

	res, err := StronglyConnectedComponents(g)
	if err != nil {
		t.Fatalf("SCC failed: %v", err)
	}
	if len(res.Clusters) != 3 {
		t.Fatalf("expected 3 SCCs, got %d", len(res.Clusters))
	}
	if res.NodeCluster["a"] != res.NodeCluster["b"] || res.NodeCluster["b"] != res.NodeCluster["c"] {
		t.Error("a, b, c form one SCC")
	}
	if res.NodeCluster["d"] != res.NodeCluster["e"] {
		t.Error("d and e form one SCC")
	}
	if res.NodeCluster["a"] == res.NodeCluster["d"] {
		t.Error("the two cycles are separate SCCs")
	}
	if res.LargestSCC == nil || res.LargestSCC.Size != 3 {
		t.Errorf("expected largest SCC of size 3, got %+v", res.LargestSCC)
	}
	if res.SingletonCount != 1 {
		t.Errorf("expected 1 singleton (f), got %d", res.SingletonCount)
	}
}

// TestSCC_AcyclicGraph verifies every node is its own SCC in a DAG.
func TestSCC_AcyclicGraph(t *testing.T) {
	g := buildGraph(t, true, [][2]string{{"a", "b"}, {"b", "c"}})

	res, err := StronglyConnectedComponents(g)
	if err != nil {
		t.Fatalf("SCC failed: %v", err)
	}
	if len(res.Clusters) != 3 {
		t.Errorf("expected 3 singleton SCCs, got %d", len(res.Clusters))
	}
	if res.SingletonCount != 3 {
		t.Errorf("expected all singletons, got %d", res.SingletonCount)
	}
}

// TestSCC_Undirected verifies undirected graphs are rejected.
func TestSCC_Undirected(t *testing.T) {
	g := buildGraph(t, false, [][2]string{{"a", "b"}})

	if _, err := StronglyConnectedComponents(g); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// TestCondensation verifies the contracted component DAG.
func TestCondensation(t *testing.T) {
	// Two edges cross from the {a,b} SCC to the {c,d} SCC.
	g := buildGraph(t, true, [][2]string{
		{"a", "b"}, {"b", "a"},
		{"c", "d"}, {"d", "c"},
		{"a", "c"}, {"b", "d"},
	})

	scc, err := StronglyConnectedComponents(g)
	if err != nil {
		t.Fatalf("SCC failed: %v", err)
	}
	edges, err := Condensation(g, scc)
	if err != nil {
		t.Fatalf("Condensation failed: %v", err)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 condensation edge, got %d", len(edges))
	}
	ce := edges[0]
	if ce.FromSCC != scc.NodeCluster["a"] || ce.ToSCC != scc.NodeCluster["c"] {
		t.Errorf("condensation edge endpoints wrong: %+v", ce)
	}
	if ce.EdgeCount != 2 {
		t.Errorf("expected both crossing edges aggregated, got %d", ce.EdgeCount)
	}
}

// TestCondensation_NilResult verifies the guard on missing input.
func TestCondensation_NilResult(t *testing.T) {
	g := buildGraph(t, true, [][2]string{{"a", "b"}})

	if _, err := Condensation(g, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
