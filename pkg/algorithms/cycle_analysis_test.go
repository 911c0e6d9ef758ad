package algorithms

import (
	"testing"

	"github.com/citemesh/graphkit/pkg/graph"
)

// TestAllCycles_DirectedTwoCycles tests that two disjoint directed
// cycles are both enumerated.
func TestAllCycles_DirectedTwoCycles(t *testing.T) {
	g := buildGraph(t, true, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"x", "y"}, {"y", "x"},
	})

	cycles, err := AllCycles(g, CycleOptions{})
	if err != nil {
		t.Fatalf("AllCycles failed: %v", err)
	}
	if len(cycles) != 2 {
		t.Fatalf("expected 2 cycles, got %v", cycles)
	}
	lengths := map[int]bool{}
	for _, c := range cycles {
		lengths[len(c)] = true
	}
	if !lengths[3] || !lengths[2] {
		t.Errorf("expected a 3-cycle and a 2-cycle, got %v", cycles)
	}
}

// TestAllCycles_SelfLoop tests that self-loops surface as single-node
// cycles.
func TestAllCycles_SelfLoop(t *testing.T) {
	g := buildGraph(t, true, [][2]string{
		{"a", "a"}, {"a", "b"},
	})

	cycles, err := AllCycles(g, CycleOptions{})
	if err != nil {
		t.Fatalf("AllCycles failed: %v", err)
	}
	if len(cycles) != 1 || len(cycles[0]) != 1 || cycles[0][0] != "a" {
		t.Errorf("expected the single self-loop, got %v", cycles)
	}
}

// TestAllCycles_DAG tests that an acyclic graph yields nothing.
func TestAllCycles_DAG(t *testing.T) {
	g := buildGraph(t, true, [][2]string{
		{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"},
	})

	cycles, err := AllCycles(g, CycleOptions{})
	if err != nil {
		t.Fatalf("AllCycles failed: %v", err)
	}
	if len(cycles) != 0 {
		t.Errorf("expected no cycles in a DAG, got %v", cycles)
	}
}

// TestAllCycles_LengthFilter tests the min/max length window.
func TestAllCycles_LengthFilter(t *testing.T) {
	g := buildGraph(t, true, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"x", "y"}, {"y", "x"},
	})

	short, err := AllCycles(g, CycleOptions{MaxLength: 2})
	if err != nil {
		t.Fatalf("AllCycles failed: %v", err)
	}
	if len(short) != 1 || len(short[0]) != 2 {
		t.Errorf("expected only the 2-cycle, got %v", short)
	}

	long, err := AllCycles(g, CycleOptions{MinLength: 3})
	if err != nil {
		t.Fatalf("AllCycles failed: %v", err)
	}
	if len(long) != 1 || len(long[0]) != 3 {
		t.Errorf("expected only the 3-cycle, got %v", long)
	}
}

// TestAllCycles_NodeTypeFilter tests that typed filtering keeps only
// cycles made entirely of allowed node types.
func TestAllCycles_NodeTypeFilter(t *testing.T) {
	g := graph.New[struct{}, struct{}](graph.Directed())
	for _, n := range []struct{ id, typ string }{
		{"s1", "service"}, {"s2", "service"},
		{"d1", "database"}, {"d2", "database"},
	} {
		if err := g.AddNode(graph.Node[struct{}]{ID: n.id, Type: n.typ}); err != nil {
			t.Fatalf("AddNode(%s): %v", n.id, err)
		}
	}
	for i, e := range [][2]string{
		{"s1", "s2"}, {"s2", "s1"},
		{"d1", "d2"}, {"d2", "d1"},
	} {
		if err := g.AddEdge(graph.Edge[struct{}]{ID: string(rune('a' + i)), Source: e[0], Target: e[1]}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}

	cycles, err := AllCycles(g, CycleOptions{NodeTypes: []string{"service"}})
	if err != nil {
		t.Fatalf("AllCycles failed: %v", err)
	}
	if len(cycles) != 1 {
		t.Fatalf("expected 1 service cycle, got %v", cycles)
	}
	for _, id := range cycles[0] {
		if id != "s1" && id != "s2" {
			t.Errorf("non-service node %s in filtered cycle", id)
		}
	}
}

// TestAllCycles_Undirected tests enumeration over an undirected graph
// with one cycle and one tree branch.
func TestAllCycles_Undirected(t *testing.T) {
	g := buildGraph(t, false, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"},
	})

	cycles, err := AllCycles(g, CycleOptions{})
	if err != nil {
		t.Fatalf("AllCycles failed: %v", err)
	}
	if len(cycles) != 1 || len(cycles[0]) != 3 {
		t.Errorf("expected the single triangle, got %v", cycles)
	}
}

// TestAnalyzeCycles tests the statistics summary.
func TestAnalyzeCycles(t *testing.T) {
	cycles := [][]string{
		{"a"},
		{"b", "c"},
		{"d", "e", "f", "g"},
	}

	stats := AnalyzeCycles(cycles)
	if stats.TotalCycles != 3 {
		t.Errorf("expected 3 cycles, got %d", stats.TotalCycles)
	}
	if stats.ShortestCycle != 1 || stats.LongestCycle != 4 {
		t.Errorf("expected length range [1,4], got %+v", stats)
	}
	if stats.SelfLoops != 1 {
		t.Errorf("expected 1 self-loop, got %d", stats.SelfLoops)
	}
	if stats.AverageLength != 7.0/3.0 {
		t.Errorf("expected average 7/3, got %f", stats.AverageLength)
	}
}

// TestAnalyzeCycles_Empty tests the zero-value summary.
func TestAnalyzeCycles_Empty(t *testing.T) {
	if stats := AnalyzeCycles(nil); stats != (CycleStats{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}
