package algorithms

import "testing"

// TestHasCycle_DirectedLinear tests a directed path with no cycle.
func TestHasCycle_DirectedLinear(t *testing.T) {
	g := buildGraph(t, true, [][2]string{{"a", "b"}, {"b", "c"}})

	has, cycle, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if has {
		t.Errorf("expected no cycle, got %v", cycle)
	}
}

// TestHasCycle_DirectedTriangle tests a 3-node directed cycle.
func TestHasCycle_DirectedTriangle(t *testing.T) {
	g := buildGraph(t, true, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	has, cycle, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if !has {
		t.Fatal("expected a cycle")
	}
	sameMembers(t, cycle, "a", "b", "c")
}

// TestHasCycle_DiamondIsAcyclic tests that converging paths are not a cycle.
func TestHasCycle_DiamondIsAcyclic(t *testing.T) {
	// a -> b -> d and a -> c -> d share the sink d
	g := buildGraph(t, true, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}})

	has, cycle, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if has {
		t.Errorf("diamond is acyclic, got cycle %v", cycle)
	}
}

// TestHasCycle_SelfLoop tests a self-referencing node.
func TestHasCycle_SelfLoop(t *testing.T) {
	g := buildGraph(t, true, [][2]string{{"a", "a"}})

	has, cycle, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if !has {
		t.Fatal("expected self-loop cycle")
	}
	if len(cycle) != 1 || cycle[0] != "a" {
		t.Errorf("expected cycle [a], got %v", cycle)
	}
}

// TestHasCycle_UndirectedSingleEdge tests that one undirected edge is not a
// cycle even though both endpoints see each other.
func TestHasCycle_UndirectedSingleEdge(t *testing.T) {
	g := buildGraph(t, false, [][2]string{{"a", "b"}})

	has, cycle, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if has {
		t.Errorf("single undirected edge is not a cycle, got %v", cycle)
	}
}

// TestHasCycle_UndirectedTriangle tests an undirected cycle.
func TestHasCycle_UndirectedTriangle(t *testing.T) {
	g := buildGraph(t, false, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	has, cycle, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if !has {
		t.Fatal("expected a cycle")
	}
	sameMembers(t, cycle, "a", "b", "c")
}

// TestHasCycle_UndirectedParallelEdges tests two edges between the same pair.
func TestHasCycle_UndirectedParallelEdges(t *testing.T) {
	g := buildGraph(t, false, [][2]string{{"a", "b"}, {"a", "b"}})

	has, _, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if !has {
		t.Error("parallel undirected edges form a 2-cycle")
	}
}

// TestHasCycle_UndirectedTree tests that a tree is acyclic.
func TestHasCycle_UndirectedTree(t *testing.T) {
	g := buildGraph(t, false, [][2]string{
		{"root", "l"}, {"root", "r"}, {"l", "ll"}, {"l", "lr"},
	})

	has, cycle, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if has {
		t.Errorf("tree is acyclic, got cycle %v", cycle)
	}
}

// TestHasCycle_EmptyGraph tests the trivial case.
func TestHasCycle_EmptyGraph(t *testing.T) {
	g := buildGraph(t, true, nil)

	has, _, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if has {
		t.Error("empty graph has no cycle")
	}
}

// TestHasCycle_CycleInSecondComponent tests detection past an acyclic component.
func TestHasCycle_CycleInSecondComponent(t *testing.T) {
	g := buildGraph(t, true, [][2]string{
		{"a", "b"},
		{"x", "y"}, {"y", "x"},
	})

	has, cycle, err := HasCycle(g)
	if err != nil {
		t.Fatalf("HasCycle failed: %v", err)
	}
	if !has {
		t.Fatal("expected cycle in second component")
	}
	sameMembers(t, cycle, "x", "y")
}
