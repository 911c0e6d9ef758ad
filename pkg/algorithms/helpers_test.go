package algorithms

import (
	"fmt"
	"testing"

	"github.com/citemesh/graphkit/pkg/graph"
)

// buildGraph creates a graph from edge pairs, auto-creating nodes on
// first mention. Edge IDs are "e0", "e1", ... in the given order.
func buildGraph(t *testing.T, directed bool, edges [][2]string, nodes ...string) *graph.Graph[struct{}, struct{}] {
	t.Helper()

	var opts []graph.Option
	if directed {
		opts = append(opts, graph.Directed())
	}
	g := graph.New[struct{}, struct{}](opts...)

	addNode := func(id string) {
		if g.HasNode(id) {
			return
		}
		if err := g.AddNode(graph.Node[struct{}]{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}

	for _, id := range nodes {
		addNode(id)
	}
	for i, e := range edges {
		addNode(e[0])
		addNode(e[1])
		err := g.AddEdge(graph.Edge[struct{}]{
			ID:     fmt.Sprintf("e%d", i),
			Source: e[0],
			Target: e[1],
		})
		if err != nil {
			t.Fatalf("AddEdge(%s -> %s): %v", e[0], e[1], err)
		}
	}
	return g
}

type weightedEdge struct {
	from, to string
	weight   float64
}

// buildWeightedGraph is buildGraph with explicit per-edge weights.
func buildWeightedGraph(t *testing.T, directed bool, edges []weightedEdge) *graph.Graph[struct{}, struct{}] {
	t.Helper()

	var opts []graph.Option
	if directed {
		opts = append(opts, graph.Directed())
	}
	g := graph.New[struct{}, struct{}](opts...)

	addNode := func(id string) {
		if !g.HasNode(id) {
			if err := g.AddNode(graph.Node[struct{}]{ID: id}); err != nil {
				t.Fatalf("AddNode(%s): %v", id, err)
			}
		}
	}

	for i, e := range edges {
		addNode(e.from)
		addNode(e.to)
		w := e.weight
		err := g.AddEdge(graph.Edge[struct{}]{
			ID:     fmt.Sprintf("e%d", i),
			Source: e.from,
			Target: e.to,
			Weight: &w,
		})
		if err != nil {
			t.Fatalf("AddEdge(%s -> %s): %v", e.from, e.to, err)
		}
	}
	return g
}

// twoTriangles is the canonical community fixture: triangles {a,b,c} and
// {x,y,z} joined by the single bridge c-x.
func twoTriangles(t *testing.T) *graph.Graph[struct{}, struct{}] {
	t.Helper()
	return buildGraph(t, false, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"x", "y"}, {"y", "z"}, {"z", "x"},
		{"c", "x"},
	})
}

func sameMembers(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected members %v, got %v", want, got)
	}
	set := make(map[string]bool, len(got))
	for _, id := range got {
		set[id] = true
	}
	for _, id := range want {
		if !set[id] {
			t.Fatalf("expected members %v, got %v", want, got)
		}
	}
}
