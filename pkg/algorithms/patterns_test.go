package algorithms

import (
	"errors"
	"testing"
)

// TestStarPatterns_Hub tests hub detection at the default threshold.
func TestStarPatterns_Hub(t *testing.T) {
	g := buildGraph(t, false, [][2]string{
		{"hub", "l1"}, {"hub", "l2"}, {"hub", "l3"}, {"hub", "l4"},
		{"l1", "l2"},
	})

	stars, err := StarPatterns(g, StarOptions{})
	if err != nil {
		t.Fatalf("StarPatterns failed: %v", err)
	}
	if len(stars) != 1 {
		t.Fatalf("expected 1 star, got %d", len(stars))
	}
	if stars[0].Center != "hub" {
		t.Errorf("expected hub as center, got %s", stars[0].Center)
	}
	sameMembers(t, stars[0].Leaves, "l1", "l2", "l3", "l4")
}

// TestStarPatterns_MinDegree tests a custom threshold.
func TestStarPatterns_MinDegree(t *testing.T) {
	g := buildGraph(t, false, [][2]string{
		{"hub", "l1"}, {"hub", "l2"},
	})

	stars, err := StarPatterns(g, StarOptions{MinDegree: 2})
	if err != nil {
		t.Fatalf("StarPatterns failed: %v", err)
	}
	if len(stars) != 1 || stars[0].Center != "hub" {
		t.Errorf("expected hub star at threshold 2, got %v", stars)
	}
}

// TestStarPatterns_Directional tests out-degree vs in-degree hubs.
func TestStarPatterns_Directional(t *testing.T) {
	// "src" fans out to 3 nodes; "sink" receives from 3 nodes.
	g := buildGraph(t, true, [][2]string{
		{"src", "a"}, {"src", "b"}, {"src", "c"},
		{"a", "sink"}, {"b", "sink"}, {"c", "sink"},
	})

	out, err := StarPatterns(g, StarOptions{MinDegree: 3, Direction: StarOut})
	if err != nil {
		t.Fatalf("StarPatterns failed: %v", err)
	}
	if len(out) != 1 || out[0].Center != "src" {
		t.Errorf("expected src as out-star, got %v", out)
	}

	in, err := StarPatterns(g, StarOptions{MinDegree: 3, Direction: StarIn})
	if err != nil {
		t.Fatalf("StarPatterns failed: %v", err)
	}
	if len(in) != 1 || in[0].Center != "sink" {
		t.Errorf("expected sink as in-star, got %v", in)
	}
}

// TestStarPatterns_ParallelEdgesCountOnce tests leaf dedup.
func TestStarPatterns_ParallelEdgesCountOnce(t *testing.T) {
	g := buildGraph(t, false, [][2]string{
		{"hub", "l1"}, {"hub", "l1"}, {"hub", "l2"},
	})

	stars, err := StarPatterns(g, StarOptions{MinDegree: 3})
	if err != nil {
		t.Fatalf("StarPatterns failed: %v", err)
	}
	if len(stars) != 0 {
		t.Errorf("parallel edges reach only 2 distinct leaves, got %v", stars)
	}
}

// TestStarPatterns_NegativeMinDegree tests the guard.
func TestStarPatterns_NegativeMinDegree(t *testing.T) {
	g := buildGraph(t, false, [][2]string{{"a", "b"}})

	if _, err := StarPatterns(g, StarOptions{MinDegree: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// TestEgoNetwork_RadiusOne tests the immediate neighborhood.
func TestEgoNetwork_RadiusOne(t *testing.T) {
	g := twoTriangles(t)

	ego, err := EgoNetwork(g, "c", 1)
	if err != nil {
		t.Fatalf("EgoNetwork failed: %v", err)
	}
	sameMembers(t, ego.Nodes, "c", "a", "b", "x")
	// Induced edges: a-b, b-c, c-a, c-x.
	if len(ego.Edges) != 4 {
		t.Errorf("expected 4 induced edges, got %v", ego.Edges)
	}
}

// TestEgoNetwork_RadiusZero tests the degenerate single-node net.
func TestEgoNetwork_RadiusZero(t *testing.T) {
	g := twoTriangles(t)

	ego, err := EgoNetwork(g, "a", 0)
	if err != nil {
		t.Fatalf("EgoNetwork failed: %v", err)
	}
	if len(ego.Nodes) != 1 || ego.Nodes[0] != "a" {
		t.Errorf("expected only the center, got %v", ego.Nodes)
	}
	if len(ego.Edges) != 0 {
		t.Errorf("expected no edges, got %v", ego.Edges)
	}
}

// TestEgoNetwork_CoversComponent tests a radius beyond the graph diameter.
func TestEgoNetwork_CoversComponent(t *testing.T) {
	g := twoTriangles(t)

	ego, err := EgoNetwork(g, "a", 10)
	if err != nil {
		t.Fatalf("EgoNetwork failed: %v", err)
	}
	if len(ego.Nodes) != 6 {
		t.Errorf("expected the whole component, got %v", ego.Nodes)
	}
	if len(ego.Edges) != 7 {
		t.Errorf("expected all 7 edges, got %d", len(ego.Edges))
	}
}

// TestEgoNetwork_InvalidInput tests the guards.
func TestEgoNetwork_InvalidInput(t *testing.T) {
	g := twoTriangles(t)

	if _, err := EgoNetwork(g, "ghost", 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing center, got %v", err)
	}
	if _, err := EgoNetwork(g, "a", -1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative radius, got %v", err)
	}
}
