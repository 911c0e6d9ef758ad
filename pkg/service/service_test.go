package service

import (
	"errors"
	"testing"

	"github.com/citemesh/graphkit/pkg/algorithms"
	"github.com/citemesh/graphkit/pkg/config"
	"github.com/citemesh/graphkit/pkg/metrics"
	"github.com/citemesh/graphkit/pkg/validation"
)

func newTestService() *Service {
	return New(nil, nil, metrics.NewRegistry())
}

func inputNodes(ids ...string) []validation.NodeInput {
	nodes := make([]validation.NodeInput, len(ids))
	for i, id := range ids {
		nodes[i] = validation.NodeInput{ID: id}
	}
	return nodes
}

func inputEdge(source, target string) validation.EdgeInput {
	return validation.EdgeInput{Source: source, Target: target}
}

// Two triangles joined by a single bridge edge.
func bridgedTriangles() GraphInput {
	return GraphInput{
		Nodes: inputNodes("a", "b", "c", "x", "y", "z"),
		Edges: []validation.EdgeInput{
			inputEdge("a", "b"), inputEdge("b", "c"), inputEdge("c", "a"),
			inputEdge("x", "y"), inputEdge("y", "z"), inputEdge("z", "x"),
			inputEdge("c", "x"),
		},
	}
}

func TestTraverseBFS(t *testing.T) {
	s := newTestService()
	resp, err := s.Traverse(&TraversalRequest{Graph: bridgedTriangles(), Start: "a", Mode: "bfs"})
	if err != nil {
		t.Fatalf("Traverse: %v", err)
	}
	if len(resp.Order) != 6 {
		t.Errorf("expected all 6 nodes visited, got %d", len(resp.Order))
	}
	if resp.Order[0] != "a" {
		t.Errorf("expected traversal to start at a, got %s", resp.Order[0])
	}
	if !resp.Visited["z"] {
		t.Error("expected z to be reachable across the bridge")
	}
	if resp.Parent["a"] != "" {
		t.Errorf("expected root to have empty parent, got %q", resp.Parent["a"])
	}
}

func TestTraverseRejectsUnknownMode(t *testing.T) {
	s := newTestService()
	if _, err := s.Traverse(&TraversalRequest{Graph: bridgedTriangles(), Start: "a", Mode: "random"}); err == nil {
		t.Error("expected error for unknown traversal mode")
	}
}

func TestFindPath(t *testing.T) {
	s := newTestService()
	resp, err := s.FindPath(&PathRequest{Graph: bridgedTriangles(), Source: "a", Target: "y"})
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if !resp.Found {
		t.Fatal("expected a path from a to y")
	}
	if resp.Nodes[0] != "a" || resp.Nodes[len(resp.Nodes)-1] != "y" {
		t.Errorf("path endpoints wrong: %v", resp.Nodes)
	}
	if resp.Weight != float64(len(resp.Edges)) {
		t.Errorf("unweighted edges should cost 1 each, got weight %f over %d edges", resp.Weight, len(resp.Edges))
	}
}

func TestFindPathMinWeight(t *testing.T) {
	s := newTestService()
	weighted := func(source, target string, w float64) validation.EdgeInput {
		return validation.EdgeInput{Source: source, Target: target, Weight: &w}
	}
	in := GraphInput{
		Nodes: inputNodes("a", "b", "d"),
		Edges: []validation.EdgeInput{
			weighted("a", "d", 0.5),
			weighted("a", "b", 2),
			weighted("b", "d", 2),
		},
	}

	// Unfiltered, the cheap direct edge wins.
	resp, err := s.FindPath(&PathRequest{Graph: in, Source: "a", Target: "d"})
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if len(resp.Nodes) != 2 || resp.Weight != 0.5 {
		t.Fatalf("expected direct route at weight 0.5, got %v at %f", resp.Nodes, resp.Weight)
	}

	// A minimum weight of 1 hides the 0.5 edge from the search.
	resp, err = s.FindPath(&PathRequest{Graph: in, Source: "a", Target: "d", MinWeight: 1})
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if !resp.Found {
		t.Fatal("expected a route over the heavier edges")
	}
	if len(resp.Nodes) != 3 || resp.Nodes[1] != "b" || resp.Weight != 4 {
		t.Errorf("expected route a-b-d at weight 4, got %v at %f", resp.Nodes, resp.Weight)
	}

	// Raising the bar past every edge leaves no route at all.
	resp, err = s.FindPath(&PathRequest{Graph: in, Source: "a", Target: "d", MinWeight: 3})
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if resp.Found {
		t.Error("expected no route once every edge is filtered out")
	}
}

func TestFindPathNoRoute(t *testing.T) {
	s := newTestService()
	in := GraphInput{
		Nodes: inputNodes("a", "b", "c"),
		Edges: []validation.EdgeInput{inputEdge("a", "b")},
	}
	resp, err := s.FindPath(&PathRequest{Graph: in, Source: "a", Target: "c"})
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if resp.Found {
		t.Error("expected no route to isolated node")
	}
}

func TestDetectCommunitiesLouvain(t *testing.T) {
	s := newTestService()
	resp, err := s.DetectCommunities(&CommunityRequest{
		Graph:       bridgedTriangles(),
		Algorithm:   "louvain",
		WithQuality: true,
	})
	if err != nil {
		t.Fatalf("DetectCommunities: %v", err)
	}
	if len(resp.Clusters) != 2 {
		t.Fatalf("expected 2 communities for bridged triangles, got %d", len(resp.Clusters))
	}
	if resp.Assignments["a"] != resp.Assignments["b"] || resp.Assignments["b"] != resp.Assignments["c"] {
		t.Error("expected a,b,c in one community")
	}
	if resp.Assignments["a"] == resp.Assignments["x"] {
		t.Error("expected the two triangles in different communities")
	}
	if resp.Modularity <= 0 {
		t.Errorf("expected positive modularity, got %f", resp.Modularity)
	}
	if resp.Quality == nil {
		t.Fatal("expected quality metrics")
	}
	if resp.Quality.Coverage != 1.0 {
		t.Errorf("expected full coverage, got %f", resp.Quality.Coverage)
	}
	if resp.Meta.RunID == "" {
		t.Error("expected a run id")
	}
}

func TestDetectCommunitiesCorePeriphery(t *testing.T) {
	s := newTestService()
	in := GraphInput{
		Nodes: inputNodes("hub", "l1", "l2", "l3", "l4"),
		Edges: []validation.EdgeInput{
			inputEdge("hub", "l1"), inputEdge("hub", "l2"),
			inputEdge("hub", "l3"), inputEdge("hub", "l4"),
		},
	}
	resp, err := s.DetectCommunities(&CommunityRequest{Graph: in, Algorithm: "core-periphery"})
	if err != nil {
		t.Fatalf("DetectCommunities: %v", err)
	}
	if len(resp.Core) != 1 || resp.Core[0] != "hub" {
		t.Errorf("expected only the hub in the core, got %v", resp.Core)
	}
	if len(resp.Periphery) != 4 {
		t.Errorf("expected 4 leaves in the periphery, got %v", resp.Periphery)
	}
}

func TestDetectCommunitiesSpectralTooFewNodes(t *testing.T) {
	s := newTestService()
	in := GraphInput{
		Nodes: inputNodes("a", "b"),
		Edges: []validation.EdgeInput{inputEdge("a", "b")},
	}
	_, err := s.DetectCommunities(&CommunityRequest{Graph: in, Algorithm: "spectral", Partitions: 3})
	if !errors.Is(err, algorithms.ErrInvalidK) {
		t.Errorf("expected ErrInvalidK for k > node count, got %v", err)
	}
}

func TestDetectCommunitiesUnknownAlgorithm(t *testing.T) {
	s := newTestService()
	if _, err := s.DetectCommunities(&CommunityRequest{Graph: bridgedTriangles(), Algorithm: "quantum"}); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestAnalyzeStructureCycles(t *testing.T) {
	s := newTestService()
	in := GraphInput{
		Directed: true,
		Nodes:    inputNodes("a", "b", "c"),
		Edges: []validation.EdgeInput{
			inputEdge("a", "b"), inputEdge("b", "c"), inputEdge("c", "a"),
		},
	}
	resp, err := s.AnalyzeStructure(&StructureRequest{Graph: in, Analysis: "cycles"})
	if err != nil {
		t.Fatalf("AnalyzeStructure: %v", err)
	}
	if !resp.HasCycle {
		t.Error("expected a cycle in the directed triangle")
	}
	if len(resp.Cycle) == 0 {
		t.Error("expected the cycle path to be reported")
	}
}

func TestAnalyzeStructureTopoSort(t *testing.T) {
	s := newTestService()
	in := GraphInput{
		Directed: true,
		Nodes:    inputNodes("a", "b", "c"),
		Edges:    []validation.EdgeInput{inputEdge("a", "b"), inputEdge("b", "c")},
	}
	resp, err := s.AnalyzeStructure(&StructureRequest{Graph: in, Analysis: "topo-sort"})
	if err != nil {
		t.Fatalf("AnalyzeStructure: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if resp.Order[i] != id {
			t.Fatalf("expected order %v, got %v", want, resp.Order)
		}
	}
}

func TestAnalyzeStructureKCore(t *testing.T) {
	s := newTestService()
	resp, err := s.AnalyzeStructure(&StructureRequest{Graph: bridgedTriangles(), Analysis: "k-core", K: 2})
	if err != nil {
		t.Fatalf("AnalyzeStructure: %v", err)
	}
	if len(resp.Highlight) != 6 {
		t.Errorf("every triangle node has degree >= 2, expected 6 in 2-core, got %d", len(resp.Highlight))
	}
}

func TestAnalyzeStructureUnknown(t *testing.T) {
	s := newTestService()
	if _, err := s.AnalyzeStructure(&StructureRequest{Graph: bridgedTriangles(), Analysis: "mystery"}); err == nil {
		t.Error("expected error for unknown analysis")
	}
}

func TestBuildGraphRejectsInvalidNode(t *testing.T) {
	s := newTestService()
	in := GraphInput{Nodes: []validation.NodeInput{{ID: ""}}}
	if _, err := s.Traverse(&TraversalRequest{Graph: in, Start: "a", Mode: "bfs"}); err == nil {
		t.Error("expected validation error for empty node ID")
	}
}

func TestBuildGraphRejectsOversizedInput(t *testing.T) {
	cfg := config.Default()
	cfg.Service.MaxNodes = 2
	s := New(cfg, nil, nil)
	if _, err := s.Traverse(&TraversalRequest{Graph: bridgedTriangles(), Start: "a", Mode: "bfs"}); err == nil {
		t.Error("expected error for graph over node limit")
	}
}
