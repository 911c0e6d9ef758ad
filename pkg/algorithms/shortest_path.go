package algorithms

import (
	"container/heap"
	"math"

	"github.com/citemesh/graphkit/pkg/graph"
)

// Path is a walk through the graph: node IDs, the edge IDs connecting
// consecutive nodes, and the accumulated weight.
type Path struct {
	Nodes  []string
	Edges  []string
	Weight float64
}

// PathOptions extends Dijkstra for UI-driven queries. All filtering and
// weighting is applied before relaxation, so excluded edges and nodes are
// invisible to the algorithm rather than penalized.
type PathOptions[E any] struct {
	// WeightFunc overrides the edge's stored weight. When nil, the stored
	// weight is used and edges without one fail with ErrInvalidWeight.
	WeightFunc WeightFunc[E]
	// InvertWeights replaces each weight w with 1/w after WeightFunc,
	// turning strongest connections into shortest hops. Zero weights fail
	// with ErrInvalidWeight under inversion.
	InvertWeights bool
	// AllowedNodeTypes, when non-empty, restricts traversal to nodes
	// whose Type is listed. A filtered-out source or target yields "no
	// path" rather than an error.
	AllowedNodeTypes []string
	// EdgeFilter, when set, drops edges for which it returns false.
	EdgeFilter func(e graph.Edge[E]) bool
}

// Dijkstra finds the minimum-weight path from sourceID to targetID using
// a binary heap with lazy decrease-key. O((V+E) log V) time.
//
// All participating edge weights must be >= 0: a negative weight fails
// with ErrNegativeWeight naming the edge, and a missing or non-finite
// weight fails with ErrInvalidWeight. Both checks run as an upfront scan
// over the edges visible after filtering, before any relaxation. An
// absent source or target fails with ErrInvalidInput. An unreachable
// target returns (nil, nil): the absence of a path is not an error.
func Dijkstra[N, E any](g *graph.Graph[N, E], sourceID, targetID string) (*Path, error) {
	return DijkstraWithOptions(g, sourceID, targetID, PathOptions[E]{})
}

// DijkstraWithOptions is Dijkstra with pluggable weighting and filtering.
func DijkstraWithOptions[N, E any](g *graph.Graph[N, E], sourceID, targetID string, opts PathOptions[E]) (*Path, error) {
	const op = "Dijkstra"
	if !g.HasNode(sourceID) {
		return nil, nodeErr(op, sourceID, ErrInvalidInput)
	}
	if !g.HasNode(targetID) {
		return nil, nodeErr(op, targetID, ErrInvalidInput)
	}

	allowed := allowedTypeSet(opts.AllowedNodeTypes)
	visible := func(id string) bool {
		if allowed == nil {
			return true
		}
		n, err := g.GetNode(id)
		return err == nil && allowed[n.Type]
	}

	// Resolve and validate every visible edge weight up front so the
	// relaxation loop never sees a negative or invalid value.
	weights := make(map[string]float64, g.EdgeCount())
	for _, e := range g.Edges() {
		if opts.EdgeFilter != nil && !opts.EdgeFilter(e) {
			continue
		}
		if !visible(e.Source) || !visible(e.Target) {
			continue
		}
		w, err := resolveWeight(op, e, opts)
		if err != nil {
			return nil, err
		}
		weights[e.ID] = w
	}

	if !visible(sourceID) || !visible(targetID) {
		return nil, nil
	}
	if sourceID == targetID {
		return &Path{Nodes: []string{sourceID}, Edges: []string{}}, nil
	}

	dist := map[string]float64{sourceID: 0}
	parent := make(map[string]pathHop)
	done := make(map[string]bool)

	pq := &pathHeap{{id: sourceID, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pathItem)
		if done[item.id] {
			continue // stale entry, lazy decrease-key
		}
		done[item.id] = true
		if item.id == targetID {
			break
		}

		for _, e := range outgoingArcs(g, item.id) {
			w, ok := weights[e.ID]
			if !ok {
				continue // filtered out
			}
			next := e.Target
			if next == item.id {
				next = e.Source
			}
			if done[next] {
				continue
			}
			nd := item.dist + w
			if old, seen := dist[next]; !seen || nd < old {
				dist[next] = nd
				parent[next] = pathHop{prev: item.id, edge: e.ID}
				heap.Push(pq, pathItem{id: next, dist: nd})
			}
		}
	}

	if !done[targetID] {
		return nil, nil // no path
	}
	return assemblePath(sourceID, targetID, dist[targetID], parent), nil
}

// outgoingArcs returns the edges traversable away from id, honoring the
// graph's directedness.
func outgoingArcs[N, E any](g *graph.Graph[N, E], id string) []graph.Edge[E] {
	if g.IsDirected() {
		edges, _ := g.OutEdges(id)
		return edges
	}
	edges, _ := g.IncidentEdges(id)
	return edges
}

func resolveWeight[E any](op string, e graph.Edge[E], opts PathOptions[E]) (float64, error) {
	var w float64
	if opts.WeightFunc != nil {
		w = opts.WeightFunc(e)
	} else {
		if e.Weight == nil {
			return 0, edgeErr(op, e.ID, ErrInvalidWeight)
		}
		w = *e.Weight
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, edgeErr(op, e.ID, ErrInvalidWeight)
	}
	if opts.InvertWeights {
		if w == 0 {
			return 0, edgeErr(op, e.ID, ErrInvalidWeight)
		}
		w = 1 / w
	}
	if w < 0 {
		return 0, edgeErr(op, e.ID, ErrNegativeWeight)
	}
	return w, nil
}

// pathHop links a node back to its predecessor and the edge used.
type pathHop struct {
	prev string
	edge string
}

func assemblePath(sourceID, targetID string, total float64, parent map[string]pathHop) *Path {
	var nodes, edges []string
	at := targetID
	for at != sourceID {
		hop := parent[at]
		nodes = append(nodes, at)
		edges = append(edges, hop.edge)
		at = hop.prev
	}
	nodes = append(nodes, sourceID)
	reverse(nodes)
	reverse(edges)
	return &Path{Nodes: nodes, Edges: edges, Weight: total}
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func allowedTypeSet(types []string) map[string]bool {
	if len(types) == 0 {
		return nil
	}
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}

// DistanceMap returns the unweighted hop count from sourceID to every
// reachable node via BFS. Fails with ErrInvalidInput for an absent
// source.
func DistanceMap[N, E any](g *graph.Graph[N, E], sourceID string) (map[string]int, error) {
	if !g.HasNode(sourceID) {
		return nil, nodeErr("DistanceMap", sourceID, ErrInvalidInput)
	}
	distances := map[string]int{sourceID: 0}
	queue := []string{sourceID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		neighbors, err := g.Neighbors(current)
		if err != nil {
			continue
		}
		for _, next := range neighbors {
			if _, seen := distances[next]; !seen {
				distances[next] = distances[current] + 1
				queue = append(queue, next)
			}
		}
	}
	return distances, nil
}

// pathItem is a heap entry; duplicates for the same node are allowed and
// stale ones skipped on pop.
type pathItem struct {
	id   string
	dist float64
}

type pathHeap []pathItem

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h pathHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *pathHeap) Push(x any) { *h = append(*h, x.(pathItem)) }

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
