package algorithms

import "github.com/citemesh/graphkit/pkg/graph"

// IsDAG reports whether the directed graph contains no cycles.
func IsDAG[N, E any](g *graph.Graph[N, E]) (bool, error) {
	if !g.IsDirected() {
		return false, opErr("IsDAG", ErrInvalidInput)
	}
	cyclic, _, err := HasCycle(g)
	if err != nil {
		return false, err
	}
	return !cyclic, nil
}

// TopologicalSort orders the nodes of a directed acyclic graph so that
// for every edge (u,v), u precedes v, using Kahn's algorithm. O(V+E).
//
// Fails with ErrInvalidInput for undirected graphs and with
// ErrCycleDetected, carrying one concrete cycle path, when the graph is
// not acyclic.
func TopologicalSort[N, E any](g *graph.Graph[N, E]) ([]string, error) {
	const op = "TopologicalSort"
	if !g.IsDirected() {
		return nil, opErr(op, ErrInvalidInput)
	}

	ids := g.NodeIDs()
	inDegree := make(map[string]int, len(ids))
	for _, id := range ids {
		inDegree[id] = 0
	}
	for _, e := range g.Edges() {
		inDegree[e.Target]++
	}

	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(ids))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		edges, err := g.OutEdges(current)
		if err != nil {
			continue
		}
		for _, e := range edges {
			inDegree[e.Target]--
			if inDegree[e.Target] == 0 {
				queue = append(queue, e.Target)
			}
		}
	}

	// Leftover nodes sit on a cycle; surface one concrete path.
	if len(sorted) != len(ids) {
		_, cycle, err := HasCycle(g)
		if err != nil {
			return nil, err
		}
		return nil, cycleErr(op, cycle)
	}
	return sorted, nil
}
