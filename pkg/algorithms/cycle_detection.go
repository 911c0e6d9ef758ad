package algorithms

import "github.com/citemesh/graphkit/pkg/graph"

// Cycle coloring states for DFS-based detection.
const (
	white = 0 // unvisited
	gray  = 1 // on the recursion stack
	black = 2 // fully explored
)

// HasCycle reports whether the graph contains a cycle, and if so returns
// one concrete cycle as a node-ID sequence. Directed graphs use
// white/gray/black DFS over outgoing edges; undirected graphs treat an
// edge back to any visited node other than the one just traversed as a
// cycle. O(V+E) time.
func HasCycle[N, E any](g *graph.Graph[N, E]) (bool, []string, error) {
	if g.IsDirected() {
		return hasDirectedCycle(g)
	}
	return hasUndirectedCycle(g)
}

func hasDirectedCycle[N, E any](g *graph.Graph[N, E]) (bool, []string, error) {
	color := make(map[string]int)
	parent := make(map[string]string)

	var found []string
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		edges, err := g.OutEdges(id)
		if err != nil {
			color[id] = black
			return false
		}
		for _, e := range edges {
			next := e.Target
			if next == id {
				found = []string{id}
				return true
			}
			switch color[next] {
			case white:
				parent[next] = id
				if visit(next) {
					return true
				}
			case gray:
				// Back edge: walk parents from id back to next.
				found = extractCycle(next, id, parent)
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, id := range g.NodeIDs() {
		if color[id] == white {
			if visit(id) {
				return true, found, nil
			}
		}
	}
	return false, nil, nil
}

func hasUndirectedCycle[N, E any](g *graph.Graph[N, E]) (bool, []string, error) {
	visited := make(map[string]bool)
	parent := make(map[string]string)

	var found []string
	var visit func(id, viaEdge string) bool
	visit = func(id, viaEdge string) bool {
		visited[id] = true
		edges, err := g.IncidentEdges(id)
		if err != nil {
			return false
		}
		for _, e := range edges {
			if e.ID == viaEdge {
				continue
			}
			next := e.Target
			if next == id {
				next = e.Source
			}
			if next == id { // self-loop
				found = []string{id}
				return true
			}
			if !visited[next] {
				parent[next] = id
				if visit(next, e.ID) {
					return true
				}
			} else if onPath(parent, id, next) {
				found = extractCycle(next, id, parent)
				return true
			}
		}
		return false
	}

	for _, id := range g.NodeIDs() {
		if !visited[id] {
			if visit(id, "") {
				return true, found, nil
			}
		}
	}
	return false, nil, nil
}

// onPath reports whether ancestor lies on the parent chain above id.
func onPath(parent map[string]string, id, ancestor string) bool {
	for at := id; at != ""; at = parent[at] {
		if at == ancestor {
			return true
		}
		if _, ok := parent[at]; !ok {
			return false
		}
	}
	return false
}

// extractCycle rebuilds the cycle closed by a back edge from end to
// start, using the DFS parent chain.
func extractCycle(start, end string, parent map[string]string) []string {
	cycle := []string{start}
	var tail []string
	for at := end; at != start; {
		tail = append(tail, at)
		p, ok := parent[at]
		if !ok {
			break
		}
		at = p
	}
	for i := len(tail) - 1; i >= 0; i-- {
		cycle = append(cycle, tail[i])
	}
	return cycle
}
