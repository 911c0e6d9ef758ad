package algorithms

import "github.com/citemesh/graphkit/pkg/graph"

// CycleOptions filters the cycles reported by AllCycles.
type CycleOptions struct {
	// MinLength drops cycles with fewer nodes (0 keeps all).
	MinLength int
	// MaxLength drops cycles with more nodes (0 keeps all).
	MaxLength int
	// NodeTypes, when non-empty, keeps only cycles whose every node has
	// one of the listed types.
	NodeTypes []string
}

// AllCycles enumerates the cycles found during one DFS sweep, one cycle
// per back edge. The enumeration is not exhaustive for graphs whose
// cycles share edges; it is a representative sample suited to
// diagnostics and statistics. Self-loops surface as single-node cycles.
func AllCycles[N, E any](g *graph.Graph[N, E], opts CycleOptions) ([][]string, error) {
	var cycles [][]string
	if g.IsDirected() {
		cycles = directedCycles(g)
	} else {
		cycles = undirectedCycles(g)
	}
	return filterCycles(g, cycles, opts), nil
}

func directedCycles[N, E any](g *graph.Graph[N, E]) [][]string {
	color := make(map[string]int)
	parent := make(map[string]string)
	var cycles [][]string

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		edges, err := g.OutEdges(id)
		if err != nil {
			color[id] = black
			return
		}
		for _, e := range edges {
			next := e.Target
			if next == id {
				cycles = append(cycles, []string{id})
				continue
			}
			switch color[next] {
			case white:
				parent[next] = id
				visit(next)
			case gray:
				cycles = append(cycles, extractCycle(next, id, parent))
			}
		}
		color[id] = black
	}

	for _, id := range g.NodeIDs() {
		if color[id] == white {
			visit(id)
		}
	}
	return cycles
}

func undirectedCycles[N, E any](g *graph.Graph[N, E]) [][]string {
	visited := make(map[string]bool)
	parent := make(map[string]string)
	var cycles [][]string

	var visit func(id, viaEdge string)
	visit = func(id, viaEdge string) {
		visited[id] = true
		edges, err := g.IncidentEdges(id)
		if err != nil {
			return
		}
		for _, e := range edges {
			if e.ID == viaEdge {
				continue
			}
			next := e.Target
			if next == id {
				next = e.Source
			}
			if next == id {
				cycles = append(cycles, []string{id})
				continue
			}
			if !visited[next] {
				parent[next] = id
				visit(next, e.ID)
			} else if onPath(parent, id, next) {
				cycles = append(cycles, extractCycle(next, id, parent))
			}
		}
	}

	for _, id := range g.NodeIDs() {
		if !visited[id] {
			visit(id, "")
		}
	}
	return cycles
}

func filterCycles[N, E any](g *graph.Graph[N, E], cycles [][]string, opts CycleOptions) [][]string {
	var allowed map[string]bool
	if len(opts.NodeTypes) > 0 {
		allowed = make(map[string]bool, len(opts.NodeTypes))
		for _, t := range opts.NodeTypes {
			allowed[t] = true
		}
	}

	filtered := make([][]string, 0, len(cycles))
	for _, cycle := range cycles {
		if opts.MinLength > 0 && len(cycle) < opts.MinLength {
			continue
		}
		if opts.MaxLength > 0 && len(cycle) > opts.MaxLength {
			continue
		}
		if allowed != nil && !cycleTypesMatch(g, cycle, allowed) {
			continue
		}
		filtered = append(filtered, cycle)
	}
	return filtered
}

func cycleTypesMatch[N, E any](g *graph.Graph[N, E], cycle []string, allowed map[string]bool) bool {
	for _, id := range cycle {
		n, err := g.GetNode(id)
		if err != nil || !allowed[n.Type] {
			return false
		}
	}
	return true
}

// CycleStats summarizes a cycle enumeration.
type CycleStats struct {
	TotalCycles   int
	ShortestCycle int
	LongestCycle  int
	AverageLength float64
	SelfLoops     int
}

// AnalyzeCycles computes length statistics over enumerated cycles.
func AnalyzeCycles(cycles [][]string) CycleStats {
	if len(cycles) == 0 {
		return CycleStats{}
	}

	stats := CycleStats{
		TotalCycles:   len(cycles),
		ShortestCycle: len(cycles[0]),
		LongestCycle:  len(cycles[0]),
	}
	total := 0
	for _, cycle := range cycles {
		n := len(cycle)
		total += n
		if n == 1 {
			stats.SelfLoops++
		}
		if n < stats.ShortestCycle {
			stats.ShortestCycle = n
		}
		if n > stats.LongestCycle {
			stats.LongestCycle = n
		}
	}
	stats.AverageLength = float64(total) / float64(len(cycles))
	return stats
}
