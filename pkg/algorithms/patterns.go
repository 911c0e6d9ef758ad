package algorithms

import "github.com/citemesh/graphkit/pkg/graph"

// StarDirection selects which degree counts toward hub detection.
type StarDirection int

const (
	StarBoth StarDirection = iota
	StarOut
	StarIn
)

// StarOptions configures star-pattern detection.
type StarOptions struct {
	// MinDegree is the hub threshold. Default 3.
	MinDegree int
	// Direction selects out-degree, in-degree, or both. Directionless
	// graphs always use both.
	Direction StarDirection
}

// Star is a hub node and the distinct leaves attached to it.
type Star struct {
	Center string
	Leaves []string
}

// EgoResult is the subgraph within Radius hops of Center: its node IDs
// and every edge whose endpoints both fall inside.
type EgoResult struct {
	Center string
	Radius int
	Nodes  []string
	Edges  []string
}

// StarPatterns finds hub nodes whose distinct-neighbor count in the
// configured direction reaches MinDegree, in node insertion order.
// O(V+E). Fails with ErrInvalidInput for a MinDegree < 1.
func StarPatterns[N, E any](g *graph.Graph[N, E], opts StarOptions) ([]Star, error) {
	if opts.MinDegree == 0 {
		opts.MinDegree = 3
	}
	if opts.MinDegree < 1 {
		return nil, opErr("StarPatterns", ErrInvalidInput)
	}

	var stars []Star
	for _, id := range g.NodeIDs() {
		var edges []graph.Edge[E]
		switch {
		case !g.IsDirected() || opts.Direction == StarBoth:
			edges, _ = g.IncidentEdges(id)
		case opts.Direction == StarOut:
			edges, _ = g.OutEdges(id)
		default:
			edges, _ = g.InEdges(id)
		}

		seen := make(map[string]bool)
		var leaves []string
		for _, e := range edges {
			other := e.Target
			if other == id {
				other = e.Source
			}
			if other == id || seen[other] {
				continue
			}
			seen[other] = true
			leaves = append(leaves, other)
		}
		if len(leaves) >= opts.MinDegree {
			stars = append(stars, Star{Center: id, Leaves: leaves})
		}
	}
	return stars, nil
}

// EgoNetwork extracts the subgraph within radius hops of centerID via
// bounded BFS over undirected reachability. O(V+E). Fails with
// ErrInvalidInput for an absent center or a negative radius.
func EgoNetwork[N, E any](g *graph.Graph[N, E], centerID string, radius int) (*EgoResult, error) {
	const op = "EgoNetwork"
	if !g.HasNode(centerID) {
		return nil, nodeErr(op, centerID, ErrInvalidInput)
	}
	if radius < 0 {
		return nil, opErr(op, ErrInvalidInput)
	}

	res := &EgoResult{Center: centerID, Radius: radius}
	depth := map[string]int{centerID: 0}
	queue := []string{centerID}
	res.Nodes = append(res.Nodes, centerID)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if depth[current] == radius {
			continue
		}
		edges, err := g.IncidentEdges(current)
		if err != nil {
			continue
		}
		for _, e := range edges {
			other := e.Target
			if other == current {
				other = e.Source
			}
			if _, seen := depth[other]; !seen {
				depth[other] = depth[current] + 1
				res.Nodes = append(res.Nodes, other)
				queue = append(queue, other)
			}
		}
	}

	inside := make(map[string]bool, len(res.Nodes))
	for _, id := range res.Nodes {
		inside[id] = true
	}
	for _, e := range g.Edges() {
		if inside[e.Source] && inside[e.Target] {
			res.Edges = append(res.Edges, e.ID)
		}
	}
	return res, nil
}
