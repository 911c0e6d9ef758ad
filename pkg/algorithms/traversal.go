package algorithms

import "github.com/citemesh/graphkit/pkg/graph"

// TraversalResult is the ordered outcome of a DFS or BFS walk. Parent
// maps each visited node to its tree parent; roots map to the empty
// string. Discovery and Finish carry DFS pre/post-order counters and are
// nil for BFS.
type TraversalResult struct {
	Order     []string
	Parent    map[string]string
	Discovery map[string]int
	Finish    map[string]int
}

// BFS visits every node reachable from startID exactly once in
// breadth-first order. Neighbors are expanded in edge-insertion order.
// O(V+E) time, O(V) space. Fails with ErrInvalidInput if startID is
// absent. Unreached nodes are simply omitted.
func BFS[N, E any](g *graph.Graph[N, E], startID string) (*TraversalResult, error) {
	if !g.HasNode(startID) {
		return nil, nodeErr("BFS", startID, ErrInvalidInput)
	}

	res := &TraversalResult{
		Order:  make([]string, 0, g.NodeCount()),
		Parent: map[string]string{startID: ""},
	}
	visited := map[string]bool{startID: true}
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		res.Order = append(res.Order, current)

		neighbors, err := g.Neighbors(current)
		if err != nil {
			continue
		}
		for _, next := range neighbors {
			if !visited[next] {
				visited[next] = true
				res.Parent[next] = current
				queue = append(queue, next)
			}
		}
	}
	return res, nil
}

// DFS visits every node reachable from startID exactly once in
// depth-first order, recording discovery and finish counters from a
// shared pre/post-order clock. Neighbors are expanded in edge-insertion
// order. O(V+E) time, O(V) space. Fails with ErrInvalidInput if startID
// is absent.
func DFS[N, E any](g *graph.Graph[N, E], startID string) (*TraversalResult, error) {
	if !g.HasNode(startID) {
		return nil, nodeErr("DFS", startID, ErrInvalidInput)
	}

	res := &TraversalResult{
		Order:     make([]string, 0, g.NodeCount()),
		Parent:    map[string]string{startID: ""},
		Discovery: make(map[string]int),
		Finish:    make(map[string]int),
	}
	clock := 0

	// Explicit stack with an expansion marker per frame so finish times
	// match the recursive formulation without risking deep recursion.
	type frame struct {
		id       string
		expanded bool
	}
	stack := []frame{{id: startID}}
	visited := map[string]bool{startID: true}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.expanded {
			res.Finish[top.id] = clock
			clock++
			stack = stack[:len(stack)-1]
			continue
		}
		top.expanded = true
		res.Order = append(res.Order, top.id)
		res.Discovery[top.id] = clock
		clock++

		neighbors, err := g.Neighbors(top.id)
		if err != nil {
			continue
		}
		// Push in reverse so the first-inserted neighbor is explored first.
		for i := len(neighbors) - 1; i >= 0; i-- {
			next := neighbors[i]
			if !visited[next] {
				visited[next] = true
				res.Parent[next] = top.id
				stack = append(stack, frame{id: next})
			}
		}
	}
	return res, nil
}
