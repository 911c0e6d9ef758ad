package algorithms

import "github.com/citemesh/graphkit/pkg/graph"

// BiconnectedResult holds the biconnected components of an undirected
// graph and its articulation points. Each component is the node set of a
// maximal subgraph with no cut vertex.
type BiconnectedResult struct {
	Components         []*Cluster
	ArticulationPoints []string
}

// BiconnectedComponents decomposes the graph with the Hopcroft-Tarjan
// low-link algorithm, treating edges as undirected. O(V+E) time. Graphs
// with fewer than two nodes short-circuit to an empty result.
func BiconnectedComponents[N, E any](g *graph.Graph[N, E]) (*BiconnectedResult, error) {
	res := &BiconnectedResult{}
	if g.NodeCount() < 2 {
		return res, nil
	}

	c := newCompact(g, UniformWeight[E])
	n := len(c.ids)
	disc := make([]int, n)
	low := make([]int, n)
	parent := make([]int, n)
	isArtic := make([]bool, n)
	for i := range disc {
		disc[i] = -1
		parent[i] = -1
	}

	type stackEdge struct{ u, v int }
	var edgeStack []stackEdge
	timer := 0

	popComponent := func(u, v int) {
		members := make(map[int]bool)
		for len(edgeStack) > 0 {
			top := edgeStack[len(edgeStack)-1]
			edgeStack = edgeStack[:len(edgeStack)-1]
			members[top.u] = true
			members[top.v] = true
			if top.u == u && top.v == v {
				break
			}
		}
		if len(members) == 0 {
			return
		}
		cl := &Cluster{ID: len(res.Components)}
		// Insertion order keeps the member list deterministic.
		for i := 0; i < n; i++ {
			if members[i] {
				cl.Nodes = append(cl.Nodes, c.ids[i])
			}
		}
		cl.Size = len(cl.Nodes)
		res.Components = append(res.Components, cl)
	}

	var visit func(u int)
	visit = func(u int) {
		disc[u] = timer
		low[u] = timer
		timer++
		children := 0

		for _, he := range c.adj[u] {
			v := he.to
			if v == u {
				continue
			}
			if disc[v] == -1 {
				children++
				parent[v] = u
				edgeStack = append(edgeStack, stackEdge{u, v})
				visit(v)
				if low[v] < low[u] {
					low[u] = low[v]
				}
				if (parent[u] == -1 && children > 1) || (parent[u] != -1 && low[v] >= disc[u]) {
					isArtic[u] = true
					popComponent(u, v)
				} else if parent[u] == -1 {
					popComponent(u, v)
				}
			} else if v != parent[u] && disc[v] < disc[u] {
				edgeStack = append(edgeStack, stackEdge{u, v})
				if disc[v] < low[u] {
					low[u] = disc[v]
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		if disc[i] == -1 {
			visit(i)
			// Any edges left on the stack form the final component of
			// this DFS tree.
			if len(edgeStack) > 0 {
				popComponent(-1, -1)
				edgeStack = edgeStack[:0]
			}
		}
	}

	for i := 0; i < n; i++ {
		if isArtic[i] {
			res.ArticulationPoints = append(res.ArticulationPoints, c.ids[i])
		}
	}
	return res, nil
}
