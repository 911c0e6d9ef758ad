package algorithms

import "github.com/citemesh/graphkit/pkg/graph"

// CoreResult is the node set of a k-core: the maximal subgraph where
// every node keeps degree >= K inside the subgraph.
type CoreResult struct {
	K     int
	Nodes []string
}

// TrussResult is a k-truss: the maximal subgraph whose every edge
// participates in at least K-2 triangles within the subgraph.
type TrussResult struct {
	K     int
	Edges []string
	Nodes []string
}

// KCore peels nodes of degree < k iteratively until the k-core remains.
// Edges are treated as undirected and parallel edges each count toward
// degree. O(V+E) time. Fails with ErrInvalidInput for k < 1; a graph too
// small to contain a k-core yields an empty result.
func KCore[N, E any](g *graph.Graph[N, E], k int) (*CoreResult, error) {
	if k < 1 {
		return nil, opErr("KCore", ErrInvalidInput)
	}
	res := &CoreResult{K: k}
	c := newCompact(g, UniformWeight[E])
	n := len(c.ids)
	if n == 0 {
		return res, nil
	}

	degree := make([]int, n)
	for i := range c.adj {
		degree[i] = len(c.adj[i])
	}
	removed := make([]bool, n)

	// Iterative peeling: queue every node that falls under k.
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if degree[i] < k {
			removed[i] = true
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, he := range c.adj[u] {
			v := he.to
			if removed[v] {
				continue
			}
			degree[v]--
			if degree[v] < k {
				removed[v] = true
				queue = append(queue, v)
			}
		}
	}

	for i := 0; i < n; i++ {
		if !removed[i] {
			res.Nodes = append(res.Nodes, c.ids[i])
		}
	}
	return res, nil
}

// KTruss peels edges whose triangle support inside the remaining
// subgraph falls below k-2, until every surviving edge has sufficient
// support. Edges are treated as undirected. Fails with ErrInvalidInput
// for k < 2; graphs with no triangles yield an empty result for k >= 3.
func KTruss[N, E any](g *graph.Graph[N, E], k int) (*TrussResult, error) {
	if k < 2 {
		return nil, opErr("KTruss", ErrInvalidInput)
	}
	res := &TrussResult{K: k}

	ids := g.NodeIDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	// Undirected simple adjacency with one representative edge ID per
	// node pair; self-loops never join triangles.
	type pair struct{ a, b int }
	norm := func(u, v int) pair {
		if u < v {
			return pair{u, v}
		}
		return pair{v, u}
	}
	edgeID := make(map[pair]string)
	adj := make([]map[int]bool, len(ids))
	for i := range adj {
		adj[i] = make(map[int]bool)
	}
	var pairs []pair
	for _, e := range g.Edges() {
		u, v := index[e.Source], index[e.Target]
		if u == v {
			continue
		}
		p := norm(u, v)
		if _, seen := edgeID[p]; seen {
			continue
		}
		edgeID[p] = e.ID
		adj[p.a][p.b] = true
		adj[p.b][p.a] = true
		pairs = append(pairs, p)
	}

	support := func(p pair) int {
		s := 0
		for w := range adj[p.a] {
			if adj[p.b][w] {
				s++
			}
		}
		return s
	}

	// Peel until stable.
	alive := make(map[pair]bool, len(pairs))
	for _, p := range pairs {
		alive[p] = true
	}
	threshold := k - 2
	for {
		var doomed []pair
		for _, p := range pairs {
			if alive[p] && support(p) < threshold {
				doomed = append(doomed, p)
			}
		}
		if len(doomed) == 0 {
			break
		}
		for _, p := range doomed {
			alive[p] = false
			delete(adj[p.a], p.b)
			delete(adj[p.b], p.a)
		}
	}

	inTruss := make(map[int]bool)
	for _, p := range pairs {
		if alive[p] {
			res.Edges = append(res.Edges, edgeID[p])
			inTruss[p.a] = true
			inTruss[p.b] = true
		}
	}
	for i, id := range ids {
		if inTruss[i] {
			res.Nodes = append(res.Nodes, id)
		}
	}
	return res, nil
}
