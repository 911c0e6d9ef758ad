package algorithms

import (
	"time"

	"github.com/citemesh/graphkit/pkg/graph"
)

// SCCResult extends ClusterResult with SCC-specific aggregates.
// Modularity is always 0: SCCs are structural, not quality-optimized.
type SCCResult struct {
	*ClusterResult
	LargestSCC     *Cluster
	SingletonCount int
}

// CondensationEdge is a directed edge in the condensation DAG, where
// every SCC has been contracted to a single node.
type CondensationEdge struct {
	FromSCC   int
	ToSCC     int
	EdgeCount int
}

// StronglyConnectedComponents partitions a directed graph into its SCCs
// using Kosaraju's algorithm: one DFS pass for finish order, a second
// over the transpose in reverse finish order. O(V+E) time. Fails with
// ErrInvalidInput for undirected graphs, where strong connectivity
// degenerates to plain connectivity.
func StronglyConnectedComponents[N, E any](g *graph.Graph[N, E]) (*SCCResult, error) {
	if !g.IsDirected() {
		return nil, opErr("StronglyConnectedComponents", ErrInvalidInput)
	}
	start := time.Now()
	meta := newRunMeta("scc")

	ids := g.NodeIDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	out := make([][]int, len(ids))
	in := make([][]int, len(ids))
	for _, e := range g.Edges() {
		u, v := index[e.Source], index[e.Target]
		out[u] = append(out[u], v)
		in[v] = append(in[v], u)
	}

	// Pass 1: postorder finish stack on the original graph.
	visited := make([]bool, len(ids))
	finish := make([]int, 0, len(ids))
	var fill func(u int)
	fill = func(u int) {
		visited[u] = true
		for _, v := range out[u] {
			if !visited[v] {
				fill(v)
			}
		}
		finish = append(finish, u)
	}
	for i := range ids {
		if !visited[i] {
			fill(i)
		}
	}

	// Pass 2: DFS the transpose in reverse finish order.
	comp := make([]int, len(ids))
	for i := range comp {
		comp[i] = -1
	}
	var assign func(u, c int)
	assign = func(u, c int) {
		comp[u] = c
		for _, v := range in[u] {
			if comp[v] == -1 {
				assign(v, c)
			}
		}
	}
	next := 0
	for i := len(finish) - 1; i >= 0; i-- {
		if comp[finish[i]] == -1 {
			assign(finish[i], next)
			next++
		}
	}

	var clusters []*Cluster
	nodeCluster := make(map[string]int, len(ids))
	renumber := make(map[int]int)
	for i, id := range ids {
		cid, ok := renumber[comp[i]]
		if !ok {
			cid = len(clusters)
			renumber[comp[i]] = cid
			clusters = append(clusters, &Cluster{ID: cid})
		}
		clusters[cid].Nodes = append(clusters[cid].Nodes, id)
		nodeCluster[id] = cid
	}

	var largest *Cluster
	singletons := 0
	for _, c := range clusters {
		c.Size = len(c.Nodes)
		if c.Size == 1 {
			singletons++
		}
		if largest == nil || c.Size > largest.Size {
			largest = c
		}
	}

	meta.finish(start, 2, true)
	return &SCCResult{
		ClusterResult: &ClusterResult{
			Clusters:    clusters,
			NodeCluster: nodeCluster,
			Meta:        meta,
		},
		LargestSCC:     largest,
		SingletonCount: singletons,
	}, nil
}

// Condensation aggregates the inter-SCC edges of an SCC result into the
// component DAG. O(E) over the original edges.
func Condensation[N, E any](g *graph.Graph[N, E], scc *SCCResult) ([]CondensationEdge, error) {
	if scc == nil || scc.ClusterResult == nil {
		return nil, opErr("Condensation", ErrInvalidInput)
	}
	type key struct{ from, to int }
	counts := make(map[key]int)
	var order []key

	for _, e := range g.Edges() {
		from, okF := scc.NodeCluster[e.Source]
		to, okT := scc.NodeCluster[e.Target]
		if !okF || !okT || from == to {
			continue
		}
		k := key{from, to}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	result := make([]CondensationEdge, 0, len(order))
	for _, k := range order {
		result = append(result, CondensationEdge{FromSCC: k.from, ToSCC: k.to, EdgeCount: counts[k]})
	}
	return result, nil
}
