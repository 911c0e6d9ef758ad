package algorithms

import "github.com/citemesh/graphkit/pkg/graph"

// halfEdge is one direction of an undirected weighted adjacency entry.
type halfEdge struct {
	to int
	w  float64
}

// compactGraph is an integer-indexed, undirected, weighted snapshot of a
// graph, built once per algorithm invocation. Index order follows node
// insertion order so iteration stays deterministic.
type compactGraph struct {
	ids   []string
	index map[string]int
	adj   [][]halfEdge
	deg   []float64 // weighted degree; self-loops count twice
	total float64   // total edge weight m
}

// newCompact snapshots g with weights from wf. Every edge is treated as
// traversable in both directions regardless of the graph's directedness,
// matching the undirected semantics of community detection and quality
// metrics.
func newCompact[N, E any](g *graph.Graph[N, E], wf WeightFunc[E]) *compactGraph {
	ids := g.NodeIDs()
	c := &compactGraph{
		ids:   ids,
		index: make(map[string]int, len(ids)),
		adj:   make([][]halfEdge, len(ids)),
		deg:   make([]float64, len(ids)),
	}
	for i, id := range ids {
		c.index[id] = i
	}
	for _, e := range g.Edges() {
		w := wf(e)
		from := c.index[e.Source]
		to := c.index[e.Target]
		c.adj[from] = append(c.adj[from], halfEdge{to: to, w: w})
		if from != to {
			c.adj[to] = append(c.adj[to], halfEdge{to: from, w: w})
		}
		c.deg[from] += w
		c.deg[to] += w
		c.total += w
	}
	return c
}

// neighborSet returns the distinct neighbor indices of i, excluding i.
func (c *compactGraph) neighborSet(i int) map[int]bool {
	set := make(map[int]bool, len(c.adj[i]))
	for _, he := range c.adj[i] {
		if he.to != i {
			set[he.to] = true
		}
	}
	return set
}

// clusterResultFromLabels converts an index->community assignment to the
// public ClusterResult shape, renumbering communities to zero-indexed IDs
// in insertion order and computing per-cluster density.
func (c *compactGraph) clusterResultFromLabels(comm []int) ([]*Cluster, map[string]int) {
	renumber := make(map[int]int)
	var clusters []*Cluster
	nodeCluster := make(map[string]int, len(c.ids))
	for i, id := range c.ids {
		cid, ok := renumber[comm[i]]
		if !ok {
			cid = len(clusters)
			renumber[comm[i]] = cid
			clusters = append(clusters, &Cluster{ID: cid})
		}
		clusters[cid].Nodes = append(clusters[cid].Nodes, id)
		nodeCluster[id] = cid
	}
	for _, cl := range clusters {
		cl.Size = len(cl.Nodes)
		cl.Density = c.density(cl.Nodes, nodeCluster, cl.ID)
	}
	return clusters, nodeCluster
}

// density computes intra-cluster edge density over possible node pairs.
func (c *compactGraph) density(members []string, nodeCluster map[string]int, cid int) float64 {
	n := len(members)
	if n < 2 {
		return 0
	}
	intra := 0
	for _, id := range members {
		i := c.index[id]
		for _, he := range c.adj[i] {
			if he.to > i && nodeCluster[c.ids[he.to]] == cid {
				intra++
			}
		}
	}
	return float64(intra) / (float64(n) * float64(n-1) / 2)
}
