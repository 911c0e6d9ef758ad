package algorithms

import "github.com/citemesh/graphkit/pkg/graph"

// ClusterMetrics aggregates partition quality over a whole clustering.
type ClusterMetrics struct {
	Modularity     float64
	AvgConductance float64
	AvgDensity     float64
	Coverage       float64 // fraction of edge weight falling inside clusters
	ClusterCount   int
}

// Modularity scores how much denser intra-cluster edges are than a
// random-graph null model would predict, in roughly [-1,1]. Edges are
// treated as undirected; resolution scales the null-model term (higher
// resolution favors more, smaller communities). Nodes missing from
// nodeCluster are ignored. A graph with no edge weight returns 0.
func Modularity[N, E any](g *graph.Graph[N, E], nodeCluster map[string]int, resolution float64, wf WeightFunc[E]) float64 {
	if wf == nil {
		wf = UniformWeight[E]
	}
	c := newCompact(g, wf)
	comm := make([]int, len(c.ids))
	for i, id := range c.ids {
		cid, ok := nodeCluster[id]
		if !ok {
			cid = -1 - i // unassigned nodes form singleton pseudo-clusters
		}
		comm[i] = cid
	}
	return modularityCompact(c, comm, resolution)
}

// modularityCompact computes sum_c [ l_c/m - resolution*(d_c/2m)^2 ]
// over the undirected snapshot, where l_c is intra-cluster weight and
// d_c the total degree weight of cluster c.
func modularityCompact(c *compactGraph, comm []int, resolution float64) float64 {
	if c.total == 0 {
		return 0
	}
	intra := make(map[int]float64)
	degSum := make(map[int]float64)
	for i := range c.ids {
		degSum[comm[i]] += c.deg[i]
		for _, he := range c.adj[i] {
			if comm[he.to] == comm[i] {
				if he.to == i {
					intra[comm[i]] += he.w // self-loop appears once
				} else if he.to > i {
					intra[comm[i]] += he.w
				}
			}
		}
	}
	m := c.total
	q := 0.0
	for _, l := range intra {
		q += l / m
	}
	for _, d := range degSum {
		frac := d / (2 * m)
		q -= resolution * frac * frac
	}
	return q
}

// Conductance measures how isolated a cluster is: the weight of edges
// crossing its boundary relative to the cluster's total volume
// (internal weight counted twice plus boundary weight). Lower is more
// isolated; a cluster with no volume scores 0.
func Conductance[N, E any](g *graph.Graph[N, E], members []string, wf WeightFunc[E]) float64 {
	if wf == nil {
		wf = UniformWeight[E]
	}
	inside := make(map[string]bool, len(members))
	for _, id := range members {
		inside[id] = true
	}
	internal, boundary := 0.0, 0.0
	for _, e := range g.Edges() {
		w := wf(e)
		switch {
		case inside[e.Source] && inside[e.Target]:
			internal += w
		case inside[e.Source] || inside[e.Target]:
			boundary += w
		}
	}
	volume := 2*internal + boundary
	if volume == 0 {
		return 0
	}
	return boundary / volume
}

// Density is the ratio of distinct intra-cluster node pairs connected by
// at least one edge to all possible pairs. Clusters of fewer than two
// nodes score 0.
func Density[N, E any](g *graph.Graph[N, E], members []string) float64 {
	n := len(members)
	if n < 2 {
		return 0
	}
	inside := make(map[string]bool, n)
	for _, id := range members {
		inside[id] = true
	}
	type pair struct{ a, b string }
	connected := make(map[pair]bool)
	for _, e := range g.Edges() {
		if e.Source == e.Target || !inside[e.Source] || !inside[e.Target] {
			continue
		}
		a, b := e.Source, e.Target
		if a > b {
			a, b = b, a
		}
		connected[pair{a, b}] = true
	}
	return float64(len(connected)) / (float64(n) * float64(n-1) / 2)
}

// ClusterQuality aggregates modularity, average conductance, average
// density, coverage and cluster count for a clustering result.
func ClusterQuality[N, E any](g *graph.Graph[N, E], result *ClusterResult, wf WeightFunc[E]) ClusterMetrics {
	if wf == nil {
		wf = UniformWeight[E]
	}
	metrics := ClusterMetrics{ClusterCount: len(result.Clusters)}
	metrics.Modularity = Modularity(g, result.NodeCluster, 1.0, wf)

	var condSum, densSum float64
	for _, cl := range result.Clusters {
		condSum += Conductance(g, cl.Nodes, wf)
		densSum += Density(g, cl.Nodes)
	}
	if len(result.Clusters) > 0 {
		metrics.AvgConductance = condSum / float64(len(result.Clusters))
		metrics.AvgDensity = densSum / float64(len(result.Clusters))
	}

	var intra, total float64
	for _, e := range g.Edges() {
		w := wf(e)
		total += w
		src, okS := result.NodeCluster[e.Source]
		dst, okT := result.NodeCluster[e.Target]
		if okS && okT && src == dst {
			intra += w
		}
	}
	if total > 0 {
		metrics.Coverage = intra / total
	}
	return metrics
}
