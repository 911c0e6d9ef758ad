package algorithms

import (
	"time"

	"github.com/citemesh/graphkit/pkg/graph"
)

// ConnectedComponents partitions the graph into its connected components
// using undirected reachability (edge direction is ignored even on
// directed graphs). Components are zero-indexed in discovery order, which
// follows node insertion order. O(V+E) time.
func ConnectedComponents[N, E any](g *graph.Graph[N, E]) (*ClusterResult, error) {
	start := time.Now()
	meta := newRunMeta("connected_components")

	c := newCompact(g, UniformWeight[E])
	comp := make([]int, len(c.ids))
	for i := range comp {
		comp[i] = -1
	}

	next := 0
	for i := range c.ids {
		if comp[i] != -1 {
			continue
		}
		// BFS over the undirected snapshot.
		comp[i] = next
		queue := []int{i}
		for len(queue) > 0 {
			at := queue[0]
			queue = queue[1:]
			for _, he := range c.adj[at] {
				if comp[he.to] == -1 {
					comp[he.to] = next
					queue = append(queue, he.to)
				}
			}
		}
		next++
	}

	clusters, nodeCluster := c.clusterResultFromLabels(comp)
	meta.finish(start, 1, true)
	return &ClusterResult{
		Clusters:    clusters,
		NodeCluster: nodeCluster,
		Modularity:  modularityCompact(c, comp, 1.0),
		Meta:        meta,
	}, nil
}
