package algorithms

import (
	"math/rand"
	"time"

	"github.com/citemesh/graphkit/pkg/graph"
)

// LabelPropagation detects communities by repeatedly giving every node
// the label carrying the most weight among its neighbors, until labels
// stop changing or opts.MaxIterations is reached. O(V+E) per round,
// typically converging within a handful of rounds.
//
// Labels start as node IDs. A node only trades its label for one with
// strictly more neighborhood weight; a weight tie between such
// challengers is broken by triadic support (common neighbors shared
// with each challenger's supporters), then by the lowest label.
// Retention plus the structural tie-break keeps a label from invading
// a neighboring community across a single bridge edge. A fixed
// opts.Seed (which drives the per-round update order) makes the run
// fully deterministic; with Seed zero the update order is randomized
// per run and the partition quality stays stable even when label
// identities differ.
//
// Fails with ErrEmptyGraph on a graph without nodes. The weight function
// defaults to uniform 1.0.
func LabelPropagation[N, E any](g *graph.Graph[N, E], opts ClusterOptions, wf WeightFunc[E]) (*ClusterResult, error) {
	if g.NodeCount() == 0 {
		return nil, opErr("LabelPropagation", ErrEmptyGraph)
	}
	if wf == nil {
		wf = UniformWeight[E]
	}
	start := time.Now()
	meta := newRunMeta("label_propagation")

	c := newCompact(g, wf)
	n := len(c.ids)

	// Each node starts with its own ID as label.
	labels := make([]string, n)
	copy(labels, c.ids)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	order := identity(n)
	iterations := 0
	converged := false

	for iter := 0; iter < opts.MaxIterations; iter++ {
		iterations++
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

		changed := false
		for _, i := range order {
			weight := make(map[string]float64)
			supporters := make(map[string][]int)
			for _, he := range c.adj[i] {
				if he.to != i {
					label := labels[he.to]
					weight[label] += he.w
					supporters[label] = append(supporters[label], he.to)
				}
			}
			if len(weight) == 0 {
				continue
			}

			curWeight := weight[labels[i]]
			bestWeight := curWeight
			for _, wt := range weight {
				if wt > bestWeight {
					bestWeight = wt
				}
			}
			// The current label holds unless some challenger is strictly
			// heavier.
			if bestWeight == curWeight {
				continue
			}
			var tied []string
			for label, wt := range weight {
				if wt == bestWeight {
					tied = append(tied, label)
				}
			}
			labels[i] = pickLabel(c, i, tied, supporters)
			changed = true
		}
		if !changed {
			converged = true
			break
		}
	}

	labelByID := make(map[string]string, n)
	for i, id := range c.ids {
		labelByID[id] = labels[i]
	}
	clusters, nodeCluster := buildClusters(c.ids, labelByID)
	for _, cl := range clusters {
		cl.Density = c.density(cl.Nodes, nodeCluster, cl.ID)
	}

	meta.finish(start, iterations, converged)
	comm := make([]int, n)
	for i, id := range c.ids {
		comm[i] = nodeCluster[id]
	}
	return &ClusterResult{
		Clusters:    clusters,
		NodeCluster: nodeCluster,
		Modularity:  modularityCompact(c, comm, 1.0),
		Meta:        meta,
	}, nil
}

// pickLabel breaks a weight tie between challenger labels by triadic
// support, the number of distinct neighbors node i shares with each
// label's supporters, then by the lowest label. The outcome depends
// only on the graph, never on the update order.
func pickLabel(c *compactGraph, i int, tied []string, supporters map[string][]int) string {
	if len(tied) == 1 {
		return tied[0]
	}
	nbrs := c.neighborSet(i)
	best := ""
	bestSupport := -1
	for _, label := range tied {
		support := 0
		for _, j := range supporters[label] {
			for k := range c.neighborSet(j) {
				if nbrs[k] {
					support++
				}
			}
		}
		if support > bestSupport || (support == bestSupport && label < best) {
			best = label
			bestSupport = support
		}
	}
	return best
}
