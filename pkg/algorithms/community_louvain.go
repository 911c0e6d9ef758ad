package algorithms

import (
	"time"

	"github.com/citemesh/graphkit/pkg/graph"
)

// Louvain detects communities by iterative modularity optimization:
// greedy local moves until no node move improves modularity, then
// aggregation of communities into super-nodes, repeated level by level.
// Node order is insertion order, so runs are deterministic.
//
// Stops when a level improves modularity by less than
// opts.MinImprovement or after opts.MaxIterations local-move passes.
// Fails with ErrEmptyGraph on a graph without nodes. The weight function
// defaults to uniform 1.0.
func Louvain[N, E any](g *graph.Graph[N, E], opts ClusterOptions, wf WeightFunc[E]) (*ClusterResult, error) {
	if g.NodeCount() == 0 {
		return nil, opErr("Louvain", ErrEmptyGraph)
	}
	if wf == nil {
		wf = UniformWeight[E]
	}
	start := time.Now()
	meta := newRunMeta("louvain")

	c := newCompact(g, wf)
	comm, passes, converged := louvainLevels(c, opts)

	clusters, nodeCluster := c.clusterResultFromLabels(comm)
	meta.finish(start, passes, converged)
	return &ClusterResult{
		Clusters:    clusters,
		NodeCluster: nodeCluster,
		Modularity:  modularityCompact(c, comm, opts.Resolution),
		Meta:        meta,
	}, nil
}

// workGraph is the mutable multi-level view Louvain optimizes over.
type workGraph struct {
	adj   [][]halfEdge
	deg   []float64
	total float64
}

func workFromCompact(c *compactGraph) *workGraph {
	return &workGraph{adj: c.adj, deg: c.deg, total: c.total}
}

// louvainLevels runs move+aggregate levels and returns the final
// assignment over the original node indices, the number of local-move
// passes consumed, and whether the loop converged before the pass cap.
func louvainLevels(c *compactGraph, opts ClusterOptions) ([]int, int, bool) {
	w := workFromCompact(c)

	// assign maps each original node to its community in the current
	// level's node space.
	assign := identity(len(c.ids))
	passes := 0
	prevQ := workModularity(w, identity(len(w.deg)), opts.Resolution)

	for {
		comm, used := localMove(w, opts, opts.MaxIterations-passes)
		passes += used
		q := workModularity(w, comm, opts.Resolution)

		// One shared renumbering keeps assign and the aggregated graph
		// in the same community space.
		rn := renumber(comm)
		k := distinct(rn)
		for i := range assign {
			assign[i] = rn[assign[i]]
		}

		if q-prevQ < opts.MinImprovement || k == len(w.deg) {
			return assign, passes, true
		}
		if passes >= opts.MaxIterations {
			return assign, passes, false
		}
		prevQ = q
		w = aggregate(w, rn, k)
	}
}

// localMove greedily reassigns nodes to the neighboring community with
// the highest modularity gain until a full pass makes no move, or
// maxPasses is exhausted. Returns the community of each node and the
// number of passes used.
func localMove(w *workGraph, opts ClusterOptions, maxPasses int) ([]int, int) {
	n := len(w.deg)
	comm := identity(n)
	sumTot := make([]float64, n)
	copy(sumTot, w.deg)

	if w.total == 0 || maxPasses <= 0 {
		return comm, 0
	}
	m2 := 2 * w.total

	used := 0
	for pass := 0; pass < maxPasses; pass++ {
		used++
		moved := 0
		for i := 0; i < n; i++ {
			current := comm[i]

			// Weight from i to each neighboring community.
			neighWeight := make(map[int]float64)
			for _, he := range w.adj[i] {
				if he.to == i {
					continue
				}
				neighWeight[comm[he.to]] += he.w
			}

			sumTot[current] -= w.deg[i]

			best := current
			bestGain := neighWeight[current] - opts.Resolution*sumTot[current]*w.deg[i]/m2
			for cid, wt := range neighWeight {
				if cid == current {
					continue
				}
				gain := wt - opts.Resolution*sumTot[cid]*w.deg[i]/m2
				if gain > bestGain || (gain == bestGain && cid < best) {
					best = cid
					bestGain = gain
				}
			}

			sumTot[best] += w.deg[i]
			if best != current {
				comm[i] = best
				moved++
			}
		}
		if moved == 0 {
			break
		}
	}
	return comm, used
}

// aggregate collapses each community into a single super-node, summing
// edge weights; intra-community weight becomes a self-loop.
func aggregate(w *workGraph, comm []int, k int) *workGraph {
	agg := &workGraph{
		adj:   make([][]halfEdge, k),
		deg:   make([]float64, k),
		total: 0,
	}
	type key struct{ a, b int }
	weights := make(map[key]float64)
	var order []key
	add := func(k key, wt float64) {
		if _, seen := weights[k]; !seen {
			order = append(order, k)
		}
		weights[k] += wt
	}

	for i := range w.adj {
		ci := comm[i]
		for _, he := range w.adj[i] {
			if he.to == i {
				add(key{ci, ci}, he.w) // self-loop contributes once
				continue
			}
			if he.to < i {
				continue // count each undirected entry once
			}
			a, b := ci, comm[he.to]
			if a > b {
				a, b = b, a
			}
			add(key{a, b}, he.w)
		}
	}

	for _, k2 := range order {
		w2 := weights[k2]
		if k2.a == k2.b {
			agg.adj[k2.a] = append(agg.adj[k2.a], halfEdge{to: k2.a, w: w2})
			agg.deg[k2.a] += 2 * w2
		} else {
			agg.adj[k2.a] = append(agg.adj[k2.a], halfEdge{to: k2.b, w: w2})
			agg.adj[k2.b] = append(agg.adj[k2.b], halfEdge{to: k2.a, w: w2})
			agg.deg[k2.a] += w2
			agg.deg[k2.b] += w2
		}
		agg.total += w2
	}
	return agg
}

// workModularity mirrors modularityCompact for the mutable level graph.
func workModularity(w *workGraph, comm []int, resolution float64) float64 {
	if w.total == 0 {
		return 0
	}
	intra := make(map[int]float64)
	degSum := make(map[int]float64)
	for i := range w.adj {
		degSum[comm[i]] += w.deg[i]
		for _, he := range w.adj[i] {
			if comm[he.to] != comm[i] {
				continue
			}
			if he.to == i {
				intra[comm[i]] += he.w
			} else if he.to > i {
				intra[comm[i]] += he.w
			}
		}
	}
	q := 0.0
	for _, l := range intra {
		q += l / w.total
	}
	for _, d := range degSum {
		frac := d / (2 * w.total)
		q -= resolution * frac * frac
	}
	return q
}

func identity(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// renumber maps arbitrary labels to 0..k-1 in first-appearance order.
func renumber(labels []int) []int {
	seen := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		id, ok := seen[l]
		if !ok {
			id = len(seen)
			seen[l] = id
		}
		out[i] = id
	}
	return out
}

// distinct reports the community count of a renumbered label slice.
func distinct(labels []int) int {
	max := -1
	for _, l := range labels {
		if l > max {
			max = l
		}
	}
	return max + 1
}
