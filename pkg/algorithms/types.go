// Package algorithms implements graph traversal, shortest-path,
// structural-analysis, and community-detection algorithms over the
// generic store in pkg/graph. Every function is a pure, synchronous
// read of a caller-owned graph: no goroutines, no I/O, no state kept
// between calls. Expected failures come back as typed errors
// (see errors.go); results are value records built per invocation.
package algorithms

import (
	"time"

	"github.com/google/uuid"

	"github.com/citemesh/graphkit/pkg/graph"
)

// WeightFunc maps an edge to its weight for weight-aware algorithms.
// Implementations must be pure; the engine may call them in any order.
type WeightFunc[E any] func(e graph.Edge[E]) float64

// UniformWeight weighs every edge 1.0. It is the default for community
// detection and quality metrics.
func UniformWeight[E any](graph.Edge[E]) float64 {
	return 1.0
}

// EdgeWeight reads the edge's own weight, falling back to 1.0 for
// unweighted edges.
func EdgeWeight[E any](e graph.Edge[E]) float64 {
	if e.Weight == nil {
		return 1.0
	}
	return *e.Weight
}

// Cluster is one community, component, or partition: a zero-indexed ID
// plus its member node IDs.
type Cluster struct {
	ID      int
	Nodes   []string
	Size    int
	Density float64 // Edge density within the cluster
}

// RunMeta records per-run algorithm metadata.
type RunMeta struct {
	Algorithm  string
	RunID      string
	Iterations int
	Converged  bool
	Runtime    time.Duration
}

// ClusterResult is the uniform result shape for component, partition,
// and community algorithms.
type ClusterResult struct {
	Clusters    []*Cluster
	NodeCluster map[string]int // Node ID -> cluster ID
	Modularity  float64
	Meta        RunMeta
}

// ClusterOptions configures the community-detection algorithms. The zero
// value is not usable directly; call DefaultClusterOptions and override.
type ClusterOptions struct {
	// Resolution scales the null-model term in modularity. Higher values
	// produce more, smaller communities. Default 1.0.
	Resolution float64
	// MaxIterations caps optimization rounds. Default 100.
	MaxIterations int
	// MinImprovement is the modularity gain below which Louvain/Leiden
	// stop. Default 1e-6.
	MinImprovement float64
	// Epsilon is the score-stability threshold for core-periphery.
	// Default 1e-4.
	Epsilon float64
	// CoreThreshold splits core from periphery on the coreness score.
	// Default 0.5.
	CoreThreshold float64
	// Seed fixes the update order of order-sensitive algorithms (label
	// propagation). Zero means randomized per run.
	Seed int64
	// BalanceTolerance is the max allowed ratio between the largest and
	// smallest spectral partition. Default 3.0.
	BalanceTolerance float64
}

// DefaultClusterOptions returns the engine defaults.
func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{
		Resolution:       1.0,
		MaxIterations:    100,
		MinImprovement:   1e-6,
		Epsilon:          1e-4,
		CoreThreshold:    0.5,
		BalanceTolerance: 3.0,
	}
}

func newRunMeta(algorithm string) RunMeta {
	return RunMeta{Algorithm: algorithm, RunID: uuid.NewString()}
}

func (m *RunMeta) finish(start time.Time, iterations int, converged bool) {
	m.Iterations = iterations
	m.Converged = converged
	m.Runtime = time.Since(start)
}

// buildClusters converts a node->label assignment into zero-indexed
// clusters ordered by first appearance in order. Density is filled by
// callers that have adjacency at hand.
func buildClusters(order []string, labels map[string]string) ([]*Cluster, map[string]int) {
	clusterID := make(map[string]int)
	var clusters []*Cluster
	nodeCluster := make(map[string]int, len(order))
	for _, id := range order {
		label := labels[id]
		cid, ok := clusterID[label]
		if !ok {
			cid = len(clusters)
			clusterID[label] = cid
			clusters = append(clusters, &Cluster{ID: cid})
		}
		clusters[cid].Nodes = append(clusters[cid].Nodes, id)
		nodeCluster[id] = cid
	}
	for _, c := range clusters {
		c.Size = len(c.Nodes)
	}
	return clusters, nodeCluster
}
