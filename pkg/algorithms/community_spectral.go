package algorithms

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/citemesh/graphkit/pkg/graph"
)

// SpectralOptions configures balanced spectral partitioning.
type SpectralOptions[E any] struct {
	// WeightFunc defaults to uniform 1.0.
	WeightFunc WeightFunc[E]
	// BalanceTolerance is the max allowed ratio between the largest and
	// smallest partition size. Default 3.0; values < 1 are invalid.
	BalanceTolerance float64
	// Constraints lists node-ID pairs that must land in different
	// partitions. Unsatisfiable constraints fail with
	// ErrConstraintViolation.
	Constraints [][2]string
}

// SpectralPartition produces a balanced k-way partition from the k
// lowest eigenvectors of the graph Laplacian, clustered with a
// deterministic k-means (farthest-first seeding) and nudged toward the
// balance tolerance. Edges are treated as undirected.
//
// Fails with ErrEmptyGraph on an empty graph, ErrInvalidK unless
// 1 <= k <= nodeCount, ErrInvalidInput for constraints naming unknown
// nodes, ErrConstraintViolation when the constraint set cannot be
// satisfied, and ErrConvergenceFailure if the eigendecomposition fails.
func SpectralPartition[N, E any](g *graph.Graph[N, E], k int, opts SpectralOptions[E]) (*ClusterResult, error) {
	const op = "SpectralPartition"
	n := g.NodeCount()
	if n == 0 {
		return nil, opErr(op, ErrEmptyGraph)
	}
	if k < 1 || k > n {
		return nil, countErr(op, ErrInvalidK, k, n)
	}
	if opts.WeightFunc == nil {
		opts.WeightFunc = UniformWeight[E]
	}
	if opts.BalanceTolerance == 0 {
		opts.BalanceTolerance = 3.0
	}
	if opts.BalanceTolerance < 1 {
		return nil, opErr(op, ErrInvalidInput)
	}
	start := time.Now()
	meta := newRunMeta("spectral")

	c := newCompact(g, opts.WeightFunc)
	constraints, err := resolveConstraints(op, c, opts.Constraints)
	if err != nil {
		return nil, err
	}
	if k == 1 && len(constraints) > 0 {
		return nil, opErr(op, ErrConstraintViolation)
	}

	comm := make([]int, n)
	iterations := 0
	if k > 1 {
		embedding, err := laplacianEmbedding(op, c, k)
		if err != nil {
			return nil, err
		}
		comm, iterations = kmeansRows(embedding, n, k)
		rebalance(embedding, comm, k, opts.BalanceTolerance)
		if err := separate(embedding, comm, k, constraints); err != nil {
			return nil, err
		}
	}

	clusters, nodeCluster := c.clusterResultFromLabels(comm)
	meta.finish(start, iterations, true)
	return &ClusterResult{
		Clusters:    clusters,
		NodeCluster: nodeCluster,
		Modularity:  modularityCompact(c, comm, 1.0),
		Meta:        meta,
	}, nil
}

func resolveConstraints(op string, c *compactGraph, pairs [][2]string) ([][2]int, error) {
	out := make([][2]int, 0, len(pairs))
	for _, p := range pairs {
		a, okA := c.index[p[0]]
		if !okA {
			return nil, nodeErr(op, p[0], ErrInvalidInput)
		}
		b, okB := c.index[p[1]]
		if !okB {
			return nil, nodeErr(op, p[1], ErrInvalidInput)
		}
		if a == b {
			return nil, nodeErr(op, p[0], ErrConstraintViolation)
		}
		out = append(out, [2]int{a, b})
	}
	return out, nil
}

// laplacianEmbedding returns each node's coordinates in the k lowest
// eigenvectors of L = D - A.
func laplacianEmbedding(op string, c *compactGraph, k int) (*mat.Dense, error) {
	n := len(c.ids)
	lap := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		diag := 0.0
		for _, he := range c.adj[i] {
			if he.to == i {
				continue // self-loops cancel in the Laplacian
			}
			diag += he.w
			if he.to > i {
				lap.SetSym(i, he.to, lap.At(i, he.to)-he.w)
			}
		}
		lap.SetSym(i, i, diag)
	}

	var eig mat.EigenSym
	if !eig.Factorize(lap, true) {
		return nil, opErr(op, ErrConvergenceFailure)
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues come back ascending, so the first k columns are the
	// low-frequency structure.
	embedding := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			embedding.Set(i, j, vecs.At(i, j))
		}
	}
	return embedding, nil
}

// kmeansRows clusters the embedding rows with farthest-first centroid
// seeding from row 0, which keeps runs deterministic.
func kmeansRows(embedding *mat.Dense, n, k int) ([]int, int) {
	_, dims := embedding.Dims()
	row := func(i int) []float64 {
		return embedding.RawRowView(i)
	}

	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), row(0)...))
	for len(centroids) < k {
		far, farDist := 0, -1.0
		for i := 0; i < n; i++ {
			d := math.Inf(1)
			for _, cent := range centroids {
				if dd := sqDist(row(i), cent); dd < d {
					d = dd
				}
			}
			if d > farDist {
				far, farDist = i, d
			}
		}
		centroids = append(centroids, append([]float64(nil), row(far)...))
	}

	assign := make([]int, n)
	iterations := 0
	for iter := 0; iter < 50; iter++ {
		iterations++
		changed := false
		for i := 0; i < n; i++ {
			best, bestDist := 0, math.Inf(1)
			for ci, cent := range centroids {
				if d := sqDist(row(i), cent); d < bestDist {
					best, bestDist = ci, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		counts := make([]int, k)
		sums := make([][]float64, k)
		for ci := range sums {
			sums[ci] = make([]float64, dims)
		}
		for i := 0; i < n; i++ {
			counts[assign[i]]++
			for j, v := range row(i) {
				sums[assign[i]][j] += v
			}
		}
		for ci := 0; ci < k; ci++ {
			if counts[ci] == 0 {
				continue // keep the old centroid for empty clusters
			}
			for j := range sums[ci] {
				centroids[ci][j] = sums[ci][j] / float64(counts[ci])
			}
		}
	}
	return assign, iterations
}

// rebalance nudges members from oversized partitions to the smallest one
// until the size ratio meets the tolerance, choosing the member whose
// embedding sits closest to the small partition's centroid.
func rebalance(embedding *mat.Dense, assign []int, k int, tolerance float64) {
	n, _ := embedding.Dims()
	for step := 0; step < n; step++ {
		sizes := make([]int, k)
		for _, a := range assign {
			sizes[a]++
		}
		largest, smallest := 0, 0
		for ci := 1; ci < k; ci++ {
			if sizes[ci] > sizes[largest] {
				largest = ci
			}
			if sizes[ci] < sizes[smallest] {
				smallest = ci
			}
		}
		if sizes[smallest] > 0 && float64(sizes[largest])/float64(sizes[smallest]) <= tolerance {
			return
		}
		if sizes[largest] <= 1 {
			return
		}

		target := centroidOf(embedding, assign, smallest)
		best, bestDist := -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if assign[i] != largest {
				continue
			}
			if d := sqDist(embedding.RawRowView(i), target); d < bestDist {
				best, bestDist = i, d
			}
		}
		if best == -1 {
			return
		}
		assign[best] = smallest
	}
}

// separate resolves must-separate constraints by relocating the second
// node of a violated pair to the nearest partition where it has no
// constrained partner. Fails with ErrConstraintViolation when no such
// partition exists.
func separate(embedding *mat.Dense, assign []int, k int, constraints [][2]int) error {
	if len(constraints) == 0 {
		return nil
	}
	partners := make(map[int][]int)
	for _, p := range constraints {
		partners[p[0]] = append(partners[p[0]], p[1])
		partners[p[1]] = append(partners[p[1]], p[0])
	}

	for round := 0; round < len(constraints)+1; round++ {
		violated := false
		for _, p := range constraints {
			a, b := p[0], p[1]
			if assign[a] != assign[b] {
				continue
			}
			violated = true

			moved := false
			for _, ci := range nearestPartitions(embedding, assign, k, b) {
				if ci == assign[b] {
					continue
				}
				clash := false
				for _, other := range partners[b] {
					if assign[other] == ci {
						clash = true
						break
					}
				}
				if !clash {
					assign[b] = ci
					moved = true
					break
				}
			}
			if !moved {
				return opErr("SpectralPartition", ErrConstraintViolation)
			}
		}
		if !violated {
			return nil
		}
	}

	for _, p := range constraints {
		if assign[p[0]] == assign[p[1]] {
			return opErr("SpectralPartition", ErrConstraintViolation)
		}
	}
	return nil
}

// nearestPartitions orders partition indices by centroid distance to
// node i's embedding row.
func nearestPartitions(embedding *mat.Dense, assign []int, k, i int) []int {
	type cand struct {
		ci   int
		dist float64
	}
	cands := make([]cand, 0, k)
	for ci := 0; ci < k; ci++ {
		cands = append(cands, cand{ci: ci, dist: sqDist(embedding.RawRowView(i), centroidOf(embedding, assign, ci))})
	}
	for a := 1; a < len(cands); a++ {
		for b := a; b > 0 && cands[b].dist < cands[b-1].dist; b-- {
			cands[b], cands[b-1] = cands[b-1], cands[b]
		}
	}
	out := make([]int, len(cands))
	for idx, cnd := range cands {
		out[idx] = cnd.ci
	}
	return out
}

func centroidOf(embedding *mat.Dense, assign []int, ci int) []float64 {
	n, dims := embedding.Dims()
	sum := make([]float64, dims)
	count := 0
	for i := 0; i < n; i++ {
		if assign[i] != ci {
			continue
		}
		for j, v := range embedding.RawRowView(i) {
			sum[j] += v
		}
		count++
	}
	if count > 0 {
		for j := range sum {
			sum[j] /= float64(count)
		}
	}
	return sum
}

func sqDist(a, b []float64) float64 {
	d := 0.0
	for i := range a {
		diff := a[i] - b[i]
		d += diff * diff
	}
	return d
}
