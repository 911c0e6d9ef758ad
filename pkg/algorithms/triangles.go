package algorithms

import (
	"sort"

	"github.com/citemesh/graphkit/pkg/graph"
)

// TriangleResult lists every distinct triangle (as node-ID triples in
// insertion order) plus local and average clustering coefficients.
type TriangleResult struct {
	Count        int
	Triangles    [][3]string
	Coefficients map[string]float64
	Average      float64
}

// Triangles enumerates all triangles treating edges as undirected, and
// derives each node's local clustering coefficient: the fraction of its
// neighbor pairs that are themselves connected. O(V * d^2) with d the
// average degree. Graphs with fewer than three nodes short-circuit to an
// empty result.
func Triangles[N, E any](g *graph.Graph[N, E]) (*TriangleResult, error) {
	res := &TriangleResult{Coefficients: make(map[string]float64)}

	c := newCompact(g, UniformWeight[E])
	n := len(c.ids)
	if n < 3 {
		for _, id := range c.ids {
			res.Coefficients[id] = 0
		}
		return res, nil
	}

	neighbors := make([]map[int]bool, n)
	for i := 0; i < n; i++ {
		neighbors[i] = c.neighborSet(i)
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		// Ordered neighbor list for deterministic pair iteration.
		nb := make([]int, 0, len(neighbors[i]))
		for j := range neighbors[i] {
			nb = append(nb, j)
		}
		sort.Ints(nb)
		closed := 0
		for a := 0; a < len(nb); a++ {
			for b := a + 1; b < len(nb); b++ {
				if neighbors[nb[a]][nb[b]] {
					closed++
					// Record each triangle once, from its lowest index.
					if i < nb[a] && i < nb[b] {
						res.Triangles = append(res.Triangles, [3]string{c.ids[i], c.ids[nb[a]], c.ids[nb[b]]})
					}
				}
			}
		}
		k := len(nb)
		if k < 2 {
			res.Coefficients[c.ids[i]] = 0
			continue
		}
		coef := float64(closed) / (float64(k) * float64(k-1) / 2)
		res.Coefficients[c.ids[i]] = coef
		sum += coef
	}

	res.Count = len(res.Triangles)
	if n > 0 {
		res.Average = sum / float64(n)
	}
	return res, nil
}
