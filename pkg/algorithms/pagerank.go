package algorithms

import (
	"container/heap"
	"math"
	"sort"

	"github.com/citemesh/graphkit/pkg/graph"
)

// PageRankOptions configures the PageRank power iteration.
type PageRankOptions struct {
	DampingFactor float64 // Usually 0.85
	MaxIterations int
	Tolerance     float64 // Convergence threshold
}

// DefaultPageRankOptions returns default PageRank configuration
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// PageRankResult contains PageRank scores for all nodes
type PageRankResult struct {
	Scores     map[string]float64 // Node ID -> PageRank score
	Iterations int                // Number of iterations performed
	Converged  bool               // Whether algorithm converged
	TopNodes   []RankedNode       // Top N nodes by score
}

// RankedNode represents a node with its rank
type RankedNode struct {
	NodeID string
	Score  float64
}

// PageRank computes PageRank scores for all nodes in the graph.
// Directionless graphs treat each edge as a pair of opposing arcs.
func PageRank[N, E any](g *graph.Graph[N, E], opts PageRankOptions) (*PageRankResult, error) {
	nodeIDs := g.NodeIDs()
	if len(nodeIDs) == 0 {
		return &PageRankResult{
			Scores:    make(map[string]float64),
			Converged: true,
		}, nil
	}
	if opts.DampingFactor <= 0 || opts.DampingFactor >= 1 {
		return nil, opErr("PageRank", ErrInvalidInput)
	}

	// Initialize PageRank scores (uniform distribution)
	scores := make(map[string]float64, len(nodeIDs))
	initialScore := 1.0 / float64(len(nodeIDs))
	for _, nodeID := range nodeIDs {
		scores[nodeID] = initialScore
	}

	// Precompute each node's forward fan-out and the reverse arcs feeding it.
	outDegree := make(map[string]int, len(nodeIDs))
	incoming := make(map[string][]string, len(nodeIDs))
	for _, nodeID := range nodeIDs {
		for _, edge := range outgoingArcs(g, nodeID) {
			w := edge.Target
			if !g.IsDirected() && w == nodeID {
				w = edge.Source
			}
			outDegree[nodeID]++
			incoming[w] = append(incoming[w], nodeID)
		}
	}

	// Iterative PageRank calculation
	newScores := make(map[string]float64, len(nodeIDs))
	converged := false
	iterations := 0

	for iterations < opts.MaxIterations {
		iterations++

		for _, nodeID := range nodeIDs {
			// Start with random jump probability
			newScore := (1.0 - opts.DampingFactor) / float64(len(nodeIDs))

			for _, from := range incoming[nodeID] {
				if outCount := outDegree[from]; outCount > 0 {
					newScore += opts.DampingFactor * (scores[from] / float64(outCount))
				}
			}

			newScores[nodeID] = newScore
		}

		// Check for convergence
		maxDiff := 0.0
		for nodeID := range scores {
			diff := math.Abs(newScores[nodeID] - scores[nodeID])
			if diff > maxDiff {
				maxDiff = diff
			}
		}

		if maxDiff < opts.Tolerance {
			scores, newScores = newScores, scores
			converged = true
			break
		}

		// Swap scores
		scores, newScores = newScores, scores
	}

	// Normalize scores to sum to 1
	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	if sum > 0 {
		for nodeID := range scores {
			scores[nodeID] /= sum
		}
	}

	topNodes := findTopNodes(scores, 10)

	return &PageRankResult{
		Scores:     scores,
		Iterations: iterations,
		Converged:  converged,
		TopNodes:   topNodes,
	}, nil
}

// rankedNodeHeap implements a min-heap for RankedNode by score.
// We use a min-heap to efficiently find top N elements:
// - Keep at most N elements in the heap
// - The minimum element is at the root
// - When adding a new element, if heap is full and new > min, pop min and push new
// Time complexity: O(n log k) where n is total nodes and k is desired top count
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int           { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool { return h[i].Score < h[j].Score } // Min-heap
func (h rankedNodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// findTopNodes finds the top N nodes by score using a min-heap.
// Time complexity: O(n log k) where n = len(scores) and k = n
// Space complexity: O(k)
func findTopNodes(scores map[string]float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for nodeID, score := range scores {
		rn := RankedNode{
			NodeID: nodeID,
			Score:  score,
		}

		if h.Len() < n {
			// Heap not full yet, just add
			heap.Push(&h, rn)
		} else if score > h[0].Score {
			// New element is larger than current minimum, replace
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
		// Otherwise, this element is smaller than all top N, skip it
	}

	// Extract elements from heap (will be in ascending order)
	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}

	// Stable sort by score descending, then node ID ascending for determinism
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].NodeID < result[j].NodeID
	})

	return result
}

// GetTopNodesByPageRank returns top N nodes by PageRank score
func (pr *PageRankResult) GetTopNodesByPageRank(n int) []RankedNode {
	if n > len(pr.TopNodes) {
		return pr.TopNodes
	}
	return pr.TopNodes[:n]
}

// GetNodeRank returns the PageRank score for a specific node
func (pr *PageRankResult) GetNodeRank(nodeID string) float64 {
	return pr.Scores[nodeID]
}
