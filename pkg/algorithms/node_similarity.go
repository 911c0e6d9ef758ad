package algorithms

import (
	"math"
	"sort"

	"github.com/citemesh/graphkit/pkg/graph"
)

// NeighborDirection controls which edges to follow when building neighbor sets.
type NeighborDirection int

const (
	DirectionOut  NeighborDirection = iota // outgoing edges only
	DirectionIn                            // incoming edges only
	DirectionBoth                          // union of both
)

// SimilarityMetric selects which similarity formula to use.
type SimilarityMetric int

const (
	SimilarityJaccard SimilarityMetric = iota // |A∩B| / |A∪B|
	SimilarityOverlap                         // |A∩B| / min(|A|,|B|)
	SimilarityCosine                          // |A∩B| / sqrt(|A|×|B|)
)

// NodeSimilarityOptions configures the node similarity computation.
type NodeSimilarityOptions struct {
	Metric    SimilarityMetric
	Direction NeighborDirection
	EdgeTypes []string // nil means all edge types
	TopK      int      // max results per node (0 = all)
}

// NodeSimilarityScore holds a similarity score between two nodes.
type NodeSimilarityScore struct {
	NodeA string
	NodeB string
	Score float64
}

// NodeSimilarityResult holds similarity results for a single source node.
type NodeSimilarityResult struct {
	SourceNodeID string
	Similar      []NodeSimilarityScore // sorted desc by Score, zeros excluded
}

// DefaultNodeSimilarityOptions returns sensible defaults.
func DefaultNodeSimilarityOptions() NodeSimilarityOptions {
	return NodeSimilarityOptions{
		Metric:    SimilarityJaccard,
		Direction: DirectionOut,
		TopK:      10,
	}
}

// getNeighborSet builds the set of neighbor node IDs adjacent to nodeID
// in the given direction, optionally filtered by edge types.
// Excludes self-loops. Directionless graphs always use both directions.
// Used by Node Similarity and Link Prediction.
func getNeighborSet[N, E any](g *graph.Graph[N, E], nodeID string, direction NeighborDirection, edgeTypes []string) map[string]bool {
	neighbors := make(map[string]bool)

	edgeTypeSet := make(map[string]bool, len(edgeTypes))
	for _, et := range edgeTypes {
		edgeTypeSet[et] = true
	}
	filterByType := len(edgeTypes) > 0

	if !g.IsDirected() {
		direction = DirectionBoth
	}

	collect := func(edges []graph.Edge[E]) {
		for _, e := range edges {
			if filterByType && !edgeTypeSet[e.Type] {
				continue
			}
			other := e.Target
			if other == nodeID {
				other = e.Source
			}
			if other != nodeID {
				neighbors[other] = true
			}
		}
	}

	if g.IsDirected() {
		if direction == DirectionOut || direction == DirectionBoth {
			edges, _ := g.OutEdges(nodeID)
			collect(edges)
		}
		if direction == DirectionIn || direction == DirectionBoth {
			edges, _ := g.InEdges(nodeID)
			collect(edges)
		}
	} else {
		edges, _ := g.IncidentEdges(nodeID)
		collect(edges)
	}

	return neighbors
}

// computeSimilarity calculates the similarity between two neighbor sets.
func computeSimilarity(setA, setB map[string]bool, metric SimilarityMetric) float64 {
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	// Count intersection
	intersection := 0
	// Iterate over the smaller set for efficiency
	small, big := setA, setB
	if len(setA) > len(setB) {
		small, big = setB, setA
	}
	for id := range small {
		if big[id] {
			intersection++
		}
	}

	if intersection == 0 {
		return 0.0
	}

	switch metric {
	case SimilarityJaccard:
		union := len(setA) + len(setB) - intersection
		return float64(intersection) / float64(union)
	case SimilarityOverlap:
		minSize := len(setA)
		if len(setB) < minSize {
			minSize = len(setB)
		}
		return float64(intersection) / float64(minSize)
	case SimilarityCosine:
		return float64(intersection) / math.Sqrt(float64(len(setA))*float64(len(setB)))
	default:
		return 0.0
	}
}

// NodeSimilarityPair computes the similarity between two specific nodes.
func NodeSimilarityPair[N, E any](g *graph.Graph[N, E], nodeA, nodeB string, opts NodeSimilarityOptions) (float64, error) {
	if !g.HasNode(nodeA) {
		return 0, nodeErr("NodeSimilarityPair", nodeA, graph.ErrNodeNotFound)
	}
	if !g.HasNode(nodeB) {
		return 0, nodeErr("NodeSimilarityPair", nodeB, graph.ErrNodeNotFound)
	}
	setA := getNeighborSet(g, nodeA, opts.Direction, opts.EdgeTypes)
	setB := getNeighborSet(g, nodeB, opts.Direction, opts.EdgeTypes)
	return computeSimilarity(setA, setB, opts.Metric), nil
}

// NodeSimilarityFor computes similarity of sourceNodeID against all other nodes.
// Results are sorted descending by score; zero-score pairs are excluded.
func NodeSimilarityFor[N, E any](g *graph.Graph[N, E], sourceNodeID string, opts NodeSimilarityOptions) (*NodeSimilarityResult, error) {
	if !g.HasNode(sourceNodeID) {
		return nil, nodeErr("NodeSimilarityFor", sourceNodeID, graph.ErrNodeNotFound)
	}

	sourceSet := getNeighborSet(g, sourceNodeID, opts.Direction, opts.EdgeTypes)

	var scores []NodeSimilarityScore
	for _, otherID := range g.NodeIDs() {
		if otherID == sourceNodeID {
			continue
		}
		otherSet := getNeighborSet(g, otherID, opts.Direction, opts.EdgeTypes)
		score := computeSimilarity(sourceSet, otherSet, opts.Metric)
		if score > 0 {
			scores = append(scores, NodeSimilarityScore{
				NodeA: sourceNodeID,
				NodeB: otherID,
				Score: score,
			})
		}
	}

	sortSimilarityScores(scores)

	if opts.TopK > 0 && len(scores) > opts.TopK {
		scores = scores[:opts.TopK]
	}

	return &NodeSimilarityResult{
		SourceNodeID: sourceNodeID,
		Similar:      scores,
	}, nil
}

// NodeSimilarityAll computes similarity for every node against every other node.
// Returns one result per node, each with up to TopK similar nodes.
func NodeSimilarityAll[N, E any](g *graph.Graph[N, E], opts NodeSimilarityOptions) ([]NodeSimilarityResult, error) {
	nodeIDs := g.NodeIDs()

	// Pre-compute all neighbor sets
	neighborSets := make(map[string]map[string]bool, len(nodeIDs))
	for _, id := range nodeIDs {
		neighborSets[id] = getNeighborSet(g, id, opts.Direction, opts.EdgeTypes)
	}

	results := make([]NodeSimilarityResult, 0, len(nodeIDs))
	for _, sourceID := range nodeIDs {
		var scores []NodeSimilarityScore
		for _, otherID := range nodeIDs {
			if otherID == sourceID {
				continue
			}
			score := computeSimilarity(neighborSets[sourceID], neighborSets[otherID], opts.Metric)
			if score > 0 {
				scores = append(scores, NodeSimilarityScore{
					NodeA: sourceID,
					NodeB: otherID,
					Score: score,
				})
			}
		}

		sortSimilarityScores(scores)
		if opts.TopK > 0 && len(scores) > opts.TopK {
			scores = scores[:opts.TopK]
		}

		results = append(results, NodeSimilarityResult{
			SourceNodeID: sourceID,
			Similar:      scores,
		})
	}

	return results, nil
}

func sortSimilarityScores(scores []NodeSimilarityScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].NodeB < scores[j].NodeB
	})
}
