package algorithms

import (
	"math"
	"sort"

	"github.com/citemesh/graphkit/pkg/graph"
)

// LinkPredictionMethod selects the scoring formula for link prediction.
type LinkPredictionMethod int

const (
	// LinkPredCommonNeighbours scores by |N(u) ∩ N(v)| — integer counts.
	LinkPredCommonNeighbours LinkPredictionMethod = iota

	// LinkPredAdamicAdar scores by Σ_{w ∈ N(u)∩N(v)} 1/log(|N(w)|) — weighted sum
	// giving higher weight to common neighbors with fewer connections.
	LinkPredAdamicAdar

	// LinkPredPreferentialAttachment scores by |N(u)| × |N(v)| — degree product.
	// Requires no intersection computation.
	LinkPredPreferentialAttachment
)

// LinkPredictionOptions configures link prediction.
//
// Scores across different methods are not comparable. Common Neighbours returns
// integer counts, Adamic-Adar returns weighted sums, and Preferential Attachment
// returns degree products.
type LinkPredictionOptions struct {
	Method          LinkPredictionMethod
	Direction       NeighborDirection
	EdgeTypes       []string
	ExcludeExisting bool // default true — skip pairs that already share an edge
	TopK            int  // default 10, 0 = all
}

// LinkPrediction holds a predicted link score between two nodes.
type LinkPrediction struct {
	Source string
	Target string
	Score  float64
}

// LinkPredictionResult holds predictions for a single source node.
type LinkPredictionResult struct {
	SourceNodeID string
	Predictions  []LinkPrediction // sorted desc by Score
}

// DefaultLinkPredictionOptions returns sensible defaults.
func DefaultLinkPredictionOptions() LinkPredictionOptions {
	return LinkPredictionOptions{
		Method:          LinkPredCommonNeighbours,
		Direction:       DirectionOut,
		ExcludeExisting: true,
		TopK:            10,
	}
}

// PredictLinkScore computes the link prediction score between two specific nodes.
func PredictLinkScore[N, E any](g *graph.Graph[N, E], source, target string, opts LinkPredictionOptions) (float64, error) {
	if !g.HasNode(source) {
		return 0, nodeErr("PredictLinkScore", source, graph.ErrNodeNotFound)
	}
	if !g.HasNode(target) {
		return 0, nodeErr("PredictLinkScore", target, graph.ErrNodeNotFound)
	}

	setFrom := getNeighborSet(g, source, opts.Direction, opts.EdgeTypes)
	setTo := getNeighborSet(g, target, opts.Direction, opts.EdgeTypes)

	return computeLinkScore(g, setFrom, setTo, opts), nil
}

// PredictLinksFor predicts links for a source node against all other nodes.
// Results are sorted descending by score; zero-score pairs are excluded.
func PredictLinksFor[N, E any](g *graph.Graph[N, E], sourceNodeID string, opts LinkPredictionOptions) (*LinkPredictionResult, error) {
	if !g.HasNode(sourceNodeID) {
		return nil, nodeErr("PredictLinksFor", sourceNodeID, graph.ErrNodeNotFound)
	}

	sourceSet := getNeighborSet(g, sourceNodeID, opts.Direction, opts.EdgeTypes)

	// Build set of existing neighbors for exclusion check
	var existingNeighbors map[string]bool
	if opts.ExcludeExisting {
		existingNeighbors = getNeighborSet(g, sourceNodeID, DirectionBoth, nil)
	}

	var predictions []LinkPrediction
	for _, otherID := range g.NodeIDs() {
		if otherID == sourceNodeID {
			continue
		}
		if opts.ExcludeExisting && existingNeighbors[otherID] {
			continue
		}

		otherSet := getNeighborSet(g, otherID, opts.Direction, opts.EdgeTypes)
		score := computeLinkScore(g, sourceSet, otherSet, opts)
		if score > 0 {
			predictions = append(predictions, LinkPrediction{
				Source: sourceNodeID,
				Target: otherID,
				Score:  score,
			})
		}
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		if predictions[i].Score != predictions[j].Score {
			return predictions[i].Score > predictions[j].Score
		}
		return predictions[i].Target < predictions[j].Target
	})
	if opts.TopK > 0 && len(predictions) > opts.TopK {
		predictions = predictions[:opts.TopK]
	}

	return &LinkPredictionResult{
		SourceNodeID: sourceNodeID,
		Predictions:  predictions,
	}, nil
}

// computeLinkScore calculates the prediction score for a pair of neighbor sets.
func computeLinkScore[N, E any](g *graph.Graph[N, E], setA, setB map[string]bool, opts LinkPredictionOptions) float64 {
	switch opts.Method {
	case LinkPredPreferentialAttachment:
		return float64(len(setA)) * float64(len(setB))

	case LinkPredCommonNeighbours:
		count := 0
		small, big := setA, setB
		if len(setA) > len(setB) {
			small, big = setB, setA
		}
		for id := range small {
			if big[id] {
				count++
			}
		}
		return float64(count)

	case LinkPredAdamicAdar:
		sum := 0.0
		small, big := setA, setB
		if len(setA) > len(setB) {
			small, big = setB, setA
		}
		for id := range small {
			if big[id] {
				// Degree of the common neighbor
				degree := len(getNeighborSet(g, id, opts.Direction, opts.EdgeTypes))
				if degree > 1 {
					sum += 1.0 / math.Log(float64(degree))
				}
				// degree <= 1: skip (log(1)=0 causes division by zero, log(<1) is negative)
			}
		}
		return sum

	default:
		return 0.0
	}
}
