package algorithms

import (
	"container/heap"
	"container/list"
	"sort"

	"github.com/citemesh/graphkit/pkg/graph"
)

// predEdge tracks a predecessor node and the edge used to reach it during BFS.
// This allows the back-propagation phase to accumulate flow onto specific edges.
type predEdge struct {
	nodeID string
	edgeID string
}

// brandesCentrality runs a single O(VE) Brandes pass and returns both node and
// edge betweenness centrality (raw, unnormalised). The caller is responsible for
// normalisation so that BetweennessCentrality and EdgeBetweennessCentrality can
// each apply the appropriate factor.
func brandesCentrality[N, E any](g *graph.Graph[N, E]) (nodeBetweenness map[string]float64, edgeBetweenness map[string]float64, nodeIDs []string) {
	nodeIDs = g.NodeIDs()

	nodeBetweenness = make(map[string]float64, len(nodeIDs))
	edgeBetweenness = make(map[string]float64)
	for _, nodeID := range nodeIDs {
		nodeBetweenness[nodeID] = 0.0
	}

	for _, source := range nodeIDs {
		stack := make([]string, 0, len(nodeIDs))
		predecessors := make(map[string][]predEdge, len(nodeIDs))
		sigma := make(map[string]float64, len(nodeIDs))
		distance := make(map[string]int, len(nodeIDs))

		for _, nodeID := range nodeIDs {
			predecessors[nodeID] = nil
			sigma[nodeID] = 0.0
			distance[nodeID] = -1
		}

		sigma[source] = 1.0
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(string)
			if !ok {
				continue
			}
			stack = append(stack, v)

			for _, edge := range outgoingArcs(g, v) {
				w := edge.Target
				if !g.IsDirected() && w == v {
					w = edge.Source
				}
				if w == v {
					continue // self-loops carry no shortest-path flow
				}

				if distance[w] < 0 {
					queue.PushBack(w)
					distance[w] = distance[v] + 1
				}

				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], predEdge{
						nodeID: v,
						edgeID: edge.ID,
					})
				}
			}
		}

		// Back-propagation: accumulate onto both nodes and edges
		delta := make(map[string]float64, len(nodeIDs))
		for _, nodeID := range nodeIDs {
			delta[nodeID] = 0.0
		}

		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, pred := range predecessors[w] {
				contribution := (sigma[pred.nodeID] / sigma[w]) * (1.0 + delta[w])
				delta[pred.nodeID] += contribution
				edgeBetweenness[pred.edgeID] += contribution
			}
			if w != source {
				nodeBetweenness[w] += delta[w]
			}
		}
	}

	return nodeBetweenness, edgeBetweenness, nodeIDs
}

// BetweennessCentrality computes betweenness centrality for all nodes.
// Measures how often a node appears on shortest paths between other nodes.
func BetweennessCentrality[N, E any](g *graph.Graph[N, E]) (map[string]float64, error) {
	nodeBetweenness, _, nodeIDs := brandesCentrality(g)

	if len(nodeIDs) > 2 {
		normFactor := 1.0 / float64((len(nodeIDs)-1)*(len(nodeIDs)-2))
		for nodeID := range nodeBetweenness {
			nodeBetweenness[nodeID] *= normFactor
		}
	}

	return nodeBetweenness, nil
}

// RankedEdge holds a ranked edge with its betweenness centrality score.
type RankedEdge struct {
	EdgeID string  `json:"edge_id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Score  float64 `json:"score"`
}

// EdgeBetweennessResult contains edge betweenness centrality in multiple
// representations for different access patterns.
type EdgeBetweennessResult struct {
	// ByEdgeID maps each edge ID to its BC score.
	ByEdgeID map[string]float64 `json:"by_edge_id"`
	// ByNodePair maps [source, target] to the edge's BC score.
	ByNodePair map[[2]string]float64 `json:"by_node_pair"`
	// TopEdges lists the top edges ranked by BC score (descending).
	TopEdges []RankedEdge `json:"top_edges"`
}

// EdgeBetweennessCentrality computes betweenness centrality for all edges.
// Measures how often an edge appears on shortest paths between all node pairs.
// Uses the same O(VE) Brandes pass as BetweennessCentrality.
func EdgeBetweennessCentrality[N, E any](g *graph.Graph[N, E]) (*EdgeBetweennessResult, error) {
	_, edgeBetweenness, nodeIDs := brandesCentrality(g)

	n := len(nodeIDs)

	// Normalise: 1/(n*(n-1)) ordered pairs
	if n > 1 {
		normFactor := 1.0 / float64(n*(n-1))
		for edgeID := range edgeBetweenness {
			edgeBetweenness[edgeID] *= normFactor
		}
	}

	byNodePair := make(map[[2]string]float64, len(edgeBetweenness))
	for edgeID, score := range edgeBetweenness {
		edge, err := g.GetEdge(edgeID)
		if err != nil {
			continue
		}
		byNodePair[[2]string{edge.Source, edge.Target}] = score
	}

	topEdges := findTopEdges(g, edgeBetweenness, 10)

	return &EdgeBetweennessResult{
		ByEdgeID:   edgeBetweenness,
		ByNodePair: byNodePair,
		TopEdges:   topEdges,
	}, nil
}

// rankedEdgeHeap implements a min-heap for RankedEdge by score.
type rankedEdgeHeap []RankedEdge

func (h rankedEdgeHeap) Len() int           { return len(h) }
func (h rankedEdgeHeap) Less(i, j int) bool { return h[i].Score < h[j].Score }
func (h rankedEdgeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedEdgeHeap) Push(x any) {
	*h = append(*h, x.(RankedEdge))
}

func (h *rankedEdgeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// findTopEdges returns the top n edges by score using a min-heap.
func findTopEdges[N, E any](g *graph.Graph[N, E], scores map[string]float64, n int) []RankedEdge {
	if n <= 0 {
		return nil
	}

	h := make(rankedEdgeHeap, 0, n)
	heap.Init(&h)

	for edgeID, score := range scores {
		edge, err := g.GetEdge(edgeID)
		if err != nil {
			continue
		}

		re := RankedEdge{
			EdgeID: edgeID,
			Source: edge.Source,
			Target: edge.Target,
			Score:  score,
		}

		if h.Len() < n {
			heap.Push(&h, re)
		} else if score > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, re)
		}
	}

	result := make([]RankedEdge, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedEdge)
	}

	// Stable sort by score descending, then edge ID ascending for determinism
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].EdgeID < result[j].EdgeID
	})

	return result
}

// CentralityResult contains centrality measures for all nodes and edges.
type CentralityResult struct {
	Betweenness          map[string]float64
	Closeness            map[string]float64
	Degree               map[string]float64
	EdgeBetweenness      *EdgeBetweennessResult
	TopByBetweenness     []RankedNode
	TopByCloseness       []RankedNode
	TopByDegree          []RankedNode
	TopByEdgeBetweenness []RankedEdge
}

// ComputeAllCentrality computes all centrality measures in a single pass where
// possible. Node and edge betweenness share one Brandes traversal.
func ComputeAllCentrality[N, E any](g *graph.Graph[N, E]) (*CentralityResult, error) {
	nodeBetweenness, edgeBetweennessRaw, nodeIDs := brandesCentrality(g)

	// Normalise node betweenness
	n := len(nodeIDs)
	if n > 2 {
		normFactor := 1.0 / float64((n-1)*(n-2))
		for nodeID := range nodeBetweenness {
			nodeBetweenness[nodeID] *= normFactor
		}
	}

	// Normalise edge betweenness
	if n > 1 {
		normFactor := 1.0 / float64(n*(n-1))
		for edgeID := range edgeBetweennessRaw {
			edgeBetweennessRaw[edgeID] *= normFactor
		}
	}

	byNodePair := make(map[[2]string]float64, len(edgeBetweennessRaw))
	for edgeID, score := range edgeBetweennessRaw {
		edge, err := g.GetEdge(edgeID)
		if err != nil {
			continue
		}
		byNodePair[[2]string{edge.Source, edge.Target}] = score
	}
	topEdges := findTopEdges(g, edgeBetweennessRaw, 10)

	edgeBCResult := &EdgeBetweennessResult{
		ByEdgeID:   edgeBetweennessRaw,
		ByNodePair: byNodePair,
		TopEdges:   topEdges,
	}

	closeness, err := ClosenessCentrality(g)
	if err != nil {
		return nil, err
	}

	degree, err := DegreeCentrality(g)
	if err != nil {
		return nil, err
	}

	return &CentralityResult{
		Betweenness:          nodeBetweenness,
		Closeness:            closeness,
		Degree:               degree,
		EdgeBetweenness:      edgeBCResult,
		TopByBetweenness:     findTopNodes(nodeBetweenness, 10),
		TopByCloseness:       findTopNodes(closeness, 10),
		TopByDegree:          findTopNodes(degree, 10),
		TopByEdgeBetweenness: topEdges,
	}, nil
}

// ClosenessCentrality computes closeness centrality for all nodes.
// Measures average distance from a node to all other nodes.
func ClosenessCentrality[N, E any](g *graph.Graph[N, E]) (map[string]float64, error) {
	nodeIDs := g.NodeIDs()
	closeness := make(map[string]float64, len(nodeIDs))

	for _, source := range nodeIDs {
		distance := make(map[string]int, len(nodeIDs))
		for _, nodeID := range nodeIDs {
			distance[nodeID] = -1
		}
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(string)
			if !ok {
				continue
			}

			for _, edge := range outgoingArcs(g, v) {
				w := edge.Target
				if !g.IsDirected() && w == v {
					w = edge.Source
				}
				if distance[w] < 0 {
					distance[w] = distance[v] + 1
					queue.PushBack(w)
				}
			}
		}

		totalDistance := 0
		reachableNodes := 0
		for _, dist := range distance {
			if dist > 0 {
				totalDistance += dist
				reachableNodes++
			}
		}

		if totalDistance > 0 {
			closeness[source] = float64(reachableNodes) / float64(totalDistance)
		} else {
			closeness[source] = 0.0
		}
	}

	return closeness, nil
}

// DegreeCentrality computes degree centrality for all nodes: connection
// count normalised by the maximum possible n-1.
func DegreeCentrality[N, E any](g *graph.Graph[N, E]) (map[string]float64, error) {
	nodeIDs := g.NodeIDs()
	degree := make(map[string]float64, len(nodeIDs))

	for _, nodeID := range nodeIDs {
		d, err := g.Degree(nodeID)
		if err != nil {
			return nil, err
		}

		if len(nodeIDs) > 1 {
			degree[nodeID] = float64(d) / float64(len(nodeIDs)-1)
		} else {
			degree[nodeID] = 0.0
		}
	}

	return degree, nil
}
