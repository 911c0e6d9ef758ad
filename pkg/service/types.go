package service

import (
	"github.com/citemesh/graphkit/pkg/algorithms"
	"github.com/citemesh/graphkit/pkg/validation"
)

// GraphInput is the plain-value graph payload callers hand to the service.
type GraphInput struct {
	Directed bool                   `json:"directed"`
	Nodes    []validation.NodeInput `json:"nodes"`
	Edges    []validation.EdgeInput `json:"edges"`
}

// TraversalRequest asks for a BFS or DFS walk from a start node.
type TraversalRequest struct {
	Graph GraphInput `json:"graph"`
	Start string     `json:"start"`
	Mode  string     `json:"mode"` // "bfs" or "dfs"
}

// TraversalResponse reports the visit order and the parent tree of the walk.
type TraversalResponse struct {
	Order   []string          `json:"order"`
	Parent  map[string]string `json:"parent"`
	Visited map[string]bool   `json:"visited"`
}

// PathRequest asks for the cheapest route between two nodes. A positive
// MinWeight drops every edge whose weight falls below it (unweighted
// edges included) before routing, so filtered edges are invisible to
// the search rather than penalized.
type PathRequest struct {
	Graph            GraphInput `json:"graph"`
	Source           string     `json:"source"`
	Target           string     `json:"target"`
	AllowedNodeTypes []string   `json:"allowedNodeTypes,omitempty"`
	InvertWeights    bool       `json:"invertWeights,omitempty"`
	MinWeight        float64    `json:"minWeight,omitempty"`
}

// PathResponse reports the route, or Found=false when no route exists.
type PathResponse struct {
	Found  bool     `json:"found"`
	Nodes  []string `json:"nodes,omitempty"`
	Edges  []string `json:"edges,omitempty"`
	Weight float64  `json:"weight"`
}

// CommunityRequest asks for a community or partition assignment.
// Algorithm is one of "louvain", "leiden", "label-propagation",
// "spectral", "core-periphery" or "connected-components". Zero-valued
// tunables fall back to the service config defaults.
type CommunityRequest struct {
	Graph         GraphInput  `json:"graph"`
	Algorithm     string      `json:"algorithm"`
	Resolution    float64     `json:"resolution,omitempty"`
	MaxIterations int         `json:"maxIterations,omitempty"`
	Seed          int64       `json:"seed,omitempty"`
	Partitions    int         `json:"partitions,omitempty"`  // spectral only
	Constraints   [][2]string `json:"constraints,omitempty"` // spectral only
	CoreThreshold float64     `json:"coreThreshold,omitempty"`
	WithQuality   bool        `json:"withQuality,omitempty"`
}

// CommunityResponse reports per-node assignments plus cluster summaries.
// Core and Periphery are set only for the core-periphery algorithm.
type CommunityResponse struct {
	Assignments map[string]int             `json:"assignments"`
	Clusters    []*algorithms.Cluster      `json:"clusters"`
	Modularity  float64                    `json:"modularity"`
	Quality     *algorithms.ClusterMetrics `json:"quality,omitempty"`
	Core        []string                   `json:"core,omitempty"`
	Periphery   []string                   `json:"periphery,omitempty"`
	Meta        algorithms.RunMeta         `json:"meta"`
}

// StructureRequest asks for one structural analysis.
// Analysis is one of "cycles", "topo-sort", "scc", "biconnected",
// "k-core", "k-truss", "triangles", "stars" or "ego".
type StructureRequest struct {
	Graph     GraphInput `json:"graph"`
	Analysis  string     `json:"analysis"`
	K         int        `json:"k,omitempty"`         // k-core / k-truss
	Center    string     `json:"center,omitempty"`    // ego
	Radius    int        `json:"radius,omitempty"`    // ego
	MinDegree int        `json:"minDegree,omitempty"` // stars
}

// StructureResponse carries the output of a structural analysis.
// Highlight lists the node IDs the analysis singled out, ready for a
// renderer to emphasize; the typed fields carry the full detail.
type StructureResponse struct {
	Highlight []string `json:"highlight"`

	HasCycle bool       `json:"hasCycle,omitempty"`
	Cycle    []string   `json:"cycle,omitempty"`
	Order    []string   `json:"order,omitempty"`
	Groups   [][]string `json:"groups,omitempty"`

	Triangles     int                `json:"triangles,omitempty"`
	AvgClustering float64            `json:"avgClustering,omitempty"`
	Coefficients  map[string]float64 `json:"coefficients,omitempty"`

	Stars []algorithms.Star `json:"stars,omitempty"`
}
