// Package service exposes the graph algorithms as a single façade for
// embedding callers: plain node/edge value slices in, typed results out.
// It owns input validation, graph construction, option defaulting,
// logging and metrics; it carries no transport.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/citemesh/graphkit/pkg/algorithms"
	"github.com/citemesh/graphkit/pkg/config"
	"github.com/citemesh/graphkit/pkg/graph"
	"github.com/citemesh/graphkit/pkg/logging"
	"github.com/citemesh/graphkit/pkg/metrics"
	"github.com/citemesh/graphkit/pkg/validation"
)

// Service runs graph algorithms over caller-supplied graphs.
type Service struct {
	cfg     *config.Config
	log     logging.Logger
	metrics *metrics.Registry
}

// New creates a service. A nil config uses the defaults; a nil logger
// discards output; a nil registry disables metrics.
func New(cfg *config.Config, log logging.Logger, reg *metrics.Registry) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Service{cfg: cfg, log: log, metrics: reg}
}

// Traverse walks the graph from a start node in BFS or DFS order.
func (s *Service) Traverse(req *TraversalRequest) (*TraversalResponse, error) {
	mode := strings.ToLower(req.Mode)
	if mode != "bfs" && mode != "dfs" {
		return nil, fmt.Errorf("unknown traversal mode %q (want bfs or dfs)", req.Mode)
	}

	g, err := s.buildGraph(&req.Graph)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var res *algorithms.TraversalResult
	if mode == "bfs" {
		res, err = algorithms.BFS(g, req.Start)
	} else {
		res, err = algorithms.DFS(g, req.Start)
	}
	s.observe(mode, g, start, 0, err)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]bool, len(res.Order))
	for _, id := range res.Order {
		visited[id] = true
	}
	return &TraversalResponse{Order: res.Order, Parent: res.Parent, Visited: visited}, nil
}

// FindPath runs Dijkstra between two nodes. A missing route yields
// Found=false, not an error.
func (s *Service) FindPath(req *PathRequest) (*PathResponse, error) {
	g, err := s.buildGraph(&req.Graph)
	if err != nil {
		return nil, err
	}

	opts := algorithms.PathOptions[struct{}]{
		WeightFunc:       algorithms.EdgeWeight[struct{}],
		InvertWeights:    req.InvertWeights,
		AllowedNodeTypes: req.AllowedNodeTypes,
	}
	if req.MinWeight > 0 {
		floor := req.MinWeight
		opts.EdgeFilter = func(e graph.Edge[struct{}]) bool {
			return e.Weight != nil && *e.Weight >= floor
		}
	}

	start := time.Now()
	path, err := algorithms.DijkstraWithOptions(g, req.Source, req.Target, opts)
	s.observe("dijkstra", g, start, 0, err)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return &PathResponse{Found: false}, nil
	}
	return &PathResponse{Found: true, Nodes: path.Nodes, Edges: path.Edges, Weight: path.Weight}, nil
}

// DetectCommunities dispatches the requested community or partition
// algorithm and returns the assignment in a uniform shape.
func (s *Service) DetectCommunities(req *CommunityRequest) (*CommunityResponse, error) {
	g, err := s.buildGraph(&req.Graph)
	if err != nil {
		return nil, err
	}

	opts := s.clusterOptions(req)
	wf := algorithms.EdgeWeight[struct{}]
	algo := strings.ToLower(req.Algorithm)

	start := time.Now()
	var cr *algorithms.ClusterResult
	var resp *CommunityResponse

	switch algo {
	case "louvain":
		cr, err = algorithms.Louvain(g, opts, wf)
	case "leiden":
		cr, err = algorithms.Leiden(g, opts, wf)
	case "label-propagation":
		cr, err = algorithms.LabelPropagation(g, opts, wf)
	case "connected-components":
		cr, err = algorithms.ConnectedComponents(g)
	case "spectral":
		sp := algorithms.SpectralOptions[struct{}]{
			WeightFunc:       wf,
			BalanceTolerance: s.cfg.Algorithms.BalanceTolerance,
			Constraints:      req.Constraints,
		}
		cr, err = algorithms.SpectralPartition(g, req.Partitions, sp)
	case "core-periphery":
		var cp *algorithms.CorePeripheryResult
		cp, err = algorithms.CorePeriphery(g, opts, wf)
		if err == nil {
			resp = corePeripheryResponse(cp)
		}
	default:
		return nil, fmt.Errorf("unknown community algorithm %q", req.Algorithm)
	}

	iterations := 0
	if cr != nil {
		iterations = cr.Meta.Iterations
	} else if resp != nil {
		iterations = resp.Meta.Iterations
	}
	s.observe(algo, g, start, iterations, err)
	if err != nil {
		return nil, err
	}

	if resp == nil {
		resp = &CommunityResponse{
			Assignments: cr.NodeCluster,
			Clusters:    cr.Clusters,
			Modularity:  cr.Modularity,
			Meta:        cr.Meta,
		}
	}
	if req.WithQuality && cr != nil {
		q := algorithms.ClusterQuality(g, cr, wf)
		resp.Quality = &q
	}
	return resp, nil
}

// AnalyzeStructure dispatches one structural analysis over the graph.
func (s *Service) AnalyzeStructure(req *StructureRequest) (*StructureResponse, error) {
	g, err := s.buildGraph(&req.Graph)
	if err != nil {
		return nil, err
	}

	analysis := strings.ToLower(req.Analysis)
	start := time.Now()
	resp, err := s.runStructure(g, analysis, req)
	s.observe(analysis, g, start, 0, err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) runStructure(g *graph.Graph[struct{}, struct{}], analysis string, req *StructureRequest) (*StructureResponse, error) {
	switch analysis {
	case "cycles":
		has, cycle, err := algorithms.HasCycle(g)
		if err != nil {
			return nil, err
		}
		return &StructureResponse{Highlight: cycle, HasCycle: has, Cycle: cycle}, nil

	case "topo-sort":
		order, err := algorithms.TopologicalSort(g)
		if err != nil {
			return nil, err
		}
		return &StructureResponse{Highlight: order, Order: order}, nil

	case "scc":
		scc, err := algorithms.StronglyConnectedComponents(g)
		if err != nil {
			return nil, err
		}
		resp := &StructureResponse{}
		for _, c := range scc.Clusters {
			resp.Groups = append(resp.Groups, c.Nodes)
			if len(c.Nodes) > 1 {
				resp.Highlight = append(resp.Highlight, c.Nodes...)
			}
		}
		return resp, nil

	case "biconnected":
		bc, err := algorithms.BiconnectedComponents(g)
		if err != nil {
			return nil, err
		}
		resp := &StructureResponse{Highlight: bc.ArticulationPoints}
		for _, c := range bc.Components {
			resp.Groups = append(resp.Groups, c.Nodes)
		}
		return resp, nil

	case "k-core":
		core, err := algorithms.KCore(g, req.K)
		if err != nil {
			return nil, err
		}
		return &StructureResponse{Highlight: core.Nodes}, nil

	case "k-truss":
		truss, err := algorithms.KTruss(g, req.K)
		if err != nil {
			return nil, err
		}
		return &StructureResponse{Highlight: truss.Nodes}, nil

	case "triangles":
		tr, err := algorithms.Triangles(g)
		if err != nil {
			return nil, err
		}
		resp := &StructureResponse{
			Triangles:     tr.Count,
			AvgClustering: tr.Average,
			Coefficients:  tr.Coefficients,
		}
		seen := make(map[string]bool)
		for _, t := range tr.Triangles {
			for _, id := range t {
				if !seen[id] {
					seen[id] = true
					resp.Highlight = append(resp.Highlight, id)
				}
			}
		}
		return resp, nil

	case "stars":
		stars, err := algorithms.StarPatterns(g, algorithms.StarOptions{MinDegree: req.MinDegree})
		if err != nil {
			return nil, err
		}
		resp := &StructureResponse{Stars: stars}
		for _, star := range stars {
			resp.Highlight = append(resp.Highlight, star.Center)
		}
		return resp, nil

	case "ego":
		ego, err := algorithms.EgoNetwork(g, req.Center, req.Radius)
		if err != nil {
			return nil, err
		}
		return &StructureResponse{Highlight: ego.Nodes}, nil

	default:
		return nil, fmt.Errorf("unknown structural analysis %q", req.Analysis)
	}
}

// buildGraph validates the payload and materializes a graph store.
func (s *Service) buildGraph(in *GraphInput) (*graph.Graph[struct{}, struct{}], error) {
	if len(in.Nodes) > s.cfg.Service.MaxNodes {
		return nil, fmt.Errorf("graph exceeds node limit: %d > %d", len(in.Nodes), s.cfg.Service.MaxNodes)
	}
	if len(in.Edges) > s.cfg.Service.MaxEdges {
		return nil, fmt.Errorf("graph exceeds edge limit: %d > %d", len(in.Edges), s.cfg.Service.MaxEdges)
	}

	var opts []graph.Option
	if in.Directed {
		opts = append(opts, graph.Directed())
	}
	g := graph.New[struct{}, struct{}](opts...)

	for i := range in.Nodes {
		n := &in.Nodes[i]
		if err := validation.ValidateNodeInput(n); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if err := g.AddNode(graph.Node[struct{}]{ID: n.ID, Type: n.Type}); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	for i := range in.Edges {
		e := &in.Edges[i]
		if err := validation.ValidateEdgeInput(e); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		id := e.ID
		if id == "" {
			id = fmt.Sprintf("edge-%d", i)
		}
		edge := graph.Edge[struct{}]{ID: id, Source: e.Source, Target: e.Target, Type: e.Type, Weight: e.Weight}
		if err := g.AddEdge(edge); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return g, nil
}

// clusterOptions merges request overrides over the configured defaults.
func (s *Service) clusterOptions(req *CommunityRequest) algorithms.ClusterOptions {
	a := s.cfg.Algorithms
	opts := algorithms.ClusterOptions{
		Resolution:       a.Resolution,
		MaxIterations:    a.MaxIterations,
		MinImprovement:   a.MinImprovement,
		Epsilon:          a.Epsilon,
		CoreThreshold:    a.CoreThreshold,
		BalanceTolerance: a.BalanceTolerance,
		Seed:             a.Seed,
	}
	if req.Resolution > 0 {
		opts.Resolution = req.Resolution
	}
	if req.MaxIterations > 0 {
		opts.MaxIterations = req.MaxIterations
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	if req.CoreThreshold > 0 {
		opts.CoreThreshold = req.CoreThreshold
	}
	return opts
}

func (s *Service) observe(algorithm string, g *graph.Graph[struct{}, struct{}], start time.Time, iterations int, err error) {
	elapsed := time.Since(start)
	status := "ok"
	if err != nil {
		status = "error"
		s.log.Warn("algorithm failed",
			logging.Algorithm(algorithm),
			logging.NodeCount(g.NodeCount()),
			logging.EdgeCount(g.EdgeCount()),
			logging.Error(err))
	} else {
		s.log.Info("algorithm completed",
			logging.Algorithm(algorithm),
			logging.NodeCount(g.NodeCount()),
			logging.EdgeCount(g.EdgeCount()),
			logging.Iterations(iterations),
			logging.Duration("duration", elapsed))
	}
	if s.metrics != nil {
		s.metrics.RecordRun(algorithm, status, elapsed, iterations, g.NodeCount(), g.EdgeCount())
		if err != nil && isConvergenceFailure(err) {
			s.metrics.RecordConvergenceFailure(algorithm)
		}
	}
}

func isConvergenceFailure(err error) bool {
	return errors.Is(err, algorithms.ErrConvergenceFailure)
}

func corePeripheryResponse(cp *algorithms.CorePeripheryResult) *CommunityResponse {
	assignments := make(map[string]int, len(cp.Core)+len(cp.Periphery))
	for _, id := range cp.Core {
		assignments[id] = 0
	}
	for _, id := range cp.Periphery {
		assignments[id] = 1
	}
	clusters := []*algorithms.Cluster{
		{ID: 0, Nodes: cp.Core, Size: len(cp.Core)},
		{ID: 1, Nodes: cp.Periphery, Size: len(cp.Periphery)},
	}
	return &CommunityResponse{
		Assignments: assignments,
		Clusters:    clusters,
		Core:        cp.Core,
		Periphery:   cp.Periphery,
		Meta:        cp.Meta,
	}
}
