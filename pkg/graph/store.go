// Package graph provides an in-memory typed node/edge container used by
// the algorithms engine. Nodes and edges live in append-only arenas
// indexed by stable integer handles; a public id->handle map gives O(1)
// lookup while adjacency slices give O(1) amortized neighbor iteration
// in edge-insertion order.
package graph

import "sync"

// Graph owns all nodes and edges. Directedness is fixed at construction:
// a directed graph's Neighbors follow outgoing edges only, an undirected
// graph treats every edge as traversable both ways.
//
// All methods are safe for concurrent use. Algorithms only read.
type Graph[N, E any] struct {
	mu       sync.RWMutex
	directed bool

	nodes   []nodeRec[N]
	edges   []edgeRec[E]
	nodeIdx map[string]int32
	edgeIdx map[string]int32

	// Adjacency as edge handles, appended in insertion order.
	out [][]int32
	in  [][]int32

	nodeCount int
	edgeCount int
}

// Option configures graph construction.
type Option func(*options)

type options struct {
	directed bool
}

// Directed makes the graph directed. The default is undirected.
func Directed() Option {
	return func(o *options) { o.directed = true }
}

// New creates an empty graph. Pass Directed() for directed semantics.
func New[N, E any](opts ...Option) *Graph[N, E] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Graph[N, E]{
		directed: o.directed,
		nodeIdx:  make(map[string]int32),
		edgeIdx:  make(map[string]int32),
	}
}

// IsDirected reports whether the graph was built with directed semantics.
func (g *Graph[N, E]) IsDirected() bool {
	return g.directed
}

// AddNode inserts a node. Fails with ErrDuplicateNode if the ID exists
// and ErrInvalidInput if the ID is empty.
func (g *Graph[N, E]) AddNode(n Node[N]) error {
	if n.ID == "" {
		return storeErr("AddNode", "node", "", ErrInvalidInput)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodeIdx[n.ID]; exists {
		return storeErr("AddNode", "node", n.ID, ErrDuplicateNode)
	}
	h := int32(len(g.nodes))
	g.nodes = append(g.nodes, nodeRec[N]{node: n, alive: true})
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.nodeIdx[n.ID] = h
	g.nodeCount++
	return nil
}

// RemoveNode deletes a node and cascades to all incident edges.
func (g *Graph[N, E]) RemoveNode(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	h, ok := g.nodeIdx[id]
	if !ok {
		return storeErr("RemoveNode", "node", id, ErrNodeNotFound)
	}
	for _, eh := range append(append([]int32{}, g.out[h]...), g.in[h]...) {
		if g.edges[eh].alive {
			g.removeEdgeLocked(eh)
		}
	}
	g.nodes[h].alive = false
	delete(g.nodeIdx, id)
	g.nodeCount--
	return nil
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph[N, E]) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodeIdx[id]
	return ok
}

// GetNode returns the node with the given ID.
func (g *Graph[N, E]) GetNode(id string) (Node[N], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.nodeIdx[id]
	if !ok {
		return Node[N]{}, storeErr("GetNode", "node", id, ErrNodeNotFound)
	}
	return g.nodes[h].node, nil
}

// AddEdge inserts an edge. Both endpoints must already exist; a dangling
// endpoint fails closed with ErrInvalidInput. Edge IDs must be unique.
func (g *Graph[N, E]) AddEdge(e Edge[E]) error {
	if e.ID == "" || e.Source == "" || e.Target == "" {
		return storeErr("AddEdge", "edge", e.ID, ErrInvalidInput)
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.edgeIdx[e.ID]; exists {
		return storeErr("AddEdge", "edge", e.ID, ErrInvalidInput)
	}
	from, ok := g.nodeIdx[e.Source]
	if !ok {
		return storeErr("AddEdge", "node", e.Source, ErrInvalidInput)
	}
	to, ok := g.nodeIdx[e.Target]
	if !ok {
		return storeErr("AddEdge", "node", e.Target, ErrInvalidInput)
	}

	h := int32(len(g.edges))
	g.edges = append(g.edges, edgeRec[E]{edge: e, from: from, to: to, alive: true})
	g.out[from] = append(g.out[from], h)
	g.in[to] = append(g.in[to], h)
	g.edgeIdx[e.ID] = h
	g.edgeCount++
	return nil
}

// RemoveEdge deletes an edge by ID.
func (g *Graph[N, E]) RemoveEdge(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	h, ok := g.edgeIdx[id]
	if !ok {
		return storeErr("RemoveEdge", "edge", id, ErrEdgeNotFound)
	}
	g.removeEdgeLocked(h)
	return nil
}

func (g *Graph[N, E]) removeEdgeLocked(h int32) {
	rec := &g.edges[h]
	g.out[rec.from] = dropHandle(g.out[rec.from], h)
	g.in[rec.to] = dropHandle(g.in[rec.to], h)
	rec.alive = false
	delete(g.edgeIdx, rec.edge.ID)
	g.edgeCount--
}

func dropHandle(hs []int32, h int32) []int32 {
	for i, v := range hs {
		if v == h {
			return append(hs[:i], hs[i+1:]...)
		}
	}
	return hs
}

// GetEdge returns the edge with the given ID.
func (g *Graph[N, E]) GetEdge(id string) (Edge[E], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.edgeIdx[id]
	if !ok {
		return Edge[E]{}, storeErr("GetEdge", "edge", id, ErrEdgeNotFound)
	}
	return g.edges[h].edge, nil
}

// NodeCount returns the number of live nodes.
func (g *Graph[N, E]) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodeCount
}

// EdgeCount returns the number of live edges.
func (g *Graph[N, E]) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edgeCount
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph[N, E]) NodeIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := make([]string, 0, g.nodeCount)
	for _, rec := range g.nodes {
		if rec.alive {
			ids = append(ids, rec.node.ID)
		}
	}
	return ids
}

// Nodes returns all live nodes in insertion order.
func (g *Graph[N, E]) Nodes() []Node[N] {
	g.mu.RLock()
	defer g.mu.RUnlock()
	nodes := make([]Node[N], 0, g.nodeCount)
	for _, rec := range g.nodes {
		if rec.alive {
			nodes = append(nodes, rec.node)
		}
	}
	return nodes
}

// Edges returns all live edges in insertion order.
func (g *Graph[N, E]) Edges() []Edge[E] {
	g.mu.RLock()
	defer g.mu.RUnlock()
	edges := make([]Edge[E], 0, g.edgeCount)
	for _, rec := range g.edges {
		if rec.alive {
			edges = append(edges, rec.edge)
		}
	}
	return edges
}
