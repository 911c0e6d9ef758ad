package graph

// Neighbors returns the IDs of nodes adjacent to id, in edge-insertion
// order. For directed graphs only outgoing edges are followed; for
// undirected graphs both endpoints see each other. A repeated neighbor
// (parallel edges) appears once per edge. Fails with ErrNodeNotFound for
// an absent ID.
func (g *Graph[N, E]) Neighbors(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.nodeIdx[id]
	if !ok {
		return nil, storeErr("Neighbors", "node", id, ErrNodeNotFound)
	}
	if g.directed {
		out := make([]string, 0, len(g.out[h]))
		for _, eh := range g.out[h] {
			out = append(out, g.edges[eh].edge.Target)
		}
		return out, nil
	}
	return g.mergeIncident(h, func(eh int32) string {
		rec := g.edges[eh]
		if rec.from == h {
			return rec.edge.Target
		}
		return rec.edge.Source
	}), nil
}

// IncidentEdges returns all edges touching id in edge-insertion order,
// regardless of direction.
func (g *Graph[N, E]) IncidentEdges(id string) ([]Edge[E], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.nodeIdx[id]
	if !ok {
		return nil, storeErr("IncidentEdges", "node", id, ErrNodeNotFound)
	}
	edges := make([]Edge[E], 0, len(g.out[h])+len(g.in[h]))
	for _, eh := range mergeHandles(g.out[h], g.in[h]) {
		edges = append(edges, g.edges[eh].edge)
	}
	return edges, nil
}

// OutEdges returns edges whose source is id, in insertion order.
func (g *Graph[N, E]) OutEdges(id string) ([]Edge[E], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.nodeIdx[id]
	if !ok {
		return nil, storeErr("OutEdges", "node", id, ErrNodeNotFound)
	}
	edges := make([]Edge[E], 0, len(g.out[h]))
	for _, eh := range g.out[h] {
		edges = append(edges, g.edges[eh].edge)
	}
	return edges, nil
}

// InEdges returns edges whose target is id, in insertion order.
func (g *Graph[N, E]) InEdges(id string) ([]Edge[E], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.nodeIdx[id]
	if !ok {
		return nil, storeErr("InEdges", "node", id, ErrNodeNotFound)
	}
	edges := make([]Edge[E], 0, len(g.in[h]))
	for _, eh := range g.in[h] {
		edges = append(edges, g.edges[eh].edge)
	}
	return edges, nil
}

// Degree returns the number of edges incident to id. Self-loops count
// twice in undirected graphs.
func (g *Graph[N, E]) Degree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	h, ok := g.nodeIdx[id]
	if !ok {
		return 0, storeErr("Degree", "node", id, ErrNodeNotFound)
	}
	return len(g.out[h]) + len(g.in[h]), nil
}

// mergeIncident walks out and in handles in global insertion order,
// mapping each edge handle to a neighbor ID.
func (g *Graph[N, E]) mergeIncident(h int32, pick func(int32) string) []string {
	merged := mergeHandles(g.out[h], g.in[h])
	ids := make([]string, 0, len(merged))
	for _, eh := range merged {
		ids = append(ids, pick(eh))
	}
	return ids
}

// mergeHandles merges two handle lists that are each ascending (arena
// handles grow with insertion) into one ascending list. Self-loops appear
// in both lists and are deduplicated.
func mergeHandles(a, b []int32) []int32 {
	merged := make([]int32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			merged = append(merged, a[i])
			i++
		case a[i] > b[j]:
			merged = append(merged, b[j])
			j++
		default: // self-loop
			merged = append(merged, a[i])
			i++
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// Statistics returns node/edge counts and degree aggregates.
func (g *Graph[N, E]) Statistics() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	s := Stats{NodeCount: g.nodeCount, EdgeCount: g.edgeCount}
	if g.nodeCount == 0 {
		return s
	}
	first := true
	total := 0
	for h, rec := range g.nodes {
		if !rec.alive {
			continue
		}
		d := len(g.out[h]) + len(g.in[h])
		total += d
		if first || d < s.MinDegree {
			s.MinDegree = d
		}
		if first || d > s.MaxDegree {
			s.MaxDegree = d
		}
		first = false
	}
	s.AvgDegree = float64(total) / float64(g.nodeCount)
	if g.nodeCount > 1 {
		possible := float64(g.nodeCount) * float64(g.nodeCount-1)
		if !g.directed {
			possible /= 2
		}
		s.Density = float64(g.edgeCount) / possible
	}
	return s
}
