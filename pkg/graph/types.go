package graph

// Node is a typed vertex. ID must be unique within a graph. Type is a
// free-form tag (e.g. "paper", "author") that algorithms may filter on.
// Data carries the caller's payload; the engine never inspects it.
type Node[N any] struct {
	ID   string
	Type string
	Data N
}

// Edge is a typed, directed connection between two node IDs. Undirected
// algorithms traverse it in both directions without a second edge object.
// Weight is optional; a nil Weight means "unweighted" and is rejected by
// weight-sensitive algorithms unless a weight function overrides it.
type Edge[E any] struct {
	ID     string
	Source string
	Target string
	Type   string
	Weight *float64
	Data   E
}

// Stats summarizes a graph's size and degree distribution.
type Stats struct {
	NodeCount int
	EdgeCount int
	Density   float64
	MinDegree int
	MaxDegree int
	AvgDegree float64
}

// nodeRec is an arena slot for a node. Slots are never reused; removal
// tombstones the slot so handles stay stable.
type nodeRec[N any] struct {
	node  Node[N]
	alive bool
}

// edgeRec is an arena slot for an edge, holding resolved endpoint handles.
type edgeRec[E any] struct {
	edge  Edge[E]
	from  int32
	to    int32
	alive bool
}
