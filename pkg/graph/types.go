package graph

// NodeID identifies a node. IDs are unique within a graph and never change.
type NodeID string

// Node is a labelled vertex. Label is the display name and may differ from ID.
type Node struct {
	ID    NodeID `json:"id"`
	Label string `json:"label"`
}

// Edge is an undirected weighted connection. Source and Target keep the
// orientation the edge was first loaded with; (u,v) and (v,u) are the same edge.
type Edge struct {
	Source NodeID  `json:"source"`
	Target NodeID  `json:"target"`
	Weight float64 `json:"weight"`
}

// DuplicateEdgePolicy decides what Build does when the same unordered pair
// appears more than once in the edge records.
type DuplicateEdgePolicy int

const (
	// DuplicateLastWins keeps a single edge carrying the last weight seen.
	DuplicateLastWins DuplicateEdgePolicy = iota
	// DuplicateReject fails the build with ErrMalformedInput.
	DuplicateReject
)

// String returns the configuration name of the policy.
func (p DuplicateEdgePolicy) String() string {
	switch p {
	case DuplicateLastWins:
		return "last-wins"
	case DuplicateReject:
		return "reject"
	default:
		return "unknown"
	}
}

// ParseDuplicateEdgePolicy converts a configuration string to a policy.
func ParseDuplicateEdgePolicy(s string) (DuplicateEdgePolicy, bool) {
	switch s {
	case "", "last-wins", "last_wins":
		return DuplicateLastWins, true
	case "reject":
		return DuplicateReject, true
	default:
		return DuplicateLastWins, false
	}
}

// BuildOptions configures graph construction
type BuildOptions struct {
	DuplicateEdges DuplicateEdgePolicy
}

// DefaultBuildOptions returns the default build configuration
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{DuplicateEdges: DuplicateLastWins}
}

// EdgeWeight is an edge of a derived structure (clique, triad, core) together
// with its weight, in the order it was visited.
type EdgeWeight struct {
	U      NodeID  `json:"u"`
	V      NodeID  `json:"v"`
	Weight float64 `json:"weight"`
}

// edgeKey is the canonical (order independent) key of an undirected edge.
type edgeKey struct {
	a, b NodeID
}

func newEdgeKey(u, v NodeID) edgeKey {
	if v < u {
		u, v = v, u
	}
	return edgeKey{a: u, b: v}
}

// Graph is an immutable simple undirected weighted graph.
// All read methods are safe for concurrent use.
type Graph struct {
	order     []NodeID
	index     map[NodeID]int
	labels    map[NodeID]string
	adj       map[NodeID]map[NodeID]float64
	edges     []Edge
	edgeIndex map[edgeKey]int
}
