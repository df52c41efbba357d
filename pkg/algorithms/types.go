package algorithms

import "github.com/dd0wney/cluso-graphstats/pkg/graph"

// Scores maps every node of a graph to a real-valued centrality score.
type Scores map[graph.NodeID]float64

// Clique is a set of pairwise adjacent nodes in discovery order.
type Clique []graph.NodeID

// WeightedClique is a clique with the sum of its pairwise edge weights and the
// individual contributions in visiting order.
type WeightedClique struct {
	Nodes       Clique             `json:"nodes"`
	TotalWeight float64            `json:"total_weight"`
	EdgeWeights []graph.EdgeWeight `json:"edge_weights"`
}

// CliqueStats summarises the cliques of a graph above a minimum size.
type CliqueStats struct {
	MinSize      int `json:"min_size"`
	Count        int `json:"count"`
	LargestSize  int `json:"largest_size"`
	LargestCount int `json:"largest_count"`
}

// Triad is a 3-clique. Weights holds the edge weights of (0,1), (1,2), (2,0).
type Triad struct {
	Nodes       [3]graph.NodeID `json:"nodes"`
	TotalWeight float64         `json:"total_weight"`
	Weights     [3]float64      `json:"weights"`
}

// Group is a named, caller-supplied set of nodes. Members need not exist in
// the graph; absent members are dropped before computing.
type Group struct {
	Name    string         `json:"name" yaml:"name"`
	Members []graph.NodeID `json:"members" yaml:"members"`
}

// GroupResult holds a group centrality value and which members were used.
type GroupResult struct {
	Group   string         `json:"group"`
	Value   float64        `json:"value"`
	Members []graph.NodeID `json:"members"`
	Missing []graph.NodeID `json:"missing,omitempty"`
	// Unreachable counts non-group nodes with no path to the group. Only set by
	// group closeness.
	Unreachable int `json:"unreachable,omitempty"`
}

// UnreachablePolicy decides how group closeness treats non-group nodes that
// cannot reach any group member.
type UnreachablePolicy int

const (
	// UnreachableExclude leaves unreachable nodes out of the average and
	// reports how many there were.
	UnreachableExclude UnreachablePolicy = iota
	// UnreachableUndefined fails with ErrUnreachableGroup.
	UnreachableUndefined
)

// String returns the configuration name of the policy.
func (p UnreachablePolicy) String() string {
	switch p {
	case UnreachableExclude:
		return "exclude"
	case UnreachableUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// ParseUnreachablePolicy converts a configuration string to a policy.
func ParseUnreachablePolicy(s string) (UnreachablePolicy, bool) {
	switch s {
	case "", "exclude":
		return UnreachableExclude, true
	case "undefined", "error":
		return UnreachableUndefined, true
	default:
		return UnreachableExclude, false
	}
}

// EigenvectorOptions configures eigenvector centrality
type EigenvectorOptions struct {
	MaxIterations int
	Tolerance     float64 // Convergence threshold per node
	Weighted      bool    // Use edge weights instead of 0/1 adjacency
}

// DefaultEigenvectorOptions returns default eigenvector configuration
func DefaultEigenvectorOptions() EigenvectorOptions {
	return EigenvectorOptions{
		MaxIterations: 1000,
		Tolerance:     1e-6,
	}
}

// EigenvectorResult contains eigenvector scores and convergence details
type EigenvectorResult struct {
	Scores     Scores
	Iterations int
}

// HistogramBin is one bucket of a value distribution.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}
