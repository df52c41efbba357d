package algorithms

import "github.com/dd0wney/cluso-graphstats/pkg/graph"

// EgoNetwork returns the subgraph induced by center and its neighbours.
func EgoNetwork(g *graph.Graph, center graph.NodeID) (*graph.Graph, error) {
	neighbors, err := g.Neighbors(center)
	if err != nil {
		return nil, graph.NewError("ego network").Node(center).Cause(graph.ErrNodeNotFound).Err()
	}
	return g.Subgraph(append([]graph.NodeID{center}, neighbors...)), nil
}
