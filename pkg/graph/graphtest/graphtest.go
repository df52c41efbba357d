// Package graphtest provides small fixture graphs and a seeded random graph
// generator for tests.
package graphtest

import (
	"fmt"
	"math/rand"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

// MustBuild builds a graph from nodes and edges and panics on error.
func MustBuild(nodes []graph.Node, edges []graph.Edge) *graph.Graph {
	g, err := graph.Build(nodes, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// Nodes returns unlabelled nodes for the given IDs.
func Nodes(ids ...graph.NodeID) []graph.Node {
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = graph.Node{ID: id, Label: string(id)}
	}
	return nodes
}

// Triangle returns A-B (5), B-C (3), A-C (2).
func Triangle() *graph.Graph {
	return MustBuild(Nodes("A", "B", "C"), []graph.Edge{
		{Source: "A", Target: "B", Weight: 5},
		{Source: "B", Target: "C", Weight: 3},
		{Source: "A", Target: "C", Weight: 2},
	})
}

// Star returns center X joined to leaves L1..Ln with weight 1.
func Star(leaves int) *graph.Graph {
	ids := []graph.NodeID{"X"}
	edges := make([]graph.Edge, 0, leaves)
	for i := 1; i <= leaves; i++ {
		leaf := graph.NodeID(fmt.Sprintf("L%d", i))
		ids = append(ids, leaf)
		edges = append(edges, graph.Edge{Source: "X", Target: leaf, Weight: 1})
	}
	return MustBuild(Nodes(ids...), edges)
}

// Path returns a path over the given IDs with unit weights.
func Path(ids ...graph.NodeID) *graph.Graph {
	edges := make([]graph.Edge, 0, len(ids))
	for i := 1; i < len(ids); i++ {
		edges = append(edges, graph.Edge{Source: ids[i-1], Target: ids[i], Weight: 1})
	}
	return MustBuild(Nodes(ids...), edges)
}

// TwoComponents returns the triangle A-B-C plus a separate edge D-E.
func TwoComponents() *graph.Graph {
	return MustBuild(Nodes("A", "B", "C", "D", "E"), []graph.Edge{
		{Source: "A", Target: "B", Weight: 1},
		{Source: "B", Target: "C", Weight: 1},
		{Source: "A", Target: "C", Weight: 1},
		{Source: "D", Target: "E", Weight: 1},
	})
}

// Random returns an Erdos-Renyi style graph with n nodes where each pair is
// joined with probability p. Weights are integers in [1, 10].
func Random(seed int64, n int, p float64) *graph.Graph {
	rng := rand.New(rand.NewSource(seed))
	ids := make([]graph.NodeID, n)
	for i := range ids {
		ids[i] = graph.NodeID(fmt.Sprintf("n%02d", i))
	}
	var edges []graph.Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() < p {
				edges = append(edges, graph.Edge{
					Source: ids[i],
					Target: ids[j],
					Weight: float64(rng.Intn(10) + 1),
				})
			}
		}
	}
	return MustBuild(Nodes(ids...), edges)
}
