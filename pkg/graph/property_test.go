package graph_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

// TestBuildRoundTrip checks that building from records and reading them back
// reproduces the input exactly.
func TestBuildRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("node, edge and weight lookups reproduce input", prop.ForAll(
		func(n int, weights []int) bool {
			nodes := make([]graph.Node, n)
			for i := range nodes {
				nodes[i] = graph.Node{ID: graph.NodeID(fmt.Sprintf("v%d", i)), Label: fmt.Sprintf("label-%d", i)}
			}

			// Chain a ring of edges so every pair is distinct.
			edges := make([]graph.Edge, 0, len(weights))
			for i, w := range weights {
				if i >= n-1 {
					break
				}
				edges = append(edges, graph.Edge{Source: nodes[i].ID, Target: nodes[i+1].ID, Weight: float64(w)})
			}

			g, err := graph.Build(nodes, edges)
			if err != nil {
				return false
			}
			if g.NodeCount() != n || g.EdgeCount() != len(edges) {
				return false
			}
			for _, e := range edges {
				w, err := g.Weight(e.Source, e.Target)
				if err != nil || w != e.Weight {
					return false
				}
			}
			for i, rec := range g.NodeRecords() {
				if rec != nodes[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 30),
		gen.SliceOf(gen.IntRange(1, 1000)),
	))

	properties.Property("edges are symmetric", prop.ForAll(
		func(a, b int) bool {
			nodes := []graph.Node{{ID: "a"}, {ID: "b"}}
			g, err := graph.Build(nodes, []graph.Edge{{Source: "a", Target: "b", Weight: float64(a*1000 + b)}})
			if err != nil {
				return false
			}
			w1, err1 := g.Weight("a", "b")
			w2, err2 := g.Weight("b", "a")
			return err1 == nil && err2 == nil && w1 == w2 && g.HasEdge("b", "a")
		},
		gen.IntRange(0, 100),
		gen.IntRange(1, 100),
	))

	properties.TestingRun(t)
}
