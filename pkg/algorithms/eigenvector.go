package algorithms

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

// EigenvectorCentrality computes the principal eigenvector of the adjacency
// matrix by power iteration. The iteration runs on A+I, which has the same
// principal eigenvector as A but does not oscillate on bipartite graphs.
// Scores are non-negative with unit Euclidean norm.
func EigenvectorCentrality(g *graph.Graph, opts EigenvectorOptions) (*EigenvectorResult, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, fmt.Errorf("eigenvector centrality on empty graph: %w", ErrDegenerateGraph)
	}

	nodeIDs := g.Nodes()
	adjacency := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		adjacency.Set(i, i, 1)
	}
	for _, e := range g.Edges() {
		w := 1.0
		if opts.Weighted {
			w = e.Weight
		}
		i, j := g.Index(e.Source), g.Index(e.Target)
		adjacency.Set(i, j, w)
		adjacency.Set(j, i, w)
	}

	// Uniform start vector
	start := make([]float64, n)
	for i := range start {
		start[i] = 1.0 / float64(n)
	}
	x := mat.NewVecDense(n, start)
	next := mat.NewVecDense(n, nil)

	for iteration := 1; iteration <= opts.MaxIterations; iteration++ {
		next.MulVec(adjacency, x)

		norm := floats.Norm(next.RawVector().Data, 2)
		if norm == 0 {
			norm = 1
		}
		next.ScaleVec(1/norm, next)

		diff := floats.Distance(next.RawVector().Data, x.RawVector().Data, 1)
		x.CopyVec(next)

		if diff < float64(n)*opts.Tolerance {
			scores := make(Scores, n)
			for i, v := range nodeIDs {
				scores[v] = x.AtVec(i)
			}
			return &EigenvectorResult{Scores: scores, Iterations: iteration}, nil
		}
	}

	return nil, fmt.Errorf("eigenvector centrality after %d iterations: %w", opts.MaxIterations, ErrConvergence)
}
