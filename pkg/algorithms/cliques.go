package algorithms

import (
	"cmp"
	"iter"
	"slices"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/ranking"
)

// higherNeighbors returns, for each node, its neighbours that come later in
// insertion order, sorted by insertion order.
func higherNeighbors(g *graph.Graph) map[graph.NodeID][]graph.NodeID {
	higher := make(map[graph.NodeID][]graph.NodeID, g.NodeCount())
	for _, u := range g.Nodes() {
		neighbors, _ := g.Neighbors(u)
		iu := g.Index(u)
		for _, v := range neighbors {
			if g.Index(v) > iu {
				higher[u] = append(higher[u], v)
			}
		}
	}
	return higher
}

// AllCliques enumerates every clique of g, including single nodes and edges.
// Cliques are produced in non-decreasing size order; each clique lists its
// nodes in insertion order. The sequence is lazy and may be ranged over more
// than once.
func AllCliques(g *graph.Graph) iter.Seq[Clique] {
	return func(yield func(Clique) bool) {
		higher := higherNeighbors(g)

		type candidate struct {
			base       Clique
			commonNbrs []graph.NodeID
		}

		queue := make([]candidate, 0, g.NodeCount())
		for _, u := range g.Nodes() {
			queue = append(queue, candidate{base: Clique{u}, commonNbrs: higher[u]})
		}

		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]

			out := make(Clique, len(c.base))
			copy(out, c.base)
			if !yield(out) {
				return
			}

			for i, u := range c.commonNbrs {
				base := make(Clique, len(c.base)+1)
				copy(base, c.base)
				base[len(c.base)] = u

				var common []graph.NodeID
				for _, w := range c.commonNbrs[i+1:] {
					if g.HasEdge(u, w) {
						common = append(common, w)
					}
				}
				queue = append(queue, candidate{base: base, commonNbrs: common})
			}
		}
	}
}

// MaximalCliques returns every inclusion-maximal clique using Bron-Kerbosch
// with pivoting. Isolated nodes are returned as single-node cliques. Each
// clique lists its nodes in insertion order.
func MaximalCliques(g *graph.Graph) []Clique {
	var cliques []Clique
	bronKerbosch(g, nil, g.Nodes(), nil, &cliques)
	return cliques
}

func bronKerbosch(g *graph.Graph, r, p, x []graph.NodeID, out *[]Clique) {
	if len(p) == 0 && len(x) == 0 {
		clique := make(Clique, len(r))
		copy(clique, r)
		slices.SortFunc(clique, func(a, b graph.NodeID) int {
			return cmp.Compare(g.Index(a), g.Index(b))
		})
		*out = append(*out, clique)
		return
	}
	if len(p) == 0 {
		return
	}

	// Pivot on the node covering the most candidates
	pivot, best := p[0], -1
	for _, set := range [][]graph.NodeID{p, x} {
		for _, u := range set {
			if c := countAdjacent(g, u, p); c > best {
				pivot, best = u, c
			}
		}
	}

	candidates := make([]graph.NodeID, 0, len(p))
	for _, v := range p {
		if !g.HasEdge(pivot, v) {
			candidates = append(candidates, v)
		}
	}

	for _, v := range candidates {
		rv := append(append(make([]graph.NodeID, 0, len(r)+1), r...), v)
		bronKerbosch(g, rv, adjacentTo(g, v, p), adjacentTo(g, v, x), out)

		p = without(p, v)
		x = append(x, v)
	}
}

func countAdjacent(g *graph.Graph, u graph.NodeID, set []graph.NodeID) int {
	count := 0
	for _, v := range set {
		if g.HasEdge(u, v) {
			count++
		}
	}
	return count
}

func adjacentTo(g *graph.Graph, u graph.NodeID, set []graph.NodeID) []graph.NodeID {
	out := make([]graph.NodeID, 0, len(set))
	for _, v := range set {
		if g.HasEdge(u, v) {
			out = append(out, v)
		}
	}
	return out
}

func without(set []graph.NodeID, v graph.NodeID) []graph.NodeID {
	out := make([]graph.NodeID, 0, len(set))
	for _, u := range set {
		if u != v {
			out = append(out, u)
		}
	}
	return out
}

// cliqueWeight sums the pairwise edge weights of a clique, recording each
// pair in (i, j>i) order.
func cliqueWeight(g *graph.Graph, c Clique) WeightedClique {
	wc := WeightedClique{Nodes: c}
	for i := 0; i < len(c); i++ {
		for j := i + 1; j < len(c); j++ {
			w, _ := g.Weight(c[i], c[j])
			wc.TotalWeight += w
			wc.EdgeWeights = append(wc.EdgeWeights, graph.EdgeWeight{U: c[i], V: c[j], Weight: w})
		}
	}
	return wc
}

// TopWeightedCliques returns up to k cliques of at least minSize nodes,
// ordered by size then total edge weight, both descending. Equal cliques keep
// discovery order.
func TopWeightedCliques(g *graph.Graph, k, minSize int) []WeightedClique {
	top, _ := RankCliques(g, k, minSize)
	return top
}

// RankCliques enumerates the cliques of g once and returns both the
// TopWeightedCliques ranking and the SummarizeCliques statistics.
func RankCliques(g *graph.Graph, k, minSize int) ([]WeightedClique, CliqueStats) {
	stats := CliqueStats{MinSize: minSize}
	var weighted []WeightedClique
	for c := range AllCliques(g) {
		if len(c) < minSize {
			continue
		}
		stats.add(c)
		weighted = append(weighted, cliqueWeight(g, c))
	}

	top := ranking.TopK(weighted, k,
		func(wc WeightedClique) int { return len(wc.Nodes) },
		func(a, b WeightedClique) int { return cmp.Compare(b.TotalWeight, a.TotalWeight) },
	)
	return top, stats
}

// SummarizeCliques counts cliques of at least minSize nodes and reports the
// largest clique size and how many cliques reach it.
func SummarizeCliques(g *graph.Graph, minSize int) CliqueStats {
	stats := CliqueStats{MinSize: minSize}
	for c := range AllCliques(g) {
		if len(c) >= minSize {
			stats.add(c)
		}
	}
	return stats
}

func (s *CliqueStats) add(c Clique) {
	s.Count++
	switch {
	case len(c) > s.LargestSize:
		s.LargestSize = len(c)
		s.LargestCount = 1
	case len(c) == s.LargestSize:
		s.LargestCount++
	}
}
