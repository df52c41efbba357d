package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

// KCore returns the maximal subgraph in which every node has degree at least
// k within the subgraph. For k <= 0 the whole graph is returned. An empty
// core fails with graph.ErrNotFound.
func KCore(g *graph.Graph, k int) (*graph.Graph, error) {
	if k <= 0 {
		return g.Subgraph(g.Nodes()), nil
	}

	degree := make(map[graph.NodeID]int, g.NodeCount())
	removed := make(map[graph.NodeID]bool)
	queue := list.New()

	for _, v := range g.Nodes() {
		d, err := g.Degree(v)
		if err != nil {
			return nil, err
		}
		degree[v] = d
		if d < k {
			removed[v] = true
			queue.PushBack(v)
		}
	}

	// Peel nodes whose degree dropped below k
	for queue.Len() > 0 {
		v, ok := queue.Remove(queue.Front()).(graph.NodeID)
		if !ok {
			continue
		}
		neighbors, err := g.Neighbors(v)
		if err != nil {
			return nil, err
		}
		for _, w := range neighbors {
			if removed[w] {
				continue
			}
			degree[w]--
			if degree[w] < k {
				removed[w] = true
				queue.PushBack(w)
			}
		}
	}

	remaining := make([]graph.NodeID, 0, g.NodeCount()-len(removed))
	for _, v := range g.Nodes() {
		if !removed[v] {
			remaining = append(remaining, v)
		}
	}
	if len(remaining) == 0 {
		return nil, graph.NewError("kcore").Entity("core").
			Context("k=%d", k).Cause(graph.ErrNotFound).Err()
	}

	return g.Subgraph(remaining), nil
}

// HighestNonemptyKCore scans k downward from the maximum degree and returns
// the first non-empty core together with its k.
func HighestNonemptyKCore(g *graph.Graph) (*graph.Graph, int, error) {
	for k := g.MaxDegree(); k >= 1; k-- {
		core, err := KCore(g, k)
		if err == nil {
			return core, k, nil
		}
		if !graph.IsNotFound(err) {
			return nil, 0, err
		}
	}
	return nil, 0, graph.NewError("kcore").Entity("core").
		Context("graph has no edges").Cause(graph.ErrNotFound).Err()
}

// CoreNumbers returns, for every node, the largest k such that the node
// belongs to the k-core.
func CoreNumbers(g *graph.Graph) map[graph.NodeID]int {
	degree := make(map[graph.NodeID]int, g.NodeCount())
	for _, v := range g.Nodes() {
		degree[v], _ = g.Degree(v)
	}

	core := make(map[graph.NodeID]int, g.NodeCount())
	remaining := g.Nodes()
	k := 0

	for len(remaining) > 0 {
		// Remove the node of smallest residual degree, first in insertion order on ties
		minIdx := 0
		for i, v := range remaining {
			if degree[v] < degree[remaining[minIdx]] {
				minIdx = i
			}
		}
		v := remaining[minIdx]
		remaining = append(remaining[:minIdx], remaining[minIdx+1:]...)

		if degree[v] > k {
			k = degree[v]
		}
		core[v] = k

		for _, w := range remaining {
			if g.HasEdge(v, w) {
				degree[w]--
			}
		}
	}

	return core
}

// WeightedEdges lists the edges of g with their weights in load order.
func WeightedEdges(g *graph.Graph) ([]graph.EdgeWeight, float64) {
	edges := g.Edges()
	out := make([]graph.EdgeWeight, len(edges))
	total := 0.0
	for i, e := range edges {
		out[i] = graph.EdgeWeight{U: e.Source, V: e.Target, Weight: e.Weight}
		total += e.Weight
	}
	return out, total
}
