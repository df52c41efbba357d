// Package ranking selects and orders the top entries of analysis results.
// All functions are pure: inputs are never modified.
package ranking

import (
	"cmp"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

// Entry is a ranked node with its display label.
type Entry struct {
	Rank   int          `json:"rank"`
	NodeID graph.NodeID `json:"node_id"`
	Label  string       `json:"label"`
	Score  float64      `json:"score"`
}

// TopK returns the min(k, len(items)) items with the largest key, in
// non-increasing key order. Items with equal keys are ordered by tieBreak
// when it is non-nil (negative means a ranks first) and otherwise keep their
// input order.
func TopK[T any, K constraints.Ordered](items []T, k int, key func(T) K, tieBreak func(a, b T) int) []T {
	if k <= 0 || len(items) == 0 {
		return []T{}
	}

	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := key(sorted[i]), key(sorted[j])
		if ki != kj {
			return ki > kj
		}
		if tieBreak != nil {
			return tieBreak(sorted[i], sorted[j]) < 0
		}
		return false
	})

	if k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}

// TopScores ranks the nodes of a score map. Equal scores are ordered by node
// insertion order so that results do not depend on map iteration.
func TopScores(g *graph.Graph, scores map[graph.NodeID]float64, k int) []Entry {
	entries := make([]Entry, 0, len(scores))
	for id, score := range scores {
		entries = append(entries, Entry{NodeID: id, Label: g.Label(id), Score: score})
	}

	top := TopK(entries, k,
		func(e Entry) float64 { return e.Score },
		func(a, b Entry) int { return cmp.Compare(g.Index(a.NodeID), g.Index(b.NodeID)) },
	)
	for i := range top {
		top[i].Rank = i + 1
	}
	return top
}

// TopCounts ranks the nodes of an integer count map, as TopScores does.
func TopCounts(g *graph.Graph, counts map[graph.NodeID]int, k int) []Entry {
	scores := make(map[graph.NodeID]float64, len(counts))
	for id, c := range counts {
		scores[id] = float64(c)
	}
	return TopScores(g, scores, k)
}

// TopEdges returns the k heaviest edges; equal weights keep load order.
func TopEdges(g *graph.Graph, k int) []graph.EdgeWeight {
	edges := g.Edges()
	weighted := make([]graph.EdgeWeight, len(edges))
	for i, e := range edges {
		weighted[i] = graph.EdgeWeight{U: e.Source, V: e.Target, Weight: e.Weight}
	}
	return TopK(weighted, k, func(e graph.EdgeWeight) float64 { return e.Weight }, nil)
}
