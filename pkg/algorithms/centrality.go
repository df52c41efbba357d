package algorithms

import (
	"container/list"
	"fmt"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

// DegreeCentrality computes degree centrality for all nodes.
// The score of v is degree(v) / (n-1).
func DegreeCentrality(g *graph.Graph) (Scores, error) {
	n := g.NodeCount()
	if n <= 1 {
		return nil, fmt.Errorf("degree centrality on %d nodes: %w", n, ErrDegenerateGraph)
	}

	degree := make(Scores, n)
	for _, v := range g.Nodes() {
		d, err := g.Degree(v)
		if err != nil {
			return nil, err
		}
		degree[v] = float64(d) / float64(n-1)
	}

	return degree, nil
}

// ClosenessCentrality computes closeness centrality for all nodes using
// unweighted hop distances. Scores are scaled by the fraction of the graph
// reachable from each node so that nodes in small components are not
// over-rated (Wasserman and Faust). Isolated nodes score 0.
func ClosenessCentrality(g *graph.Graph) (Scores, error) {
	n := g.NodeCount()
	closeness := make(Scores, n)

	for _, source := range g.Nodes() {
		distance, err := g.Distances(source)
		if err != nil {
			return nil, err
		}

		totalDistance := 0
		for _, d := range distance {
			totalDistance += d
		}

		reachable := len(distance) - 1
		if totalDistance > 0 && n > 1 {
			score := float64(reachable) / float64(totalDistance)
			score *= float64(reachable) / float64(n-1)
			closeness[source] = score
		} else {
			closeness[source] = 0.0
		}
	}

	return closeness, nil
}

// brandes runs one Brandes pass from every source and returns the raw
// dependency sums. For an undirected graph every unordered pair contributes
// twice, once from each endpoint.
func brandes(g *graph.Graph) Scores {
	nodeIDs := g.Nodes()

	betweenness := make(Scores, len(nodeIDs))
	for _, v := range nodeIDs {
		betweenness[v] = 0.0
	}

	for _, source := range nodeIDs {
		stack := make([]graph.NodeID, 0, len(nodeIDs))
		predecessors := make(map[graph.NodeID][]graph.NodeID, len(nodeIDs))
		sigma := make(map[graph.NodeID]float64, len(nodeIDs))
		distance := make(map[graph.NodeID]int, len(nodeIDs))

		for _, v := range nodeIDs {
			distance[v] = -1
		}
		sigma[source] = 1.0
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(graph.NodeID)
			if !ok {
				continue
			}
			stack = append(stack, v)

			neighbors, err := g.Neighbors(v)
			if err != nil {
				continue
			}

			for _, w := range neighbors {
				if distance[w] < 0 {
					queue.PushBack(w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of pair dependencies
		delta := make(map[graph.NodeID]float64, len(nodeIDs))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	return betweenness
}

// BetweennessCentrality computes normalised betweenness centrality for all
// nodes. Ties among several shortest paths are split proportionally. Graphs
// with fewer than three nodes score 0 everywhere.
func BetweennessCentrality(g *graph.Graph) (Scores, error) {
	betweenness := brandes(g)

	n := len(betweenness)
	if n <= 2 {
		for v := range betweenness {
			betweenness[v] = 0
		}
		return betweenness, nil
	}

	// Raw sums count each unordered pair twice; 2/((n-1)(n-2)) on the
	// pair-counted value is 1/((n-1)(n-2)) on the raw one.
	normFactor := 1.0 / float64((n-1)*(n-2))
	for v := range betweenness {
		betweenness[v] *= normFactor
	}

	return betweenness, nil
}
