package algorithms

import "github.com/dd0wney/cluso-graphstats/pkg/graph"

// TriangleCountPerNode returns the number of triangles each node belongs to.
// For each node u, every pair (v,w) of its neighbours that are themselves
// adjacent closes a triangle.
func TriangleCountPerNode(g *graph.Graph) map[graph.NodeID]int {
	perNode := make(map[graph.NodeID]int, g.NodeCount())
	for _, u := range g.Nodes() {
		neighbors, _ := g.Neighbors(u)

		count := 0
		for i := 0; i < len(neighbors); i++ {
			for j := i + 1; j < len(neighbors); j++ {
				if g.HasEdge(neighbors[i], neighbors[j]) {
					count++
				}
			}
		}
		perNode[u] = count
	}
	return perNode
}

// TotalTriangles returns the number of distinct triangles in g.
func TotalTriangles(g *graph.Graph) int {
	total := 0
	for _, c := range TriangleCountPerNode(g) {
		total += c
	}
	// Each triangle is counted once per member
	return total / 3
}

// ClusteringPerNode returns the local clustering coefficient of every node:
// 2T(v) / (deg(v)(deg(v)-1)), or 0 when deg(v) < 2.
func ClusteringPerNode(g *graph.Graph) Scores {
	triangles := TriangleCountPerNode(g)
	coefficients := make(Scores, len(triangles))
	for _, u := range g.Nodes() {
		k, _ := g.Degree(u)
		if k < 2 {
			coefficients[u] = 0.0
			continue
		}
		possible := k * (k - 1) / 2
		coefficients[u] = float64(triangles[u]) / float64(possible)
	}
	return coefficients
}

// connectedTriples returns the number of paths of length two, centred on
// each node in turn.
func connectedTriples(g *graph.Graph) int {
	triples := 0
	for _, u := range g.Nodes() {
		k, _ := g.Degree(u)
		triples += k * (k - 1) / 2
	}
	return triples
}

// Transitivity returns 3 * triangles / connected triples, 0 when the graph
// has no connected triple.
func Transitivity(g *graph.Graph) float64 {
	triples := connectedTriples(g)
	if triples == 0 {
		return 0
	}
	return 3 * float64(TotalTriangles(g)) / float64(triples)
}

// OpenTriads counts connected triples whose end points are not adjacent.
func OpenTriads(g *graph.Graph) int {
	open := 0
	triangles := TriangleCountPerNode(g)
	for _, u := range g.Nodes() {
		k, _ := g.Degree(u)
		open += k*(k-1)/2 - triangles[u]
	}
	return open
}

// AllTriads returns every 3-clique with its edge weights, in clique
// discovery order.
func AllTriads(g *graph.Graph) []Triad {
	var triads []Triad
	for c := range AllCliques(g) {
		if len(c) < 3 {
			continue
		}
		if len(c) > 3 {
			// Cliques arrive in size order, nothing smaller follows
			break
		}

		w01, _ := g.Weight(c[0], c[1])
		w12, _ := g.Weight(c[1], c[2])
		w20, _ := g.Weight(c[2], c[0])
		triads = append(triads, Triad{
			Nodes:       [3]graph.NodeID{c[0], c[1], c[2]},
			TotalWeight: w01 + w12 + w20,
			Weights:     [3]float64{w01, w12, w20},
		})
	}
	return triads
}
