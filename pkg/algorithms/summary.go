package algorithms

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

// Summary holds whole-graph scalar metrics.
// Radius, Diameter and Periphery are only meaningful when Connected is true.
type Summary struct {
	Nodes             int            `json:"nodes"`
	Edges             int            `json:"edges"`
	Components        int            `json:"components"`
	Connected         bool           `json:"connected"`
	Density           float64        `json:"density"`
	WeightedDensity   float64        `json:"weighted_density"`
	TotalWeight       float64        `json:"total_weight"`
	Radius            int            `json:"radius"`
	Diameter          int            `json:"diameter"`
	Periphery         []graph.NodeID `json:"periphery"`
	AverageClustering float64        `json:"average_clustering"`
	Transitivity      float64        `json:"transitivity"`
	Triangles         int            `json:"triangles"`
	OpenTriads        int            `json:"open_triads"`
}

// Density returns 2m / (n(n-1)), 0 for graphs with fewer than two nodes.
func Density(g *graph.Graph) float64 {
	n := g.NodeCount()
	if n <= 1 {
		return 0
	}
	return 2 * float64(g.EdgeCount()) / float64(n*(n-1))
}

// WeightedDensity returns the total edge weight over n(n-1). The
// denominator is 1 for graphs with fewer than two nodes.
func WeightedDensity(g *graph.Graph) float64 {
	n := g.NodeCount()
	maxPossible := 1
	if n > 1 {
		maxPossible = n * (n - 1)
	}
	return g.TotalWeight() / float64(maxPossible)
}

// Eccentricities returns the largest hop distance from every node to any
// other node. It fails with ErrDisconnectedGraph unless g is connected.
func Eccentricities(g *graph.Graph) (map[graph.NodeID]int, error) {
	if !g.IsConnected() {
		return nil, fmt.Errorf("eccentricity: %w", ErrDisconnectedGraph)
	}

	ecc := make(map[graph.NodeID]int, g.NodeCount())
	for _, v := range g.Nodes() {
		distance, err := g.Distances(v)
		if err != nil {
			return nil, err
		}
		max := 0
		for _, d := range distance {
			if d > max {
				max = d
			}
		}
		ecc[v] = max
	}
	return ecc, nil
}

// Radius returns the minimum eccentricity of a connected graph.
func Radius(g *graph.Graph) (int, error) {
	ecc, err := Eccentricities(g)
	if err != nil {
		return 0, err
	}
	radius := math.MaxInt
	for _, e := range ecc {
		if e < radius {
			radius = e
		}
	}
	return radius, nil
}

// Diameter returns the maximum eccentricity of a connected graph.
func Diameter(g *graph.Graph) (int, error) {
	ecc, err := Eccentricities(g)
	if err != nil {
		return 0, err
	}
	return maxEccentricity(ecc), nil
}

// Periphery returns the nodes whose eccentricity equals the diameter, in
// insertion order.
func Periphery(g *graph.Graph) ([]graph.NodeID, error) {
	ecc, err := Eccentricities(g)
	if err != nil {
		return nil, err
	}
	diameter := maxEccentricity(ecc)

	var periphery []graph.NodeID
	for _, v := range g.Nodes() {
		if ecc[v] == diameter {
			periphery = append(periphery, v)
		}
	}
	return periphery, nil
}

func maxEccentricity(ecc map[graph.NodeID]int) int {
	max := 0
	for _, e := range ecc {
		if e > max {
			max = e
		}
	}
	return max
}

// AverageClustering returns the mean local clustering coefficient, 0 for the
// empty graph.
func AverageClustering(g *graph.Graph) float64 {
	coefficients := ClusteringPerNode(g)
	if len(coefficients) == 0 {
		return 0
	}
	// Summed in insertion order so repeated calls agree bit for bit
	values := make([]float64, 0, len(coefficients))
	for _, v := range g.Nodes() {
		values = append(values, coefficients[v])
	}
	return stat.Mean(values, nil)
}

// ClusteringHistogram buckets local clustering coefficients into bins
// equal-width intervals over [0, 1].
func ClusteringHistogram(g *graph.Graph, bins int) []HistogramBin {
	if bins <= 0 {
		bins = 10
	}

	coefficients := ClusteringPerNode(g)
	values := make([]float64, 0, len(coefficients))
	for _, c := range coefficients {
		values = append(values, c)
	}
	sort.Float64s(values)

	dividers := make([]float64, bins+1)
	floats.Span(dividers, 0, 1)
	upper := dividers[bins]
	// stat.Histogram needs every value strictly below the last divider
	dividers[bins] = math.Nextafter(1, 2)

	counts := stat.Histogram(nil, dividers, values, nil)

	histogram := make([]HistogramBin, bins)
	for i := range histogram {
		histogram[i] = HistogramBin{Lower: dividers[i], Upper: dividers[i+1], Count: int(counts[i])}
	}
	histogram[bins-1].Upper = upper
	return histogram
}

// Summarize computes every whole-graph metric. On a disconnected graph the
// eccentricity based fields are left zero and Connected is false.
func Summarize(g *graph.Graph) *Summary {
	s := &Summary{
		Nodes:             g.NodeCount(),
		Edges:             g.EdgeCount(),
		Components:        len(g.ConnectedComponents()),
		Connected:         g.IsConnected(),
		Density:           Density(g),
		WeightedDensity:   WeightedDensity(g),
		TotalWeight:       g.TotalWeight(),
		AverageClustering: AverageClustering(g),
		Transitivity:      Transitivity(g),
		Triangles:         TotalTriangles(g),
		OpenTriads:        OpenTriads(g),
	}

	if ecc, err := Eccentricities(g); err == nil {
		s.Diameter = maxEccentricity(ecc)
		s.Radius = math.MaxInt
		for _, v := range g.Nodes() {
			if ecc[v] < s.Radius {
				s.Radius = ecc[v]
			}
			if ecc[v] == s.Diameter {
				s.Periphery = append(s.Periphery, v)
			}
		}
	}

	return s
}
