package graph

import (
	"fmt"
	"math"
	"sort"
)

// Build creates a graph from node and edge records using the default options.
func Build(nodes []Node, edges []Edge) (*Graph, error) {
	return BuildWithOptions(nodes, edges, DefaultBuildOptions())
}

// BuildWithOptions creates a graph from node and edge records.
// It fails with ErrMalformedInput when a node ID is empty or repeated, an edge
// references an unknown node, an edge is a self-loop, a weight is not a
// positive finite number, or a duplicate edge is found under DuplicateReject.
func BuildWithOptions(nodes []Node, edges []Edge, opts BuildOptions) (*Graph, error) {
	g := newGraph(len(nodes), len(edges))

	for i, n := range nodes {
		if n.ID == "" {
			return nil, NewError("build").Entity("node").
				Context("record %d", i).Cause(ErrMalformedInput).Err()
		}
		if _, exists := g.index[n.ID]; exists {
			return nil, NewError("build").Node(n.ID).
				Context("duplicate node id at record %d", i).Cause(ErrMalformedInput).Err()
		}
		g.addNode(n)
	}

	for i, e := range edges {
		if err := g.validateEdge(i, e); err != nil {
			return nil, err
		}

		key := newEdgeKey(e.Source, e.Target)
		if pos, dup := g.edgeIndex[key]; dup {
			if opts.DuplicateEdges == DuplicateReject {
				return nil, NewError("build").Edge(e.Source, e.Target).
					Context("duplicate edge at record %d", i).Cause(ErrMalformedInput).Err()
			}
			g.edges[pos].Weight = e.Weight
			g.adj[e.Source][e.Target] = e.Weight
			g.adj[e.Target][e.Source] = e.Weight
			continue
		}

		g.addEdge(key, e)
	}

	return g, nil
}

func newGraph(nodeHint, edgeHint int) *Graph {
	return &Graph{
		order:     make([]NodeID, 0, nodeHint),
		index:     make(map[NodeID]int, nodeHint),
		labels:    make(map[NodeID]string, nodeHint),
		adj:       make(map[NodeID]map[NodeID]float64, nodeHint),
		edges:     make([]Edge, 0, edgeHint),
		edgeIndex: make(map[edgeKey]int, edgeHint),
	}
}

func (g *Graph) addNode(n Node) {
	g.index[n.ID] = len(g.order)
	g.order = append(g.order, n.ID)
	g.labels[n.ID] = n.Label
	g.adj[n.ID] = make(map[NodeID]float64)
}

func (g *Graph) addEdge(key edgeKey, e Edge) {
	g.edgeIndex[key] = len(g.edges)
	g.edges = append(g.edges, e)
	g.adj[e.Source][e.Target] = e.Weight
	g.adj[e.Target][e.Source] = e.Weight
}

func (g *Graph) validateEdge(i int, e Edge) error {
	if _, ok := g.index[e.Source]; !ok {
		return NewError("build").Edge(e.Source, e.Target).
			Context("record %d: unknown source %q", i, e.Source).Cause(ErrMalformedInput).Err()
	}
	if _, ok := g.index[e.Target]; !ok {
		return NewError("build").Edge(e.Source, e.Target).
			Context("record %d: unknown target %q", i, e.Target).Cause(ErrMalformedInput).Err()
	}
	if e.Source == e.Target {
		return NewError("build").Edge(e.Source, e.Target).
			Context("record %d: self-loop", i).Cause(ErrMalformedInput).Err()
	}
	if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight <= 0 {
		return NewError("build").Edge(e.Source, e.Target).
			Context("record %d: weight %v must be positive", i, e.Weight).Cause(ErrMalformedInput).Err()
	}
	return nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// HasNode reports whether id is a node of the graph.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v NodeID) bool {
	_, ok := g.adj[u][v]
	return ok
}

// Node returns the node record for id.
func (g *Graph) Node(id NodeID) (Node, error) {
	if !g.HasNode(id) {
		return Node{}, NodeNotFoundError("node", id)
	}
	return Node{ID: id, Label: g.labels[id]}, nil
}

// Label returns the display label of id, falling back to the ID itself when
// the node is unknown or unlabelled.
func (g *Graph) Label(id NodeID) string {
	if l := g.labels[id]; l != "" {
		return l
	}
	return string(id)
}

// Index returns the insertion position of id, or -1 when absent.
func (g *Graph) Index(id NodeID) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// Nodes returns node IDs in insertion order.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, len(g.order))
	copy(out, g.order)
	return out
}

// NodeRecords returns the full node records in insertion order.
func (g *Graph) NodeRecords() []Node {
	out := make([]Node, len(g.order))
	for i, id := range g.order {
		out[i] = Node{ID: id, Label: g.labels[id]}
	}
	return out
}

// Edges returns edges in the order they were first loaded.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Neighbors returns the neighbours of id ordered by node insertion order.
func (g *Graph) Neighbors(id NodeID) ([]NodeID, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return nil, NodeNotFoundError("neighbors", id)
	}
	out := make([]NodeID, 0, len(nbrs))
	for v := range nbrs {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return g.index[out[i]] < g.index[out[j]]
	})
	return out, nil
}

// Degree returns the number of neighbours of id.
func (g *Graph) Degree(id NodeID) (int, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return 0, NodeNotFoundError("degree", id)
	}
	return len(nbrs), nil
}

// Weight returns the weight of edge (u,v). A missing edge fails with
// ErrEdgeNotFound; when an endpoint is unknown the error also matches
// ErrNodeNotFound.
func (g *Graph) Weight(u, v NodeID) (float64, error) {
	for _, id := range []NodeID{u, v} {
		if !g.HasNode(id) {
			return 0, NewError("weight").Edge(u, v).Context("node %q", id).
				Cause(fmt.Errorf("%w: %w", ErrEdgeNotFound, ErrNodeNotFound)).Err()
		}
	}
	w, ok := g.adj[u][v]
	if !ok {
		return 0, EdgeNotFoundError("weight", u, v)
	}
	return w, nil
}

// MaxDegree returns the largest node degree, 0 for an empty graph.
func (g *Graph) MaxDegree() int {
	max := 0
	for _, nbrs := range g.adj {
		if len(nbrs) > max {
			max = len(nbrs)
		}
	}
	return max
}

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() float64 {
	total := 0.0
	for _, e := range g.edges {
		total += e.Weight
	}
	return total
}

// Subgraph returns the subgraph induced by ids. Unknown IDs are ignored.
// Node and edge order follow the parent graph.
func (g *Graph) Subgraph(ids []NodeID) *Graph {
	keep := make(map[NodeID]bool, len(ids))
	for _, id := range ids {
		if g.HasNode(id) {
			keep[id] = true
		}
	}

	sub := newGraph(len(keep), 0)
	for _, id := range g.order {
		if keep[id] {
			sub.addNode(Node{ID: id, Label: g.labels[id]})
		}
	}
	for _, e := range g.edges {
		if keep[e.Source] && keep[e.Target] {
			sub.addEdge(newEdgeKey(e.Source, e.Target), e)
		}
	}
	return sub
}
