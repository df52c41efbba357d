package graph

import "container/list"

// Distances returns unweighted hop distances from source to every node
// reachable from it, including source itself at distance 0.
func (g *Graph) Distances(source NodeID) (map[NodeID]int, error) {
	if !g.HasNode(source) {
		return nil, NodeNotFoundError("distances", source)
	}
	return g.bfs([]NodeID{source}), nil
}

// MultiSourceDistances returns, for every node reachable from any of the
// sources, the distance to the closest source. Unknown sources are skipped.
func (g *Graph) MultiSourceDistances(sources []NodeID) map[NodeID]int {
	known := make([]NodeID, 0, len(sources))
	for _, s := range sources {
		if g.HasNode(s) {
			known = append(known, s)
		}
	}
	return g.bfs(known)
}

func (g *Graph) bfs(sources []NodeID) map[NodeID]int {
	distance := make(map[NodeID]int, len(g.order))
	queue := list.New()
	for _, s := range sources {
		if _, seen := distance[s]; seen {
			continue
		}
		distance[s] = 0
		queue.PushBack(s)
	}

	for queue.Len() > 0 {
		v, ok := queue.Remove(queue.Front()).(NodeID)
		if !ok {
			continue
		}
		for w := range g.adj[v] {
			if _, seen := distance[w]; !seen {
				distance[w] = distance[v] + 1
				queue.PushBack(w)
			}
		}
	}
	return distance
}

// IsConnected reports whether every node is reachable from the first node.
// The empty graph is not connected.
func (g *Graph) IsConnected() bool {
	if len(g.order) == 0 {
		return false
	}
	return len(g.bfs(g.order[:1])) == len(g.order)
}

// ConnectedComponents returns the components of the graph. Components are
// ordered by their first node and list nodes in insertion order.
func (g *Graph) ConnectedComponents() [][]NodeID {
	component := make(map[NodeID]int, len(g.order))
	components := make([][]NodeID, 0)

	for _, start := range g.order {
		if _, seen := component[start]; seen {
			continue
		}
		id := len(components)
		for v := range g.bfs([]NodeID{start}) {
			component[v] = id
		}
		components = append(components, nil)
	}

	for _, v := range g.order {
		id := component[v]
		components[id] = append(components[id], v)
	}
	return components
}
