package algorithms

import (
	"container/list"
	"fmt"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

// resolveGroup splits group members into those present in g (deduplicated,
// caller order) and those missing. A group with no present member fails
// with graph.ErrNodeNotFound.
func resolveGroup(g *graph.Graph, group Group, op string) (present, missing []graph.NodeID, err error) {
	seen := make(map[graph.NodeID]bool, len(group.Members))
	for _, m := range group.Members {
		if seen[m] {
			continue
		}
		seen[m] = true
		if g.HasNode(m) {
			present = append(present, m)
		} else {
			missing = append(missing, m)
		}
	}

	if len(present) == 0 {
		return nil, missing, graph.NewError(op).Entity("group").
			Context("group %q has no members in the graph", group.Name).
			Cause(graph.ErrNodeNotFound).Err()
	}
	return present, missing, nil
}

func memberSet(members []graph.NodeID) map[graph.NodeID]bool {
	set := make(map[graph.NodeID]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	return set
}

// GroupDegreeCentrality returns the fraction of non-group nodes that have at
// least one edge into the group.
func GroupDegreeCentrality(g *graph.Graph, group Group) (*GroupResult, error) {
	present, missing, err := resolveGroup(g, group, "group degree")
	if err != nil {
		return nil, err
	}
	inGroup := memberSet(present)

	outside, connected := 0, 0
	for _, v := range g.Nodes() {
		if inGroup[v] {
			continue
		}
		outside++

		neighbors, err := g.Neighbors(v)
		if err != nil {
			return nil, err
		}
		for _, w := range neighbors {
			if inGroup[w] {
				connected++
				break
			}
		}
	}

	value := 0.0
	if outside > 0 {
		value = float64(connected) / float64(outside)
	}

	return &GroupResult{Group: group.Name, Value: value, Members: present, Missing: missing}, nil
}

// GroupClosenessCentrality returns the number of non-group nodes divided by
// the sum of their hop distances to the nearest group member. How nodes that
// cannot reach the group are treated is decided by policy.
func GroupClosenessCentrality(g *graph.Graph, group Group, policy UnreachablePolicy) (*GroupResult, error) {
	present, missing, err := resolveGroup(g, group, "group closeness")
	if err != nil {
		return nil, err
	}
	inGroup := memberSet(present)
	distance := g.MultiSourceDistances(present)

	reached, unreachable, totalDistance := 0, 0, 0
	for _, v := range g.Nodes() {
		if inGroup[v] {
			continue
		}
		d, ok := distance[v]
		if !ok {
			unreachable++
			continue
		}
		reached++
		totalDistance += d
	}

	if unreachable > 0 && policy == UnreachableUndefined {
		return nil, fmt.Errorf("group closeness %q: %d nodes: %w", group.Name, unreachable, ErrUnreachableGroup)
	}

	value := 0.0
	if totalDistance > 0 {
		value = float64(reached) / float64(totalDistance)
	}

	return &GroupResult{
		Group:       group.Name,
		Value:       value,
		Members:     present,
		Missing:     missing,
		Unreachable: unreachable,
	}, nil
}

// GroupBetweennessCentrality returns the fraction of ordered source/target
// pairs whose canonical shortest path touches at least one group member.
// The canonical path is the one found by a breadth-first search that visits
// neighbours in node insertion order and keeps the first parent found.
// Endpoints count as being on the path.
func GroupBetweennessCentrality(g *graph.Graph, group Group) (*GroupResult, error) {
	present, missing, err := resolveGroup(g, group, "group betweenness")
	if err != nil {
		return nil, err
	}
	inGroup := memberSet(present)

	total, passing := 0, 0
	for _, source := range g.Nodes() {
		parent, err := shortestPathTree(g, source)
		if err != nil {
			return nil, err
		}

		for target := range parent {
			if target == source {
				continue
			}
			total++
			for v := target; ; v = parent[v] {
				if inGroup[v] {
					passing++
					break
				}
				if v == source {
					break
				}
			}
		}
	}

	value := 0.0
	if total > 0 {
		value = float64(passing) / float64(total)
	}

	return &GroupResult{Group: group.Name, Value: value, Members: present, Missing: missing}, nil
}

// shortestPathTree returns the BFS parent of every node reachable from
// source; source is its own parent.
func shortestPathTree(g *graph.Graph, source graph.NodeID) (map[graph.NodeID]graph.NodeID, error) {
	parent := map[graph.NodeID]graph.NodeID{source: source}

	queue := list.New()
	queue.PushBack(source)
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
			if _, seen := parent[w]; !seen {
				parent[w] = v
				queue.PushBack(w)
			}
		}
	}
	return parent, nil
}
