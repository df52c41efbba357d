package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/graph/graphtest"
)

func TestGroupDegreeCentrality(t *testing.T) {
	g := graphtest.Star(5)

	tests := []struct {
		name  string
		group Group
		want  float64
	}{
		{"hub reaches every leaf", Group{Name: "hub", Members: []graph.NodeID{"X"}}, 1.0},
		{"leaf reaches only hub", Group{Name: "leaf", Members: []graph.NodeID{"L1"}}, 0.2},
		{"everyone", Group{Name: "all", Members: g.Nodes()}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GroupDegreeCentrality(g, tt.group)
			if err != nil {
				t.Fatalf("GroupDegreeCentrality failed: %v", err)
			}
			if math.Abs(result.Value-tt.want) > epsilon {
				t.Errorf("Value = %f, want %f", result.Value, tt.want)
			}
		})
	}
}

func TestGroupCentrality_MissingMembers(t *testing.T) {
	g := graphtest.Star(3)

	result, err := GroupDegreeCentrality(g, Group{Name: "mixed", Members: []graph.NodeID{"X", "ghost", "X"}})
	if err != nil {
		t.Fatalf("GroupDegreeCentrality failed: %v", err)
	}
	if len(result.Members) != 1 || result.Members[0] != "X" {
		t.Errorf("Members = %v, want [X]", result.Members)
	}
	if len(result.Missing) != 1 || result.Missing[0] != "ghost" {
		t.Errorf("Missing = %v, want [ghost]", result.Missing)
	}

	empty := Group{Name: "ghosts", Members: []graph.NodeID{"ghost"}}
	if _, err := GroupDegreeCentrality(g, empty); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
	if _, err := GroupClosenessCentrality(g, empty, UnreachableExclude); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
	if _, err := GroupBetweennessCentrality(g, empty); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Errorf("Expected ErrNodeNotFound, got %v", err)
	}
}

func TestGroupClosenessCentrality_Path(t *testing.T) {
	g := graphtest.Path("A", "B", "C", "D")

	result, err := GroupClosenessCentrality(g, Group{Name: "end", Members: []graph.NodeID{"A"}}, UnreachableExclude)
	if err != nil {
		t.Fatalf("GroupClosenessCentrality failed: %v", err)
	}
	// Distances 1, 2, 3 for three outsiders
	if math.Abs(result.Value-0.5) > epsilon {
		t.Errorf("Value = %f, want 0.5", result.Value)
	}

	both, err := GroupClosenessCentrality(g, Group{Name: "ends", Members: []graph.NodeID{"A", "D"}}, UnreachableExclude)
	if err != nil {
		t.Fatalf("GroupClosenessCentrality failed: %v", err)
	}
	if math.Abs(both.Value-1.0) > epsilon {
		t.Errorf("Value = %f, want 1.0", both.Value)
	}
}

func TestGroupClosenessCentrality_Unreachable(t *testing.T) {
	g := graphtest.TwoComponents()
	group := Group{Name: "A", Members: []graph.NodeID{"A"}}

	result, err := GroupClosenessCentrality(g, group, UnreachableExclude)
	if err != nil {
		t.Fatalf("GroupClosenessCentrality failed: %v", err)
	}
	if result.Unreachable != 2 {
		t.Errorf("Unreachable = %d, want 2", result.Unreachable)
	}
	if math.Abs(result.Value-1.0) > epsilon {
		t.Errorf("Value = %f, want 1.0", result.Value)
	}

	_, err = GroupClosenessCentrality(g, group, UnreachableUndefined)
	if !errors.Is(err, ErrUnreachableGroup) {
		t.Errorf("Expected ErrUnreachableGroup, got %v", err)
	}
}

func TestGroupBetweennessCentrality(t *testing.T) {
	g := graphtest.Path("A", "B", "C")

	tests := []struct {
		name    string
		members []graph.NodeID
		want    float64
	}{
		{"middle covers every pair", []graph.NodeID{"B"}, 1.0},
		{"end covers its own pairs", []graph.NodeID{"A"}, 4.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GroupBetweennessCentrality(g, Group{Name: tt.name, Members: tt.members})
			if err != nil {
				t.Fatalf("GroupBetweennessCentrality failed: %v", err)
			}
			if math.Abs(result.Value-tt.want) > epsilon {
				t.Errorf("Value = %f, want %f", result.Value, tt.want)
			}
		})
	}
}

func TestGroupBetweennessCentrality_Disconnected(t *testing.T) {
	// Only reachable pairs count: 6 in the triangle and 2 in D-E
	result, err := GroupBetweennessCentrality(graphtest.TwoComponents(), Group{Name: "D", Members: []graph.NodeID{"D"}})
	if err != nil {
		t.Fatalf("GroupBetweennessCentrality failed: %v", err)
	}
	if math.Abs(result.Value-2.0/8.0) > epsilon {
		t.Errorf("Value = %f, want 0.25", result.Value)
	}
}

func TestParseUnreachablePolicy(t *testing.T) {
	tests := []struct {
		input string
		want  UnreachablePolicy
		ok    bool
	}{
		{"", UnreachableExclude, true},
		{"exclude", UnreachableExclude, true},
		{"undefined", UnreachableUndefined, true},
		{"error", UnreachableUndefined, true},
		{"zero", UnreachableExclude, false},
	}

	for _, tt := range tests {
		got, ok := ParseUnreachablePolicy(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseUnreachablePolicy(%q) = %v, %v", tt.input, got, ok)
		}
	}
}
