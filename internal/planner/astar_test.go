package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/acme-cleaning/robomapper/internal/gridmap"
)

func TestAStarOpenGrid(t *testing.T) {
	g := gridmap.New(3, 3, nil)

	got := AStar(g, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 2, Y: 2})

	// Five cells and this exact route: the (f, g, cell, parent) ordering
	// prefers the lexicographically smaller frontier cell on ties, which
	// walks south along x=0 before turning east.
	want := []gridmap.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestAStarDetourAroundWall(t *testing.T) {
	// x=1 column blocked at y=0 and y=1 forces the southern detour.
	g := gridmap.New(3, 3, []gridmap.Cell{{X: 1, Y: 0}, {X: 1, Y: 1}})

	got := AStar(g, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 2, Y: 0})

	want := []gridmap.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestAStarParentTieBreak(t *testing.T) {
	// (1,3) enters the open set twice with equal f=6 and g=3, once via
	// parent (0,3) and once via parent (1,4). Only the parent comparison
	// orders those duplicates, and it decides whether the route turns east
	// at y=3 or already at y=4.
	g := gridmap.New(6, 3, []gridmap.Cell{{X: 0, Y: 2}, {X: 2, Y: 4}})

	got := AStar(g, gridmap.Cell{X: 0, Y: 5}, gridmap.Cell{X: 2, Y: 1})

	want := []gridmap.Cell{{X: 0, Y: 5}, {X: 0, Y: 4}, {X: 0, Y: 3}, {X: 1, Y: 3}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestAStarDeterministic(t *testing.T) {
	g := gridmap.New(8, 8, []gridmap.Cell{{X: 3, Y: 3}, {X: 3, Y: 4}, {X: 4, Y: 3}, {X: 2, Y: 5}, {X: 5, Y: 2}})
	start, goal := gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 7, Y: 7}

	first := AStar(g, start, goal)
	if first == nil {
		t.Fatal("expected a path")
	}
	for i := 0; i < 20; i++ {
		if diff := cmp.Diff(first, AStar(g, start, goal)); diff != "" {
			t.Fatalf("run %d differs from first run (-first +got):\n%s", i, diff)
		}
	}
}

func TestAStarNoPath(t *testing.T) {
	// Vertical wall splits the grid into two components.
	g := gridmap.New(3, 3, []gridmap.Cell{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}})

	if path := AStar(g, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 2, Y: 0}); path != nil {
		t.Errorf("expected nil path across the wall, got %v", path)
	}
}

func TestAStarTrivial(t *testing.T) {
	g := gridmap.New(3, 3, nil)
	path := AStar(g, gridmap.Cell{X: 1, Y: 1}, gridmap.Cell{X: 1, Y: 1})
	if len(path) != 1 || path[0] != (gridmap.Cell{X: 1, Y: 1}) {
		t.Errorf("start==goal should yield the single-cell path, got %v", path)
	}
}

func TestAStarOptimalLength(t *testing.T) {
	tests := []struct {
		name      string
		obstacles []gridmap.Cell
		start     gridmap.Cell
		goal      gridmap.Cell
		wantEdges int
	}{
		{"no obstacles equals manhattan", nil, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 4, Y: 3}, 7},
		{"single block forces two extra edges", []gridmap.Cell{{X: 2, Y: 0}}, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 4, Y: 0}, 6},
		{"wall detour", []gridmap.Cell{{X: 1, Y: 0}, {X: 1, Y: 1}}, gridmap.Cell{X: 0, Y: 0}, gridmap.Cell{X: 2, Y: 0}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := gridmap.New(5, 5, tt.obstacles)
			path := AStar(g, tt.start, tt.goal)
			if path == nil {
				t.Fatal("expected a path")
			}
			if got := len(path) - 1; got != tt.wantEdges {
				t.Errorf("path has %d edges, want %d", got, tt.wantEdges)
			}
		})
	}
}
