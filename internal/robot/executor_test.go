package robot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme-cleaning/robomapper/internal/gridmap"
	"github.com/acme-cleaning/robomapper/internal/planner"
)

func TestExecuteBaseSweep(t *testing.T) {
	g := gridmap.New(3, 3, nil)
	e := New(g, AlwaysClean)

	trace, status := e.Execute(gridmap.Cell{X: 0, Y: 0}, []planner.Action{
		{Direction: "east", Steps: 2},
		{Direction: "south", Steps: 2},
	})

	assert.Equal(t, StatusCompleted, status)
	require.Len(t, trace, 5)
	assert.Equal(t, gridmap.Cell{X: 0, Y: 0}, trace[0])
	assert.Equal(t, gridmap.Cell{X: 2, Y: 2}, trace[len(trace)-1])
	for _, c := range trace {
		assert.True(t, g.IsClean(c.X, c.Y), "tile %v should be marked clean on the grid", c)
	}
}

func TestExecuteInvalidDirection(t *testing.T) {
	g := gridmap.New(3, 3, nil)
	e := New(g, AlwaysClean)

	trace, status := e.Execute(gridmap.Cell{X: 0, Y: 0}, []planner.Action{
		{Direction: "north-east", Steps: 1},
		{Direction: "east", Steps: 1}, // never reached
	})

	assert.Equal(t, StatusError, status)
	assert.Equal(t, []gridmap.Cell{{X: 0, Y: 0}}, trace, "only the start tile is cleaned")
}

func TestExecuteCollisionStopsEverything(t *testing.T) {
	g := gridmap.New(3, 3, []gridmap.Cell{{X: 2, Y: 0}})
	e := New(g, AlwaysClean)

	trace, status := e.Execute(gridmap.Cell{X: 0, Y: 0}, []planner.Action{
		{Direction: "east", Steps: 2},  // second step hits the obstacle
		{Direction: "south", Steps: 2}, // discarded
	})

	assert.Equal(t, StatusError, status)
	assert.Equal(t, []gridmap.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}, trace)
	assert.False(t, g.IsClean(2, 0))
}

func TestExecuteWallCollision(t *testing.T) {
	g := gridmap.New(2, 2, nil)
	e := New(g, AlwaysClean)

	_, status := e.Execute(gridmap.Cell{X: 0, Y: 0}, []planner.Action{
		{Direction: "north", Steps: 1},
	})
	assert.Equal(t, StatusError, status, "stepping off the grid is a collision")
}

func TestExecuteCaseInsensitiveDirections(t *testing.T) {
	g := gridmap.New(3, 3, nil)
	e := New(g, AlwaysClean)

	_, status := e.Execute(gridmap.Cell{X: 0, Y: 0}, []planner.Action{
		{Direction: "EAST", Steps: 1},
		{Direction: "South", Steps: 1},
		{Direction: "wEsT", Steps: 1},
	})
	assert.Equal(t, StatusCompleted, status)
}

func TestExecuteZeroSteps(t *testing.T) {
	g := gridmap.New(3, 3, nil)
	e := New(g, AlwaysClean)

	trace, status := e.Execute(gridmap.Cell{X: 1, Y: 1}, []planner.Action{
		{Direction: "north", Steps: 0},
	})
	assert.Equal(t, StatusCompleted, status)
	assert.Equal(t, []gridmap.Cell{{X: 1, Y: 1}}, trace)
}

func TestPremiumSkipsCleanTiles(t *testing.T) {
	g := gridmap.New(3, 3, nil)
	actions := []planner.Action{
		{Direction: "east", Steps: 2},
		{Direction: "south", Steps: 2},
	}

	// First pass cleans the route.
	first := New(g, SkipIfClean)
	trace, status := first.Execute(gridmap.Cell{X: 0, Y: 0}, actions)
	assert.Equal(t, StatusCompleted, status)
	assert.Len(t, trace, 5)

	// A fresh premium robot re-running the same route finds nothing to do.
	second := New(g, SkipIfClean)
	trace, status = second.Execute(gridmap.Cell{X: 0, Y: 0}, actions)
	assert.Equal(t, StatusCompleted, status)
	assert.Empty(t, trace, "all tiles already clean")
}

func TestBaseRecleansTiles(t *testing.T) {
	g := gridmap.New(3, 3, nil)
	actions := []planner.Action{{Direction: "east", Steps: 2}}

	first := New(g, AlwaysClean)
	first.Execute(gridmap.Cell{X: 0, Y: 0}, actions)

	second := New(g, AlwaysClean)
	trace, status := second.Execute(gridmap.Cell{X: 0, Y: 0}, actions)
	assert.Equal(t, StatusCompleted, status)
	assert.Len(t, trace, 3, "base model recleans regardless of grid state")
}

func TestTracePersistsAcrossCallsUntilReset(t *testing.T) {
	g := gridmap.New(3, 3, nil)
	e := New(g, AlwaysClean)

	e.Execute(gridmap.Cell{X: 0, Y: 0}, []planner.Action{{Direction: "east", Steps: 1}})
	trace, _ := e.Execute(gridmap.Cell{X: 0, Y: 2}, []planner.Action{{Direction: "east", Steps: 1}})
	assert.Len(t, trace, 4, "trace accumulates across execute calls")

	e.Reset()
	assert.Empty(t, e.Trace())
	trace, _ = e.Execute(gridmap.Cell{X: 2, Y: 2}, nil)
	assert.Equal(t, []gridmap.Cell{{X: 2, Y: 2}}, trace)
}

func TestTraceDeduplicates(t *testing.T) {
	g := gridmap.New(3, 3, nil)
	e := New(g, AlwaysClean)

	// East then back west over the same tiles.
	trace, status := e.Execute(gridmap.Cell{X: 0, Y: 0}, []planner.Action{
		{Direction: "east", Steps: 2},
		{Direction: "west", Steps: 2},
	})
	assert.Equal(t, StatusCompleted, status)
	assert.Equal(t, []gridmap.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, trace)
}
