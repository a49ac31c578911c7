// Package robot executes directional action lists against a grid, tracking
// which tiles were cleaned along the way.
package robot

import (
	"github.com/acme-cleaning/robomapper/internal/gridmap"
	"github.com/acme-cleaning/robomapper/internal/planner"
)

// Policy selects how the robot treats tiles it stands on.
type Policy int

const (
	// AlwaysClean cleans every tile the robot visits (base model).
	AlwaysClean Policy = iota
	// SkipIfClean leaves tiles that are already clean untouched (premium
	// model with dirt sensors).
	SkipIfClean
)

// Terminal statuses reported by Execute.
const (
	StatusCompleted = "completed"
	StatusError     = "error"
)

// Executor walks a grid step by step and records the tiles it cleans. The
// session trace persists across Execute calls until Reset; the grid's clean
// state is owned by the grid itself and is never reset here.
type Executor struct {
	grid   *gridmap.Grid
	policy Policy

	trace   []gridmap.Cell
	inTrace map[gridmap.Cell]struct{}
}

// New returns an Executor for the given grid and cleaning policy.
func New(g *gridmap.Grid, p Policy) *Executor {
	return &Executor{
		grid:    g,
		policy:  p,
		trace:   []gridmap.Cell{},
		inTrace: make(map[gridmap.Cell]struct{}),
	}
}

// Reset clears the session trace. Grid state is untouched.
func (e *Executor) Reset() {
	e.trace = []gridmap.Cell{}
	e.inTrace = make(map[gridmap.Cell]struct{})
}

// Trace returns the tiles cleaned so far, in cleaning order, deduplicated.
func (e *Executor) Trace() []gridmap.Cell {
	return e.trace
}

// clean applies the cleaning policy to the robot's current tile.
func (e *Executor) clean(c gridmap.Cell) {
	if e.policy == SkipIfClean && e.grid.IsClean(c.X, c.Y) {
		return
	}
	if _, seen := e.inTrace[c]; !seen {
		e.trace = append(e.trace, c)
		e.inTrace[c] = struct{}{}
	}
	e.grid.MarkClean(c.X, c.Y)
}

// Execute runs the action list from start, cleaning per policy as it moves.
// Direction names are matched case-insensitively. The first unknown direction
// or non-walkable step aborts the run with StatusError; nothing after the
// failure executes. The returned trace is the full accumulated session trace,
// including tiles from earlier unreset calls.
func (e *Executor) Execute(start gridmap.Cell, actions []planner.Action) ([]gridmap.Cell, string) {
	pos := start
	e.clean(pos)

	for _, action := range actions {
		delta, ok := planner.Delta(action.Direction)
		if !ok {
			return e.trace, StatusError
		}
		for i := 0; i < action.Steps; i++ {
			next := gridmap.Cell{X: pos.X + delta.X, Y: pos.Y + delta.Y}
			if !e.grid.IsWalkable(next.X, next.Y) {
				return e.trace, StatusError
			}
			pos = next
			e.clean(pos)
		}
	}

	return e.trace, StatusCompleted
}
