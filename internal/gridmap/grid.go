// Package gridmap models the tile grid a cleaning robot operates on:
// rectangular bounds, a fixed obstacle set and a growing clean-tile set.
package gridmap

// Cell is a single tile coordinate. X is the column index, Y the row index.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is one environment session: immutable dimensions and obstacles plus
// the set of tiles cleaned so far. The clean set only grows; it is reset by
// replacing the Grid, never in place.
//
// A Grid is not safe for concurrent use. Callers that share one across
// goroutines must serialize access themselves.
type Grid struct {
	Rows    int
	Columns int

	obstacles map[Cell]struct{}
	clean     map[Cell]struct{}
}

// New builds a Grid from explicit dimensions and an obstacle list. Obstacles
// outside the bounds are kept; they are unreachable anyway and IsWalkable
// rejects out-of-bounds cells first.
func New(rows, columns int, obstacles []Cell) *Grid {
	g := &Grid{
		Rows:      rows,
		Columns:   columns,
		obstacles: make(map[Cell]struct{}, len(obstacles)),
		clean:     make(map[Cell]struct{}),
	}
	for _, c := range obstacles {
		g.obstacles[c] = struct{}{}
	}
	return g
}

// IsWalkable reports whether (x, y) is inside the grid and not an obstacle.
func (g *Grid) IsWalkable(x, y int) bool {
	if x < 0 || x >= g.Columns || y < 0 || y >= g.Rows {
		return false
	}
	_, blocked := g.obstacles[Cell{x, y}]
	return !blocked
}

// IsObstacle reports whether (x, y) is listed as an obstacle, ignoring bounds.
func (g *Grid) IsObstacle(x, y int) bool {
	_, blocked := g.obstacles[Cell{x, y}]
	return blocked
}

// IsClean reports whether (x, y) has been cleaned. Non-walkable cells are
// never marked, so this is always false for them.
func (g *Grid) IsClean(x, y int) bool {
	_, ok := g.clean[Cell{x, y}]
	return ok
}

// MarkClean records (x, y) as cleaned. Calls on non-walkable cells are
// silently ignored, so the clean set stays a subset of the walkable cells.
func (g *Grid) MarkClean(x, y int) {
	if !g.IsWalkable(x, y) {
		return
	}
	g.clean[Cell{x, y}] = struct{}{}
}

// CleanCount returns the number of distinct cleaned tiles.
func (g *Grid) CleanCount() int {
	return len(g.clean)
}
