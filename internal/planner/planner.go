// Package planner holds the search subsystem: reachability flood fill,
// deterministic A* shortest paths, run-length action encoding and the greedy
// coverage planner. All functions treat the grid as read-only and return
// "not found" as values rather than errors.
package planner

import (
	"strings"

	"github.com/acme-cleaning/robomapper/internal/gridmap"
)

// Cardinal direction names as they appear on the wire.
const (
	North = "north"
	South = "south"
	East  = "east"
	West  = "west"
)

// directionOrder fixes the neighbor expansion order. Search results are part
// of the API contract, so this order must never change.
var directionOrder = [4]string{North, South, East, West}

var directionDeltas = map[string]gridmap.Cell{
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
}

// Action is a run of identical unit moves: walk Steps tiles toward Direction.
type Action struct {
	Direction string `json:"direction"`
	Steps     int    `json:"steps"`
}

// Delta resolves a direction name (case-insensitive) to its unit displacement.
func Delta(direction string) (gridmap.Cell, bool) {
	d, ok := directionDeltas[strings.ToLower(direction)]
	return d, ok
}

func manhattan(a, b gridmap.Cell) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// ReachableSet flood-fills from start over 4-connected walkable cells and
// returns every cell it can reach, start included. A start that is out of
// bounds or an obstacle yields an empty set.
func ReachableSet(g *gridmap.Grid, start gridmap.Cell) map[gridmap.Cell]struct{} {
	reach := make(map[gridmap.Cell]struct{})
	if !g.IsWalkable(start.X, start.Y) {
		return reach
	}

	reach[start] = struct{}{}
	queue := []gridmap.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, name := range directionOrder {
			d := directionDeltas[name]
			next := gridmap.Cell{X: cur.X + d.X, Y: cur.Y + d.Y}
			if _, seen := reach[next]; seen {
				continue
			}
			if !g.IsWalkable(next.X, next.Y) {
				continue
			}
			reach[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return reach
}

// stepDirection classifies the displacement between two consecutive path
// cells. Anything other than a unit cardinal move returns "", which our own
// planners never produce.
func stepDirection(a, b gridmap.Cell) string {
	d := gridmap.Cell{X: b.X - a.X, Y: b.Y - a.Y}
	for name, delta := range directionDeltas {
		if d == delta {
			return name
		}
	}
	return ""
}

// PathToActions run-length-encodes a cell path into directional actions.
// Empty and single-cell paths encode to no actions.
func PathToActions(path []gridmap.Cell) []Action {
	if len(path) < 2 {
		return []Action{}
	}

	actions := []Action{}
	current := stepDirection(path[0], path[1])
	count := 1
	for i := 1; i < len(path)-1; i++ {
		dir := stepDirection(path[i], path[i+1])
		if dir == current {
			count++
			continue
		}
		actions = append(actions, Action{Direction: current, Steps: count})
		current, count = dir, 1
	}
	return append(actions, Action{Direction: current, Steps: count})
}
