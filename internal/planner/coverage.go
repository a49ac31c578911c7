package planner

import "github.com/acme-cleaning/robomapper/internal/gridmap"

// PlanCoverage builds a plan that visits every cell reachable from start,
// skipping any precleaned cells. It repeatedly picks the nearest remaining
// target by Manhattan distance (ties broken by smaller y, then smaller x) and
// routes to it with AStar. Targets that turn out to be unroutable are marked
// visited and dropped, so the loop always terminates after at most one
// iteration per target.
//
// Returns the full cell trajectory (starting at start) and its action
// encoding. Both are empty when start is blocked or off the grid.
func PlanCoverage(g *gridmap.Grid, start gridmap.Cell, precleaned map[gridmap.Cell]struct{}) ([]gridmap.Cell, []Action) {
	reach := ReachableSet(g, start)
	if len(reach) == 0 {
		return []gridmap.Cell{}, []Action{}
	}

	targets := make(map[gridmap.Cell]struct{}, len(reach))
	for c := range reach {
		if _, skip := precleaned[c]; !skip {
			targets[c] = struct{}{}
		}
	}

	pathCells := []gridmap.Cell{start}
	current := start
	visited := make(map[gridmap.Cell]struct{})

	for len(visited) < len(targets) {
		if _, isTarget := targets[current]; isTarget {
			if _, done := visited[current]; !done {
				visited[current] = struct{}{}
				continue
			}
		}

		chosen, ok := nearestTarget(current, targets, visited)
		if !ok {
			break
		}

		path := AStar(g, current, chosen)
		if path == nil {
			// Unroutable pocket (inconsistent obstacle data); exclude the
			// target permanently instead of looping on it.
			visited[chosen] = struct{}{}
			continue
		}

		pathCells = append(pathCells, path[1:]...)
		current = chosen
	}

	return pathCells, PathToActions(pathCells)
}

// nearestTarget returns the unvisited target minimizing
// (manhattan distance, y, x). The tuple is a total order over cells, so the
// winner does not depend on map iteration order.
func nearestTarget(from gridmap.Cell, targets, visited map[gridmap.Cell]struct{}) (gridmap.Cell, bool) {
	var best gridmap.Cell
	bestDist := -1
	for c := range targets {
		if _, done := visited[c]; done {
			continue
		}
		d := manhattan(from, c)
		if bestDist < 0 || d < bestDist ||
			(d == bestDist && (c.Y < best.Y || (c.Y == best.Y && c.X < best.X))) {
			best, bestDist = c, d
		}
	}
	return best, bestDist >= 0
}
