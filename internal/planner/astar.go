package planner

import (
	"container/heap"

	"github.com/acme-cleaning/robomapper/internal/gridmap"
)

// searchNode is one open-set entry. Duplicates for the same cell are allowed;
// stale ones are discarded when popped (lazy decrease-key).
type searchNode struct {
	f         int
	g         int
	cell      gridmap.Cell
	parent    gridmap.Cell
	hasParent bool
}

// openSet orders nodes by (f, g, cell, parent). Smaller g breaks f ties, the
// lexicographically smaller cell breaks g ties, and the parent breaks ties
// between duplicate entries for the same cell, which pins down exactly which
// of several equal-length paths gets returned.
type openSet []searchNode

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	a, b := o[i], o[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g < b.g
	}
	if a.cell.X != b.cell.X {
		return a.cell.X < b.cell.X
	}
	if a.cell.Y != b.cell.Y {
		return a.cell.Y < b.cell.Y
	}
	if a.hasParent != b.hasParent {
		return !a.hasParent
	}
	if a.parent.X != b.parent.X {
		return a.parent.X < b.parent.X
	}
	return a.parent.Y < b.parent.Y
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) { *o = append(*o, x.(searchNode)) }

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	node := old[n-1]
	*o = old[:n-1]
	return node
}

type closedEntry struct {
	g         int
	parent    gridmap.Cell
	hasParent bool
}

// AStar finds the shortest 4-connected path from start to goal, guided by the
// Manhattan heuristic (admissible and consistent for unit-cost cardinal
// moves, so the first time the goal is closed the path is optimal). Returns
// nil when no path exists; repeated calls with the same inputs return the
// identical cell sequence.
func AStar(g *gridmap.Grid, start, goal gridmap.Cell) []gridmap.Cell {
	open := &openSet{{
		f:    manhattan(start, goal),
		g:    0,
		cell: start,
	}}
	heap.Init(open)

	closed := make(map[gridmap.Cell]closedEntry)

	for open.Len() > 0 {
		node := heap.Pop(open).(searchNode)

		// Stale duplicate: this cell was already closed at least as cheaply.
		if prev, done := closed[node.cell]; done && node.g >= prev.g {
			continue
		}
		closed[node.cell] = closedEntry{g: node.g, parent: node.parent, hasParent: node.hasParent}

		if node.cell == goal {
			return reconstruct(closed, goal)
		}

		for _, name := range directionOrder {
			d := directionDeltas[name]
			next := gridmap.Cell{X: node.cell.X + d.X, Y: node.cell.Y + d.Y}
			if !g.IsWalkable(next.X, next.Y) {
				continue
			}
			nextG := node.g + 1
			heap.Push(open, searchNode{
				f:         nextG + manhattan(next, goal),
				g:         nextG,
				cell:      next,
				parent:    node.cell,
				hasParent: true,
			})
		}
	}

	return nil
}

// reconstruct walks the parent links from goal back to start and reverses.
func reconstruct(closed map[gridmap.Cell]closedEntry, goal gridmap.Cell) []gridmap.Cell {
	var path []gridmap.Cell
	cur, ok := goal, true
	for ok {
		path = append(path, cur)
		entry := closed[cur]
		cur, ok = entry.parent, entry.hasParent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
