package gridmap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseText builds a Grid from a plain-text map. Each non-blank line is one
// row; 'x' (any case) marks an obstacle and every other rune is walkable.
// Rows must all be the same width.
func ParseText(textMap string) (*Grid, error) {
	// Lines become rune slices so multibyte runes count as one column.
	var lines [][]rune
	for _, line := range strings.Split(textMap, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, []rune(line))
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("text map is empty")
	}

	rows := len(lines)
	columns := len(lines[0])

	var obstacles []Cell
	for y, line := range lines {
		if len(line) != columns {
			return nil, fmt.Errorf("inconsistent row lengths: row %d has %d columns, want %d", y, len(line), columns)
		}
		for x, r := range line {
			if r == 'x' || r == 'X' {
				obstacles = append(obstacles, Cell{x, y})
			}
		}
	}

	return New(rows, columns, obstacles), nil
}

type jsonTile struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Walkable bool `json:"walkable"`
}

type jsonMap struct {
	Rows    *int       `json:"rows"`
	Columns *int       `json:"columns"`
	Cols    *int       `json:"cols"`
	Tiles   []jsonTile `json:"tiles"`
}

// ParseJSON builds a Grid from a structured map document:
//
//	{"rows": 3, "columns": 3, "tiles": [{"x":0,"y":0,"walkable":true}, ...]}
//
// "cols" is accepted as an alias for "columns". Tiles not marked walkable are
// obstacles; a tile that omits the walkable field counts as an obstacle.
func ParseJSON(data []byte) (*Grid, error) {
	var doc jsonMap
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid map JSON: %w", err)
	}

	columns := doc.Columns
	if columns == nil {
		columns = doc.Cols
	}
	if doc.Rows == nil || columns == nil || doc.Tiles == nil {
		return nil, fmt.Errorf("map JSON missing required keys 'rows', 'columns' or 'tiles'")
	}

	var obstacles []Cell
	for _, tile := range doc.Tiles {
		if !tile.Walkable {
			obstacles = append(obstacles, Cell{tile.X, tile.Y})
		}
	}

	return New(*doc.Rows, *columns, obstacles), nil
}
