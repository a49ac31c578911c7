package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Tile states plotted on the heatmap.
const (
	tileDirty    = 0
	tileClean    = 1
	tileObstacle = 2
)

// handleHeatmap renders an HTML heatmap of the current grid: obstacles,
// cleaned tiles and still-dirty floor. Debugging aid for inspecting a session
// without a client UI.
func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.mu.Lock()
	grid := s.grid
	if grid == nil {
		s.mu.Unlock()
		s.writeJSONError(w, http.StatusNotFound, "No environment map has been set yet.")
		return
	}

	xLabels := make([]string, grid.Columns)
	for x := range xLabels {
		xLabels[x] = strconv.Itoa(x)
	}
	yLabels := make([]string, grid.Rows)
	data := make([]opts.HeatMapData, 0, grid.Rows*grid.Columns)
	cleanCount := 0
	for y := 0; y < grid.Rows; y++ {
		// Plot row 0 at the top, matching text-map orientation.
		plotY := grid.Rows - 1 - y
		yLabels[plotY] = strconv.Itoa(y)
		for x := 0; x < grid.Columns; x++ {
			state := tileDirty
			switch {
			case !grid.IsWalkable(x, y):
				state = tileObstacle
			case grid.IsClean(x, y):
				state = tileClean
				cleanCount++
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{x, plotY, state}})
		}
	}
	rows, columns := grid.Rows, grid.Columns
	s.mu.Unlock()

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "RoboMapper Grid", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Environment grid",
			Subtitle: fmt.Sprintf("%dx%d, %d tiles cleaned", rows, columns, cleanCount),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xLabels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(false),
			Min:        tileDirty,
			Max:        tileObstacle,
			InRange:    &opts.VisualMapInRange{Color: []string{"#d9c8a9", "#35b779", "#26282a"}},
		}),
	)
	hm.AddSeries("tiles", data)

	var buf bytes.Buffer
	if err := hm.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
