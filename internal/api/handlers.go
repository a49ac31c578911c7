package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/acme-cleaning/robomapper/internal/db"
	"github.com/acme-cleaning/robomapper/internal/gridmap"
	"github.com/acme-cleaning/robomapper/internal/planner"
	"github.com/acme-cleaning/robomapper/internal/robot"
)

// maxMapUploadBytes bounds map uploads; grids big enough to hit this would
// make the planners unusable anyway.
const maxMapUploadBytes = 8 << 20

type cleanRequest struct {
	StartPosition gridmap.Cell     `json:"start_position"`
	Actions       []planner.Action `json:"actions"`
	Model         string           `json:"model"`
}

type cleanResponse struct {
	CleanedTiles []gridmap.Cell `json:"cleaned_tiles"`
	FinalState   string         `json:"final_state"`
}

type planRequest struct {
	StartPosition gridmap.Cell `json:"start_position"`
	Goal          gridmap.Cell `json:"goal"`
}

type coverageRequest struct {
	StartPosition gridmap.Cell   `json:"start_position"`
	Precleaned    []gridmap.Cell `json:"precleaned"`
}

type planResponse struct {
	Path    []gridmap.Cell   `json:"path"`
	Actions []planner.Action `json:"actions"`
}

// readMapUpload extracts the raw map bytes from either a multipart form
// (field "file") or the request body, and reports whether they should be
// parsed as JSON.
func readMapUpload(r *http.Request) ([]byte, bool, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, false, fmt.Errorf("missing 'file' form field: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxMapUploadBytes))
		if err != nil {
			return nil, false, fmt.Errorf("failed to read upload: %w", err)
		}
		isJSON := strings.HasSuffix(strings.ToLower(header.Filename), ".json") ||
			strings.HasPrefix(header.Header.Get("Content-Type"), "application/json")
		return data, isJSON, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxMapUploadBytes))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read body: %w", err)
	}
	return data, strings.HasPrefix(contentType, "application/json"), nil
}

// handleSetMap parses an uploaded map (text or JSON) and makes it the current
// environment. Any previously cleaned tiles are gone with the old grid.
func (s *Server) handleSetMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	data, isJSON, err := readMapUpload(r)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(data) == 0 {
		s.writeJSONError(w, http.StatusBadRequest, "The uploaded map is empty")
		return
	}

	var grid *gridmap.Grid
	if isJSON {
		grid, err = gridmap.ParseJSON(data)
	} else {
		grid, err = gridmap.ParseText(string(data))
	}
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Error parsing map: %v", err))
		return
	}

	s.SetGrid(grid)
	s.writeJSON(w, map[string]string{
		"message": fmt.Sprintf("Map of shape %dx%d has been set successfully.", grid.Rows, grid.Columns),
	})
}

// handleClean runs a cleaning session and records it in the history database.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req cleanRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	model := strings.ToLower(req.Model)
	if model == "" {
		model = "base"
	}
	var policy robot.Policy
	switch model {
	case "base":
		policy = robot.AlwaysClean
	case "premium":
		policy = robot.SkipIfClean
	default:
		s.writeJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("Robot model %q is not recognized. Supported models are 'base' and 'premium'.", model))
		return
	}

	s.mu.Lock()
	grid := s.grid
	if grid == nil {
		s.mu.Unlock()
		s.writeJSONError(w, http.StatusBadRequest,
			"No environment map has been set yet. Upload a map via /api/map first.")
		return
	}
	if !grid.IsWalkable(req.StartPosition.X, req.StartPosition.Y) {
		s.mu.Unlock()
		s.writeJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("Start position %d,%d is not walkable.", req.StartPosition.X, req.StartPosition.Y))
		return
	}

	startTime := time.Now().UTC()
	bot := robot.New(grid, policy)
	cleaned, finalState := bot.Execute(req.StartPosition, req.Actions)
	duration := time.Since(startTime).Seconds()
	s.mu.Unlock()

	session := &db.Session{
		StartTime:       startTime,
		Model:           model,
		FinalState:      finalState,
		ActionCount:     len(req.Actions),
		CleanedTiles:    len(cleaned),
		DurationSeconds: duration,
	}
	if err := s.db.RecordSession(session); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "Failed to record cleaning session.")
		return
	}

	s.writeJSON(w, cleanResponse{CleanedTiles: cleaned, FinalState: finalState})
}

// handlePlan returns the deterministic shortest path between two walkable
// cells, or 422 when the goal is unreachable.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid == nil {
		s.writeJSONError(w, http.StatusBadRequest,
			"No environment map has been set yet. Upload a map via /api/map first.")
		return
	}
	if !s.grid.IsWalkable(req.StartPosition.X, req.StartPosition.Y) ||
		!s.grid.IsWalkable(req.Goal.X, req.Goal.Y) {
		s.writeJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("Start position %d,%d or goal position %d,%d is not walkable.",
				req.StartPosition.X, req.StartPosition.Y, req.Goal.X, req.Goal.Y))
		return
	}

	path := planner.AStar(s.grid, req.StartPosition, req.Goal)
	if path == nil {
		s.writeJSONError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("No path could be found from %d,%d to %d,%d.",
				req.StartPosition.X, req.StartPosition.Y, req.Goal.X, req.Goal.Y))
		return
	}

	s.writeJSON(w, planResponse{Path: path, Actions: planner.PathToActions(path)})
}

// handlePlanCoverage returns a greedy full-coverage plan from a start cell.
func (s *Server) handlePlanCoverage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req coverageRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid == nil {
		s.writeJSONError(w, http.StatusBadRequest,
			"No environment map has been set yet. Upload a map via /api/map first.")
		return
	}
	if !s.grid.IsWalkable(req.StartPosition.X, req.StartPosition.Y) {
		s.writeJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("Start position %d,%d is not walkable.", req.StartPosition.X, req.StartPosition.Y))
		return
	}

	// Drop precleaned entries that aren't real floor tiles.
	precleaned := make(map[gridmap.Cell]struct{}, len(req.Precleaned))
	for _, c := range req.Precleaned {
		if s.grid.IsWalkable(c.X, c.Y) {
			precleaned[c] = struct{}{}
		}
	}

	cells, actions := planner.PlanCoverage(s.grid, req.StartPosition, precleaned)
	s.writeJSON(w, planResponse{Path: cells, Actions: actions})
}

// handleHistory dumps the full session history as CSV.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	if err := s.db.WriteHistoryCSV(w); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to export history: %v", err))
	}
}

// handleHistoryStats returns summary statistics over all recorded sessions.
func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := s.db.SessionStats()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to compute stats: %v", err))
		return
	}
	s.writeJSON(w, stats)
}
