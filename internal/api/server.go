// Package api exposes the robot simulator over HTTP: map uploads, cleaning
// runs, path and coverage planning, and session history exports.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/acme-cleaning/robomapper/internal/db"
	"github.com/acme-cleaning/robomapper/internal/gridmap"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Server holds the current environment map and the session database. The
// grid and everything that mutates it is guarded by mu: the core defines no
// locking of its own, so the host serializes all access to one Grid here.
type Server struct {
	db *db.DB

	mu   sync.Mutex
	grid *gridmap.Grid
}

func NewServer(database *db.DB) *Server {
	return &Server{db: database}
}

// SetGrid replaces the current environment. The previous grid's clean state
// is discarded with it.
func (s *Server) SetGrid(g *gridmap.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = g
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/api/map", s.handleSetMap)
	mux.HandleFunc("/api/map/heatmap", s.handleHeatmap)
	mux.HandleFunc("/api/clean", s.handleClean)
	mux.HandleFunc("/api/plan", s.handlePlan)
	mux.HandleFunc("/api/plan-coverage", s.handlePlanCoverage)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/history/stats", s.handleHistoryStats)
	return mux
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeJSONError(w, http.StatusNotFound, "Not found")
		return
	}
	s.writeJSON(w, map[string]string{"message": "RoboMapper API is running"})
}
