// Package db persists cleaning-session history in sqlite and exposes it as
// JSON-friendly records, CSV exports and summary statistics.
package db

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// Open connects to the sqlite database at path, creating the file if needed.
// Schema management is left to the migration layer; see migrate.go.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &DB{db}, nil
}

// Session is one recorded cleaning run.
type Session struct {
	ID              string    `json:"id"`
	StartTime       time.Time `json:"start_time"`
	Model           string    `json:"model"`
	FinalState      string    `json:"final_state"`
	ActionCount     int       `json:"action_count"`
	CleanedTiles    int       `json:"cleaned_tiles"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// RecordSession inserts a session row. A missing ID is filled with a fresh
// uuid before insert.
func (db *DB) RecordSession(s *Session) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	_, err := db.Exec(
		`INSERT INTO sessions (
			id, start_time, model, final_state,
			action_count, cleaned_tile_count, duration_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID,
		s.StartTime.UTC().Unix(),
		s.Model,
		s.FinalState,
		s.ActionCount,
		s.CleanedTiles,
		s.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// Sessions returns all recorded sessions, oldest first.
func (db *DB) Sessions() ([]Session, error) {
	rows, err := db.Query(
		`SELECT id, start_time, model, final_state,
			action_count, cleaned_tile_count, duration_seconds
		FROM sessions ORDER BY start_time, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var startUnix int64
		if err := rows.Scan(
			&s.ID,
			&startUnix,
			&s.Model,
			&s.FinalState,
			&s.ActionCount,
			&s.CleanedTiles,
			&s.DurationSeconds,
		); err != nil {
			return nil, err
		}
		s.StartTime = time.Unix(startUnix, 0).UTC()
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// historyHeader is the column order of the CSV export.
var historyHeader = []string{
	"session_id",
	"start_time",
	"model",
	"final_state",
	"number_of_actions",
	"number_of_cleaned_tiles",
	"duration",
}

// WriteHistoryCSV streams the full session history as CSV.
func (db *DB) WriteHistoryCSV(w io.Writer) error {
	sessions, err := db.Sessions()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return err
	}
	for _, s := range sessions {
		record := []string{
			s.ID,
			s.StartTime.Format("2006-01-02 15:04:05"),
			s.Model,
			s.FinalState,
			strconv.Itoa(s.ActionCount),
			strconv.Itoa(s.CleanedTiles),
			strconv.FormatFloat(s.DurationSeconds, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
