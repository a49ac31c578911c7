package db

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the recorded session history.
type Stats struct {
	TotalSessions int `json:"total_sessions"`
	Completed     int `json:"completed"`
	Errored       int `json:"errored"`

	MeanDurationSeconds float64 `json:"mean_duration_seconds"`
	P50DurationSeconds  float64 `json:"p50_duration_seconds"`
	P85DurationSeconds  float64 `json:"p85_duration_seconds"`

	MeanCleanedTiles float64 `json:"mean_cleaned_tiles"`
	P50CleanedTiles  float64 `json:"p50_cleaned_tiles"`
	P85CleanedTiles  float64 `json:"p85_cleaned_tiles"`
}

// SessionStats computes count and distribution summaries over all sessions.
// All float fields are zero when no sessions have been recorded.
func (db *DB) SessionStats() (*Stats, error) {
	sessions, err := db.Sessions()
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalSessions: len(sessions)}
	if len(sessions) == 0 {
		return stats, nil
	}

	durations := make([]float64, 0, len(sessions))
	tiles := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		switch s.FinalState {
		case "completed":
			stats.Completed++
		case "error":
			stats.Errored++
		}
		durations = append(durations, s.DurationSeconds)
		tiles = append(tiles, float64(s.CleanedTiles))
	}

	// stat.Quantile requires sorted input.
	sort.Float64s(durations)
	sort.Float64s(tiles)

	stats.MeanDurationSeconds = stat.Mean(durations, nil)
	stats.P50DurationSeconds = stat.Quantile(0.50, stat.Empirical, durations, nil)
	stats.P85DurationSeconds = stat.Quantile(0.85, stat.Empirical, durations, nil)

	stats.MeanCleanedTiles = stat.Mean(tiles, nil)
	stats.P50CleanedTiles = stat.Quantile(0.50, stat.Empirical, tiles, nil)
	stats.P85CleanedTiles = stat.Quantile(0.85, stat.Empirical, tiles, nil)

	return stats, nil
}
