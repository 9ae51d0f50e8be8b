// Package storage provides SQLite-based persistence for snake runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/session"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunEntry is a persisted run.
type RunEntry struct {
	ID        string
	Score     int
	NGCount   int
	MaxNG     int
	EndReason string // "game_over", "won" or "abandoned"
	Rounds    int
	Ticks     int64
	Duration  time.Duration
	Interval  time.Duration
	CreatedAt time.Time
}

// RoundEntry is a persisted round of a run.
type RoundEntry struct {
	RunID string
	Round int
	Score int
	Cause string
	Ticks int64
}

// Open creates or opens a SQLite database at the given path. The path is
// used as given; ~ is not expanded.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			ng_count INTEGER NOT NULL,
			max_ng INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			rounds INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			speed_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

		CREATE TABLE IF NOT EXISTS rounds (
			run_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			score INTEGER NOT NULL,
			cause TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, round)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun implements session.ResultSaver.
func (s *Store) SaveRun(r session.RunResult) error {
	created := r.StartedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, score, ng_count, max_ng, end_reason, rounds, ticks, duration_ms, speed_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Score,
		r.NGCount,
		r.MaxNG,
		r.EndReason,
		r.Rounds,
		int64(r.Ticks),
		r.Duration.Milliseconds(),
		r.Interval.Milliseconds(),
		created.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run %s: %w", r.ID, err)
	}
	return nil
}

// SaveRound implements session.ResultSaver.
func (s *Store) SaveRound(r session.RoundResult) error {
	_, err := s.db.Exec(
		"INSERT INTO rounds (run_id, round, score, cause, ticks) VALUES (?, ?, ?, ?, ?)",
		r.RunID, r.Round, r.Score, r.Cause, int64(r.Ticks),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save round %d of %s: %w", r.Round, r.RunID, err)
	}
	return nil
}

// Ensure Store implements ResultSaver
var _ session.ResultSaver = (*Store)(nil)

const runColumns = `id, score, ng_count, max_ng, end_reason, rounds, ticks, duration_ms, speed_ms, created_at`

// TopRuns retrieves the N best runs, highest score first. Ties go to the
// earlier run.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY score DESC, created_at ASC LIMIT ?`,
		limit,
	)
}

// RecentRuns retrieves the most recent runs.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
}

// RunByID retrieves a run. Returns nil when it does not exist.
func (s *Store) RunByID(id string) (*RunEntry, error) {
	var e RunEntry
	err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id), &e)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &e, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		if err := scanRun(rows, &e); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner, e *RunEntry) error {
	var durationMS, speedMS int64
	var createdAt any
	if err := row.Scan(
		&e.ID,
		&e.Score,
		&e.NGCount,
		&e.MaxNG,
		&e.EndReason,
		&e.Rounds,
		&e.Ticks,
		&durationMS,
		&speedMS,
		&createdAt,
	); err != nil {
		return err
	}
	e.Duration = time.Duration(durationMS) * time.Millisecond
	e.Interval = time.Duration(speedMS) * time.Millisecond
	e.CreatedAt = parseTime(createdAt)
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RoundsForRun retrieves the rounds of a run in order.
func (s *Store) RoundsForRun(runID string) ([]RoundEntry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, round, score, cause, ticks
		 FROM rounds
		 WHERE run_id = ?
		 ORDER BY round`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		if err := rows.Scan(&e.RunID, &e.Round, &e.Score, &e.Cause, &e.Ticks); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best run score, 0 if no runs exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes all runs and their rounds.
func (s *Store) ClearRuns() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM rounds"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs        int
	Wins        int
	HighScore   int
	AvgScore    float64
	TotalRounds int
	TotalTime   time.Duration
	LastPlayed  time.Time
}

// Stats retrieves aggregated statistics.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var totalMS int64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(SUM(rounds), 0),
		        COALESCE(SUM(duration_ms), 0)
		 FROM runs`,
		session.EndWon,
	).Scan(&stats.Runs, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.TotalRounds, &totalMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.TotalTime = time.Duration(totalMS) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
