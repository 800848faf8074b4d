package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunTally is the outcome of one crawl.
type RunTally struct {
	Requests int `json:"requests" yaml:"requests"`
	Archived int `json:"archived" yaml:"archived"`
	Skipped  int `json:"skipped" yaml:"skipped"`
	Failed   int `json:"failed" yaml:"failed"`
}

// ScrapeRun is a recorded crawl.
type ScrapeRun struct {
	RunID      string     `json:"run_id" yaml:"run_id"`
	StartURL   string     `json:"start_url" yaml:"start_url"`
	StartedAt  time.Time  `json:"started_at" yaml:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	RunTally   `yaml:",inline"`
}

// StartRun records the beginning of a crawl and returns its id.
func (db *DB) StartRun(ctx context.Context, startURL string) (string, error) {
	runID := uuid.NewString()
	_, err := db.ExecContext(ctx, `
		INSERT INTO scrape_runs (run_id, start_url, started_at) VALUES (?, ?, ?)
	`, runID, startURL, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	return runID, nil
}

// FinishRun stores the final tally of a crawl.
func (db *DB) FinishRun(ctx context.Context, runID string, t RunTally) error {
	res, err := db.ExecContext(ctx, `
		UPDATE scrape_runs
		SET finished_at = ?, requests = ?, archived = ?, skipped = ?, failed = ?
		WHERE run_id = ?
	`, time.Now().UTC(), t.Requests, t.Archived, t.Skipped, t.Failed, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to finish run %s: %w", runID, ErrNotFound)
	}
	return nil
}

// ListRuns returns recorded crawls, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]ScrapeRun, error) {
	query := `
		SELECT run_id, start_url, started_at, finished_at, requests, archived, skipped, failed
		FROM scrape_runs
		ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []ScrapeRun
	for rows.Next() {
		var (
			r        ScrapeRun
			finished sql.NullTime
		)
		if err := rows.Scan(&r.RunID, &r.StartURL, &r.StartedAt, &finished,
			&r.Requests, &r.Archived, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if finished.Valid {
			r.FinishedAt = &finished.Time
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
