// Package sweepdb keeps a sqlite index of headless sweep runs so results from
// different invocations can be compared.
package sweepdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one scenario simulated with one seed.
type Run struct {
	ID         int64
	Sweep      string
	Scenario   string
	Seed       int64
	Frames     int
	Updated    int64
	PeakAwake  int
	FinalAwake int
	Settled    int // first frame with no awake chunks, -1 if never
	Counts     map[string]int
	Elapsed    time.Duration
	RecordedAt time.Time
}

// DB is a handle to the run index. It is safe for concurrent use.
type DB struct {
	db *sql.DB
}

// Open opens or creates the index at path.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sweepdb: empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sweepdb: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sweepdb: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sweepdb: pragmas: %w", err)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sweepdb: schema: %w", err)
	}
	return &DB{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sweep TEXT NOT NULL,
		scenario TEXT NOT NULL,
		seed INTEGER NOT NULL,
		frames INTEGER NOT NULL,
		updated INTEGER NOT NULL,
		peak_awake INTEGER NOT NULL,
		final_awake INTEGER NOT NULL,
		settled INTEGER NOT NULL,
		counts_json TEXT NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		recorded_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS runs_by_scenario ON runs(scenario, seed);`)
	return err
}

// Record stores r and returns its row id. A zero RecordedAt is set to now.
func (d *DB) Record(ctx context.Context, r Run) (int64, error) {
	counts, err := json.Marshal(r.Counts)
	if err != nil {
		return 0, fmt.Errorf("sweepdb: counts: %w", err)
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = time.Now()
	}
	res, err := d.db.ExecContext(ctx,
		`INSERT INTO runs (sweep, scenario, seed, frames, updated, peak_awake, final_awake, settled, counts_json, elapsed_ms, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Sweep, r.Scenario, r.Seed, r.Frames, r.Updated, r.PeakAwake, r.FinalAwake, r.Settled,
		string(counts), r.Elapsed.Milliseconds(), r.RecordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("sweepdb: insert: %w", err)
	}
	return res.LastInsertId()
}

// Runs lists the stored runs of a scenario ordered by seed, then id. An empty
// scenario lists every run.
func (d *DB) Runs(ctx context.Context, scenario string) ([]Run, error) {
	q := `SELECT id, sweep, scenario, seed, frames, updated, peak_awake, final_awake, settled, counts_json, elapsed_ms, recorded_at FROM runs`
	var args []any
	if scenario != "" {
		q += ` WHERE scenario = ?`
		args = append(args, scenario)
	}
	q += ` ORDER BY seed, id`

	rows, err := d.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sweepdb: query: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r        Run
			counts   string
			elapsed  int64
			recorded string
		)
		if err := rows.Scan(&r.ID, &r.Sweep, &r.Scenario, &r.Seed, &r.Frames, &r.Updated, &r.PeakAwake,
			&r.FinalAwake, &r.Settled, &counts, &elapsed, &recorded); err != nil {
			return nil, fmt.Errorf("sweepdb: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(counts), &r.Counts); err != nil {
			return nil, fmt.Errorf("sweepdb: counts: %w", err)
		}
		r.Elapsed = time.Duration(elapsed) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, recorded); err == nil {
			r.RecordedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the database.
func (d *DB) Close() error { return d.db.Close() }
