// Package history keeps a ledger of synthesis runs in SQLite.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	coremetrics "github.com/kilianp07/opendhw/core/metrics"
	"github.com/kilianp07/opendhw/core/model"
)

// SQLiteStore persists run summaries in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS runs (
        run_id TEXT PRIMARY KEY,
        ts INTEGER,
        method TEXT,
        strategy TEXT,
        step_seconds INTEGER,
        events INTEGER,
        drawoffs INTEGER,
        volume_l REAL,
        peak_flow_lph REAL,
        duration_ms INTEGER,
        error TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// RecordRun inserts the run, replacing an earlier record with the same id.
func (s *SQLiteStore) RecordRun(ev coremetrics.RunEvent) error {
	_, err := s.db.Exec(`INSERT INTO runs (run_id, ts, method, strategy, step_seconds, events, drawoffs,
            volume_l, peak_flow_lph, duration_ms, error)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(run_id) DO UPDATE SET
            ts = excluded.ts,
            method = excluded.method,
            strategy = excluded.strategy,
            step_seconds = excluded.step_seconds,
            events = excluded.events,
            drawoffs = excluded.drawoffs,
            volume_l = excluded.volume_l,
            peak_flow_lph = excluded.peak_flow_lph,
            duration_ms = excluded.duration_ms,
            error = excluded.error`,
		ev.RunID, ev.Time.UnixMilli(), string(ev.Method), string(ev.Strategy), ev.StepSeconds,
		ev.Events, ev.Drawoffs, ev.VolumeL, ev.PeakFlowLPH, ev.Duration.Milliseconds(), ev.Err)
	return err
}

// Recent returns up to limit runs, newest first.
func (s *SQLiteStore) Recent(limit int) ([]coremetrics.RunEvent, error) {
	rows, err := s.db.Query(`SELECT run_id, ts, method, strategy, step_seconds, events, drawoffs,
            volume_l, peak_flow_lph, duration_ms, error
        FROM runs ORDER BY ts DESC, run_id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []coremetrics.RunEvent
	for rows.Next() {
		var (
			ev               coremetrics.RunEvent
			ts, durMS        int64
			method, strategy string
		)
		if err := rows.Scan(&ev.RunID, &ts, &method, &strategy, &ev.StepSeconds, &ev.Events, &ev.Drawoffs,
			&ev.VolumeL, &ev.PeakFlowLPH, &durMS, &ev.Err); err != nil {
			return nil, err
		}
		ev.Time = time.UnixMilli(ts).UTC()
		ev.Method = model.Method(method)
		ev.Strategy = model.Strategy(strategy)
		ev.Duration = time.Duration(durMS) * time.Millisecond
		res = append(res, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
