// Package store implements the optional SQLite-backed run ledger: one row
// per (collection, year, stage) unit recording timing and decision-code
// tallies, purely for operational re-run/idempotence auditing (spec.md §8
// property 7, §9 "Run ledger"). It never participates in the
// language-decision logic itself. Grounded on pkg/db/db.go's
// Open/ensureSchemaExists pattern using the same driver,
// modernc.org/sqlite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id INTEGER PRIMARY KEY AUTOINCREMENT,
	stage TEXT NOT NULL,
	collection TEXT NOT NULL,
	year TEXT,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	exit_status INTEGER,
	items_processed INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_stage_collection ON runs(stage, collection);

CREATE TABLE IF NOT EXISTS run_decision_tallies (
	run_id INTEGER NOT NULL,
	decision_code TEXT NOT NULL,
	count INTEGER NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
	UNIQUE(run_id, decision_code)
);
`

// Store wraps a *sql.DB opened against the run-ledger database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite run ledger at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run ledger %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init run ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunHandle identifies one in-progress run row.
type RunHandle struct {
	ID int64
}

// StartRun records the start of one (stage, collection, year) unit.
func (s *Store) StartRun(stage, collection, year string) (RunHandle, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (stage, collection, year, started_at) VALUES (?, ?, ?, ?)`,
		stage, collection, year, time.Now(),
	)
	if err != nil {
		return RunHandle{}, fmt.Errorf("start run %s/%s/%s: %w", stage, collection, year, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return RunHandle{}, fmt.Errorf("read run id: %w", err)
	}
	return RunHandle{ID: id}, nil
}

// FinishRun records completion, exit status, item count, and decision-code
// tallies for a run started with StartRun.
func (s *Store) FinishRun(h RunHandle, exitStatus int, itemsProcessed int, decisionCodes map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin finish-run transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`UPDATE runs SET finished_at = ?, exit_status = ?, items_processed = ? WHERE run_id = ?`,
		time.Now(), exitStatus, itemsProcessed, h.ID,
	); err != nil {
		return fmt.Errorf("update run %d: %w", h.ID, err)
	}

	for code, count := range decisionCodes {
		if _, err := tx.Exec(
			`INSERT INTO run_decision_tallies (run_id, decision_code, count) VALUES (?, ?, ?)`,
			h.ID, code, count,
		); err != nil {
			return fmt.Errorf("record tally %s for run %d: %w", code, h.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit finish-run transaction: %w", err)
	}
	return nil
}
