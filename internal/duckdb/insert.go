package duckdb

import (
	"fmt"
)

// InsertDayStats replaces any previously stored rows for the report's
// date with the report's rows, so re-running a batch over the same logs
// is idempotent. The clear is committed before the insert transaction:
// DuckDB's ART index does not release a deleted primary key within the
// same transaction, so delete-then-insert of one (date, player) key in
// a single transaction fails with a constraint error.
func (s *Store) InsertDayStats(rep DayReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM player_day_stats WHERE date = ?", rep.Date); err != nil {
		return fmt.Errorf("duckdb: clear day %s: %w", rep.Date, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("duckdb: begin insert tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO player_day_stats (date, player, online_seconds, commands) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("duckdb: prepare insert: %w", err)
	}
	for _, row := range rep.Rows {
		if _, err := stmt.ExecContext(ctx, rep.Date, row.Player, row.OnlineSeconds, row.Commands); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("duckdb: insert %s/%s: %w", rep.Date, row.Player, err)
		}
	}
	stmt.Close()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("duckdb: commit day %s: %w", rep.Date, err)
	}
	return nil
}

// RecordRun stores one batch run record.
func (s *Store) RecordRun(run RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO analysis_runs (id, started_at, finished_at, days_analyzed, days_failed) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.StartedAt, run.FinishedAt, run.DaysAnalyzed, run.DaysFailed)
	if err != nil {
		return fmt.Errorf("duckdb: record run %s: %w", run.ID, err)
	}
	return nil
}
