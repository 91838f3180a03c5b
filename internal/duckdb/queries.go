package duckdb

import (
	"context"
	"database/sql"
	"fmt"
)

// queryCtx returns a context with the store's configured query timeout.
func (s *Store) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.QueryTimeout)
}

// Dates returns every date with stored rows, sorted ascending.
func (s *Store) Dates() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT date FROM player_day_stats ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("duckdb: dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("duckdb: scan date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// DayStats returns the stored rows for one date, sorted by player name.
func (s *Store) DayStats(date string) ([]PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT player, online_seconds, commands
		FROM player_day_stats
		WHERE date = ?
		ORDER BY player`, date)
	if err != nil {
		return nil, fmt.Errorf("duckdb: day stats %s: %w", date, err)
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var ps PlayerStats
		if err := rows.Scan(&ps.Player, &ps.OnlineSeconds, &ps.Commands); err != nil {
			return nil, fmt.Errorf("duckdb: scan day stats: %w", err)
		}
		stats = append(stats, ps)
	}
	return stats, rows.Err()
}

// PlayerTotals aggregates one player's activity across all stored dates.
// The second return value is false when the player is unknown.
func (s *Store) PlayerTotals(player string) (PlayerTotals, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var pt PlayerTotals
	err := s.db.QueryRowContext(ctx, `
		SELECT player, SUM(online_seconds), SUM(commands), COUNT(*)
		FROM player_day_stats
		WHERE player = ?
		GROUP BY player`, player).
		Scan(&pt.Player, &pt.OnlineSeconds, &pt.Commands, &pt.Days)
	if err == sql.ErrNoRows {
		return PlayerTotals{}, false, nil
	}
	if err != nil {
		return PlayerTotals{}, false, fmt.Errorf("duckdb: player totals %s: %w", player, err)
	}
	return pt, true, nil
}

// TopPlayers returns players ranked by cumulative online seconds.
func (s *Store) TopPlayers(limit int) ([]PlayerTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT player, SUM(online_seconds) AS secs, SUM(commands), COUNT(*)
		FROM player_day_stats
		GROUP BY player
		ORDER BY secs DESC, player
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("duckdb: top players: %w", err)
	}
	defer rows.Close()

	var totals []PlayerTotals
	for rows.Next() {
		var pt PlayerTotals
		if err := rows.Scan(&pt.Player, &pt.OnlineSeconds, &pt.Commands, &pt.Days); err != nil {
			return nil, fmt.Errorf("duckdb: scan top players: %w", err)
		}
		totals = append(totals, pt)
	}
	return totals, rows.Err()
}

// TotalRowCount returns the number of stored player-day rows.
func (s *Store) TotalRowCount() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM player_day_stats").Scan(&count); err != nil {
		return 0, fmt.Errorf("duckdb: total row count: %w", err)
	}
	return count, nil
}

// Runs returns stored batch run records, newest first.
func (s *Store) Runs(limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, days_analyzed, days_failed
		FROM analysis_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("duckdb: runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.DaysAnalyzed, &r.DaysFailed); err != nil {
			return nil, fmt.Errorf("duckdb: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
