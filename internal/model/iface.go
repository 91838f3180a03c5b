package model

// StatsWriter provides write operations for finalized day reports.
type StatsWriter interface {
	InsertDayStats(report DayReport) error
	RecordRun(run RunRecord) error
}

// StatsQuerier provides read-only queries on stored day reports.
type StatsQuerier interface {
	Dates() ([]string, error)
	DayStats(date string) ([]PlayerStats, error)
	PlayerTotals(player string) (PlayerTotals, bool, error)
	TopPlayers(limit int) ([]PlayerTotals, error)
	TotalRowCount() (int64, error)
}

// StatsStore is the unified contract implemented by the DuckDB store.
type StatsStore interface {
	StatsWriter
	StatsQuerier
}
