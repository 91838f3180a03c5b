package duckdb

import "github.com/GoldenEggsUNION/mcsAna/internal/model"

// Type aliases re-export model types so store consumers do not need a
// second import for method signatures.
type DayReport = model.DayReport
type PlayerStats = model.PlayerStats
type PlayerTotals = model.PlayerTotals
type RunRecord = model.RunRecord
