package session

import (
	"sort"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

// Aggregator accumulates per-player online time and command counts for
// one day. Records are created lazily on first observation and totals
// only ever move by whole credited amounts.
type Aggregator struct {
	seconds  map[string]int64
	commands map[string]int64
}

// NewAggregator returns an empty aggregator for one day of processing.
func NewAggregator() *Aggregator {
	return &Aggregator{
		seconds:  make(map[string]int64),
		commands: make(map[string]int64),
	}
}

// CreditDuration adds a closed session's seconds to the player's running
// total. Negative values are added as-is rather than clamped, so
// malformed input stays observable in the report.
func (a *Aggregator) CreditDuration(player string, seconds int64) {
	a.seconds[player] += seconds
}

// CreditCommand increments the player's command counter.
func (a *Aggregator) CreditCommand(player string) {
	a.commands[player]++
}

// Finalize returns the day report: the union of players seen through
// sessions and through commands, sorted by name ascending. A player who
// only issued commands appears with zero online time.
func (a *Aggregator) Finalize(date string) model.DayReport {
	names := make(map[string]struct{}, len(a.seconds)+len(a.commands))
	for p := range a.seconds {
		names[p] = struct{}{}
	}
	for p := range a.commands {
		names[p] = struct{}{}
	}

	rows := make([]model.PlayerStats, 0, len(names))
	for p := range names {
		rows = append(rows, model.PlayerStats{
			Player:        p,
			OnlineSeconds: a.seconds[p],
			Commands:      a.commands[p],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Player < rows[j].Player })

	return model.DayReport{Date: date, Rows: rows}
}
