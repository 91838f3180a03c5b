package model

import (
	"math"
	"time"
)

// EventType tags the recognized log message shapes.
type EventType int

const (
	// EventUnrecognized is the catch-all for messages with no player activity.
	EventUnrecognized EventType = iota

	// EventLogin indicates a player connected to the server.
	EventLogin

	// EventLogout indicates a player left the server.
	EventLogout

	// EventCommand indicates a player issued a server command.
	EventCommand
)

// String returns the lowercase tag name, mainly for diagnostics.
func (t EventType) String() string {
	switch t {
	case EventLogin:
		return "login"
	case EventLogout:
		return "logout"
	case EventCommand:
		return "command"
	default:
		return "unrecognized"
	}
}

// Event is a classified log message. Player is empty for unrecognized events.
// Events are immutable once produced.
type Event struct {
	Type   EventType
	Player string
}

// LogLine is one physical log line after shape matching, before
// classification. It is ephemeral and discarded after producing an Event.
type LogLine struct {
	TimeOfDay string // HH:MM:SS, anchored to the day's date by the resolver
	Message   string
}

// ClosedSession is a (player, duration) pair emitted when a session
// transitions from online to offline. Seconds is truncated, not rounded,
// and may be negative for out-of-order input.
type ClosedSession struct {
	Player  string
	Seconds int64
}

// PlayerStats is one row of a day report: cumulative online time and
// command usage for a single player on a single date.
type PlayerStats struct {
	Player        string
	OnlineSeconds int64
	Commands      int64
}

// OnlineMinutes returns the online time in minutes rounded to two decimals.
func (p PlayerStats) OnlineMinutes() float64 {
	return round2(float64(p.OnlineSeconds) / 60)
}

// OnlineHours returns the online time in hours rounded to two decimals.
func (p PlayerStats) OnlineHours() float64 {
	return round2(float64(p.OnlineSeconds) / 3600)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DayReport is the finalized summary for one calendar date. Rows are
// sorted by player name ascending with no duplicates.
type DayReport struct {
	Date string // YYYY-MM-DD
	Rows []PlayerStats
}

// PlayerTotals aggregates a player's activity across every stored date.
// The json tags match the API's snake_case responses.
type PlayerTotals struct {
	Player        string `json:"player"`
	OnlineSeconds int64  `json:"online_seconds"`
	Commands      int64  `json:"commands"`
	Days          int64  `json:"days"`
}

// RunRecord describes one batch analysis run.
type RunRecord struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	DaysAnalyzed int
	DaysFailed   int
}
