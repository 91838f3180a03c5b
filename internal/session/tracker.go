// Package session holds the per-day player activity state: the open
// session table and the running per-player totals. Both are owned by one
// day's processing pass and never shared across days.
package session

import (
	"sort"
	"time"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

// Tracker maps player name to open-session start instant for one day.
// Per player the states are offline and online(since); a second login
// while online is ignored so duplicate login lines cannot reset the
// clock, and a logout while offline is ignored so nothing underflows.
type Tracker struct {
	open map[string]time.Time
}

// NewTracker returns an empty tracker for one day of processing.
func NewTracker() *Tracker {
	return &Tracker{open: make(map[string]time.Time)}
}

// OnEvent applies one classified event at the given instant. It returns a
// closed session record only when a logout matches an open session.
// Durations are whole seconds, truncated toward zero; a logout instant
// before the stored login instant yields a negative duration on purpose.
func (t *Tracker) OnEvent(ev model.Event, at time.Time) (model.ClosedSession, bool) {
	switch ev.Type {
	case model.EventLogin:
		if _, online := t.open[ev.Player]; !online {
			t.open[ev.Player] = at
		}
	case model.EventLogout:
		if start, online := t.open[ev.Player]; online {
			delete(t.open, ev.Player)
			return model.ClosedSession{
				Player:  ev.Player,
				Seconds: int64(at.Sub(start) / time.Second),
			}, true
		}
	}
	return model.ClosedSession{}, false
}

// OpenCount returns the number of currently open sessions.
func (t *Tracker) OpenCount() int {
	return len(t.open)
}

// FlushAll force-closes every still-open session at the given instant and
// clears the table, so no player's time is silently dropped at end of
// stream. Records are returned sorted by player name. Sessions can only
// open on lines carrying a valid timestamp, so a stream with no valid
// timestamps leaves nothing here to flush.
func (t *Tracker) FlushAll(last time.Time) []model.ClosedSession {
	if len(t.open) == 0 {
		return nil
	}
	closed := make([]model.ClosedSession, 0, len(t.open))
	for player, start := range t.open {
		closed = append(closed, model.ClosedSession{
			Player:  player,
			Seconds: int64(last.Sub(start) / time.Second),
		})
	}
	t.open = make(map[string]time.Time)
	sort.Slice(closed, func(i, j int) bool { return closed[i].Player < closed[j].Player })
	return closed
}
