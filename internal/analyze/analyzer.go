// Package analyze runs the per-day analysis pass: one sequential scan of
// a day's chronological log stream that tracks sessions, aggregates
// activity, and finalizes the day report.
package analyze

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/GoldenEggsUNION/mcsAna/internal/logparse"
	"github.com/GoldenEggsUNION/mcsAna/internal/model"
	"github.com/GoldenEggsUNION/mcsAna/internal/session"
	"github.com/GoldenEggsUNION/mcsAna/internal/timestamp"
)

// maxLineBytes bounds a single physical log line.
const maxLineBytes = 1 << 20

// AnalyzeStream scans one day's log stream line by line and returns the
// finalized day report. Blank lines, fragment separators, lines of the
// wrong shape, and lines with unresolvable timestamps are skipped;
// sessions still open at end of stream are closed at the last resolved
// timestamp. Only a read failure on the stream itself is an error.
func AnalyzeStream(date string, r io.Reader) (model.DayReport, error) {
	tracker := session.NewTracker()
	agg := session.NewAggregator()

	var (
		last     time.Time
		haveLast bool
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || logparse.IsSeparator(line) {
			continue
		}

		logLine, ok := logparse.ClassifyLine(line)
		if !ok {
			continue
		}

		at, err := timestamp.Resolve(date, logLine.TimeOfDay)
		if err != nil {
			log.Printf("analyze: %s: skipping line with bad timestamp: %v", date, err)
			continue
		}
		last, haveLast = at, true

		ev := logparse.ToEvent(logLine.Message)
		if closed, ok := tracker.OnEvent(ev, at); ok {
			agg.CreditDuration(closed.Player, closed.Seconds)
		}
		if ev.Type == model.EventCommand {
			agg.CreditCommand(ev.Player)
		}
	}
	if err := sc.Err(); err != nil {
		return model.DayReport{}, fmt.Errorf("analyze: read %s stream: %w", date, err)
	}

	if haveLast {
		for _, closed := range tracker.FlushAll(last) {
			agg.CreditDuration(closed.Player, closed.Seconds)
		}
	}

	return agg.Finalize(date), nil
}
