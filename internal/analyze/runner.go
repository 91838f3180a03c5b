package analyze

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
	"github.com/GoldenEggsUNION/mcsAna/internal/report"
)

// mergedLogPattern matches consolidated per-day log names.
var mergedLogPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\.log$`)

// Config holds the runner's directories and collaborators.
type Config struct {
	MergedDir string
	ReportDir string
	Workers   int

	// Store receives finalized day rows when non-nil.
	Store model.StatsWriter
}

// Summary describes the outcome of one batch run.
type Summary struct {
	DaysAnalyzed int // days scanned to completion
	DaysEmpty    int // days with zero report rows, no file written
	DaysFailed   int // days abandoned on read or write failure
	ReportsPaths []string
}

// Runner analyzes every merged day log under a directory. Days are fully
// independent, so they run in parallel up to the worker cap; one day's
// failure never aborts its siblings.
type Runner struct {
	cfg Config
}

// NewRunner creates a runner. A Workers value below one falls back to the
// shared default.
func NewRunner(cfg Config) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = model.DefaultWorkers
	}
	return &Runner{cfg: cfg}
}

// Run discovers merged day logs, analyzes them, writes one CSV per
// non-empty day, and persists rows to the store when one is configured.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	dates, err := r.discoverDates()
	if err != nil {
		return Summary{}, err
	}

	var (
		mu      sync.Mutex
		summary Summary
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, date := range dates {
		date := date
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, rows, err := r.runDay(date)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				log.Printf("analyze: day %s abandoned: %v", date, err)
				summary.DaysFailed++
			case rows == 0:
				summary.DaysAnalyzed++
				summary.DaysEmpty++
			default:
				summary.DaysAnalyzed++
				summary.ReportsPaths = append(summary.ReportsPaths, path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, fmt.Errorf("analyze: run: %w", err)
	}

	sort.Strings(summary.ReportsPaths)
	return summary, nil
}

// discoverDates lists the dates with a merged log file, sorted ascending.
func (r *Runner) discoverDates() ([]string, error) {
	entries, err := os.ReadDir(r.cfg.MergedDir)
	if err != nil {
		return nil, fmt.Errorf("analyze: read merged dir: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if m := mergedLogPattern.FindStringSubmatch(entry.Name()); m != nil {
			dates = append(dates, m[1])
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// runDay analyzes one date's merged log and writes its outputs. It
// returns the CSV path ("" when the day was empty) and the row count.
func (r *Runner) runDay(date string) (string, int, error) {
	f, err := os.Open(filepath.Join(r.cfg.MergedDir, date+".log"))
	if err != nil {
		return "", 0, fmt.Errorf("open merged log: %w", err)
	}
	defer f.Close()

	rep, err := AnalyzeStream(date, f)
	if err != nil {
		return "", 0, err
	}
	if len(rep.Rows) == 0 {
		return "", 0, nil
	}

	path, err := report.WriteFile(r.cfg.ReportDir, rep)
	if err != nil {
		return "", 0, err
	}

	if r.cfg.Store != nil {
		if err := r.cfg.Store.InsertDayStats(rep); err != nil {
			// CSV is already on disk; the day is still reported failed.
			return "", 0, fmt.Errorf("persist day stats: %w", err)
		}
	}
	return path, len(rep.Rows), nil
}
