package analyze

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

// memStore is a minimal StatsWriter for runner tests.
type memStore struct {
	mu      sync.Mutex
	reports map[string][]model.PlayerStats
}

func newMemStore() *memStore {
	return &memStore{reports: make(map[string][]model.PlayerStats)}
}

func (m *memStore) InsertDayStats(rep model.DayReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[rep.Date] = rep.Rows
	return nil
}

func (m *memStore) RecordRun(model.RunRecord) error { return nil }

func writeDayLog(t *testing.T, dir, date, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, date+".log"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()
	mergedDir := t.TempDir()
	reportDir := t.TempDir()

	writeDayLog(t, mergedDir, "2024-05-01", strings.Join([]string{
		"[10:00:00] [Server/INFO]: Alice[/1.2.3.4:5] logged in",
		"[10:05:00] [Server/INFO]: Alice left the game",
	}, "\n"))
	writeDayLog(t, mergedDir, "2024-05-02", strings.Join([]string{
		"[08:00:00] [Server/INFO]: Bob[/1.2.3.4:6] logged in",
		"[09:30:00] [Server/INFO]: Bob left the game",
		"[09:31:00] [Server/INFO]: Bob issued server command: /seed",
	}, "\n"))
	// Day with only noise: analyzed, but no report file.
	writeDayLog(t, mergedDir, "2024-05-03", "[10:00:00] [Server/INFO]: Saving chunks\n")
	// A non-day file is ignored entirely.
	writeDayLog(t, mergedDir, "latest", "junk")

	store := newMemStore()
	runner := NewRunner(Config{
		MergedDir: mergedDir,
		ReportDir: reportDir,
		Workers:   2,
		Store:     store,
	})

	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.DaysAnalyzed != 3 {
		t.Errorf("DaysAnalyzed = %d, want 3", summary.DaysAnalyzed)
	}
	if summary.DaysEmpty != 1 {
		t.Errorf("DaysEmpty = %d, want 1", summary.DaysEmpty)
	}
	if summary.DaysFailed != 0 {
		t.Errorf("DaysFailed = %d, want 0", summary.DaysFailed)
	}
	if len(summary.ReportsPaths) != 2 {
		t.Fatalf("ReportsPaths = %v, want 2 files", summary.ReportsPaths)
	}

	if _, err := os.Stat(filepath.Join(reportDir, "2024-05-01_analysis.csv")); err != nil {
		t.Errorf("missing report for 2024-05-01: %v", err)
	}
	if _, err := os.Stat(filepath.Join(reportDir, "2024-05-03_analysis.csv")); err == nil {
		t.Error("empty day 2024-05-03 wrote a report file")
	}

	if rows := store.reports["2024-05-02"]; len(rows) != 1 || rows[0].OnlineSeconds != 5400 {
		t.Errorf("stored 2024-05-02 rows = %+v, want Bob with 5400s", rows)
	}
	if _, ok := store.reports["2024-05-03"]; ok {
		t.Error("empty day was persisted to the store")
	}
}

func TestRunner_MissingMergedDir(t *testing.T) {
	t.Parallel()

	runner := NewRunner(Config{MergedDir: filepath.Join(t.TempDir(), "nope")})
	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("Run with missing merged dir succeeded, want error")
	}
}

func TestRunner_WithoutStore(t *testing.T) {
	t.Parallel()
	mergedDir := t.TempDir()

	writeDayLog(t, mergedDir, "2024-05-01", strings.Join([]string{
		"[10:00:00] [Server/INFO]: Alice[/1.2.3.4:5] logged in",
		"[10:00:30] [Server/INFO]: Alice left the game",
	}, "\n"))

	runner := NewRunner(Config{MergedDir: mergedDir, ReportDir: t.TempDir()})
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.DaysAnalyzed != 1 || len(summary.ReportsPaths) != 1 {
		t.Errorf("summary = %+v", summary)
	}
}
