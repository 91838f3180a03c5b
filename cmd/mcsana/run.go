package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GoldenEggsUNION/mcsAna/internal/analyze"
	"github.com/GoldenEggsUNION/mcsAna/internal/consolidate"
	"github.com/GoldenEggsUNION/mcsAna/internal/duckdb"
	"github.com/GoldenEggsUNION/mcsAna/internal/httpserver"
	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

// runPipeline consolidates log fragments, analyzes each day, and writes
// CSV reports plus DuckDB rows. With api-enabled it then stays up
// serving the stored reports until interrupted.
func runPipeline(cfg appConfig) error {
	cleanupLogger := configureRuntimeLogger(cfg.LogFile)
	defer cleanupLogger()

	started := time.Now().UTC()

	merged, err := consolidate.Consolidate(cfg.SourceDir, cfg.MergedDir)
	if err != nil {
		return fmt.Errorf("consolidating logs: %w", err)
	}
	log.Printf("consolidated %d day(s) into %s", len(merged), cfg.MergedDir)

	// An empty db-path disables persistence; CSV reports are still written.
	var store *duckdb.Store
	if cfg.DBPath != "" {
		store, err = duckdb.NewStore(cfg.DBPath, cfg.QueryTimeout)
		if err != nil {
			return fmt.Errorf("failed to initialize DuckDB: %w", err)
		}
		defer store.Close()
	}

	runnerCfg := analyze.Config{
		MergedDir: cfg.MergedDir,
		ReportDir: cfg.ReportDir,
		Workers:   cfg.Workers,
	}
	if store != nil {
		runnerCfg.Store = store
	}
	runner := analyze.NewRunner(runnerCfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		os.Exit(1)
	}()

	summary, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("analyzing logs: %w", err)
	}

	if store != nil {
		run := model.RunRecord{
			ID:           uuid.NewString(),
			StartedAt:    started,
			FinishedAt:   time.Now().UTC(),
			DaysAnalyzed: summary.DaysAnalyzed,
			DaysFailed:   summary.DaysFailed,
		}
		if err := store.RecordRun(run); err != nil {
			log.Printf("recording run %s: %v", run.ID, err)
		}
	}

	printRunSummary(cfg, summary)

	if !cfg.APIEnabled || store == nil {
		if cfg.APIEnabled {
			log.Printf("api-enabled set but db-path is empty; nothing to serve")
		}
		return nil
	}

	apiServer := httpserver.NewServer(cfg.APIAddr, store)
	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	defer apiServer.Stop()

	fmt.Printf("Serving reports on http://%s (Ctrl+C to stop)\n", apiServer.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Printf("pipeline: errgroup exited with error: %v", err)
	}

	return nil
}

func configureRuntimeLogger(logPath string) func() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if logPath == "" {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		_ = f.Close()
	}
}

func printRunSummary(cfg appConfig, summary analyze.Summary) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")

	var lines []string
	lines = append(lines, "")
	lines = append(lines, bold.Render("  mcsAna ")+dim.Render("v"+version))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %s  Days analyzed  %s", check, cyan.Render(fmt.Sprintf("%d", summary.DaysAnalyzed))))
	lines = append(lines, fmt.Sprintf("  %s  Days empty     %s", check, dim.Render(fmt.Sprintf("%d", summary.DaysEmpty))))
	lines = append(lines, fmt.Sprintf("  %s  Days failed    %s", check, dim.Render(fmt.Sprintf("%d", summary.DaysFailed))))
	lines = append(lines, fmt.Sprintf("  %s  Reports        %s", check, dim.Render(shortenPath(cfg.ReportDir))))
	lines = append(lines, fmt.Sprintf("  %s  Storage        %s", check, dim.Render(shortenPath(cfg.DBPath))))
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("  %s  Config         %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	}
	lines = append(lines, "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
