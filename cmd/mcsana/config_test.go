package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func resetMcsanaEnv(t *testing.T) {
	t.Helper()

	for _, kv := range os.Environ() {
		key, _, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, "MCSANA_") {
			continue
		}
		// t.Setenv registers the restore; Unsetenv clears it for this test.
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetMcsanaEnv(t)

	configPath := writeTempConfig(t, `
source-dir: /srv/mc/logs
`)
	cfg, err := loadConfig(configPath)
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}

	if cfg.SourceDir != "/srv/mc/logs" {
		t.Fatalf("SourceDir = %q, want %q", cfg.SourceDir, "/srv/mc/logs")
	}
	if cfg.MergedDir != "date" {
		t.Fatalf("MergedDir = %q, want %q", cfg.MergedDir, "date")
	}
	if cfg.ReportDir != "view" {
		t.Fatalf("ReportDir = %q, want %q", cfg.ReportDir, "view")
	}
	if cfg.Workers != defaultWorkers {
		t.Fatalf("Workers = %d, want %d", cfg.Workers, defaultWorkers)
	}
	if cfg.APIEnabled {
		t.Fatal("APIEnabled = true, want false by default")
	}
	if cfg.QueryTimeout != 30*time.Second {
		t.Fatalf("QueryTimeout = %v, want 30s", cfg.QueryTimeout)
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join("mcsana", "mcsana.duckdb")) {
		t.Fatalf("DBPath = %q, want default under ~/.local/share", cfg.DBPath)
	}
}

func TestLoadConfig_AddressResolution(t *testing.T) {
	resetMcsanaEnv(t)

	tests := []struct {
		name        string
		configYAML  string
		wantAPIAddr string
	}{
		{
			name:        "defaults to localhost with api-port",
			configYAML:  `api-port: 3100`,
			wantAPIAddr: "127.0.0.1:3100",
		},
		{
			name: "host applies to derived api address",
			configYAML: `
host: 0.0.0.0
api-port: 3200
`,
			wantAPIAddr: "0.0.0.0:3200",
		},
		{
			name: "explicit address overrides host and port",
			configYAML: `
host: 0.0.0.0
api-port: 3300
api-addr: 10.0.0.5:8888
`,
			wantAPIAddr: "10.0.0.5:8888",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeTempConfig(t, tt.configYAML)
			cfg, err := loadConfig(configPath)
			if err != nil {
				t.Fatalf("loadConfig returned error: %v", err)
			}
			if cfg.APIAddr != tt.wantAPIAddr {
				t.Fatalf("APIAddr = %q, want %q", cfg.APIAddr, tt.wantAPIAddr)
			}
		})
	}
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	resetMcsanaEnv(t)

	tests := []struct {
		name       string
		configYAML string
	}{
		{name: "zero workers", configYAML: `workers: 0`},
		{name: "negative workers", configYAML: `workers: -2`},
		{name: "api port out of range", configYAML: `api-port: 70000`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeTempConfig(t, tt.configYAML)
			if _, err := loadConfig(configPath); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	resetMcsanaEnv(t)
	t.Setenv("MCSANA_WORKERS", "9")

	configPath := writeTempConfig(t, `merged-dir: merged`)
	cfg, err := loadConfig(configPath)
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.Workers != 9 {
		t.Fatalf("Workers = %d, want 9 from MCSANA_WORKERS", cfg.Workers)
	}
	if cfg.MergedDir != "merged" {
		t.Fatalf("MergedDir = %q, want %q", cfg.MergedDir, "merged")
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	got, err := writeDefaultConfig(path)
	if err != nil {
		t.Fatalf("writeDefaultConfig returned error: %v", err)
	}
	if got != path {
		t.Fatalf("path = %q, want %q", got, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	for _, want := range []string{"source-dir:", "merged-dir: date", "report-dir: view", "api-enabled: false"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config missing %q:\n%s", want, data)
		}
	}

	// A second call must refuse to overwrite.
	if _, err := writeDefaultConfig(path); err == nil {
		t.Fatal("expected error on existing config, got nil")
	}
}
