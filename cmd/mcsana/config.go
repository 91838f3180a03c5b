package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

const (
	defaultSourceDir    = "."
	defaultMergedDir    = "date"
	defaultReportDir    = "view"
	defaultWorkers      = model.DefaultWorkers
	defaultBindHost     = "127.0.0.1"
	defaultAPIPort      = 3000
	defaultQueryTimeout = model.DefaultQueryTimeout
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	SourceDir    string        `mapstructure:"source-dir"`
	MergedDir    string        `mapstructure:"merged-dir"`
	ReportDir    string        `mapstructure:"report-dir"`
	DBPath       string        `mapstructure:"db-path"`
	Workers      int           `mapstructure:"workers"`
	Host         string        `mapstructure:"host"`
	APIEnabled   bool          `mapstructure:"api-enabled"`
	APIPort      int           `mapstructure:"api-port"`
	APIAddr      string        `mapstructure:"api-addr"`
	QueryTimeout time.Duration `mapstructure:"query-timeout"`
	LogFile      string        `mapstructure:"log-file"`
	ConfigPath   string        `mapstructure:"-"` // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	defaultDBPath := filepath.Join(home, ".local", "share", "mcsana", "mcsana.duckdb")

	v := viper.New()
	v.SetEnvPrefix("MCSANA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("source-dir", defaultSourceDir)
	v.SetDefault("merged-dir", defaultMergedDir)
	v.SetDefault("report-dir", defaultReportDir)
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("workers", defaultWorkers)
	v.SetDefault("host", defaultBindHost)
	v.SetDefault("api-enabled", false)
	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("log-file", filepath.Join(home, ".local", "state", "mcsana", "mcsana.log"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "mcsana", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.Workers <= 0 {
		return cfg, fmt.Errorf("invalid workers: %d", cfg.Workers)
	}
	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}

	// Expand ~ in paths that commonly live under the home directory.
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.SourceDir = expandHome(cfg.SourceDir, home)
	cfg.MergedDir = expandHome(cfg.MergedDir, home)
	cfg.ReportDir = expandHome(cfg.ReportDir, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// defaultConfigYAML is the template written by -init-config.
type defaultConfigYAML struct {
	SourceDir    string `yaml:"source-dir"`
	MergedDir    string `yaml:"merged-dir"`
	ReportDir    string `yaml:"report-dir"`
	DBPath       string `yaml:"db-path"`
	Workers      int    `yaml:"workers"`
	APIEnabled   bool   `yaml:"api-enabled"`
	APIPort      int    `yaml:"api-port"`
	QueryTimeout string `yaml:"query-timeout"`
	LogFile      string `yaml:"log-file"`
}

// writeDefaultConfig writes a starter config file, refusing to clobber
// an existing one.
func writeDefaultConfig(path string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	if path == "" {
		path = filepath.Join(home, ".config", "mcsana", "config.yml")
	}

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	tmpl := defaultConfigYAML{
		SourceDir:    defaultSourceDir,
		MergedDir:    defaultMergedDir,
		ReportDir:    defaultReportDir,
		DBPath:       filepath.Join("~", ".local", "share", "mcsana", "mcsana.duckdb"),
		Workers:      defaultWorkers,
		APIEnabled:   false,
		APIPort:      defaultAPIPort,
		QueryTimeout: defaultQueryTimeout.String(),
		LogFile:      filepath.Join("~", ".local", "state", "mcsana", "mcsana.log"),
	}

	data, err := yaml.Marshal(tmpl)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}
