// Package duckdb persists day reports in an embedded DuckDB database and
// serves the read-side queries for the HTTP API and the TUI.
package duckdb

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/GoldenEggsUNION/mcsAna/internal/duckdb/migrate"
	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

// Store manages the DuckDB connection and provides query methods. It
// implements the full read/write stats contract.
type Store struct {
	db           *sql.DB
	mu           sync.RWMutex
	dbPath       string
	QueryTimeout time.Duration
}

var _ model.StatsStore = (*Store)(nil)

// NewStore opens or creates a DuckDB database and applies migrations.
// An empty dbPath opens an in-memory database. An optional queryTimeout
// overrides the shared default.
func NewStore(dbPath string, queryTimeout ...time.Duration) (*Store, error) {
	dsn := ""
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, err
		}
		dsn = dbPath
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, err
	}

	if err := migrate.NewRunner(db).Run(); err != nil {
		db.Close()
		return nil, err
	}

	qt := model.DefaultQueryTimeout
	if len(queryTimeout) > 0 && queryTimeout[0] > 0 {
		qt = queryTimeout[0]
	}

	return &Store{
		db:           db,
		dbPath:       dbPath,
		QueryTimeout: qt,
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
