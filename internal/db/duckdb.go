// Package db provides the in-memory DuckDB database used to inspect saved
// search responses.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	shared     *sql.DB
	sharedOnce sync.Once
	sharedErr  error
)

// GetDB returns the process-wide in-memory database, opening it on first use
func GetDB() (*sql.DB, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = Open(context.Background())
	})
	return shared, sharedErr
}

// Open creates a fresh in-memory database with read_json available. The
// caller owns the returned handle.
func Open(ctx context.Context) (*sql.DB, error) {
	database, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// DuckDB works best with a single connection
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)

	if err := loadJSON(ctx, database); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}

// loadJSON loads the bundled JSON extension, installing it only when the
// build does not ship it
func loadJSON(ctx context.Context, database *sql.DB) error {
	if _, err := database.ExecContext(ctx, "LOAD json"); err == nil {
		return nil
	}
	if _, err := database.ExecContext(ctx, "INSTALL json"); err != nil {
		return fmt.Errorf("failed to install JSON extension: %w", err)
	}
	if _, err := database.ExecContext(ctx, "LOAD json"); err != nil {
		return fmt.Errorf("failed to load JSON extension: %w", err)
	}
	return nil
}
