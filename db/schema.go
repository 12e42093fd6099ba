// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Supported DATABASE_TYPE values
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Open connects to postgres or sqlite. SQLite connections enable foreign
// keys and a busy timeout, and are limited to one open connection so
// writers queue instead of failing with SQLITE_BUSY.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case TypePostgres:
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return conn, nil
	case TypeSQLite:
		conn, err := sql.Open("sqlite", sqliteDSN(url))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		conn.SetMaxOpenConns(1)
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

func sqliteDSN(url string) string {
	if !strings.HasPrefix(url, "file:") {
		url = "file:" + url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Migrate applies the embedded migrations for the dialect. Safe to call
// multiple times; applied versions are tracked by goose.
func Migrate(ctx context.Context, conn *sql.DB, dbType string) error {
	var dialect goose.Dialect
	switch dbType {
	case TypePostgres:
		dialect = goose.DialectPostgres
	case TypeSQLite:
		dialect = goose.DialectSQLite3
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	dir, err := fs.Sub(migrationsFS, "migrations/"+dbType)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(dialect, conn, dir)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path, "duration_ms", r.Duration.Milliseconds())
	}
	return nil
}

// IsUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY
// constraint on either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
