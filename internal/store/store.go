// Package store opens the backing relational store. A single DSN selects the
// backend: postgres:// and postgresql:// DSNs use the pgx driver, anything
// else is treated as a DuckDB database path (empty path = in-memory).
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/marcboeker/go-duckdb/v2"
)

type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "pgx"
)

func DriverForDSN(dsn string) string {
	trimmed := strings.TrimSpace(dsn)
	if strings.HasPrefix(trimmed, "postgres://") || strings.HasPrefix(trimmed, "postgresql://") {
		return DriverPostgres
	}
	return DriverDuckDB
}

func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	driver := DriverForDSN(cfg.DSN)
	db, err := sql.Open(driver, strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("open store (%s): %w", driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping store (%s): %w", driver, err)
	}

	return db, nil
}
