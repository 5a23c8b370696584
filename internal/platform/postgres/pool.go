// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package postgres owns the PostgreSQL connection pool holding published
projects and insights.

The pool is created once at startup and injected into every repository.
*/
package postgres

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/konstra/internal/platform/constants"
)

// Pool settings sized for a small editorial workload.
const (
	maxConns          = 10
	minConns          = 2
	maxConnLifetime   = 45 * time.Minute
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

/*
NewPool creates a pool and verifies the database is reachable.

Parameters:
  - context: stdctx.Context (bounds the initial connection attempt)
  - dsn: string (postgres:// URL or libpq DSN)
  - logger: *slog.Logger

Returns:
  - *pgxpool.Pool: Ready pool
  - error: DSN parse, connect or ping failures
*/
func NewPool(context stdctx.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout
	poolConfig.AfterConnect = setSessionDefaults

	pool, err := pgxpool.NewWithConfig(context, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	if err := Ping(context, pool); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres_pool_connected",
		slog.String("database", poolConfig.ConnConfig.Database),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
	)

	return pool, nil
}

// setSessionDefaults bounds every statement by the request deadline and pins the search path.
func setSessionDefaults(context stdctx.Context, connection *pgx.Conn) error {
	statements := []string{
		fmt.Sprintf("SET statement_timeout = '%dms'", constants.GlobalRequestTimeout.Milliseconds()),
		fmt.Sprintf("SET search_path = %s, public", constants.SchemaCore),
	}
	for _, statement := range statements {
		if _, err := connection.Exec(context, statement); err != nil {
			return fmt.Errorf("postgres: session setup: %w", err)
		}
	}
	return nil
}

// Ping checks the pool within a short deadline. It backs the readiness probe.
func Ping(context stdctx.Context, pool *pgxpool.Pool) error {
	pingContext, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingContext); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}
	return nil
}
