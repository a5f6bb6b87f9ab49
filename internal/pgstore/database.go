// Package pgstore is a content store backend on a self-hosted PostgreSQL
// database. It offers the same contract as the hosted REST client, so the
// catalog and sales ledger work unchanged on either.
package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const (
	connectTimeout      = 5 * time.Second
	retryMaxElapsedTime = time.Minute
)

// Connect opens a pgx pool and verifies it with a ping, retrying with
// exponential backoff while the database comes up.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	operation := func() (*pgxpool.Pool, error) {
		connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		pool, err := pgxpool.New(connCtx, dsn)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("database config: %w", err))
		}
		if err := pool.Ping(connCtx); err != nil {
			pool.Close()
			slog.Warn("database not reachable yet", "error", err)
			return nil, err
		}
		return pool, nil
	}

	pool, err := backoff.Retry[*pgxpool.Pool](ctx, operation, backoff.WithMaxElapsedTime(retryMaxElapsedTime))
	if err != nil {
		return nil, fmt.Errorf("database connect: %w", err)
	}

	slog.Info("database connected")
	return pool, nil
}

// Migrate runs all pending goose migrations from the embedded SQL files.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("database open: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied")
	return nil
}
