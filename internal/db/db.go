// Package db stores campaign statuses in PostgreSQL.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/emberfall/internal/db/migrations"
)

// DB owns the pgx pool behind the campaign repositories.
type DB struct {
	pool *pgxpool.Pool
}

// Open brings the schema at dsn up to date and connects a pool to it.
// maxConns <= 0 keeps the pgxpool default.
func Open(ctx context.Context, dsn string, maxConns int32) (*DB, error) {
	if err := Migrate(ctx, dsn); err != nil {
		return nil, err
	}

	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	if maxConns > 0 {
		pcfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Migrate applies pending goose migrations through a short-lived database/sql handle.
func Migrate(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	for _, r := range results {
		slog.Debug("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// Campaign returns the repository of one save slot.
func (d *DB) Campaign(slot int) *CampaignRepository {
	return NewCampaignRepository(d.pool, slot)
}

// Pool exposes the pool for tests and ad-hoc queries.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Close closes the pool.
func (d *DB) Close() {
	d.pool.Close()
}
