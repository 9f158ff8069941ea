// Package sqlite provides a SQLite-backed campaign store for local saves.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/udisondev/emberfall/internal/storage/sqlite/migrations"
)

// Store persists campaign statuses of one save slot in SQLite.
// Implements campaign.Store.
type Store struct {
	sqlDB *sql.DB
	slot  int
}

// Open opens the SQLite file at path and applies embedded migrations.
func Open(ctx context.Context, path string, slot int) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, sqlDB, migrations.FS)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, slot: slot}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// LoadStatuses returns every status set in the slot, sorted by name.
func (s *Store) LoadStatuses(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT status FROM campaign_statuses WHERE slot = ? ORDER BY status`, s.slot)
	if err != nil {
		return nil, fmt.Errorf("query campaign statuses: %w", err)
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, fmt.Errorf("scan campaign status: %w", err)
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaign statuses: %w", err)
	}
	return statuses, nil
}

// SaveStatuses replaces the slot's statuses in one transaction.
func (s *Store) SaveStatuses(ctx context.Context, statuses []string) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM campaign_statuses WHERE slot = ?`, s.slot); err != nil {
		return fmt.Errorf("delete campaign statuses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO campaign_statuses (slot, status) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, status := range statuses {
		if _, err := stmt.ExecContext(ctx, s.slot, status); err != nil {
			return fmt.Errorf("insert campaign status %q: %w", status, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
