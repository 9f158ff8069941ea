package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/udisondev/emberfall/internal/config"
	"github.com/udisondev/emberfall/internal/db"
	"github.com/udisondev/emberfall/internal/game/campaign"
	"github.com/udisondev/emberfall/internal/storage/sqlite"
)

// openStore opens the campaign store selected by cfg.Driver.
// The returned close func is never nil.
func openStore(ctx context.Context, cfg config.CampaignConfig) (campaign.Store, func(), error) {
	switch cfg.Driver {
	case "", "memory":
		return campaign.NewMemoryStore(), func() {}, nil

	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating save dir: %w", err)
		}
		s, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.Slot)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite campaign store: %w", err)
		}
		slog.Info("campaign store opened", "driver", "sqlite", "path", cfg.SQLitePath, "slot", cfg.Slot)
		return s, func() {
			if err := s.Close(); err != nil {
				slog.Warn("closing sqlite campaign store", "err", err)
			}
		}, nil

	case "postgres":
		database, err := db.Open(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres campaign store: %w", err)
		}
		slog.Info("campaign store opened", "driver", "postgres", "slot", cfg.Slot)
		return database.Campaign(cfg.Slot), database.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown campaign driver %q", cfg.Driver)
	}
}
