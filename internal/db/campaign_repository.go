package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CampaignRepository stores the campaign statuses of one save slot.
// Implements campaign.Store.
type CampaignRepository struct {
	db   *pgxpool.Pool
	slot int
}

// NewCampaignRepository creates a CampaignRepository for slot.
func NewCampaignRepository(db *pgxpool.Pool, slot int) *CampaignRepository {
	return &CampaignRepository{db: db, slot: slot}
}

// LoadStatuses returns every status set in the slot, sorted by name.
func (r *CampaignRepository) LoadStatuses(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status FROM campaign_statuses WHERE slot = $1 ORDER BY status`, r.slot)
	if err != nil {
		return nil, fmt.Errorf("querying campaign statuses for slot %d: %w", r.slot, err)
	}

	statuses, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning campaign statuses for slot %d: %w", r.slot, err)
	}
	return statuses, nil
}

// SaveStatuses replaces the slot's statuses.
// Performs full replace: deletes all existing rows, then copies the new set in.
func (r *CampaignRepository) SaveStatuses(ctx context.Context, statuses []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "slot", r.slot, "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM campaign_statuses WHERE slot = $1`, r.slot); err != nil {
		return fmt.Errorf("deleting campaign statuses for slot %d: %w", r.slot, err)
	}

	if len(statuses) > 0 {
		rows := make([][]any, 0, len(statuses))
		for _, s := range statuses {
			rows = append(rows, []any{r.slot, s})
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"campaign_statuses"},
			[]string{"slot", "status"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("copying campaign statuses for slot %d: %w", r.slot, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
