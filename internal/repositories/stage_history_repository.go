package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"salescrm/internal/models"
)

type StageHistoryRepository struct {
	db *sql.DB
}

func NewStageHistoryRepository(db *sql.DB) *StageHistoryRepository {
	return &StageHistoryRepository{db: db}
}

func (r *StageHistoryRepository) OpenEntries(ctx context.Context, q DBTX, opportunityID int64) ([]models.StageHistoryEntry, error) {
	const query = `
		SELECT id, opportunity_id, stage_id, entered_at, left_at
		FROM opportunity_stage_history
		WHERE opportunity_id = $1 AND left_at IS NULL
		ORDER BY entered_at
	`
	rows, err := q.QueryContext(ctx, query, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("open history entries: %w", err)
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

func (r *StageHistoryRepository) CountForOpportunity(ctx context.Context, q DBTX, opportunityID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM opportunity_stage_history WHERE opportunity_id = $1`
	var count int
	if err := q.QueryRowContext(ctx, query, opportunityID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count history entries: %w", err)
	}
	return count, nil
}

func (r *StageHistoryRepository) Insert(ctx context.Context, q DBTX, entry *models.StageHistoryEntry) (int64, error) {
	const query = `
		INSERT INTO opportunity_stage_history (opportunity_id, stage_id, entered_at, left_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := q.QueryRowContext(ctx, query,
		entry.OpportunityID, entry.StageID, entry.EnteredAt, entry.LeftAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert history entry: %w", err)
	}
	return id, nil
}

// CloseEntry stamps left_at on the entry being superseded. left_at is the only
// field ever mutated after creation.
func (r *StageHistoryRepository) CloseEntry(ctx context.Context, q DBTX, entryID int64, at time.Time) error {
	const query = `UPDATE opportunity_stage_history SET left_at = $1 WHERE id = $2`
	if _, err := q.ExecContext(ctx, query, at, entryID); err != nil {
		return fmt.Errorf("close history entry: %w", err)
	}
	return nil
}

func (r *StageHistoryRepository) ListForOpportunity(ctx context.Context, opportunityID int64) ([]models.StageHistoryEntry, error) {
	const query = `
		SELECT id, opportunity_id, stage_id, entered_at, left_at
		FROM opportunity_stage_history
		WHERE opportunity_id = $1
		ORDER BY entered_at
	`
	rows, err := r.db.QueryContext(ctx, query, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("list history entries: %w", err)
	}
	defer rows.Close()
	return scanHistoryRows(rows)
}

func scanHistoryRows(rows *sql.Rows) ([]models.StageHistoryEntry, error) {
	var out []models.StageHistoryEntry
	for rows.Next() {
		var e models.StageHistoryEntry
		if err := rows.Scan(&e.ID, &e.OpportunityID, &e.StageID, &e.EnteredAt, &e.LeftAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
