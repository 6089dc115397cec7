package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"salescrm/internal/domain"
	"salescrm/internal/models"
)

type OpportunityRepository struct {
	db *sql.DB
}

func NewOpportunityRepository(db *sql.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, q DBTX, opp *models.Opportunity) (int64, error) {
	const query = `
		INSERT INTO opportunities (lead_id, owner_id, stage_id, value, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := q.QueryRowContext(ctx, query,
		opp.LeadID, opp.OwnerID, opp.StageID, opp.Value, opp.Status, opp.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert opportunity: %w", err)
	}
	return id, nil
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	const query = `
		SELECT id, lead_id, owner_id, stage_id, value, status, created_at, closed_at
		FROM opportunities
		WHERE id = $1
	`
	opp := &models.Opportunity{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&opp.ID, &opp.LeadID, &opp.OwnerID, &opp.StageID,
		&opp.Value, &opp.Status, &opp.CreatedAt, &opp.ClosedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("opportunity", id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan opportunity: %w", err)
	}
	return opp, nil
}

func (r *OpportunityRepository) SetStage(ctx context.Context, q DBTX, id, stageID int64) error {
	const query = `UPDATE opportunities SET stage_id = $1 WHERE id = $2`
	res, err := q.ExecContext(ctx, query, stageID, id)
	if err != nil {
		return fmt.Errorf("set opportunity stage: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.NotFound("opportunity", id)
	}
	return nil
}

func (r *OpportunityRepository) MarkClosed(ctx context.Context, q DBTX, id int64, status models.OpportunityStatus, at time.Time) error {
	const query = `UPDATE opportunities SET status = $1, closed_at = $2 WHERE id = $3`
	res, err := q.ExecContext(ctx, query, status, at, id)
	if err != nil {
		return fmt.Errorf("close opportunity: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.NotFound("opportunity", id)
	}
	return nil
}

func (r *OpportunityRepository) ListViews(ctx context.Context) ([]models.OpportunityView, error) {
	const query = `
		SELECT o.id, o.lead_id, o.owner_id, o.stage_id, o.value, o.status,
		       o.created_at, o.closed_at,
		       COALESCE(s.name, ''), COALESCE(u.name, '')
		FROM opportunities o
		LEFT JOIN stages s ON o.stage_id = s.id
		LEFT JOIN users u ON o.owner_id = u.id
		ORDER BY o.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list opportunities: %w", err)
	}
	defer rows.Close()

	var out []models.OpportunityView
	for rows.Next() {
		var v models.OpportunityView
		if err := rows.Scan(
			&v.ID, &v.LeadID, &v.OwnerID, &v.StageID, &v.Value, &v.Status,
			&v.CreatedAt, &v.ClosedAt, &v.StageName, &v.OwnerName,
		); err != nil {
			return nil, fmt.Errorf("scan opportunity view: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
