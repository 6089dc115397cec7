package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"salescrm/internal/models"
)

type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, q DBTX, activity *models.Activity) (int64, error) {
	const query = `
		INSERT INTO activities (lead_id, opportunity_id, user_id, activity_type, subject, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := q.QueryRowContext(ctx, query,
		activity.LeadID, activity.OpportunityID, activity.UserID,
		activity.Type, activity.Subject, activity.Notes, activity.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert activity: %w", err)
	}
	return id, nil
}

func (r *ActivityRepository) ListViews(ctx context.Context) ([]models.ActivityView, error) {
	const query = `
		SELECT a.id, a.lead_id, a.opportunity_id, a.user_id,
		       a.activity_type, a.subject, a.notes, a.created_at,
		       COALESCE(u.name, '')
		FROM activities a
		LEFT JOIN users u ON a.user_id = u.id
		ORDER BY a.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var out []models.ActivityView
	for rows.Next() {
		var v models.ActivityView
		if err := rows.Scan(
			&v.ID, &v.LeadID, &v.OpportunityID, &v.UserID,
			&v.Type, &v.Subject, &v.Notes, &v.CreatedAt, &v.UserName,
		); err != nil {
			return nil, fmt.Errorf("scan activity view: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
