package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"salescrm/internal/domain"
	"salescrm/internal/models"
)

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, q DBTX, lead *models.Lead) (int64, error) {
	const query = `
		INSERT INTO leads (name, email, phone, owner_id, source_id, status, lead_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := q.QueryRowContext(ctx, query,
		lead.Name, lead.Email, lead.Phone, lead.OwnerID, lead.SourceID,
		lead.Status, lead.Score, lead.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}
	return id, nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	const query = `
		SELECT id, name, email, phone, owner_id, source_id, status, lead_score, created_at, converted_at
		FROM leads
		WHERE id = $1
	`
	return scanLead(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *LeadRepository) GetForUpdate(ctx context.Context, q DBTX, id int64) (*models.Lead, error) {
	const query = `
		SELECT id, name, email, phone, owner_id, source_id, status, lead_score, created_at, converted_at
		FROM leads
		WHERE id = $1
		FOR UPDATE
	`
	return scanLead(q.QueryRowContext(ctx, query, id), id)
}

func scanLead(row *sql.Row, id int64) (*models.Lead, error) {
	lead := &models.Lead{}
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.OwnerID,
		&lead.SourceID, &lead.Status, &lead.Score, &lead.CreatedAt, &lead.ConvertedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("lead", id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan lead: %w", err)
	}
	return lead, nil
}

func (r *LeadRepository) MarkConverted(ctx context.Context, q DBTX, id int64, at time.Time) (bool, error) {
	// The status guard makes the flip happen at most once even under
	// concurrent transactions.
	const query = `
		UPDATE leads
		SET status = $1, converted_at = $2
		WHERE id = $3 AND status <> $1
	`
	res, err := q.ExecContext(ctx, query, models.LeadStatusConverted, at, id)
	if err != nil {
		return false, fmt.Errorf("mark lead converted: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark lead converted: %w", err)
	}
	return affected == 1, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id int64, status models.LeadStatus) error {
	const query = `UPDATE leads SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.NotFound("lead", id)
	}
	return nil
}

func (r *LeadRepository) ListViews(ctx context.Context) ([]models.LeadView, error) {
	const query = `
		SELECT l.id, l.name, l.email, l.phone, l.owner_id, l.source_id,
		       l.status, l.lead_score, l.created_at, l.converted_at,
		       COALESCE(s.name, ''), COALESCE(u.name, '')
		FROM leads l
		LEFT JOIN sources s ON l.source_id = s.id
		LEFT JOIN users u ON l.owner_id = u.id
		ORDER BY l.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []models.LeadView
	for rows.Next() {
		var v models.LeadView
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Email, &v.Phone, &v.OwnerID, &v.SourceID,
			&v.Status, &v.Score, &v.CreatedAt, &v.ConvertedAt,
			&v.SourceName, &v.OwnerName,
		); err != nil {
			return nil, fmt.Errorf("scan lead view: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
