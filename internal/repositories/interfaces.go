package repositories

import (
	"context"
	"database/sql"
	"time"

	"salescrm/internal/models"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx. Write methods take it
// explicitly so the conversion transaction can flow through every store it
// touches.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs a unit of work atomically: either every write inside fn is
// durably applied or none are.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, q DBTX) error) error
}

type LeadStore interface {
	Create(ctx context.Context, q DBTX, lead *models.Lead) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Lead, error)
	// GetForUpdate locks the lead row for the duration of the transaction so
	// concurrent conversions of the same lead serialize.
	GetForUpdate(ctx context.Context, q DBTX, id int64) (*models.Lead, error)
	// MarkConverted flips the status to CONVERTED. Returns false when the lead
	// was already converted.
	MarkConverted(ctx context.Context, q DBTX, id int64, at time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status models.LeadStatus) error
	ListViews(ctx context.Context) ([]models.LeadView, error)
}

type OpportunityStore interface {
	Create(ctx context.Context, q DBTX, opp *models.Opportunity) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Opportunity, error)
	SetStage(ctx context.Context, q DBTX, id, stageID int64) error
	MarkClosed(ctx context.Context, q DBTX, id int64, status models.OpportunityStatus, at time.Time) error
	ListViews(ctx context.Context) ([]models.OpportunityView, error)
}

type StageHistoryStore interface {
	OpenEntries(ctx context.Context, q DBTX, opportunityID int64) ([]models.StageHistoryEntry, error)
	CountForOpportunity(ctx context.Context, q DBTX, opportunityID int64) (int, error)
	Insert(ctx context.Context, q DBTX, entry *models.StageHistoryEntry) (int64, error)
	CloseEntry(ctx context.Context, q DBTX, entryID int64, at time.Time) error
	ListForOpportunity(ctx context.Context, opportunityID int64) ([]models.StageHistoryEntry, error)
}

type StageStore interface {
	GetByID(ctx context.Context, id int64) (*models.Stage, error)
	List(ctx context.Context) ([]models.Stage, error)
}

type SourceStore interface {
	List(ctx context.Context) ([]models.Source, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type ActivityStore interface {
	Create(ctx context.Context, q DBTX, activity *models.Activity) (int64, error)
	ListViews(ctx context.Context) ([]models.ActivityView, error)
}
