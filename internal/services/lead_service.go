package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

// ErrInvalidTransition rejects manual lead status moves outside the table below.
var ErrInvalidTransition = errors.New("invalid status transition")

// leadStatusTransitions lists the legal manual moves. CONVERTED is never a
// manual target; only the conversion orchestrator sets it.
var leadStatusTransitions = map[models.LeadStatus]map[models.LeadStatus]bool{
	models.LeadStatusNew:       {models.LeadStatusContacted: true, models.LeadStatusQualified: true},
	models.LeadStatusContacted: {models.LeadStatusQualified: true},
	models.LeadStatusQualified: {},
	models.LeadStatusConverted: {},
}

func canTransition(current, to models.LeadStatus) bool {
	nexts, ok := leadStatusTransitions[current]
	if !ok {
		return false
	}
	return nexts[to]
}

type LeadService struct {
	txm   repositories.TxManager
	leads repositories.LeadStore
	log   *zap.Logger
}

func NewLeadService(txm repositories.TxManager, leads repositories.LeadStore, log *zap.Logger) *LeadService {
	return &LeadService{txm: txm, leads: leads, log: log}
}

// Create takes in a new lead through the same transactional primitive the
// conversion uses.
func (s *LeadService) Create(ctx context.Context, lead *models.Lead) error {
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	if lead.Score < 0 || lead.Score > 100 {
		return errors.New("lead score must be between 0 and 100")
	}
	err := s.txm.WithinTransaction(ctx, func(ctx context.Context, q repositories.DBTX) error {
		id, err := s.leads.Create(ctx, q, lead)
		if err != nil {
			return err
		}
		lead.ID = id
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("lead created", zap.Int64("lead_id", lead.ID), zap.String("status", string(lead.Status)))
	return nil
}

func (s *LeadService) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	return s.leads.GetByID(ctx, id)
}

func (s *LeadService) ListViews(ctx context.Context) ([]models.LeadView, error) {
	return s.leads.ListViews(ctx)
}

func (s *LeadService) UpdateStatus(ctx context.Context, id int64, to models.LeadStatus) error {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canTransition(lead.Status, to) {
		return ErrInvalidTransition
	}
	return s.leads.UpdateStatus(ctx, id, to)
}
