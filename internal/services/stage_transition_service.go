package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"salescrm/internal/domain"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

// StageTransitionService owns every mutation of an opportunity's stage and
// status. The in-transaction primitives (Advance, CreateInitial, Close) write
// through the caller's DBTX and never commit on their own; the *Opportunity
// wrappers run them in their own transaction for the HTTP surface.
type StageTransitionService struct {
	txm     repositories.TxManager
	history repositories.StageHistoryStore
	opps    repositories.OpportunityStore
	stages  repositories.StageStore
	log     *zap.Logger
}

func NewStageTransitionService(
	txm repositories.TxManager,
	history repositories.StageHistoryStore,
	opps repositories.OpportunityStore,
	stages repositories.StageStore,
	log *zap.Logger,
) *StageTransitionService {
	return &StageTransitionService{txm: txm, history: history, opps: opps, stages: stages, log: log}
}

// CreateInitial writes the first history entry for a freshly created
// opportunity. Fails if the opportunity already has history.
func (s *StageTransitionService) CreateInitial(ctx context.Context, q repositories.DBTX, opportunityID, stageID int64, at time.Time) error {
	count, err := s.history.CountForOpportunity(ctx, q, opportunityID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.InvariantViolation(opportunityID,
			fmt.Errorf("initial stage entry requested but %d entries already exist", count))
	}
	_, err = s.history.Insert(ctx, q, &models.StageHistoryEntry{
		OpportunityID: opportunityID,
		StageID:       stageID,
		EnteredAt:     at,
	})
	return err
}

// Advance closes the currently open history entry, opens one for newStage and
// moves the opportunity's denormalized stage pointer. Any configured stage is
// a legal target; stage order is advisory, not a guard. Zero or multiple open
// entries mean the history is corrupt and the operation fails.
func (s *StageTransitionService) Advance(ctx context.Context, q repositories.DBTX, opportunityID, newStageID int64, at time.Time) error {
	open, err := s.history.OpenEntries(ctx, q, opportunityID)
	if err != nil {
		return err
	}
	if len(open) != 1 {
		return domain.InvariantViolation(opportunityID,
			fmt.Errorf("expected exactly one open stage entry, found %d", len(open)))
	}
	if err := s.history.CloseEntry(ctx, q, open[0].ID, at); err != nil {
		return err
	}
	if _, err := s.history.Insert(ctx, q, &models.StageHistoryEntry{
		OpportunityID: opportunityID,
		StageID:       newStageID,
		EnteredAt:     at,
	}); err != nil {
		return err
	}
	return s.opps.SetStage(ctx, q, opportunityID, newStageID)
}

// Close ends the opportunity: stamps status and closed_at, and closes out the
// open history entry, so a WON/LOST opportunity carries no open entry.
func (s *StageTransitionService) Close(ctx context.Context, q repositories.DBTX, opportunityID int64, status models.OpportunityStatus, at time.Time) error {
	if !status.Terminal() {
		return fmt.Errorf("close requires a terminal status, got %q", status)
	}
	open, err := s.history.OpenEntries(ctx, q, opportunityID)
	if err != nil {
		return err
	}
	if len(open) != 1 {
		return domain.InvariantViolation(opportunityID,
			fmt.Errorf("expected exactly one open stage entry, found %d", len(open)))
	}
	if err := s.history.CloseEntry(ctx, q, open[0].ID, at); err != nil {
		return err
	}
	return s.opps.MarkClosed(ctx, q, opportunityID, status, at)
}

// AdvanceOpportunity is the transactional wrapper behind the advance endpoint.
func (s *StageTransitionService) AdvanceOpportunity(ctx context.Context, opportunityID, newStageID int64, at time.Time) error {
	if _, err := s.stages.GetByID(ctx, newStageID); err != nil {
		return err
	}
	opp, err := s.opps.GetByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if opp.Status.Terminal() {
		return fmt.Errorf("opportunity %d is already %s", opportunityID, opp.Status)
	}
	err = s.txm.WithinTransaction(ctx, func(ctx context.Context, q repositories.DBTX) error {
		return s.Advance(ctx, q, opportunityID, newStageID, at)
	})
	if err != nil {
		return err
	}
	s.log.Info("opportunity advanced",
		zap.Int64("opportunity_id", opportunityID),
		zap.Int64("stage_id", newStageID))
	return nil
}

// CloseOpportunity is the transactional wrapper behind the close endpoint.
func (s *StageTransitionService) CloseOpportunity(ctx context.Context, opportunityID int64, status models.OpportunityStatus, at time.Time) error {
	opp, err := s.opps.GetByID(ctx, opportunityID)
	if err != nil {
		return err
	}
	if opp.Status.Terminal() {
		return fmt.Errorf("opportunity %d is already %s", opportunityID, opp.Status)
	}
	err = s.txm.WithinTransaction(ctx, func(ctx context.Context, q repositories.DBTX) error {
		return s.Close(ctx, q, opportunityID, status, at)
	})
	if err != nil {
		return err
	}
	s.log.Info("opportunity closed",
		zap.Int64("opportunity_id", opportunityID),
		zap.String("status", string(status)))
	return nil
}

// History returns the full stage history of one opportunity.
func (s *StageTransitionService) History(ctx context.Context, opportunityID int64) ([]models.StageHistoryEntry, error) {
	if _, err := s.opps.GetByID(ctx, opportunityID); err != nil {
		return nil, err
	}
	return s.history.ListForOpportunity(ctx, opportunityID)
}
