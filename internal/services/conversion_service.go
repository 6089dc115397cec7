package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"salescrm/internal/domain"
	"salescrm/internal/metrics"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

// ErrNegativeValue rejects conversion requests with a negative opportunity value.
var ErrNegativeValue = errors.New("opportunity value must be non-negative")

// ConversionService performs the atomic lead → opportunity conversion: status
// flip, opportunity creation and initial history entry all succeed or all roll
// back. Conversion is not idempotent; retries are the caller's business and
// must re-check the AlreadyConverted precondition.
type ConversionService struct {
	txm         repositories.TxManager
	leads       repositories.LeadStore
	opps        repositories.OpportunityStore
	users       repositories.UserStore
	stages      repositories.StageStore
	transitions *StageTransitionService
	log         *zap.Logger
}

func NewConversionService(
	txm repositories.TxManager,
	leads repositories.LeadStore,
	opps repositories.OpportunityStore,
	users repositories.UserStore,
	stages repositories.StageStore,
	transitions *StageTransitionService,
	log *zap.Logger,
) *ConversionService {
	return &ConversionService{
		txm:         txm,
		leads:       leads,
		opps:        opps,
		users:       users,
		stages:      stages,
		transitions: transitions,
		log:         log,
	}
}

// Convert returns the id of the opportunity created for the lead.
func (s *ConversionService) Convert(ctx context.Context, leadID, ownerID, initialStageID int64, value decimal.Decimal, at time.Time) (int64, error) {
	if value.IsNegative() {
		return 0, ErrNegativeValue
	}
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return 0, err
	}
	if _, err := s.stages.GetByID(ctx, initialStageID); err != nil {
		return 0, err
	}

	var opportunityID int64
	err := s.txm.WithinTransaction(ctx, func(ctx context.Context, q repositories.DBTX) error {
		// Row lock serializes concurrent conversions of the same lead: the
		// loser blocks here and then observes CONVERTED.
		lead, err := s.leads.GetForUpdate(ctx, q, leadID)
		if err != nil {
			return err
		}
		if lead.Status == models.LeadStatusConverted {
			return domain.AlreadyConverted(leadID)
		}
		converted, err := s.leads.MarkConverted(ctx, q, leadID, at)
		if err != nil {
			return err
		}
		if !converted {
			return domain.AlreadyConverted(leadID)
		}
		opportunityID, err = s.opps.Create(ctx, q, &models.Opportunity{
			LeadID:    &leadID,
			OwnerID:   ownerID,
			StageID:   initialStageID,
			Value:     value,
			Status:    models.OpportunityStatusOpen,
			CreatedAt: at,
		})
		if err != nil {
			return err
		}
		return s.transitions.CreateInitial(ctx, q, opportunityID, initialStageID, at)
	})
	if err != nil {
		// Precondition failures keep their kind; anything else that happened
		// inside the transaction surfaces as ConversionFailed.
		if domain.IsKind(err, domain.KindAlreadyConverted) || domain.IsKind(err, domain.KindNotFound) {
			metrics.ConversionsTotal.WithLabelValues("rejected").Inc()
			return 0, err
		}
		metrics.ConversionsTotal.WithLabelValues("failed").Inc()
		s.log.Error("conversion failed", zap.Int64("lead_id", leadID), zap.Error(err))
		return 0, domain.ConversionFailed(leadID, err)
	}

	metrics.ConversionsTotal.WithLabelValues("converted").Inc()
	s.log.Info("lead converted",
		zap.Int64("lead_id", leadID),
		zap.Int64("opportunity_id", opportunityID),
		zap.String("value", value.String()))
	return opportunityID, nil
}
