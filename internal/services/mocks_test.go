package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

// fakeTxManager runs the unit of work directly and records whether it was
// rolled back (fn returned an error).
type fakeTxManager struct {
	rolledBack bool
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, q repositories.DBTX) error) error {
	if err := fn(ctx, nil); err != nil {
		f.rolledBack = true
		return err
	}
	return nil
}

type MockLeadStore struct {
	mock.Mock
}

func (m *MockLeadStore) Create(ctx context.Context, q repositories.DBTX, lead *models.Lead) (int64, error) {
	args := m.Called(ctx, q, lead)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadStore) GetByID(ctx context.Context, id int64) (*models.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadStore) GetForUpdate(ctx context.Context, q repositories.DBTX, id int64) (*models.Lead, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

func (m *MockLeadStore) MarkConverted(ctx context.Context, q repositories.DBTX, id int64, at time.Time) (bool, error) {
	args := m.Called(ctx, q, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeadStore) UpdateStatus(ctx context.Context, id int64, status models.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadStore) ListViews(ctx context.Context) ([]models.LeadView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeadView), args.Error(1)
}

type MockOpportunityStore struct {
	mock.Mock
}

func (m *MockOpportunityStore) Create(ctx context.Context, q repositories.DBTX, opp *models.Opportunity) (int64, error) {
	args := m.Called(ctx, q, opp)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOpportunityStore) GetByID(ctx context.Context, id int64) (*models.Opportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Opportunity), args.Error(1)
}

func (m *MockOpportunityStore) SetStage(ctx context.Context, q repositories.DBTX, id, stageID int64) error {
	args := m.Called(ctx, q, id, stageID)
	return args.Error(0)
}

func (m *MockOpportunityStore) MarkClosed(ctx context.Context, q repositories.DBTX, id int64, status models.OpportunityStatus, at time.Time) error {
	args := m.Called(ctx, q, id, status, at)
	return args.Error(0)
}

func (m *MockOpportunityStore) ListViews(ctx context.Context) ([]models.OpportunityView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OpportunityView), args.Error(1)
}

type MockStageHistoryStore struct {
	mock.Mock
}

func (m *MockStageHistoryStore) OpenEntries(ctx context.Context, q repositories.DBTX, opportunityID int64) ([]models.StageHistoryEntry, error) {
	args := m.Called(ctx, q, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StageHistoryEntry), args.Error(1)
}

func (m *MockStageHistoryStore) CountForOpportunity(ctx context.Context, q repositories.DBTX, opportunityID int64) (int, error) {
	args := m.Called(ctx, q, opportunityID)
	return args.Int(0), args.Error(1)
}

func (m *MockStageHistoryStore) Insert(ctx context.Context, q repositories.DBTX, entry *models.StageHistoryEntry) (int64, error) {
	args := m.Called(ctx, q, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStageHistoryStore) CloseEntry(ctx context.Context, q repositories.DBTX, entryID int64, at time.Time) error {
	args := m.Called(ctx, q, entryID, at)
	return args.Error(0)
}

func (m *MockStageHistoryStore) ListForOpportunity(ctx context.Context, opportunityID int64) ([]models.StageHistoryEntry, error) {
	args := m.Called(ctx, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StageHistoryEntry), args.Error(1)
}

type MockStageStore struct {
	mock.Mock
}

func (m *MockStageStore) GetByID(ctx context.Context, id int64) (*models.Stage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stage), args.Error(1)
}

func (m *MockStageStore) List(ctx context.Context) ([]models.Stage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Stage), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}
