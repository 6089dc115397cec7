package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salescrm/internal/analytics"
	"salescrm/internal/models"
)

type stubSnapshotSource struct {
	loads int
	snap  *models.Snapshot
	err   error
}

func (s *stubSnapshotSource) Load(ctx context.Context) (*models.Snapshot, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.snap, nil
}

func testSnapshot() *models.Snapshot {
	day := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	leadID := int64(1)
	return &models.Snapshot{
		Leads: []models.LeadView{
			{Lead: models.Lead{ID: 1, CreatedAt: day}, SourceName: "Web", OwnerName: "Alice Rep"},
			{Lead: models.Lead{ID: 2, CreatedAt: day}, SourceName: "Web", OwnerName: "Bob Rep"},
			{Lead: models.Lead{ID: 3, CreatedAt: day}, SourceName: "Referral", OwnerName: "Alice Rep"},
		},
		Opportunities: []models.OpportunityView{
			{
				Opportunity: models.Opportunity{ID: 10, LeadID: &leadID, Value: decimal.NewFromInt(5000), Status: models.OpportunityStatusWon, CreatedAt: day},
				StageName:   "Closed", OwnerName: "Alice Rep",
			},
			{
				Opportunity: models.Opportunity{ID: 11, Value: decimal.NewFromInt(3000), Status: models.OpportunityStatusOpen, CreatedAt: day},
				StageName:   "Proposal", OwnerName: "Bob Rep",
			},
		},
		Activities: []models.ActivityView{
			{Activity: models.Activity{ID: 1, CreatedAt: day}, UserName: "Alice Rep"},
		},
		LoadedAt: day,
	}
}

func reportWindow() analytics.Filter {
	return analytics.Filter{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestReportService_Dashboard(t *testing.T) {
	src := &stubSnapshotSource{snap: testSnapshot()}
	svc := NewReportService(src, zap.NewNop())

	report, err := svc.Dashboard(context.Background(), reportWindow())
	require.NoError(t, err)

	assert.Equal(t, 3, report.KPIs.Leads)
	assert.Equal(t, 2, report.KPIs.Opportunities)
	assert.Equal(t, 1, report.KPIs.Won)
	assert.True(t, report.KPIs.PipelineValue.Equal(decimal.NewFromInt(8000)))
	assert.InDelta(t, 66.7, report.KPIs.ConversionRate, 0.05)

	require.Len(t, report.Funnel, 3)
	assert.Equal(t, 3, report.Funnel[0].Count)

	require.Len(t, report.PipelineByStage, 2)
	assert.Equal(t, "Closed", report.PipelineByStage[0].Stage)

	require.Len(t, report.TopSources, 1)
	assert.Equal(t, "Web", report.TopSources[0].Source)

	require.Len(t, report.RecentActivities, 1)
	assert.Equal(t, report.SnapshotAt, testSnapshot().LoadedAt)
}

func TestReportService_Dashboard_OwnerFilter(t *testing.T) {
	src := &stubSnapshotSource{snap: testSnapshot()}
	svc := NewReportService(src, zap.NewNop())

	f := reportWindow()
	f.Owner = "Alice Rep"
	report, err := svc.Dashboard(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 2, report.KPIs.Leads)
	assert.Equal(t, 1, report.KPIs.Opportunities)
	assert.True(t, report.KPIs.PipelineValue.Equal(decimal.NewFromInt(5000)))
}

func TestReportService_Dashboard_SnapshotError(t *testing.T) {
	src := &stubSnapshotSource{err: errors.New("db down")}
	svc := NewReportService(src, zap.NewNop())

	_, err := svc.Dashboard(context.Background(), reportWindow())
	assert.Error(t, err)
}

func TestCachedSnapshotSource_TTL(t *testing.T) {
	src := &stubSnapshotSource{snap: testSnapshot()}
	cache := NewCachedSnapshotSource(src, time.Minute, zap.NewNop())

	current := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	_, err := cache.Load(context.Background())
	require.NoError(t, err)
	_, err = cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.loads, "second load within TTL must be served from cache")

	current = current.Add(2 * time.Minute)
	_, err = cache.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.loads)
}

func TestCachedSnapshotSource_ServesStaleOnRefreshError(t *testing.T) {
	src := &stubSnapshotSource{snap: testSnapshot()}
	cache := NewCachedSnapshotSource(src, time.Minute, zap.NewNop())

	current := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	snap, err := cache.Load(context.Background())
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	src.err = errors.New("db down")
	stale, err := cache.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, stale)
}
