package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"salescrm/internal/analytics"
	"salescrm/internal/metrics"
	"salescrm/internal/models"
)

const recentActivitiesLimit = 25

// DashboardReport is everything one dashboard refresh needs, computed from a
// single snapshot so the numbers are mutually consistent.
type DashboardReport struct {
	KPIs             analytics.KPIs               `json:"kpis"`
	WeeklyLeads      []analytics.WeekBucket       `json:"weekly_leads"`
	Funnel           []analytics.FunnelStep       `json:"funnel"`
	PipelineByStage  []analytics.StageValue       `json:"pipeline_by_stage"`
	TopSources       []analytics.SourceConversion `json:"top_sources"`
	RecentActivities []models.ActivityView        `json:"recent_activities"`
	SnapshotAt       time.Time                    `json:"snapshot_at"`
}

// ReportService glues the snapshot source, the filter engine and the
// aggregators together. It performs no writes.
type ReportService struct {
	snapshots SnapshotSource
	log       *zap.Logger
}

func NewReportService(snapshots SnapshotSource, log *zap.Logger) *ReportService {
	return &ReportService{snapshots: snapshots, log: log}
}

func (s *ReportService) Dashboard(ctx context.Context, f analytics.Filter) (*DashboardReport, error) {
	start := time.Now()
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	leads := analytics.FilterLeads(snap.Leads, f)
	opps := analytics.FilterOpportunities(snap.Opportunities, f)
	activities := analytics.FilterActivities(snap.Activities, f)

	report := &DashboardReport{
		KPIs:             analytics.ComputeKPIs(leads, opps),
		WeeklyLeads:      analytics.WeeklyLeadSeries(leads),
		Funnel:           analytics.Funnel(leads, opps),
		PipelineByStage:  analytics.PipelineByStage(opps),
		TopSources:       analytics.TopSourcesByConversion(opps, leads, analytics.TopSourcesLimit),
		RecentActivities: analytics.RecentActivities(activities, recentActivitiesLimit),
		SnapshotAt:       snap.LoadedAt,
	}
	metrics.ReportBuildSeconds.Observe(time.Since(start).Seconds())
	s.log.Debug("dashboard report built",
		zap.Int("leads", len(leads)),
		zap.Int("opportunities", len(opps)))
	return report, nil
}

// FilteredLeads backs the leads CSV export.
func (s *ReportService) FilteredLeads(ctx context.Context, f analytics.Filter) ([]models.LeadView, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.FilterLeads(snap.Leads, f), nil
}

// FilteredOpportunities backs the opportunities CSV export and the PDF summary.
func (s *ReportService) FilteredOpportunities(ctx context.Context, f analytics.Filter) ([]models.OpportunityView, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.FilterOpportunities(snap.Opportunities, f), nil
}
