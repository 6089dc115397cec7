package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"salescrm/internal/metrics"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

// SnapshotSource produces the point-in-time read every analytics query runs
// on. Implementations decide the refresh policy; the aggregators stay pure.
type SnapshotSource interface {
	Load(ctx context.Context) (*models.Snapshot, error)
}

// StoreSnapshotSource reads every collection straight from the store.
type StoreSnapshotSource struct {
	leads      repositories.LeadStore
	opps       repositories.OpportunityStore
	activities repositories.ActivityStore
	sources    repositories.SourceStore
	users      repositories.UserStore
	stages     repositories.StageStore
	now        func() time.Time
}

func NewStoreSnapshotSource(
	leads repositories.LeadStore,
	opps repositories.OpportunityStore,
	activities repositories.ActivityStore,
	sources repositories.SourceStore,
	users repositories.UserStore,
	stages repositories.StageStore,
) *StoreSnapshotSource {
	return &StoreSnapshotSource{
		leads:      leads,
		opps:       opps,
		activities: activities,
		sources:    sources,
		users:      users,
		stages:     stages,
		now:        time.Now,
	}
}

func (s *StoreSnapshotSource) Load(ctx context.Context) (*models.Snapshot, error) {
	snap := &models.Snapshot{LoadedAt: s.now()}
	var err error
	if snap.Leads, err = s.leads.ListViews(ctx); err != nil {
		return nil, err
	}
	if snap.Opportunities, err = s.opps.ListViews(ctx); err != nil {
		return nil, err
	}
	if snap.Activities, err = s.activities.ListViews(ctx); err != nil {
		return nil, err
	}
	if snap.Sources, err = s.sources.List(ctx); err != nil {
		return nil, err
	}
	if snap.Users, err = s.users.List(ctx); err != nil {
		return nil, err
	}
	if snap.Stages, err = s.stages.List(ctx); err != nil {
		return nil, err
	}
	metrics.SnapshotRefreshes.Inc()
	return snap, nil
}

// CachedSnapshotSource decorates another source with a TTL. Dashboard queries
// tolerate staleness up to the caching interval; that is a feature, not a
// correctness bug.
type CachedSnapshotSource struct {
	src SnapshotSource
	ttl time.Duration
	now func() time.Time
	log *zap.Logger

	mu        sync.Mutex
	cached    *models.Snapshot
	fetchedAt time.Time
}

func NewCachedSnapshotSource(src SnapshotSource, ttl time.Duration, log *zap.Logger) *CachedSnapshotSource {
	return &CachedSnapshotSource{src: src, ttl: ttl, now: time.Now, log: log}
}

func (c *CachedSnapshotSource) Load(ctx context.Context) (*models.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.cached, nil
	}
	snap, err := c.src.Load(ctx)
	if err != nil {
		// Serve the stale snapshot rather than a broken dashboard, if we have one.
		if c.cached != nil {
			c.log.Warn("snapshot refresh failed, serving stale data", zap.Error(err))
			return c.cached, nil
		}
		return nil, err
	}
	c.cached = snap
	c.fetchedAt = c.now()
	return snap, nil
}
