package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"salescrm/internal/models"
)

// TopSourcesLimit caps the source-conversion ranking.
const TopSourcesLimit = 10

// KPIs are the headline numbers of the dashboard.
type KPIs struct {
	Leads          int             `json:"leads"`
	Opportunities  int             `json:"opportunities"`
	Won            int             `json:"won"`
	PipelineValue  decimal.Decimal `json:"pipeline_value"`
	ConversionRate float64         `json:"conversion_rate"`
}

// ComputeKPIs derives the headline numbers from filtered views. Pipeline value
// sums every opportunity that is not LOST; the conversion rate is 0 when there
// are no leads.
func ComputeKPIs(leads []models.LeadView, opps []models.OpportunityView) KPIs {
	k := KPIs{
		Leads:         len(leads),
		Opportunities: len(opps),
		PipelineValue: decimal.Zero,
	}
	for _, o := range opps {
		if o.Status == models.OpportunityStatusWon {
			k.Won++
		}
		if o.Status != models.OpportunityStatusLost {
			k.PipelineValue = k.PipelineValue.Add(o.Value)
		}
	}
	if k.Leads > 0 {
		k.ConversionRate = float64(k.Opportunities) / float64(k.Leads) * 100
	}
	return k
}

// WeekBucket is one point of the weekly lead series.
type WeekBucket struct {
	WeekStart time.Time `json:"week_start"`
	Count     int       `json:"count"`
}

// WeeklyLeadSeries buckets leads by created_at into Monday-anchored weeks
// (UTC). Weeks without leads are not synthesized; buckets come out in
// ascending week order.
func WeeklyLeadSeries(leads []models.LeadView) []WeekBucket {
	counts := make(map[time.Time]int)
	for _, l := range leads {
		if l.CreatedAt.IsZero() {
			continue
		}
		counts[weekStart(l.CreatedAt)]++
	}
	out := make([]WeekBucket, 0, len(counts))
	for ws, n := range counts {
		out = append(out, WeekBucket{WeekStart: ws, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out
}

// weekStart truncates to the Monday 00:00 UTC of the timestamp's week.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FunnelStep is one bar of the leads → opportunities → won progression.
type FunnelStep struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Funnel is non-increasing by domain construction, not enforced here.
func Funnel(leads []models.LeadView, opps []models.OpportunityView) []FunnelStep {
	won := 0
	for _, o := range opps {
		if o.Status == models.OpportunityStatusWon {
			won++
		}
	}
	return []FunnelStep{
		{Label: "Leads", Count: len(leads)},
		{Label: "Opportunities", Count: len(opps)},
		{Label: "Won", Count: won},
	}
}

// StageValue is the summed opportunity value for one stage.
type StageValue struct {
	Stage string          `json:"stage"`
	Value decimal.Decimal `json:"value"`
}

// PipelineByStage groups opportunities by current stage name and sums value,
// sorted by value descending (name ascending on ties, so identical inputs
// always rank identically). Stages with no opportunities are omitted, as are
// opportunities whose stage reference did not resolve.
func PipelineByStage(opps []models.OpportunityView) []StageValue {
	totals := make(map[string]decimal.Decimal)
	for _, o := range opps {
		if o.StageName == "" {
			continue
		}
		totals[o.StageName] = totals[o.StageName].Add(o.Value)
	}
	out := make([]StageValue, 0, len(totals))
	for stage, value := range totals {
		out = append(out, StageValue{Stage: stage, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Stage < out[j].Stage
	})
	return out
}

// SourceConversion counts opportunities attributed to one lead source.
type SourceConversion struct {
	Source        string `json:"source"`
	Opportunities int    `json:"opportunities"`
}

// TopSourcesByConversion joins opportunities to their originating lead within
// the filtered lead view and ranks lead sources by converted count, descending
// (name ascending on ties), capped at limit. Opportunities without a linked
// lead have no attributable source and are excluded; so are leads whose
// source reference did not resolve.
func TopSourcesByConversion(opps []models.OpportunityView, leads []models.LeadView, limit int) []SourceConversion {
	sourceByLead := make(map[int64]string, len(leads))
	for _, l := range leads {
		if l.SourceName != "" {
			sourceByLead[l.ID] = l.SourceName
		}
	}
	counts := make(map[string]int)
	for _, o := range opps {
		if o.LeadID == nil {
			continue
		}
		if source, ok := sourceByLead[*o.LeadID]; ok {
			counts[source]++
		}
	}
	out := make([]SourceConversion, 0, len(counts))
	for source, n := range counts {
		out = append(out, SourceConversion{Source: source, Opportunities: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Opportunities != out[j].Opportunities {
			return out[i].Opportunities > out[j].Opportunities
		}
		return out[i].Source < out[j].Source
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RecentActivities returns the newest activities first, capped at limit.
func RecentActivities(activities []models.ActivityView, limit int) []models.ActivityView {
	out := make([]models.ActivityView, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
