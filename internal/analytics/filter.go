// Package analytics holds the filter/projection engine and the pure
// aggregation functions the dashboard is built from. Nothing in this package
// touches the store or mutates its inputs.
package analytics

import (
	"time"

	"salescrm/internal/models"
)

// Filter is a time window plus optional categorical dimensions. From and To
// are calendar dates; To is inclusive of the entire day. A zero time leaves
// that side of the window unbounded, an empty dimension matches everything.
type Filter struct {
	From   time.Time
	To     time.Time
	Owner  string
	Source string
}

// inWindow treats To as end-of-day: a timestamp at 23:59:59.999 on the To day
// is inside the window, midnight of the next day is not. Records without a
// date pass the window criterion.
func (f Filter) inWindow(ts time.Time) bool {
	if ts.IsZero() {
		return true
	}
	if !f.From.IsZero() && ts.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !ts.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// matchDimension passes records that lack the dimension (empty after a left
// join); only a present, different value excludes.
func matchDimension(want, have string) bool {
	return want == "" || have == "" || want == have
}

// FilterLeads projects the lead view through the filter. The input is never
// mutated; empty input projects to empty output.
func FilterLeads(leads []models.LeadView, f Filter) []models.LeadView {
	out := make([]models.LeadView, 0, len(leads))
	for _, l := range leads {
		if !f.inWindow(l.CreatedAt) {
			continue
		}
		if !matchDimension(f.Owner, l.OwnerName) || !matchDimension(f.Source, l.SourceName) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// FilterOpportunities projects the opportunity view. Opportunities carry no
// source dimension, so the source criterion never excludes them.
func FilterOpportunities(opps []models.OpportunityView, f Filter) []models.OpportunityView {
	out := make([]models.OpportunityView, 0, len(opps))
	for _, o := range opps {
		if !f.inWindow(o.CreatedAt) {
			continue
		}
		if !matchDimension(f.Owner, o.OwnerName) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// FilterActivities projects the activity view by window only; activities have
// neither an owner_name nor a source_name column.
func FilterActivities(activities []models.ActivityView, f Filter) []models.ActivityView {
	out := make([]models.ActivityView, 0, len(activities))
	for _, a := range activities {
		if !f.inWindow(a.CreatedAt) {
			continue
		}
		out = append(out, a)
	}
	return out
}
