package models

import "time"

// Snapshot is a point-in-time read of every collection the analytics run on.
// Analytics never write back to it.
type Snapshot struct {
	Leads         []LeadView
	Opportunities []OpportunityView
	Activities    []ActivityView
	Sources       []Source
	Users         []User
	Stages        []Stage
	LoadedAt      time.Time
}
