package models

import "time"

// Stage is configuration data. Order defines the canonical progression for
// display; it is not enforced as a transition guard.
type Stage struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"stage_order"`
}

// StageHistoryEntry records an opportunity occupying a stage. A nil LeftAt
// means the opportunity is currently in this stage.
type StageHistoryEntry struct {
	ID            int64      `json:"id"`
	OpportunityID int64      `json:"opportunity_id"`
	StageID       int64      `json:"stage_id"`
	EnteredAt     time.Time  `json:"entered_at"`
	LeftAt        *time.Time `json:"left_at,omitempty"`
}
