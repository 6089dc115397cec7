package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OpportunityStatus string

const (
	OpportunityStatusOpen OpportunityStatus = "OPEN"
	OpportunityStatusWon  OpportunityStatus = "WON"
	OpportunityStatusLost OpportunityStatus = "LOST"
)

// Terminal reports whether the status closes the opportunity.
func (s OpportunityStatus) Terminal() bool {
	return s == OpportunityStatusWon || s == OpportunityStatusLost
}

// Opportunity is a tracked potential sale. LeadID is nil for opportunities
// created without an originating lead.
type Opportunity struct {
	ID        int64             `json:"id"`
	LeadID    *int64            `json:"lead_id,omitempty"`
	OwnerID   int64             `json:"owner_id"`
	StageID   int64             `json:"stage_id"`
	Value     decimal.Decimal   `json:"value"`
	Status    OpportunityStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	ClosedAt  *time.Time        `json:"closed_at,omitempty"`
}

type OpportunityView struct {
	Opportunity
	StageName string `json:"stage_name"`
	OwnerName string `json:"owner_name"`
}
