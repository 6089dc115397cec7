package models

import "time"

// LeadStatus is the lead lifecycle state.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusQualified LeadStatus = "QUALIFIED"
	LeadStatusConverted LeadStatus = "CONVERTED"
)

type Lead struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	OwnerID     int64      `json:"owner_id"`
	SourceID    int64      `json:"source_id"`
	Status      LeadStatus `json:"status"`
	Score       int        `json:"lead_score"`
	CreatedAt   time.Time  `json:"created_at"`
	ConvertedAt *time.Time `json:"converted_at,omitempty"`
}

// LeadView is the lead row joined with its dimension tables. Empty
// SourceName/OwnerName means the reference was missing in the join.
type LeadView struct {
	Lead
	SourceName string `json:"source_name"`
	OwnerName  string `json:"owner_name"`
}
