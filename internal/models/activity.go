package models

import "time"

type Activity struct {
	ID            int64     `json:"id"`
	LeadID        *int64    `json:"lead_id,omitempty"`
	OpportunityID *int64    `json:"opportunity_id,omitempty"`
	UserID        int64     `json:"user_id"`
	Type          string    `json:"activity_type"`
	Subject       string    `json:"subject"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type ActivityView struct {
	Activity
	UserName string `json:"user_name"`
}
