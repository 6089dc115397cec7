// Package export serializes filtered views and reports for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"salescrm/internal/models"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// WriteLeadsCSV writes the filtered lead view, one row per lead.
func WriteLeadsCSV(w io.Writer, leads []models.LeadView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "name", "email", "phone", "owner_name", "source_name",
		"status", "lead_score", "created_at", "converted_at",
	}); err != nil {
		return err
	}
	for _, l := range leads {
		if err := cw.Write([]string{
			strconv.FormatInt(l.ID, 10), l.Name, l.Email, l.Phone,
			l.OwnerName, l.SourceName, string(l.Status),
			strconv.Itoa(l.Score), formatTime(l.CreatedAt), formatTimePtr(l.ConvertedAt),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOpportunitiesCSV writes the filtered opportunity view.
func WriteOpportunitiesCSV(w io.Writer, opps []models.OpportunityView) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "lead_id", "owner_name", "stage_name", "value",
		"status", "created_at", "closed_at",
	}); err != nil {
		return err
	}
	for _, o := range opps {
		leadID := ""
		if o.LeadID != nil {
			leadID = strconv.FormatInt(*o.LeadID, 10)
		}
		if err := cw.Write([]string{
			strconv.FormatInt(o.ID, 10), leadID, o.OwnerName, o.StageName,
			o.Value.String(), string(o.Status),
			formatTime(o.CreatedAt), formatTimePtr(o.ClosedAt),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
