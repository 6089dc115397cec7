package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescrm/internal/models"
)

func opp(id int64, leadID *int64, stage string, value int64, status models.OpportunityStatus) models.OpportunityView {
	return models.OpportunityView{
		Opportunity: models.Opportunity{
			ID:     id,
			LeadID: leadID,
			Value:  decimal.NewFromInt(value),
			Status: status,
		},
		StageName: stage,
	}
}

func sourcedLead(id int64, source string) models.LeadView {
	return models.LeadView{
		Lead:       models.Lead{ID: id},
		SourceName: source,
	}
}

func TestComputeKPIs_Scenario(t *testing.T) {
	leads := []models.LeadView{sourcedLead(1, "Web"), sourcedLead(2, "Web"), sourcedLead(3, "Referral")}
	opps := []models.OpportunityView{
		opp(1, nil, "Closed", 5000, models.OpportunityStatusWon),
		opp(2, nil, "Proposal", 3000, models.OpportunityStatusOpen),
	}

	k := ComputeKPIs(leads, opps)
	assert.Equal(t, 3, k.Leads)
	assert.Equal(t, 2, k.Opportunities)
	assert.Equal(t, 1, k.Won)
	assert.True(t, k.PipelineValue.Equal(decimal.NewFromInt(8000)), "pipeline value = %s", k.PipelineValue)
	assert.InDelta(t, 66.7, k.ConversionRate, 0.05)
}

func TestComputeKPIs_LostExcludedFromPipeline(t *testing.T) {
	opps := []models.OpportunityView{
		opp(1, nil, "Closed", 1000, models.OpportunityStatusLost),
		opp(2, nil, "Proposal", 250, models.OpportunityStatusOpen),
	}

	k := ComputeKPIs(nil, opps)
	assert.True(t, k.PipelineValue.Equal(decimal.NewFromInt(250)))
}

func TestComputeKPIs_NoLeads(t *testing.T) {
	k := ComputeKPIs(nil, []models.OpportunityView{opp(1, nil, "Proposal", 100, models.OpportunityStatusOpen)})
	assert.Equal(t, 0.0, k.ConversionRate)
}

func TestWeeklyLeadSeries_MondayAnchored(t *testing.T) {
	mk := func(id int64, day time.Time) models.LeadView {
		return models.LeadView{Lead: models.Lead{ID: id, CreatedAt: day}}
	}
	// Wed 2025-03-05 and Sun 2025-03-09 share the week of Mon 2025-03-03;
	// Mon 2025-03-10 starts the next week.
	leads := []models.LeadView{
		mk(1, time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)),
		mk(2, time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC)),
		mk(3, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
	}

	series := WeeklyLeadSeries(leads)
	require.Len(t, series, 2)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), series[0].WeekStart)
	assert.Equal(t, 2, series[0].Count)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), series[1].WeekStart)
	assert.Equal(t, 1, series[1].Count)
}

func TestWeeklyLeadSeries_NoZeroFill(t *testing.T) {
	// Three weeks apart: the empty week in between must not be synthesized.
	leads := []models.LeadView{
		{Lead: models.Lead{ID: 1, CreatedAt: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)}},
		{Lead: models.Lead{ID: 2, CreatedAt: time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC)}},
	}
	series := WeeklyLeadSeries(leads)
	require.Len(t, series, 2)
}

func TestFunnel(t *testing.T) {
	leads := []models.LeadView{sourcedLead(1, ""), sourcedLead(2, ""), sourcedLead(3, "")}
	opps := []models.OpportunityView{
		opp(1, nil, "Closed", 0, models.OpportunityStatusWon),
		opp(2, nil, "Proposal", 0, models.OpportunityStatusOpen),
	}

	funnel := Funnel(leads, opps)
	require.Len(t, funnel, 3)
	assert.Equal(t, FunnelStep{Label: "Leads", Count: 3}, funnel[0])
	assert.Equal(t, FunnelStep{Label: "Opportunities", Count: 2}, funnel[1])
	assert.Equal(t, FunnelStep{Label: "Won", Count: 1}, funnel[2])
}

func TestPipelineByStage_Scenario(t *testing.T) {
	opps := []models.OpportunityView{
		opp(1, nil, "Proposal", 1000, models.OpportunityStatusOpen),
		opp(2, nil, "Proposal", 500, models.OpportunityStatusOpen),
		opp(3, nil, "Negotiation", 2000, models.OpportunityStatusOpen),
	}

	out := PipelineByStage(opps)
	require.Len(t, out, 2)
	assert.Equal(t, "Negotiation", out[0].Stage)
	assert.True(t, out[0].Value.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "Proposal", out[1].Stage)
	assert.True(t, out[1].Value.Equal(decimal.NewFromInt(1500)))
}

func TestPipelineByStage_UnresolvedStageOmitted(t *testing.T) {
	out := PipelineByStage([]models.OpportunityView{opp(1, nil, "", 1000, models.OpportunityStatusOpen)})
	assert.Empty(t, out)
}

func TestTopSourcesByConversion_Scenario(t *testing.T) {
	leads := []models.LeadView{
		sourcedLead(1, "Web"),
		sourcedLead(2, "Web"),
		sourcedLead(3, "Referral"),
	}
	l1, l2, l3 := int64(1), int64(2), int64(3)
	opps := []models.OpportunityView{
		opp(10, &l1, "Proposal", 0, models.OpportunityStatusOpen),
		opp(11, &l2, "Proposal", 0, models.OpportunityStatusOpen),
		opp(12, &l3, "Proposal", 0, models.OpportunityStatusOpen),
	}

	out := TopSourcesByConversion(opps, leads, TopSourcesLimit)
	require.Len(t, out, 2)
	assert.Equal(t, SourceConversion{Source: "Web", Opportunities: 2}, out[0])
	assert.Equal(t, SourceConversion{Source: "Referral", Opportunities: 1}, out[1])
}

func TestTopSourcesByConversion_NilLeadExcluded(t *testing.T) {
	leads := []models.LeadView{sourcedLead(1, "Web")}
	l1 := int64(1)
	opps := []models.OpportunityView{
		opp(10, &l1, "Proposal", 0, models.OpportunityStatusOpen),
		opp(11, nil, "Proposal", 0, models.OpportunityStatusOpen),
	}

	out := TopSourcesByConversion(opps, leads, TopSourcesLimit)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Opportunities)
}

func TestTopSourcesByConversion_LeadOutsideFilteredViewExcluded(t *testing.T) {
	// The join is restricted to leads present in the filtered view.
	leads := []models.LeadView{sourcedLead(1, "Web")}
	l2 := int64(2)
	opps := []models.OpportunityView{opp(10, &l2, "Proposal", 0, models.OpportunityStatusOpen)}

	out := TopSourcesByConversion(opps, leads, TopSourcesLimit)
	assert.Empty(t, out)
}

func TestTopSourcesByConversion_Limit(t *testing.T) {
	var leads []models.LeadView
	var opps []models.OpportunityView
	for i := int64(1); i <= 12; i++ {
		leads = append(leads, sourcedLead(i, "Source-"+string(rune('A'+i-1))))
		id := i
		opps = append(opps, opp(100+i, &id, "Proposal", 0, models.OpportunityStatusOpen))
	}

	out := TopSourcesByConversion(opps, leads, 10)
	assert.Len(t, out, 10)
}

func TestRecentActivities(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	var in []models.ActivityView
	for i := 0; i < 30; i++ {
		in = append(in, models.ActivityView{
			Activity: models.Activity{ID: int64(i + 1), CreatedAt: base.Add(time.Duration(i) * time.Hour)},
		})
	}

	out := RecentActivities(in, 25)
	require.Len(t, out, 25)
	assert.Equal(t, int64(30), out[0].ID)
	// Input order untouched.
	assert.Equal(t, int64(1), in[0].ID)
}
