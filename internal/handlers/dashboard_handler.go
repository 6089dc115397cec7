package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/internal/export"
	"salescrm/internal/services"
)

type DashboardHandler struct {
	Reports    *services.ReportService
	PDF        *export.SummaryGenerator
	WindowDays int
}

func NewDashboardHandler(reports *services.ReportService, pdf *export.SummaryGenerator, windowDays int) *DashboardHandler {
	return &DashboardHandler{Reports: reports, PDF: pdf, WindowDays: windowDays}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	f, ok := parseFilter(c, h.WindowDays)
	if !ok {
		return
	}
	report, err := h.Reports.Dashboard(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *DashboardHandler) ExportLeadsCSV(c *gin.Context) {
	f, ok := parseFilter(c, h.WindowDays)
	if !ok {
		return
	}
	leads, err := h.Reports.FilteredLeads(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="leads_filtered.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteLeadsCSV(c.Writer, leads); err != nil {
		respondError(c, err)
	}
}

func (h *DashboardHandler) ExportOpportunitiesCSV(c *gin.Context) {
	f, ok := parseFilter(c, h.WindowDays)
	if !ok {
		return
	}
	opps, err := h.Reports.FilteredOpportunities(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="opps_filtered.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteOpportunitiesCSV(c.Writer, opps); err != nil {
		respondError(c, err)
	}
}

func (h *DashboardHandler) PipelinePDF(c *gin.Context) {
	f, ok := parseFilter(c, h.WindowDays)
	if !ok {
		return
	}
	report, err := h.Reports.Dashboard(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="pipeline_summary.pdf"`)
	c.Header("Content-Type", "application/pdf")
	if err := h.PDF.WritePipelineSummary(c.Writer, report, f.From, f.To); err != nil {
		respondError(c, err)
	}
}
