package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"salescrm/internal/services"
)

// SummaryGenerator renders the one-page pipeline summary PDF.
type SummaryGenerator struct {
	fontName string
}

func NewSummaryGenerator() *SummaryGenerator {
	return &SummaryGenerator{fontName: "Helvetica"}
}

// WritePipelineSummary renders the dashboard report into w.
func (g *SummaryGenerator) WritePipelineSummary(w io.Writer, report *services.DashboardReport, from, to time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Pipeline summary", false)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.Cell(0, 10, "Sales pipeline summary")
	pdf.Ln(8)

	pdf.SetFont(g.fontName, "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Window: %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Snapshot: %s", report.SnapshotAt.UTC().Format(time.RFC3339)))
	pdf.Ln(10)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.Cell(0, 8, "KPIs")
	pdf.Ln(7)
	pdf.SetFont(g.fontName, "", 10)
	k := report.KPIs
	for _, line := range []string{
		fmt.Sprintf("New leads: %d", k.Leads),
		fmt.Sprintf("Opportunities: %d", k.Opportunities),
		fmt.Sprintf("Won: %d", k.Won),
		fmt.Sprintf("Pipeline value: %s", k.PipelineValue.StringFixed(2)),
		fmt.Sprintf("Conversion rate: %.1f%%", k.ConversionRate),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(5)
	}
	pdf.Ln(5)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.Cell(0, 8, "Pipeline value by stage")
	pdf.Ln(7)
	pdf.SetFont(g.fontName, "", 10)
	if len(report.PipelineByStage) == 0 {
		pdf.Cell(0, 6, "No opportunities in this period.")
		pdf.Ln(5)
	}
	for _, sv := range report.PipelineByStage {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %s", sv.Stage, sv.Value.StringFixed(2)))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.Cell(0, 8, "Top sources by conversion")
	pdf.Ln(7)
	pdf.SetFont(g.fontName, "", 10)
	if len(report.TopSources) == 0 {
		pdf.Cell(0, 6, "No conversions in this period.")
		pdf.Ln(5)
	}
	for _, sc := range report.TopSources {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %d", sc.Source, sc.Opportunities))
		pdf.Ln(5)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pipeline summary: %w", err)
	}
	return nil
}
