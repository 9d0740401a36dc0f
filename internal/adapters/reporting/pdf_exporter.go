package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
)

// maxTableRows caps the threat and device tables.
const maxTableRows = 20

// PDFExporter exports reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ContentType is the MIME type of Export output.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Export renders a report document to PDF bytes.
func (e *PDFExporter) Export(doc *domain.ReportDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Report.Name, false)
	pdf.SetAuthor(doc.GeneratedBy, false)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	e.addHeader(pdf, tr, doc)
	e.addRiskScore(pdf, doc)
	e.addStatistics(pdf, doc)
	e.addTopRisks(pdf, tr, doc)
	e.addThreats(pdf, tr, doc)
	e.addDevices(pdf, tr, doc)
	e.addRecommendations(pdf, tr, doc)
	e.addFooter(pdf, tr, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	if pdf.GetY() > 250 {
		pdf.AddPage()
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, tr func(string) string, doc *domain.ReportDocument) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 15, tr(doc.Report.Name), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s report (%s)", doc.Report.Type, doc.Report.Status), "", 1, "L", false, 0, "")
	if doc.Report.Description != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(doc.Report.Description), "", "L", false)
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, "Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

func (e *PDFExporter) addRiskScore(pdf *gofpdf.Fpdf, doc *domain.ReportDocument) {
	r, g, b := e.getRiskColor(doc.RiskScore)
	y := pdf.GetY()

	pdf.SetFillColor(r, g, b)
	pdf.Rect(20, y, 170, 30, "F")

	pdf.SetFont("Arial", "B", 36)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(25, y+5)
	pdf.CellFormat(80, 20, fmt.Sprintf("%.1f/10", doc.RiskScore), "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 18)
	pdf.SetXY(110, y+8)
	pdf.CellFormat(80, 14, doc.RiskLevel+" Risk", "", 0, "L", false, 0, "")

	pdf.SetY(y + 35)
	pdf.Ln(5)
}

func (e *PDFExporter) getRiskColor(score float64) (r, g, b int) {
	switch {
	case score >= 8.0:
		return 220, 53, 69
	case score >= 6.0:
		return 255, 149, 0
	case score >= 4.0:
		return 255, 204, 0
	default:
		return 52, 199, 89
	}
}

func (e *PDFExporter) getSeverityColor(sev domain.Severity) (r, g, b int) {
	switch sev {
	case domain.SeverityHigh:
		return 220, 53, 69
	case domain.SeverityMedium:
		return 255, 149, 0
	default:
		return 52, 199, 89
	}
}

func (e *PDFExporter) addStatistics(pdf *gofpdf.Fpdf, doc *domain.ReportDocument) {
	e.sectionTitle(pdf, "Security Overview")

	s := doc.Summary
	stats := []struct {
		label string
		value int
		color []int
	}{
		{"Total Threats", s.TotalThreats, []int{0, 102, 204}},
		{"High Severity", s.HighSeverityThreats, []int{220, 53, 69}},
		{"Medium Severity", s.ThreatsBySeverity[string(domain.SeverityMedium)], []int{255, 149, 0}},
		{"Low Severity", s.ThreatsBySeverity[string(domain.SeverityLow)], []int{52, 199, 89}},
		{"Total Devices", s.TotalDevices, []int{0, 102, 204}},
		{"Online", s.OnlineDevices, []int{52, 199, 89}},
		{"Offline", s.OfflineDevices, []int{220, 53, 69}},
		{"Warning", s.WarningDevices, []int{255, 149, 0}},
	}

	colWidth := 85.0
	for i, stat := range stats {
		x := 20.0
		if i%2 == 1 {
			x = 105.0
		}
		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(50, 7, stat.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(stat.color[0], stat.color[1], stat.color[2])
		pdf.CellFormat(colWidth-50, 7, fmt.Sprintf("%d", stat.value), "", 0, "R", false, 0, "")

		if i%2 == 1 {
			pdf.Ln(7)
		}
	}
	pdf.Ln(10)
}

func (e *PDFExporter) addTopRisks(pdf *gofpdf.Fpdf, tr func(string) string, doc *domain.ReportDocument) {
	e.sectionTitle(pdf, "Top Threat Categories")

	if len(doc.TopRisks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No active threats identified", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(15, 8, "Rank", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 8, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Severity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 8, "Count", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 8, "Impact", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(60, 60, 60)
	for _, risk := range doc.TopRisks {
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", risk.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 7, tr(truncate(risk.Category, 28)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d/10", risk.Severity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", risk.Occurrences), "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 7, tr(truncate(risk.Impact, 32)), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addThreats(pdf *gofpdf.Fpdf, tr func(string) string, doc *domain.ReportDocument) {
	e.sectionTitle(pdf, "Threat Indicators")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(35, 7, "IP", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Severity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Source", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Country", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 8)
	for i, t := range doc.Threats {
		if i >= maxTableRows {
			e.moreRows(pdf, len(doc.Threats)-i)
			break
		}
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(35, 6, t.IP, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(truncate(t.Type, 20)), "1", 0, "L", false, 0, "")
		r, g, b := e.getSeverityColor(t.Severity)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(20, 6, string(t.Severity), "1", 0, "C", false, 0, "")
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(40, 6, tr(truncate(t.Source, 22)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(truncate(t.Country, 22)), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addDevices(pdf *gofpdf.Fpdf, tr func(string) string, doc *domain.ReportDocument) {
	e.sectionTitle(pdf, "Network Devices")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(40, 7, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "IP", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Vendor", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Type", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 7, "Risk", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 8)
	for i, d := range doc.Devices {
		if i >= maxTableRows {
			e.moreRows(pdf, len(doc.Devices)-i)
			break
		}
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(40, 6, tr(truncate(d.Name, 24)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, d.IP, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(truncate(d.Vendor, 24)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, string(d.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, string(d.Status), "1", 0, "C", false, 0, "")
		r, g, b := e.getSeverityColor(d.Risk)
		pdf.SetTextColor(r, g, b)
		pdf.CellFormat(15, 6, string(d.Risk), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(8)
}

func (e *PDFExporter) moreRows(pdf *gofpdf.Fpdf, n int) {
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("... and %d more", n), "", 1, "L", false, 0, "")
}

func (e *PDFExporter) addRecommendations(pdf *gofpdf.Fpdf, tr func(string) string, doc *domain.ReportDocument) {
	e.sectionTitle(pdf, "Priority Recommendations")

	for _, rec := range doc.Recommendations {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}

		r, g, b := e.getPriorityColor(rec.Priority)
		pdf.SetFillColor(r, g, b)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(25, 6, rec.Priority, "", 0, "C", true, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(0, 6, "  "+tr(rec.Title), "", 1, "L", false, 0, "")
		pdf.Ln(1)

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(60, 60, 60)
		pdf.MultiCell(0, 5, tr(rec.Description), "", "L", false)

		for _, action := range rec.Actions {
			pdf.CellFormat(5, 5, "", "", 0, "L", false, 0, "")
			pdf.CellFormat(0, 5, "- "+tr(truncate(action, 100)), "", 1, "L", false, 0, "")
		}

		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 5, "Estimated Effort: "+rec.EstimatedEffort, "", 1, "L", false, 0, "")
		pdf.Ln(5)
	}
}

func (e *PDFExporter) getPriorityColor(priority string) (r, g, b int) {
	switch priority {
	case "critical":
		return 220, 53, 69
	case "high":
		return 255, 149, 0
	case "medium":
		return 255, 204, 0
	default:
		return 52, 199, 89
	}
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, tr func(string) string, doc *domain.ReportDocument) {
	pdf.SetY(-20)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	footer := fmt.Sprintf("Generated by %s | Report ID: %s", doc.GeneratedBy, doc.Report.ID)
	pdf.CellFormat(0, 5, tr(footer), "", 1, "C", false, 0, "")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
