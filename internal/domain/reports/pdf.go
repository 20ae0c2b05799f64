package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// document pairs a page with the translator the core fonts need. Data strings
// are UTF-8 and must go through tr before they reach a cell.
type document struct {
	*gofpdf.Fpdf
	tr func(string) string
}

func newDocument(title string) *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	doc := &document{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, doc.tr(title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+time.Now().UTC().Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)
	return doc
}

func WriteEmployeeProjectPDF(w io.Writer, rows []EmployeeProjectRow) error {
	return employeeProjectDocument(rows).Output(w)
}

func employeeProjectDocument(rows []EmployeeProjectRow) *document {
	doc := newDocument("Employee Project Report")
	widths := []float64{50, 60, 45, 35}
	headers := []string{"Employee", "Project", "Role", "Assigned"}

	doc.SetFont("Helvetica", "B", 11)
	for i, header := range headers {
		doc.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	if len(rows) == 0 {
		doc.CellFormat(190, 8, "No assignments recorded.", "1", 1, "L", false, 0, "")
	}
	for _, row := range rows {
		for i, value := range []string{row.Employee, row.Project, row.Role, row.AssignedDate} {
			doc.CellFormat(widths[i], 7, doc.tr(value), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}
	return doc
}

func WritePerformanceSummaryPDF(w io.Writer, result SummaryResult) error {
	return performanceSummaryDocument(result).Output(w)
}

func performanceSummaryDocument(result SummaryResult) *document {
	doc := newDocument("Performance Summary")
	doc.SetFont("Helvetica", "", 12)

	if !result.Found() {
		doc.Cell(0, 8, doc.tr(result.Message))
		return doc
	}
	summary := result.Summary

	doc.Cell(0, 8, doc.tr(fmt.Sprintf("Employee: %s (#%d)", summary.Employee, summary.EmployeeID)))
	doc.Ln(7)
	doc.Cell(0, 8, fmt.Sprintf("Reviews: %d", summary.ReviewCount))
	doc.Ln(7)
	doc.Cell(0, 8, "Overall Rating: "+formatAverage(summary.OverallRating))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(80, 8, "Metric", "1", 0, "L", false, 0, "")
	doc.CellFormat(40, 8, "Average", "1", 0, "R", false, 0, "")
	doc.CellFormat(30, 8, "Reviews", "1", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, metric := range summary.Metrics {
		doc.CellFormat(80, 7, doc.tr(metric.Label), "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 7, formatAverage(metric.Average), "1", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, fmt.Sprintf("%d", metric.Samples), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	sections := []struct {
		title string
		items []string
	}{
		{"Strengths", summary.Strengths},
		{"Areas for Improvement", summary.AreasForImprovement},
		{"Comments", summary.Comments},
		{"Goals for Next Period", summary.GoalsForNextPeriod},
	}
	for _, section := range sections {
		doc.SetFont("Helvetica", "B", 11)
		doc.Cell(0, 8, section.title)
		doc.Ln(7)
		doc.SetFont("Helvetica", "", 10)
		if len(section.items) == 0 {
			doc.MultiCell(0, 6, "-", "", "L", false)
		}
		for _, item := range section.items {
			doc.MultiCell(0, 6, doc.tr("- "+item), "", "L", false)
		}
		doc.Ln(2)
	}
	return doc
}

func formatAverage(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *value)
}
