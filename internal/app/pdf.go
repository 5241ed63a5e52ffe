package app

import (
	"github.com/jung-kurt/gofpdf"

	"github.com/medplain/medplain/internal/report"
)

// writeHandoutPDF renders the analysis as a simple one-column patient
// handout. Layout is intentionally basic: headings, paragraphs, bullet
// lists, and a parameter table.
func writeHandoutPDF(res report.AnalysisResult, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
	}
	paragraph := func(text string) {
		pdf.MultiCell(0, 5, text, "", "L", false)
		pdf.Ln(3)
	}
	bullets := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		heading(title)
		for _, it := range items {
			pdf.MultiCell(0, 5, "- "+it, "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Medical Report Analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(2)

	heading("Summary")
	paragraph(res.Summary)
	heading("What this means")
	paragraph(res.DetailedExplanation)

	bullets("Key findings", res.KeyFindings)
	bullets("Treatment recommendations", res.TreatmentRecommendations)
	bullets("Medicine suggestions", res.MedicineSuggestions)
	bullets("Lifestyle advice", res.LifestyleAdvice)
	bullets("When to consult a doctor", res.WhenToConsultDoctor)

	if len(res.ParameterBreakdown) > 0 {
		heading("Parameter breakdown")
		pdf.SetFont("Helvetica", "B", 10)
		widths := []float64{55, 25, 25, 35, 20}
		headers := []string{"Parameter", "Value", "Unit", "Normal range", "Status"}
		for i, h := range headers {
			pdf.CellFormat(widths[i], 6, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		for _, f := range res.ParameterBreakdown {
			cells := []string{f.Name, f.Value, f.Unit, f.NormalRange, string(f.Status)}
			for i, c := range cells {
				pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	return pdf.OutputFileAndClose(outPath)
}
