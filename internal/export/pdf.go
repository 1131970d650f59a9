// Package export renders dashboard reports as downloadable documents.
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"hrms/internal/domain/dashboard"
)

// SalaryAnalysisPDF writes the salary analysis report as an A4 PDF.
func SalaryAnalysisPDF(w io.Writer, analysis dashboard.SalaryAnalysis) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Analysis")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Mean salary: %.2f", analysis.MeanSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Lowest: %.2f   Highest: %.2f", analysis.MinSalary, analysis.MaxSalary))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "By career level")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 7, "Level", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Employees", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 7, "Mean salary", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, stat := range analysis.ByLevel {
		pdf.CellFormat(60, 7, string(stat.Level), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", stat.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%.2f", stat.MeanSalary), "1", 1, "R", false, 0, "")
	}

	if len(analysis.OutOfBand) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Out-of-band salaries")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 7, "Employee", "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 7, "Position", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, "Salary", "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, "Band", "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, "Deviation", "1", 1, "R", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, f := range analysis.OutOfBand {
			pdf.CellFormat(55, 7, f.EmployeeName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(45, 7, f.PositionTitle, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", f.Salary), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 7, fmt.Sprintf("%.0f-%.0f", f.BandMin, f.BandMax), "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 7, fmt.Sprintf("%s %.2f", f.Direction, f.Deviation), "1", 1, "R", false, 0, "")
		}
	}

	return pdf.Output(w)
}
