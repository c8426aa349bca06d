package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/finance"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

func newPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	return pdf
}

func withPageNumbers(pdf *fpdf.Fpdf) {
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
}

func tableHeader(pdf *fpdf.Fpdf, widths []float64, labels []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(59, 130, 246)
	pdf.SetTextColor(255, 255, 255)
	for i, label := range labels {
		pdf.CellFormat(widths[i], 8, label, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
}

func tableRow(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

// HistoryPDF renders the filtered transaction history as a paginated table.
func HistoryPDF(txs []domain.Transaction, now time.Time) ([]byte, error) {
	pdf := newPDF()
	withPageNumbers(pdf)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Transaction History Report")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, "Generated on: "+now.Format("2006-01-02 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total Transactions: %d", len(txs)))
	pdf.Ln(10)
	pdf.SetTextColor(0, 0, 0)

	widths := []float64{24, 40, 28, 22, 32, 22, 22}
	tableHeader(pdf, widths, historyHeader)
	for _, t := range txs {
		tableRow(pdf, widths, []string{
			t.Date.Format(dateLayout),
			t.Contributor,
			FormatGHS(t.Amount),
			string(t.Type),
			t.Category,
			string(t.Status),
			finance.ReceiptID(t),
		})
	}

	return pdfBytes(pdf)
}

// ReceiptsPDF renders one receipt per page for the selected transactions.
func ReceiptsPDF(txs []domain.Transaction, settings domain.Settings) ([]byte, error) {
	pdf := newPDF()
	for _, t := range txs {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 22)
		pdf.SetTextColor(59, 130, 246)
		pdf.Cell(0, 12, "OFFICIAL RECEIPT")
		pdf.Ln(12)

		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(0, 0, 0)
		if settings.ChurchName != "" {
			pdf.Cell(0, 7, settings.ChurchName)
			pdf.Ln(7)
		}
		if settings.ChurchAddress != "" {
			pdf.Cell(0, 6, settings.ChurchAddress)
			pdf.Ln(6)
		}
		pdf.Ln(4)

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.Cell(0, 6, "Receipt ID: "+finance.ReceiptID(t))
		pdf.Ln(6)
		pdf.Cell(0, 6, "Date: "+t.Date.Format(dateLayout))
		pdf.Ln(6)
		pdf.Cell(0, 6, "Status: "+string(t.Status))
		pdf.Ln(10)
		pdf.SetTextColor(0, 0, 0)

		widths := []float64{50, 130}
		tableHeader(pdf, widths, []string{"Field", "Value"})
		tableRow(pdf, widths, []string{"Contributor", t.Contributor})
		tableRow(pdf, widths, []string{"Type", string(t.Type)})
		tableRow(pdf, widths, []string{"Category", t.Category})
		tableRow(pdf, widths, []string{"Amount", FormatGHS(t.Amount)})
		if t.Description != "" {
			tableRow(pdf, widths, []string{"Description", t.Description})
		}

		if settings.ReceiptFooter != "" {
			pdf.Ln(10)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.Cell(0, 6, settings.ReceiptFooter)
		}
	}
	if pdf.PageNo() == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 10, "No transactions selected.")
	}
	return pdfBytes(pdf)
}

// ReportPDF builds the multi-section financial report over the filtered set:
// summary statistics, category breakdown and status-integrity counts.
func ReportPDF(txs []domain.Transaction, stats finance.Stats, periodStart, periodEnd string, now time.Time) ([]byte, error) {
	pdf := newPDF()
	withPageNumbers(pdf)
	pdf.AddPage()

	if periodStart == "" {
		periodStart = "All Time"
	}
	if periodEnd == "" {
		periodEnd = "Present"
	}

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(30, 41, 59)
	pdf.Cell(0, 12, "Financial Performance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", periodStart, periodEnd))
	pdf.Ln(5)
	pdf.Cell(0, 6, "Generated: "+now.Format("2006-01-02 15:04"))
	pdf.Ln(5)
	pdf.Cell(0, 6, "Report ID: "+uuid.NewString())
	pdf.Ln(10)
	pdf.SetTextColor(0, 0, 0)

	// Summary statistics
	widths := []float64{90, 60}
	tableHeader(pdf, widths, []string{"Metric", "Total Value"})
	tableRow(pdf, widths, []string{"Total Income", FormatGHS(stats.TotalIncome)})
	tableRow(pdf, widths, []string{"Total Expenditure", FormatGHS(stats.TotalExpenditure)})
	tableRow(pdf, widths, []string{"Net Position", FormatGHS(stats.NetBalance)})
	tableRow(pdf, widths, []string{"Total Transactions", fmt.Sprintf("%d", len(txs))})
	pdf.Ln(8)

	// Category breakdown
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Breakdown by Category")
	pdf.Ln(10)
	names := make([]string, 0, len(stats.CategoryStats))
	for name := range stats.CategoryStats {
		names = append(names, name)
	}
	sort.Strings(names)
	widths = []float64{80, 30, 40}
	tableHeader(pdf, widths, []string{"Category Name", "Volume", "Total Amount"})
	for _, name := range names {
		cs := stats.CategoryStats[name]
		tableRow(pdf, widths, []string{name, fmt.Sprintf("%d", cs.Count), FormatGHS(cs.Total)})
	}
	pdf.Ln(8)

	// Status integrity
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Transaction Integrity")
	pdf.Ln(10)
	statusCounts := make(map[string]int)
	for _, t := range txs {
		s := string(t.Status)
		if s == "" {
			s = string(domain.StatusPending)
		}
		statusCounts[s]++
	}
	statuses := make([]string, 0, len(statusCounts))
	for s := range statusCounts {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	widths = []float64{80, 30}
	tableHeader(pdf, widths, []string{"Status", "Count"})
	for _, s := range statuses {
		tableRow(pdf, widths, []string{s, fmt.Sprintf("%d", statusCounts[s])})
	}

	return pdfBytes(pdf)
}

func pdfBytes(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
