package export

import (
	"fmt"
	"time"

	"churchadmin-backend/internal/domain"
	"churchadmin-backend/internal/finance"
	"github.com/google/uuid"
)

// PayslipsPDF renders one payslip per page for the Paid records of the
// selected period. Net pay is recomputed from the three inputs, matching the
// on-screen derivation.
func PayslipsPDF(entries []domain.PayrollEntry, month string, settings domain.Settings, now time.Time) ([]byte, error) {
	pdf := newPDF()

	for _, e := range entries {
		if e.Status != domain.PayrollPaid {
			continue
		}
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 18)
		pdf.Cell(0, 10, "Payslip")
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "", 11)
		if settings.ChurchName != "" {
			pdf.Cell(0, 7, settings.ChurchName)
			pdf.Ln(7)
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.Cell(0, 6, "Period: "+month)
		pdf.Ln(6)
		pdf.Cell(0, 6, "Document ID: "+uuid.NewString())
		pdf.Ln(6)
		if e.PaymentDate != nil {
			pdf.Cell(0, 6, "Payment Date: "+e.PaymentDate.Format(dateLayout))
			pdf.Ln(6)
		}
		pdf.Cell(0, 6, "Generated: "+now.Format("2006-01-02 15:04"))
		pdf.Ln(10)
		pdf.SetTextColor(0, 0, 0)

		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, e.StaffName)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, e.StaffRole)
		pdf.Ln(10)

		netPay := finance.NetPay(e.BasicSalary, e.Allowances, e.Deductions)
		widths := []float64{90, 60}
		tableHeader(pdf, widths, []string{"Item", "Amount"})
		tableRow(pdf, widths, []string{"Basic Salary", FormatGHS(e.BasicSalary)})
		tableRow(pdf, widths, []string{"Allowances", FormatGHS(e.Allowances)})
		tableRow(pdf, widths, []string{"Deductions", fmt.Sprintf("-%s", FormatGHS(e.Deductions))})

		pdf.SetFont("Helvetica", "B", 10)
		tableRow(pdf, widths, []string{"Net Pay", FormatGHS(netPay)})
		pdf.SetFont("Helvetica", "", 10)
	}

	if pdf.PageNo() == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 10, "No paid payroll records for "+month+".")
	}
	return pdfBytes(pdf)
}
