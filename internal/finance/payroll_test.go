package finance

import (
	"testing"

	"churchadmin-backend/internal/domain"
)

func TestNetPay(t *testing.T) {
	tests := []struct {
		name                         string
		basic, allowances, deduction float64
		want                         float64
	}{
		{"plain", 1000, 200, 150, 1050},
		{"no extras", 1000, 0, 0, 1000},
		{"deductions exceed gross", 500, 100, 800, -200},
		{"all zero", 0, 0, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NetPay(tc.basic, tc.allowances, tc.deduction); got != tc.want {
				t.Errorf("NetPay(%v, %v, %v) = %v, want %v", tc.basic, tc.allowances, tc.deduction, got, tc.want)
			}
		})
	}
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		wantPct           float64
		wantDir           TrendDirection
	}{
		{"both zero", 0, 0, 0, TrendNeutral},
		{"new spend from zero", 100, 0, 100, TrendUp},
		{"growth", 150, 100, 50, TrendUp},
		{"decline", 50, 100, -50, TrendDown},
		{"flat", 100, 100, 0, TrendNeutral},
		{"dropped to zero", 0, 100, -100, TrendDown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pct, dir := Trend(tc.current, tc.previous)
			if pct != tc.wantPct || dir != tc.wantDir {
				t.Errorf("Trend(%v, %v) = (%v, %s), want (%v, %s)",
					tc.current, tc.previous, pct, dir, tc.wantPct, tc.wantDir)
			}
		})
	}
}

func TestSummarizePayroll(t *testing.T) {
	entries := []domain.PayrollEntry{
		{PayrollRecord: domain.PayrollRecord{BasicSalary: 1000, Allowances: 200, Deductions: 100, Status: domain.PayrollPaid}},
		{PayrollRecord: domain.PayrollRecord{BasicSalary: 800, Allowances: 0, Deductions: 50, Status: domain.PayrollPending}},
		{PayrollRecord: domain.PayrollRecord{BasicSalary: 600, Allowances: 100, Deductions: 0, Status: domain.PayrollPaid}},
	}

	s := SummarizePayroll(entries, 2000)

	if s.Total != 2550 {
		t.Errorf("Total = %v, want 2550", s.Total)
	}
	if s.PaidCount != 2 || s.PendingCount != 1 {
		t.Errorf("counts = %d paid / %d pending, want 2/1", s.PaidCount, s.PendingCount)
	}
	if s.Trend != TrendUp {
		t.Errorf("Trend = %s, want up", s.Trend)
	}
	if s.PercentChange != 27.5 {
		t.Errorf("PercentChange = %v, want 27.5", s.PercentChange)
	}
}

// Net pay is recomputed from the inputs even when the stored value disagrees.
func TestSummarizePayrollIgnoresStoredNetPay(t *testing.T) {
	entries := []domain.PayrollEntry{
		{PayrollRecord: domain.PayrollRecord{BasicSalary: 1000, Allowances: 0, Deductions: 0, NetPay: 9999}},
	}
	s := SummarizePayroll(entries, 0)
	if s.Total != 1000 {
		t.Errorf("Total = %v, want 1000 (stored net pay is not authoritative)", s.Total)
	}
}
