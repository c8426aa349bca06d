package finance

import "churchadmin-backend/internal/domain"

type TrendDirection string

const (
	TrendUp      TrendDirection = "up"
	TrendDown    TrendDirection = "down"
	TrendNeutral TrendDirection = "neutral"
)

// NetPay derives net pay from its three inputs. Stored net pay is never
// authoritative; this is recomputed on every write and every display.
func NetPay(basic, allowances, deductions float64) float64 {
	return safeAmount(basic) + safeAmount(allowances) - safeAmount(deductions)
}

// Trend compares a period total against the previous period's. When the
// previous total is zero the change is 100% if anything was paid this period
// and 0% otherwise.
func Trend(current, previous float64) (float64, TrendDirection) {
	if previous > 0 {
		diff := current - previous
		pct := diff / previous * 100
		switch {
		case diff > 0:
			return pct, TrendUp
		case diff < 0:
			return pct, TrendDown
		default:
			return 0, TrendNeutral
		}
	}
	if current > 0 {
		return 100, TrendUp
	}
	return 0, TrendNeutral
}

// PayrollSummary backs the payroll KPI cards for one period.
type PayrollSummary struct {
	Total         float64        `json:"total"`
	PaidCount     int            `json:"paidCount"`
	PendingCount  int            `json:"pendingCount"`
	PercentChange float64        `json:"percentChange"`
	Trend         TrendDirection `json:"trend"`
}

// SummarizePayroll totals the current period and compares it against the
// previous period's total.
func SummarizePayroll(entries []domain.PayrollEntry, previousTotal float64) PayrollSummary {
	var s PayrollSummary
	for _, e := range entries {
		s.Total += NetPay(e.BasicSalary, e.Allowances, e.Deductions)
		switch e.Status {
		case domain.PayrollPaid:
			s.PaidCount++
		case domain.PayrollPending:
			s.PendingCount++
		}
	}
	s.PercentChange, s.Trend = Trend(s.Total, previousTotal)
	return s
}
