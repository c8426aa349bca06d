package finance

import (
	"math"
	"sort"
	"time"

	"churchadmin-backend/internal/domain"
)

// UncategorizedBucket groups transactions that carry no category label.
const UncategorizedBucket = "Uncategorized"

// NoDescription is the fallback when a category has no described transaction.
const NoDescription = "No description"

// ChartMonths is the width of the monthly income/expenditure series.
const ChartMonths = 6

type CategoryStat struct {
	Count           int     `json:"count"`
	Total           float64 `json:"total"`
	LastDescription string  `json:"lastDescription"`
}

type MonthPoint struct {
	Month       string  `json:"month"`
	Year        int     `json:"year"`
	Income      float64 `json:"income"`
	Expenditure float64 `json:"expenditure"`
}

// Stats is the full aggregation output over a transaction collection.
type Stats struct {
	TotalIncome      float64                 `json:"totalIncome"`
	TotalExpenditure float64                 `json:"totalExpenditure"`
	NetBalance       float64                 `json:"netBalance"`
	TotalTithes      float64                 `json:"totalTithes"`
	TotalOfferings   float64                 `json:"totalOfferings"`
	TotalDonations   float64                 `json:"totalDonations"`
	CategoryStats    map[string]CategoryStat `json:"categoryStats"`
	ChartData        []MonthPoint            `json:"chartData"`
}

// Summarize computes summary statistics, category groupings and a monthly
// series over the whole collection. It is a pure function: same input, same
// output, no I/O. The chart covers the six calendar months ending at ref's
// month; rows outside that window are excluded from the chart only.
//
// LastDescription is the description of the most recent transaction in the
// category (by date, then id), not whichever row happens to be iterated last.
func Summarize(txs []domain.Transaction, ref time.Time) Stats {
	st := Stats{
		CategoryStats: make(map[string]CategoryStat),
		ChartData:     make([]MonthPoint, 0, ChartMonths),
	}

	for _, t := range txs {
		amt := safeAmount(t.Amount)
		if t.Type == domain.TransactionExpense {
			st.TotalExpenditure += amt
		} else {
			st.TotalIncome += amt
		}
		switch t.Type {
		case domain.TransactionTithe:
			st.TotalTithes += amt
		case domain.TransactionOffering:
			st.TotalOfferings += amt
		case domain.TransactionDonation:
			st.TotalDonations += amt
		}
	}
	st.NetBalance = st.TotalIncome - st.TotalExpenditure

	st.CategoryStats = categoryStats(txs)
	st.ChartData = chartData(txs, ref)
	return st
}

func categoryStats(txs []domain.Transaction) map[string]CategoryStat {
	// Newest first so the first non-empty description per category wins.
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].ID > sorted[j].ID
	})

	out := make(map[string]CategoryStat)
	described := make(map[string]bool)
	for _, t := range sorted {
		key := t.Category
		if key == "" {
			key = UncategorizedBucket
		}
		s, ok := out[key]
		if !ok {
			s = CategoryStat{LastDescription: NoDescription}
		}
		s.Count++
		s.Total += safeAmount(t.Amount)
		if !described[key] && t.Description != "" {
			s.LastDescription = t.Description
			described[key] = true
		}
		out[key] = s
	}
	return out
}

func chartData(txs []domain.Transaction, ref time.Time) []MonthPoint {
	type bucket struct{ year, month int }

	points := make([]MonthPoint, ChartMonths)
	index := make(map[bucket]int, ChartMonths)
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(ChartMonths - 1), 0)
	for i := 0; i < ChartMonths; i++ {
		m := first.AddDate(0, i, 0)
		points[i] = MonthPoint{Month: m.Format("Jan"), Year: m.Year()}
		index[bucket{m.Year(), int(m.Month())}] = i
	}

	for _, t := range txs {
		i, ok := index[bucket{t.Date.Year(), int(t.Date.Month())}]
		if !ok {
			continue
		}
		amt := safeAmount(t.Amount)
		if t.Type == domain.TransactionExpense {
			points[i].Expenditure += amt
		} else {
			points[i].Income += amt
		}
	}
	return points
}

// safeAmount coerces malformed amounts to 0 instead of poisoning the sums.
func safeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
