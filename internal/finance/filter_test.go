package finance

import (
	"testing"
	"time"

	"churchadmin-backend/internal/domain"
)

func sampleTxs() []domain.Transaction {
	return []domain.Transaction{
		{ID: 1, Contributor: "Ama Mensah", Type: domain.TransactionTithe, Category: "General", Status: domain.StatusProcessed, Amount: 100, Date: day(2026, time.January, 5)},
		{ID: 2, Contributor: "Kofi Boateng", Type: domain.TransactionOffering, Category: "Missions", Status: domain.StatusPending, Amount: 50, Date: day(2026, time.January, 12)},
		{ID: 3, Contributor: "ama serwaa", Type: domain.TransactionExpense, Category: "Utilities", Status: domain.StatusProcessed, Amount: 75, Date: day(2026, time.February, 2)},
		{ID: 4, Contributor: "Yaw Darko", Type: domain.TransactionDonation, Category: "Missions", Status: domain.StatusFailed, Amount: 20, Date: day(2026, time.February, 20)},
	}
}

func ids(txs []domain.Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterPredicates(t *testing.T) {
	txs := sampleTxs()
	start := day(2026, time.January, 10)
	end := day(2026, time.February, 2)

	tests := []struct {
		name string
		q    Query
		want []int64
	}{
		{"no filters", Query{}, []int64{1, 2, 3, 4}},
		{"all sentinels", Query{Status: FilterAll, Type: FilterAll, Category: FilterAll}, []int64{1, 2, 3, 4}},
		{"search case-insensitive substring", Query{Search: "AMA"}, []int64{1, 3}},
		{"status exact", Query{Status: "Processed"}, []int64{1, 3}},
		{"type exact", Query{Type: "Expense"}, []int64{3}},
		{"category exact", Query{Category: "Missions"}, []int64{2, 4}},
		{"start date inclusive", Query{Start: &start}, []int64{2, 3, 4}},
		{"end date end-of-day inclusive", Query{End: &end}, []int64{1, 2, 3}},
		{"conjunction", Query{Search: "a", Status: "Processed", Category: "Utilities"}, []int64{3}},
		{"nothing matches", Query{Search: "nobody"}, []int64{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(txs, tc.q))
			if !equalIDs(got, tc.want) {
				t.Errorf("Filter() ids = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterEndOfDayBoundary(t *testing.T) {
	end := day(2026, time.January, 15)
	txs := []domain.Transaction{
		{ID: 1, Date: time.Date(2026, time.January, 15, 18, 30, 0, 0, time.UTC)},
		{ID: 2, Date: time.Date(2026, time.January, 16, 0, 0, 0, 0, time.UTC)},
	}

	got := ids(Filter(txs, Query{End: &end}))
	if !equalIDs(got, []int64{1}) {
		t.Errorf("end-of-day filter ids = %v, want [1]", got)
	}
}

// Applying the predicates in any order yields the same subset; a combined
// query must equal sequential single-predicate applications.
func TestFilterCommutative(t *testing.T) {
	txs := sampleTxs()
	combined := Filter(txs, Query{Search: "a", Status: "Processed"})
	sequential := Filter(Filter(txs, Query{Status: "Processed"}), Query{Search: "a"})
	reversed := Filter(Filter(txs, Query{Search: "a"}), Query{Status: "Processed"})

	if !equalIDs(ids(combined), ids(sequential)) || !equalIDs(ids(combined), ids(reversed)) {
		t.Errorf("filter order changed the result: %v / %v / %v",
			ids(combined), ids(sequential), ids(reversed))
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
		{10, 0, 1},
	}
	for _, tc := range tests {
		if got := TotalPages(tc.count, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.count, tc.size, got, tc.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	txs := sampleTxs()

	t.Run("page size respected", func(t *testing.T) {
		for page := 1; page <= TotalPages(len(txs), 3); page++ {
			if got := Paginate(txs, page, 3); len(got) > 3 {
				t.Errorf("page %d has %d rows, want <= 3", page, len(got))
			}
		}
	})

	t.Run("pages concatenate to the filtered set", func(t *testing.T) {
		var all []domain.Transaction
		for page := 1; page <= TotalPages(len(txs), 3); page++ {
			all = append(all, Paginate(txs, page, 3)...)
		}
		if !equalIDs(ids(all), ids(txs)) {
			t.Errorf("concatenated pages = %v, want %v", ids(all), ids(txs))
		}
	})

	t.Run("page clamped to bounds", func(t *testing.T) {
		if got := Paginate(txs, 99, 3); !equalIDs(ids(got), []int64{4}) {
			t.Errorf("overflow page = %v, want last page [4]", ids(got))
		}
		if got := Paginate(txs, -1, 3); !equalIDs(ids(got), []int64{1, 2, 3}) {
			t.Errorf("underflow page = %v, want first page", ids(got))
		}
	})

	t.Run("empty set does not panic", func(t *testing.T) {
		if got := Paginate(nil, 1, 5); len(got) != 0 {
			t.Errorf("empty input produced %d rows", len(got))
		}
		if got := ClampPage(7, 0, 5); got != 1 {
			t.Errorf("ClampPage on empty set = %d, want 1", got)
		}
	})
}
