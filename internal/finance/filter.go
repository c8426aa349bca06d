package finance

import (
	"strings"
	"time"

	"churchadmin-backend/internal/domain"
)

// FilterAll is the sentinel meaning "do not filter on this field".
const FilterAll = "All"

// Query narrows the transaction collection. All active predicates must match.
type Query struct {
	Search   string
	Status   string
	Type     string
	Category string
	Start    *time.Time
	End      *time.Time
}

// Filter returns the subset matching every active predicate. The contributor
// match is a case-insensitive substring; status, type and category are exact
// unless set to FilterAll (or empty); the date range is inclusive, with the
// end bound extended to end of day.
func Filter(txs []domain.Transaction, q Query) []domain.Transaction {
	search := strings.ToLower(q.Search)
	out := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if search != "" && !strings.Contains(strings.ToLower(t.Contributor), search) {
			continue
		}
		if active(q.Status) && string(t.Status) != q.Status {
			continue
		}
		if active(q.Type) && string(t.Type) != q.Type {
			continue
		}
		if active(q.Category) && t.Category != q.Category {
			continue
		}
		if q.Start != nil && t.Date.Before(startOfDay(*q.Start)) {
			continue
		}
		if q.End != nil && t.Date.After(endOfDay(*q.End)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func active(v string) bool { return v != "" && v != FilterAll }

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// TotalPages is ceil(count/size), never less than 1.
func TotalPages(count, size int) int {
	if size <= 0 {
		return 1
	}
	pages := (count + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage keeps page within [1, TotalPages(count, size)].
func ClampPage(page, count, size int) int {
	if page < 1 {
		return 1
	}
	if max := TotalPages(count, size); page > max {
		return max
	}
	return page
}

// Paginate slices one page out of the filtered set. Concatenating every page
// in order reproduces the input exactly.
func Paginate(txs []domain.Transaction, page, size int) []domain.Transaction {
	if size <= 0 {
		return nil
	}
	page = ClampPage(page, len(txs), size)
	start := (page - 1) * size
	if start >= len(txs) {
		return nil
	}
	end := start + size
	if end > len(txs) {
		end = len(txs)
	}
	return txs[start:end]
}
