package finance

import (
	"testing"
	"time"
)

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"January 2026", "December 2025"},
		{"December 2025", "November 2025"},
		{"March 2026", "February 2026"},
		{"January 2000", "December 1999"},
	}
	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			got, err := PreviousMonth(tc.label)
			if err != nil {
				t.Fatalf("PreviousMonth(%q): %v", tc.label, err)
			}
			if got != tc.want {
				t.Errorf("PreviousMonth(%q) = %q, want %q", tc.label, got, tc.want)
			}
		})
	}
}

func TestPreviousMonthInvalid(t *testing.T) {
	for _, label := range []string{"", "Jan 2026", "2026 January", "Pentecost 2026"} {
		if _, err := PreviousMonth(label); err == nil {
			t.Errorf("PreviousMonth(%q) should fail", label)
		}
	}
}

func TestMonthLabelRoundTrip(t *testing.T) {
	want := "November 2025"
	parsed, err := ParseMonthLabel(want)
	if err != nil {
		t.Fatalf("ParseMonthLabel: %v", err)
	}
	if parsed.Day() != 1 {
		t.Errorf("parsed day = %d, want 1", parsed.Day())
	}
	if got := MonthLabel(parsed); got != want {
		t.Errorf("round trip = %q, want %q", got, want)
	}
	if parsed.Month() != time.November || parsed.Year() != 2025 {
		t.Errorf("parsed = %v, want November 2025", parsed)
	}
}
