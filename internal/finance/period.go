package finance

import (
	"fmt"
	"time"
)

const monthLabelLayout = "January 2006"

// ParseMonthLabel parses a period label such as "January 2026" into the first
// day of that month (UTC).
func ParseMonthLabel(label string) (time.Time, error) {
	t, err := time.Parse(monthLabelLayout, label)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month label %q: %w", label, err)
	}
	return t, nil
}

// MonthLabel formats a time as a period label, e.g. "December 2025".
func MonthLabel(t time.Time) string {
	return t.Format(monthLabelLayout)
}

// PreviousMonth returns the label one calendar month before the given one,
// rolling over year boundaries ("January 2026" -> "December 2025").
func PreviousMonth(label string) (string, error) {
	t, err := ParseMonthLabel(label)
	if err != nil {
		return "", err
	}
	return MonthLabel(t.AddDate(0, -1, 0)), nil
}
