package dashboard

import (
	"fmt"
	"time"
)

// InvalidDate is what FormatDueDate returns for input it cannot read.
const InvalidDate = "Invalid Date"

// FormatDueDate renders an ISO calendar date (2025-03-01) as
// "Saturday, March 1st".
func FormatDueDate(date string) string {
	if date == "" {
		return InvalidDate
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return InvalidDate
	}
	day := t.Day()
	return fmt.Sprintf("%s, %s %d%s", t.Weekday(), t.Month(), day, ordinalSuffix(day))
}

// ordinalSuffix returns the English ordinal suffix for a day of the month.
func ordinalSuffix(n int) string {
	if n > 3 && n < 21 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// formatLongDate renders t as "March 1, 2025".
func formatLongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
