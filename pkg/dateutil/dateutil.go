package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the wire layout of holiday dates ("YYYY-MM-DD")
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// DateUTC returns the calendar date of t (in t's own location) at UTC midnight.
// Comparing and subtracting DateUTC values never drifts across DST changes.
func DateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a civil date at UTC midnight
func Date(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// ISOWeekday returns 1=Monday ... 7=Sunday
func ISOWeekday(date time.Time) int {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	return weekday
}

// StartOfWeek returns the Monday of the week for the given date
func StartOfWeek(date time.Time) time.Time {
	return StartOfDay(date.AddDate(0, 0, -(ISOWeekday(date) - 1)))
}

// WeekNumber returns the Thursday-anchored week of year for the given date.
//
// The date is shifted to the Thursday of its Monday-based week and the week is counted
// from January 1st of the shifted date's year, so late December days can land in week 1
// of the following year (2024-12-31 is week 1).
func WeekNumber(date time.Time) int {
	d := DateUTC(date)
	thursday := d.AddDate(0, 0, 4-ISOWeekday(d))
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	days := int(thursday.Sub(yearStart) / day)
	// ceil((days+1)/7) for days >= 0
	return (days + 7) / 7
}

// DaysInMonth returns the number of days in the given month, leap years included
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// IsSameMonth returns true if two dates fall into the same year and month
func IsSameMonth(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() && date1.Month() == date2.Month()
}

// ParseDate parses a "YYYY-MM-DD" string into a civil date at UTC midnight
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// FormatDate formats the calendar fields of date as "YYYY-MM-DD"
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
