package calendar

import (
	"fmt"
	"time"

	"github.com/username/holiday-calendar/pkg/dateutil"
)

// CalendarMonth identifies the displayed month
type CalendarMonth struct {
	Year  int
	Month time.Month
}

// MonthFromIndex converts a 0-based month index (0=January) into a CalendarMonth.
// The result is not validated; call Valid before handing it to the grid functions.
func MonthFromIndex(year, index int) CalendarMonth {
	return CalendarMonth{Year: year, Month: time.Month(index + 1)}
}

// MonthOf returns the calendar month containing t
func MonthOf(t time.Time) CalendarMonth {
	return CalendarMonth{Year: t.Year(), Month: t.Month()}
}

// Index returns the 0-based month index
func (m CalendarMonth) Index() int {
	return int(m.Month) - 1
}

// Valid reports whether Month is within January..December
func (m CalendarMonth) Valid() error {
	if m.Month < time.January || m.Month > time.December {
		return fmt.Errorf("month must be between 1 and 12, got %d", int(m.Month))
	}
	return nil
}

// Days returns the number of days in the month
func (m CalendarMonth) Days() int {
	return dateutil.DaysInMonth(m.Year, m.Month)
}

// Date returns the civil date of the given day of this month
func (m CalendarMonth) Date(day int) time.Time {
	return dateutil.Date(m.Year, m.Month, day)
}

// Contains reports whether t falls into this exact year and month
func (m CalendarMonth) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

func (m CalendarMonth) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}
