package calendar

import (
	"time"

	"github.com/username/holiday-calendar/pkg/dateutil"
)

// Holiday is a public holiday on a civil date (held at UTC midnight)
type Holiday struct {
	Date        time.Time
	LocalName   string
	Name        string
	CountryCode string
}

// NewHoliday builds a Holiday from its calendar date fields
func NewHoliday(year int, month time.Month, day int, localName string) Holiday {
	return Holiday{Date: dateutil.Date(year, month, day), LocalName: localName}
}

// BucketByWeek counts holidays per week number.
//
// Only the holiday's month is compared with m; a holiday from another year that falls
// into the same month is counted too. Holidays on the same date are counted separately.
func BucketByWeek(holidays []Holiday, m CalendarMonth) map[int]int {
	counts := make(map[int]int)
	for _, h := range holidays {
		if h.Date.Month() != m.Month {
			continue
		}
		counts[dateutil.WeekNumber(h.Date)]++
	}
	return counts
}

// IndexNames returns, per slot ID, the local names of holidays on that slot's exact date
// in holiday list order. Every entry is non-nil.
func IndexNames(slots []DaySlot, holidays []Holiday, m CalendarMonth) [][]string {
	names := make([][]string, len(slots))
	for i, s := range slots {
		names[i] = []string{}
		if s.Blank() {
			continue
		}
		date := m.Date(s.Day)
		for _, h := range holidays {
			if dateutil.IsSameDay(h.Date, date) {
				names[i] = append(names[i], h.LocalName)
			}
		}
	}
	return names
}

// InMonth returns the holidays on an exact year and month match, in list order
func InMonth(holidays []Holiday, m CalendarMonth) []Holiday {
	out := make([]Holiday, 0, len(holidays))
	for _, h := range holidays {
		if m.Contains(h.Date) {
			out = append(out, h)
		}
	}
	return out
}
