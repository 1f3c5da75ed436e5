package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/username/holiday-calendar/internal/calendar"
	"github.com/username/holiday-calendar/internal/monthview"
	"github.com/username/holiday-calendar/pkg/dateutil"
)

// WeekdayLabels is the header row, Monday first
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// TierColors is the background of each density tier
var TierColors = map[calendar.SlotColor]lipgloss.Color{
	calendar.ColorHigh:   lipgloss.Color("#88b8ff"),
	calendar.ColorMedium: lipgloss.Color("#045b33"),
	calendar.ColorLow:    lipgloss.Color("#c5fa05"),
}

const (
	cellWidth = 4

	// listLayout prints dates as "Mon Feb 19 2024"
	listLayout = "Mon Jan 02 2006"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#d0d7de"))
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	styleDay     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d0d7de"))
	styleWeekend = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
	styleToday   = lipgloss.NewStyle().Bold(true).Underline(true)
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
	styleName    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd33d"))

	tierStyles = map[calendar.SlotColor]lipgloss.Style{
		calendar.ColorHigh:   lipgloss.NewStyle().Background(TierColors[calendar.ColorHigh]).Foreground(lipgloss.Color("#0d1117")),
		calendar.ColorMedium: lipgloss.NewStyle().Background(TierColors[calendar.ColorMedium]).Foreground(lipgloss.Color("#ffffff")),
		calendar.ColorLow:    lipgloss.NewStyle().Background(TierColors[calendar.ColorLow]).Foreground(lipgloss.Color("#0d1117")),
	}
)

// Title returns "February 2024 · US"
func Title(s monthview.Snapshot) string {
	return fmt.Sprintf("%s %d · %s", s.Selection.Month, s.Selection.Year, s.Selection.Country)
}

// Grid renders the weekday header and the slot rows, seven slots per row
func Grid(s monthview.Snapshot) string {
	var b strings.Builder

	for _, l := range WeekdayLabels {
		b.WriteString(styleLabel.Render(l + " "))
	}
	b.WriteByte('\n')

	for i, slot := range s.Slots {
		b.WriteString(cell(s, slot))
		if i%7 == 6 && i != len(s.Slots)-1 {
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')

	return b.String()
}

func cell(s monthview.Snapshot, slot calendar.DaySlot) string {
	if slot.Blank() {
		return strings.Repeat(" ", cellWidth)
	}

	marker := " "
	if len(s.HolidayNames(slot.ID)) > 0 {
		marker = "*"
	}
	text := fmt.Sprintf("%*d%s", cellWidth-1, slot.Day, marker)

	style := styleDay
	if s.IsWeekend(slot.ID) {
		style = styleWeekend
	}
	if ts, ok := tierStyles[s.Color(slot.ID)]; ok {
		style = ts
	}
	if s.IsToday(slot.ID) {
		style = style.Inherit(styleToday)
	}
	return style.Render(text)
}

// HolidayList renders the holidays of the exact displayed month
func HolidayList(s monthview.Snapshot) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Holidays This Month"))
	b.WriteByte('\n')

	list := s.MonthHolidays()
	if len(list) == 0 {
		b.WriteString(styleDim.Render("  No holidays this month"))
		b.WriteByte('\n')
		return b.String()
	}

	for _, h := range list {
		name := h.LocalName
		if h.Name != "" && h.Name != h.LocalName {
			name = fmt.Sprintf("%s (%s)", h.LocalName, h.Name)
		}
		fmt.Fprintf(&b, "  %s: %s\n", styleDim.Render(h.Date.Format(listLayout)), styleName.Render(name))
	}
	return b.String()
}

// Legend explains the density tiers
func Legend() string {
	parts := []string{
		tierStyles[calendar.ColorHigh].Render("  ") + " 3+ holidays",
		tierStyles[calendar.ColorMedium].Render("  ") + " 2",
		tierStyles[calendar.ColorLow].Render("  ") + " 1",
		styleLabel.Render("* holiday"),
	}
	return strings.Join(parts, "   ") + "\n"
}

// Month renders the full month view
func Month(s monthview.Snapshot) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(Title(s)))
	b.WriteString("\n\n")
	b.WriteString(Grid(s))
	b.WriteByte('\n')
	b.WriteString(HolidayList(s))
	b.WriteByte('\n')
	b.WriteString(Legend())
	return b.String()
}

// Summary is a single plain line, used for tooltips and logs
func Summary(s monthview.Snapshot, now time.Time) string {
	n := len(s.MonthHolidays())
	noun := "holidays"
	if n == 1 {
		noun = "holiday"
	}
	line := fmt.Sprintf("%s: %d %s", Title(s), n, noun)

	if next, ok := nextHoliday(s.Holidays, now); ok {
		line += fmt.Sprintf(", next %s on %s", next.LocalName, dateutil.FormatDate(next.Date))
	}
	return line
}

func nextHoliday(list []calendar.Holiday, now time.Time) (calendar.Holiday, bool) {
	today := dateutil.DateUTC(now)
	var best calendar.Holiday
	found := false
	for _, h := range list {
		if h.Date.Before(today) {
			continue
		}
		if !found || h.Date.Before(best.Date) {
			best = h
			found = true
		}
	}
	return best, found
}
