package calendar

import (
	"fmt"

	"github.com/username/holiday-calendar/pkg/dateutil"
)

// SlotColor is the density tier of a day slot. Tiers are ordered.
type SlotColor int

const (
	ColorNone SlotColor = iota
	ColorLow
	ColorMedium
	ColorHigh
)

var slotColorNames = [...]string{"none", "low", "medium", "high"}

func (c SlotColor) String() string {
	if c < ColorNone || c > ColorHigh {
		return fmt.Sprintf("SlotColor(%d)", int(c))
	}
	return slotColorNames[c]
}

// MarshalText encodes the tier by name
func (c SlotColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a tier name written by MarshalText
func (c *SlotColor) UnmarshalText(text []byte) error {
	for i, name := range slotColorNames {
		if string(text) == name {
			*c = SlotColor(i)
			return nil
		}
	}
	return fmt.Errorf("unknown slot color %q", text)
}

// TierForCount maps the number of holidays in a week to a density tier
func TierForCount(count int) SlotColor {
	switch {
	case count >= 3:
		return ColorHigh
	case count == 2:
		return ColorMedium
	case count == 1:
		return ColorLow
	default:
		return ColorNone
	}
}

// Colorize assigns each slot the tier of its week's holiday count. Blank slots are ColorNone.
func Colorize(slots []DaySlot, counts map[int]int, m CalendarMonth) []SlotColor {
	colors := make([]SlotColor, len(slots))
	for i, s := range slots {
		if s.Blank() {
			continue
		}
		week := dateutil.WeekNumber(m.Date(s.Day))
		colors[i] = TierForCount(counts[week])
	}
	return colors
}
