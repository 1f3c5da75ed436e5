package monthview

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/holiday-calendar/internal/calendar"
)

// Selection is the displayed year, month and country.
// Navigation methods return a new Selection and never modify the receiver.
type Selection struct {
	Year    int
	Month   time.Month
	Country string
}

// NewSelection returns the selection of the month containing now
func NewSelection(now time.Time, country string) Selection {
	return Selection{Year: now.Year(), Month: now.Month(), Country: strings.ToUpper(country)}
}

// Validate rejects selections the core cannot be called with
func (s Selection) Validate() error {
	if err := s.CalendarMonth().Valid(); err != nil {
		return err
	}
	if s.Year < 1 || s.Year > 9999 {
		return fmt.Errorf("year must be between 1 and 9999, got %d", s.Year)
	}
	if strings.TrimSpace(s.Country) == "" {
		return fmt.Errorf("country must not be empty")
	}
	return nil
}

// CalendarMonth returns the displayed month
func (s Selection) CalendarMonth() calendar.CalendarMonth {
	return calendar.CalendarMonth{Year: s.Year, Month: s.Month}
}

// Next moves to the following month, rolling over into January of the next year
func (s Selection) Next() Selection {
	if s.Month == time.December {
		s.Year++
		s.Month = time.January
		return s
	}
	s.Month++
	return s
}

// Prev moves to the previous month, rolling back into December of the previous year
func (s Selection) Prev() Selection {
	if s.Month == time.January {
		s.Year--
		s.Month = time.December
		return s
	}
	s.Month--
	return s
}

// WithYear keeps month and country and changes the year
func (s Selection) WithYear(year int) Selection {
	s.Year = year
	return s
}

// WithMonth keeps year and country and changes the month
func (s Selection) WithMonth(month time.Month) Selection {
	s.Month = month
	return s
}

// WithCountry keeps year and month and changes the country
func (s Selection) WithCountry(code string) Selection {
	s.Country = strings.ToUpper(strings.TrimSpace(code))
	return s
}

func (s Selection) String() string {
	return fmt.Sprintf("%d-%02d/%s", s.Year, int(s.Month), s.Country)
}
