package holidays

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/holiday-calendar/internal/calendar"
)

// Source provides the public holidays of a country for a whole year
type Source interface {
	// Fetch returns the holidays of countryCode in year, in provider order
	Fetch(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, error)
}

// ErrUnsupportedCountry is returned by sources that have no data for a country
var ErrUnsupportedCountry = errors.New("unsupported country")

// APIError is a non-200 answer from the holiday API
type APIError struct {
	StatusCode  int
	Year        int
	CountryCode string
	Body        string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("holiday API returned status %d for %s/%d", e.StatusCode, e.CountryCode, e.Year)
	}
	return fmt.Sprintf("holiday API returned status %d for %s/%d: %s", e.StatusCode, e.CountryCode, e.Year, e.Body)
}

// IsNotFound reports whether err is an APIError for an unknown country or year
func IsNotFound(err error) bool {
	var e *APIError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}
