package holidays

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/calendar"
	"github.com/username/holiday-calendar/pkg/dateutil"
)

// OfflineSource implements Source from the built-in rickar/cal country tables.
// Names are the tables' names, so LocalName and Name are equal.
type OfflineSource struct {
	logger *zap.Logger
}

// NewOfflineSource creates a new OfflineSource instance
func NewOfflineSource(logger *zap.Logger) *OfflineSource {
	return &OfflineSource{logger: logger}
}

// Fetch computes the holidays of countryCode for the given year, sorted by date
func (s *OfflineSource) Fetch(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(countryCode))
	table, ok := offlineTables[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCountry, countryCode)
	}

	out := make([]calendar.Holiday, 0, len(table))
	for _, h := range table {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			// Not observed in this year (StartYear/EndYear bounds).
			continue
		}
		out = append(out, calendar.Holiday{
			Date:        dateutil.DateUTC(actual),
			LocalName:   h.Name,
			Name:        h.Name,
			CountryCode: code,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	s.logger.Debug("Offline holidays computed",
		zap.Int("year", year),
		zap.String("country", code),
		zap.Int("count", len(out)))

	return out, nil
}
