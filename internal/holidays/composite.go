package holidays

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/calendar"
)

// CompositeSource implements Source with fallback strategy
// Primary: remote API
// Fallback: offline tables
type CompositeSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback Source, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Fetch tries the primary source first and the fallback on any error
func (cs *CompositeSource) Fetch(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, error) {
	out, err := cs.primary.Fetch(ctx, year, countryCode)
	if err == nil {
		return out, nil
	}

	cs.logger.Warn("Primary holiday source failed, falling back",
		zap.Int("year", year),
		zap.String("country", countryCode),
		zap.Error(err))

	out, fallbackErr := cs.fallback.Fetch(ctx, year, countryCode)
	if fallbackErr != nil {
		return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
	}
	return out, nil
}
