package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/calendar"
	"github.com/username/holiday-calendar/pkg/dateutil"
)

const (
	DefaultNagerURL    = "https://date.nager.at"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)

// NagerSource implements Source using the date.nager.at public holiday API
type NagerSource struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// nagerHoliday is one entry of /api/v3/PublicHolidays/{year}/{countryCode}
type nagerHoliday struct {
	Date        string   `json:"date"` // "YYYY-MM-DD"
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties"`
	Types       []string `json:"types"`
}

// NewNagerSource creates a new NagerSource instance
func NewNagerSource(baseURL string, timeout time.Duration, logger *zap.Logger) *NagerSource {
	if baseURL == "" {
		baseURL = DefaultNagerURL
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &NagerSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch fetches the public holidays of countryCode for the whole year
func (s *NagerSource) Fetch(ctx context.Context, year int, countryCode string) ([]calendar.Holiday, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if countryCode == "" {
		return nil, fmt.Errorf("country code must not be empty")
	}

	// Build URL: https://date.nager.at/api/v3/PublicHolidays/2024/US
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", s.baseURL, year, countryCode)

	s.logger.Debug("Fetching public holidays",
		zap.String("url", url),
		zap.Int("year", year),
		zap.String("country", countryCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &APIError{
			StatusCode:  resp.StatusCode,
			Year:        year,
			CountryCode: countryCode,
			Body:        strings.TrimSpace(string(body)),
		}
	}

	var entries []nagerHoliday
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse holiday list: %w", err)
	}

	out := s.convert(entries)

	s.logger.Info("Public holidays fetched",
		zap.Int("year", year),
		zap.String("country", countryCode),
		zap.Int("count", len(out)))

	return out, nil
}

func (s *NagerSource) convert(entries []nagerHoliday) []calendar.Holiday {
	out := make([]calendar.Holiday, 0, len(entries))
	for _, e := range entries {
		date, err := dateutil.ParseDate(e.Date)
		if err != nil {
			s.logger.Warn("Skipping holiday with invalid date",
				zap.String("date", e.Date),
				zap.String("local_name", e.LocalName),
				zap.Error(err))
			continue
		}
		out = append(out, calendar.Holiday{
			Date:        date,
			LocalName:   e.LocalName,
			Name:        e.Name,
			CountryCode: e.CountryCode,
		})
	}
	return out
}
