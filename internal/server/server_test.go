package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/calendar"
	"github.com/username/holiday-calendar/internal/config"
	"github.com/username/holiday-calendar/internal/monthview"
)

type fakeBuilder struct {
	list []calendar.Holiday
	now  time.Time
	got  []monthview.Selection
}

func (b *fakeBuilder) Build(ctx context.Context, sel monthview.Selection) monthview.Snapshot {
	b.got = append(b.got, sel)
	return monthview.Compute(sel, b.list, b.now)
}

func newTestServer(t *testing.T, cfg config.ServerConfig) (*httptest.Server, *fakeBuilder) {
	t.Helper()
	b := &fakeBuilder{
		list: []calendar.Holiday{
			{Date: calendar.NewHoliday(2024, time.February, 19, "").Date, LocalName: "Washington's Birthday", Name: "Presidents Day", CountryCode: "US"},
			calendar.NewHoliday(2024, time.July, 4, "Independence Day"),
		},
		now: time.Date(2024, time.February, 20, 10, 0, 0, 0, time.UTC),
	}
	srv := httptest.NewServer(New(cfg, b, zap.NewNop()).Handler())
	t.Cleanup(srv.Close)
	return srv, b
}

func get(t *testing.T, url string, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCalendarEndpoint(t *testing.T) {
	srv, b := newTestServer(t, config.ServerConfig{Metrics: true})

	resp := get(t, srv.URL+"/api/v1/calendar/us/2024/2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	var body struct {
		Year          int            `json:"year"`
		Month         int            `json:"month"`
		Country       string         `json:"country"`
		TodaySlotID   *int           `json:"today_slot_id"`
		WeekCounts    map[string]int `json:"week_counts"`
		Slots         []slotResponse `json:"slots"`
		MonthHolidays []struct {
			Date      string `json:"date"`
			LocalName string `json:"local_name"`
		} `json:"month_holidays"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, b.got, 1)
	assert.Equal(t, "US", b.got[0].Country)

	assert.Equal(t, 2024, body.Year)
	assert.Equal(t, 2, body.Month)
	assert.Equal(t, "US", body.Country)
	require.NotNil(t, body.TodaySlotID)
	assert.Equal(t, 23, *body.TodaySlotID)
	assert.Equal(t, map[string]int{"8": 1}, body.WeekCounts)

	require.Len(t, body.Slots, 33)
	assert.True(t, body.Slots[0].Blank)
	assert.Equal(t, 19, body.Slots[22].Day)
	assert.Equal(t, []string{"Washington's Birthday"}, body.Slots[22].Holidays)
	assert.Equal(t, []string{}, body.Slots[21].Holidays)
	assert.True(t, body.Slots[6].Weekend, "Feb 3 2024 is a Saturday")

	require.Len(t, body.MonthHolidays, 1)
	assert.Equal(t, "2024-02-19", body.MonthHolidays[0].Date)
}

func TestCalendarEndpoint_ColorIsNamed(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{})

	resp := get(t, srv.URL+"/api/v1/calendar/US/2024/2", nil)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"color":"low"`)
	assert.Contains(t, string(raw), `"color":"none"`)
}

func TestCalendarEndpoint_Errors(t *testing.T) {
	srv, b := newTestServer(t, config.ServerConfig{})

	tests := []struct {
		name string
		path string
		want int
	}{
		{"month zero", "/api/v1/calendar/US/2024/0", http.StatusBadRequest},
		{"month thirteen", "/api/v1/calendar/US/2024/13", http.StatusBadRequest},
		{"year zero", "/api/v1/calendar/US/0/5", http.StatusBadRequest},
		{"country too long", "/api/v1/calendar/USA/2024/5", http.StatusNotFound},
		{"non numeric month", "/api/v1/calendar/US/2024/may", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv.URL+tt.path, nil)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
	assert.Empty(t, b.got, "invalid selections must not reach the builder")
}

func TestCountriesAndHealth(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{})

	resp := get(t, srv.URL+"/api/v1/countries", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var countries []struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&countries))
	require.NotEmpty(t, countries)
	assert.Equal(t, "US", countries[0].Code)

	resp = get(t, srv.URL+"/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
}

func TestRequestIDPassthrough(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{})

	resp := get(t, srv.URL+"/health", map[string]string{requestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{Metrics: true})

	get(t, srv.URL+"/api/v1/calendar/US/2024/2", nil)
	resp := get(t, srv.URL+"/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "http_requests_total")
	assert.Contains(t, string(raw), `path="/api/v1/calendar/{country:[A-Za-z]{2}}/{year:[0-9]{1,4}}/{month:[0-9]{1,2}}"`)
}

func TestMetricsDisabled(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{Metrics: false})

	resp := get(t, srv.URL+"/metrics", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{RateLimit: 0.001, RateBurst: 2})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp := get(t, srv.URL+"/health", nil)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_IgnoresForwardedForByDefault(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{RateLimit: 0.001, RateBurst: 2})

	codes := make([]int, 0, 3)
	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		resp := get(t, srv.URL+"/health", map[string]string{"X-Forwarded-For": ip})
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes,
		"a rotating X-Forwarded-For must not yield fresh buckets")
}

func TestRateLimit_TrustedProxyHeaders(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{RateLimit: 0.001, RateBurst: 2, TrustProxyHeaders: true})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp := get(t, srv.URL+"/health", map[string]string{"X-Forwarded-For": "10.0.0.1"})
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	resp := get(t, srv.URL+"/health", map[string]string{"X-Forwarded-For": "10.0.0.2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "behind a trusted proxy each client has its own bucket")
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:54321", "192.0.2.1"},
		{"[2001:db8::1]:443", "2001:db8::1"},
		{"192.0.2.7", "192.0.2.7"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/health", nil)
		r.RemoteAddr = tt.remoteAddr
		r.Header.Set("X-Forwarded-For", "203.0.113.9")
		assert.Equal(t, tt.want, clientIP(r), "clientIP(%q)", tt.remoteAddr)
	}
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t, config.ServerConfig{CORSOrigins: []string{"https://example.com"}})

	resp := get(t, srv.URL+"/health", map[string]string{"Origin": "https://example.com"})
	assert.Equal(t, "https://example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = get(t, srv.URL+"/health", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestVisitorLimiterEvict(t *testing.T) {
	l := newVisitorLimiter(1, 1)
	l.get("1.1.1.1")
	l.visitors["1.1.1.1"].lastSeen = time.Now().Add(-time.Hour)
	l.get("2.2.2.2")

	l.evict(time.Minute)

	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "2.2.2.2")
}

func TestRun_GracefulShutdown(t *testing.T) {
	s := New(config.ServerConfig{Addr: "127.0.0.1:0"}, &fakeBuilder{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewCalendarResponse_NoToday(t *testing.T) {
	snap := monthview.Compute(monthview.Selection{Year: 2030, Month: time.May, Country: "BE"}, nil, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	resp := newCalendarResponse(snap)

	assert.Nil(t, resp.TodaySlotID)
	assert.Empty(t, resp.MonthHolidays)
	assert.True(t, strings.HasPrefix(resp.MonthName, "May"))
}
