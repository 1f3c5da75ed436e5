package monthview

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/calendar"
	"github.com/username/holiday-calendar/internal/holidays"
	"github.com/username/holiday-calendar/pkg/dateutil"
)

const defaultFetchTimeout = 15 * time.Second

// Snapshot is everything derived for one selection. It is never modified after Build;
// a refresh produces a new Snapshot.
type Snapshot struct {
	Selection Selection

	Slots      []calendar.DaySlot
	TodaySlot  int
	HasToday   bool
	WeekCounts map[int]int
	Colors     []calendar.SlotColor
	Names      [][]string

	// Holidays is the raw list for the whole year as returned by the source
	Holidays    []calendar.Holiday
	GeneratedAt time.Time
}

// Compute derives a snapshot from an already fetched holiday list
func Compute(sel Selection, holidayList []calendar.Holiday, now time.Time) Snapshot {
	m := sel.CalendarMonth()
	grid := calendar.BuildGrid(m, now)
	counts := calendar.BucketByWeek(holidayList, m)
	todaySlot, hasToday := grid.TodaySlot()

	return Snapshot{
		Selection:   sel,
		Slots:       grid.Slots,
		TodaySlot:   todaySlot,
		HasToday:    hasToday,
		WeekCounts:  counts,
		Colors:      calendar.Colorize(grid.Slots, counts, m),
		Names:       calendar.IndexNames(grid.Slots, holidayList, m),
		Holidays:    holidayList,
		GeneratedAt: now,
	}
}

// Month returns the displayed calendar month
func (s Snapshot) Month() calendar.CalendarMonth {
	return s.Selection.CalendarMonth()
}

// MonthHolidays returns the holidays of the exact displayed year and month
func (s Snapshot) MonthHolidays() []calendar.Holiday {
	return calendar.InMonth(s.Holidays, s.Month())
}

// IsToday reports whether the slot is today's date
func (s Snapshot) IsToday(id int) bool {
	return s.HasToday && s.TodaySlot == id
}

// IsWeekend reports whether a non-blank slot falls on Saturday or Sunday
func (s Snapshot) IsWeekend(id int) bool {
	if id < 0 || id >= len(s.Slots) || s.Slots[id].Blank() {
		return false
	}
	return dateutil.IsWeekend(s.Month().Date(s.Slots[id].Day))
}

// Color returns the density tier of a slot; unknown IDs are ColorNone
func (s Snapshot) Color(id int) calendar.SlotColor {
	if id < 0 || id >= len(s.Colors) {
		return calendar.ColorNone
	}
	return s.Colors[id]
}

// HolidayNames returns the holiday names of a slot; unknown IDs have none
func (s Snapshot) HolidayNames(id int) []string {
	if id < 0 || id >= len(s.Names) {
		return nil
	}
	return s.Names[id]
}

// Builder fetches holidays and computes snapshots
type Builder struct {
	source  holidays.Source
	logger  *zap.Logger
	now     func() time.Time
	timeout time.Duration
}

// Option configures a Builder
type Option func(*Builder)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithTimeout bounds a single holiday fetch
func WithTimeout(d time.Duration) Option {
	return func(b *Builder) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// NewBuilder creates a new Builder
func NewBuilder(source holidays.Source, logger *zap.Logger, opts ...Option) *Builder {
	b := &Builder{
		source:  source,
		logger:  logger,
		now:     time.Now,
		timeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Now returns the builder's current time
func (b *Builder) Now() time.Time {
	return b.now()
}

// Build fetches the holidays of the selected year and country and computes the snapshot.
// A failed fetch is logged and treated as a year without holidays.
func (b *Builder) Build(ctx context.Context, sel Selection) Snapshot {
	return Compute(sel, b.fetch(ctx, sel), b.now())
}

func (b *Builder) fetch(ctx context.Context, sel Selection) []calendar.Holiday {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	list, err := b.source.Fetch(ctx, sel.Year, sel.Country)
	if err != nil {
		b.logger.Warn("Failed to fetch holidays, rendering without them",
			zap.Int("year", sel.Year),
			zap.String("country", sel.Country),
			zap.Error(err))
		return nil
	}
	return list
}
