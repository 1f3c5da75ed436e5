package daemon

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/calendar"
	"github.com/username/holiday-calendar/internal/monthview"
	"github.com/username/holiday-calendar/internal/render"
)

const dateKeyLayout = "2006-01-02"

// Builder computes a snapshot for a selection
type Builder interface {
	Build(ctx context.Context, sel monthview.Selection) monthview.Snapshot
}

// Status is the daemon's view of today
type Status struct {
	Selection     monthview.Selection `json:"selection"`
	GeneratedAt   time.Time           `json:"generated_at"`
	Today         string              `json:"today"`
	TodayHolidays []string            `json:"today_holidays"`
	WeekTier      calendar.SlotColor  `json:"week_tier"`
	MonthHolidays int                 `json:"month_holidays"`
	LastRunDate   string              `json:"last_run_date"`
	LastRefresh   time.Time           `json:"last_refresh"`
}

// Daemon represents the daemon process
type Daemon struct {
	builder     Builder
	country     string
	dailyHour   int  // Hour to refresh (0-23)
	dailyMinute int  // Minute to refresh (0-59)
	systemTray  bool // Show system tray icon
	logger      *zap.Logger
	now         func() time.Time
	ctx         context.Context
	cancel      context.CancelFunc
	trayApp     *TrayApp

	refreshMu   sync.Mutex // serializes refreshes
	mu          sync.RWMutex
	snap        monthview.Snapshot
	hasSnap     bool
	lastRunDate string    // date of the last scheduled refresh
	lastRefresh time.Time // time of the last refresh of any kind
}

// NewScheduledDaemon creates a new daemon instance with daily schedule
func NewScheduledDaemon(builder Builder, country string, dailyHour, dailyMinute int, systemTray bool, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	return &Daemon{
		builder:     builder,
		country:     strings.ToUpper(country),
		dailyHour:   dailyHour,
		dailyMinute: dailyMinute,
		systemTray:  systemTray,
		logger:      logger,
		now:         time.Now,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start starts the daemon and blocks until it is stopped
func (d *Daemon) Start() error {
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		d.trayApp = NewTrayApp(d, d.logger)
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	d.runScheduledLogic()
	return nil
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// runScheduledLogic refreshes once at start and then daily at the configured time
func (d *Daemon) runScheduledLogic() {
	d.logger.Info("Daemon scheduled logic started",
		zap.String("country", d.country),
		zap.Int("daily_hour", d.dailyHour),
		zap.Int("daily_minute", d.dailyMinute))

	d.refreshAtStartup()

	nextRun := d.calculateNextRun(d.now())
	d.logger.Info("Next refresh scheduled",
		zap.Time("next_run", nextRun),
		zap.Duration("wait_duration", nextRun.Sub(d.now())))

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// Check every minute if it's time to run
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()

		case now := <-ticker.C:
			if !d.due(now) {
				continue
			}
			d.runScheduledRefresh(now)

			nextRun = d.calculateNextRun(now)
			d.logger.Info("Next refresh scheduled",
				zap.Time("next_run", nextRun),
				zap.Duration("wait_duration", nextRun.Sub(now)))
		}
	}
}

// refreshAtStartup refreshes once. Only a start at or after the scheduled time counts as
// today's scheduled run; an earlier start still gets the scheduled refresh later that day.
func (d *Daemon) refreshAtStartup() {
	now := d.now()
	d.RefreshNow()

	scheduledToday := time.Date(now.Year(), now.Month(), now.Day(),
		d.dailyHour, d.dailyMinute, 0, 0, now.Location())
	if !now.Before(scheduledToday) {
		d.markRun(now)
	}
}

// runScheduledRefresh is the daily refresh triggered by the ticker
func (d *Daemon) runScheduledRefresh(now time.Time) {
	d.logger.Info("Starting scheduled refresh", zap.Time("time", now))
	d.RefreshNow()
	d.markRun(now)
}

// due reports whether the scheduled refresh should run at now
func (d *Daemon) due(now time.Time) bool {
	return d.shouldRunAt(now) && d.LastRunDate() != now.Format(dateKeyLayout)
}

func (d *Daemon) markRun(now time.Time) {
	d.mu.Lock()
	d.lastRunDate = now.Format(dateKeyLayout)
	d.mu.Unlock()
}

// RefreshNow rebuilds the current month snapshot and logs today's holidays
func (d *Daemon) RefreshNow() Status {
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	now := d.now()
	sel := monthview.NewSelection(now, d.country)
	snap := d.builder.Build(d.ctx, sel)

	d.mu.Lock()
	d.snap = snap
	d.hasSnap = true
	d.lastRefresh = now
	d.mu.Unlock()

	status := d.Status()
	d.logger.Info("Holiday snapshot refreshed",
		zap.String("selection", sel.String()),
		zap.Strings("today_holidays", status.TodayHolidays),
		zap.Stringer("week_tier", status.WeekTier),
		zap.Int("month_holidays", status.MonthHolidays))

	if d.trayApp != nil {
		d.trayApp.Update(status)
	}
	return status
}

// Status returns the state of the last refresh
func (d *Daemon) Status() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()

	status := Status{
		Today:         d.now().Format(dateKeyLayout),
		TodayHolidays: []string{},
		LastRunDate:   d.lastRunDate,
		LastRefresh:   d.lastRefresh,
	}
	if !d.hasSnap {
		return status
	}

	status.Selection = d.snap.Selection
	status.GeneratedAt = d.snap.GeneratedAt
	status.MonthHolidays = len(d.snap.MonthHolidays())
	if d.snap.HasToday {
		status.TodayHolidays = append(status.TodayHolidays, d.snap.HolidayNames(d.snap.TodaySlot)...)
		status.WeekTier = d.snap.Color(d.snap.TodaySlot)
	}
	return status
}

// MonthSummary returns a one-line summary of the last snapshot
func (d *Daemon) MonthSummary() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.hasSnap {
		return "no snapshot yet"
	}
	return render.Summary(d.snap, d.now())
}

// LastRunDate returns the date of the last refresh
func (d *Daemon) LastRunDate() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastRunDate
}

// calculateNextRun returns the next scheduled refresh after now (local time)
func (d *Daemon) calculateNextRun(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(),
		d.dailyHour, d.dailyMinute, 0, 0, now.Location())

	// If target time already passed today, schedule for tomorrow
	if !now.Before(today) {
		return today.AddDate(0, 0, 1)
	}
	return today
}

// shouldRunAt checks if the refresh should run at the given minute
func (d *Daemon) shouldRunAt(now time.Time) bool {
	return now.Hour() == d.dailyHour && now.Minute() == d.dailyMinute
}
