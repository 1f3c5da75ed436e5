package daemon

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"fyne.io/systray"
	"go.uber.org/zap"
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) *TrayApp {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	if icon, err := calendarIcon(); err != nil {
		t.logger.Warn("Failed to draw tray icon", zap.Error(err))
	} else {
		systray.SetIcon(icon)
	}
	systray.SetTitle("Holidays")
	systray.SetTooltip("Holiday Calendar")

	mRefresh := systray.AddMenuItem("Refresh now", "Fetch holidays again")
	mMonth := systray.AddMenuItem("This month", "Log this month's holidays")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	// Start daemon logic in background
	go t.daemon.runScheduledLogic()

	go func() {
		for {
			select {
			case <-mRefresh.ClickedCh:
				t.logger.Info("Refresh clicked from tray")
				go t.daemon.RefreshNow()
			case <-mMonth.ClickedCh:
				t.logger.Info("This month's holidays",
					zap.String("summary", t.daemon.MonthSummary()))
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

// Update shows the refreshed status in the tooltip
func (t *TrayApp) Update(status Status) {
	systray.SetTooltip(tooltip(status))
}

func tooltip(status Status) string {
	if len(status.TodayHolidays) == 0 {
		return fmt.Sprintf("today: no holidays (%d this month)", status.MonthHolidays)
	}
	return "today: " + strings.Join(status.TodayHolidays, ", ")
}

// calendarIcon draws a 16x16 calendar page with a blue header
func calendarIcon() ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	header := color.RGBA{0x88, 0xb8, 0xff, 0xff}
	page := color.RGBA{0xf6, 0xf8, 0xfa, 0xff}
	mark := color.RGBA{0x04, 0x5b, 0x33, 0xff}

	for y := 1; y < 15; y++ {
		for x := 1; x < 15; x++ {
			c := page
			if y < 5 {
				c = header
			}
			img.Set(x, y, c)
		}
	}
	for y := 8; y < 12; y++ {
		for x := 9; x < 13; x++ {
			img.Set(x, y, mark)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode tray icon: %w", err)
	}
	return buf.Bytes(), nil
}
