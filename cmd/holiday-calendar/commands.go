package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/daemon"
	"github.com/username/holiday-calendar/internal/holidays"
	"github.com/username/holiday-calendar/internal/monthview"
	"github.com/username/holiday-calendar/internal/render"
	"github.com/username/holiday-calendar/internal/server"
	"github.com/username/holiday-calendar/internal/tui"
)

// selectionFromFlags starts at the current month and country from config, then applies flags
func selectionFromFlags(now time.Time, year, month int, country string) (monthview.Selection, error) {
	sel := monthview.NewSelection(now, appConfig.Display.Country)
	if year != 0 {
		sel = sel.WithYear(year)
	}
	if month != 0 {
		sel = sel.WithMonth(time.Month(month))
	}
	if country != "" {
		sel = sel.WithCountry(country)
	}
	if err := sel.Validate(); err != nil {
		return monthview.Selection{}, fmt.Errorf("invalid selection: %w", err)
	}
	return sel, nil
}

func showCmd() *cobra.Command {
	var year, month int
	var country string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one month with its holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := selectionFromFlags(time.Now(), year, month, country)
			if err != nil {
				return err
			}

			builder, err := initializeBuilder(appConfig)
			if err != nil {
				return err
			}

			snap := builder.Build(cmd.Context(), sel)
			fmt.Fprint(cmd.OutOrStdout(), render.Month(snap))
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "Year (default: current year)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month 1-12 (default: current month)")
	cmd.Flags().StringVar(&country, "country", "", "Country code (default: display.country)")

	return cmd
}

func tuiCmd() *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse months interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if appConfig.Log.File == "" {
				// Console logs would draw over the alt screen.
				logger = zap.NewNop()
			}

			sel, err := selectionFromFlags(time.Now(), 0, 0, country)
			if err != nil {
				return err
			}

			builder, err := initializeBuilder(appConfig)
			if err != nil {
				return err
			}

			model := tui.NewModel(cmd.Context(), builder, sel, appConfig.Display.MinYear, appConfig.Display.MaxYear)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&country, "country", "", "Country code (default: display.country)")

	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve month snapshots over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				appConfig.Server.Addr = addr
			}

			builder, err := initializeBuilder(appConfig)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(appConfig.Server, builder, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr)")

	return cmd
}

func daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Refresh today's holidays daily, optionally in the system tray",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := initializeBuilder(appConfig)
			if err != nil {
				return err
			}

			hour, minute := appConfig.Daemon.GetDailyTime()
			d := daemon.NewScheduledDaemon(builder, appConfig.Display.Country, hour, minute, appConfig.Daemon.SystemTray, logger)

			logger.Info("Starting daemon",
				zap.String("country", appConfig.Display.Country),
				zap.Bool("system_tray", appConfig.Daemon.SystemTray))
			return d.Start()
		},
	}
}

func countriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List selectable countries",
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range holidays.Countries() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", c.Code, c.Name)
			}
		},
	}
}
