package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/username/holiday-calendar/internal/config"
	"github.com/username/holiday-calendar/internal/holidays"
	"github.com/username/holiday-calendar/internal/monthview"
)

func initializeSource(cfg *config.Config) (holidays.Source, error) {
	switch cfg.Holidays.Source {
	case "nager":
		logger.Info("Using Nager.Date holiday API", zap.String("api_url", cfg.Holidays.APIURL))
		primary := holidays.NewNagerSource(cfg.Holidays.APIURL, cfg.Holidays.GetTimeout(), logger)
		if !cfg.Holidays.UseFallback() {
			return primary, nil
		}
		logger.Info("Offline holiday tables enabled as fallback")
		return holidays.NewCompositeSource(primary, holidays.NewOfflineSource(logger), logger), nil

	case "offline":
		logger.Info("Using offline holiday tables")
		return holidays.NewOfflineSource(logger), nil

	default:
		return nil, fmt.Errorf("unknown holiday source: %s", cfg.Holidays.Source)
	}
}

func initializeBuilder(cfg *config.Config) (*monthview.Builder, error) {
	source, err := initializeSource(cfg)
	if err != nil {
		return nil, err
	}
	return monthview.NewBuilder(source, logger, monthview.WithTimeout(cfg.Holidays.GetTimeout())), nil
}
