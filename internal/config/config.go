package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. HOLIDAY_CALENDAR_DISPLAY_COUNTRY
const EnvPrefix = "HOLIDAY_CALENDAR"

// Config represents application configuration
type Config struct {
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Display  DisplayConfig  `mapstructure:"display"`
	Server   ServerConfig   `mapstructure:"server"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
	Log      LogConfig      `mapstructure:"log"`
}

// HolidaysConfig selects where holidays come from
type HolidaysConfig struct {
	Source   string `mapstructure:"source"` // "nager" or "offline"
	APIURL   string `mapstructure:"api_url"`
	Timeout  string `mapstructure:"timeout"`
	Fallback string `mapstructure:"fallback"` // "none" or "offline"
}

// DisplayConfig represents the initial selection and navigable year range
type DisplayConfig struct {
	Country string `mapstructure:"country"`
	MinYear int    `mapstructure:"min_year"`
	MaxYear int    `mapstructure:"max_year"`
}

// ServerConfig represents HTTP API configuration
type ServerConfig struct {
	Addr              string   `mapstructure:"addr"`
	RateLimit         float64  `mapstructure:"rate_limit"` // requests per second per client
	RateBurst         int      `mapstructure:"rate_burst"`
	CORSOrigins       []string `mapstructure:"cors_origins"`
	Metrics           bool     `mapstructure:"metrics"`
	TrustProxyHeaders bool     `mapstructure:"trust_proxy_headers"` // honour X-Forwarded-For; only behind a reverse proxy
}

// DaemonConfig represents daemon mode configuration
type DaemonConfig struct {
	DailyTime  string `mapstructure:"daily_time"` // HH:MM, local time
	SystemTray bool   `mapstructure:"system_tray"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("holidays.source", "nager")
	v.SetDefault("holidays.api_url", "https://date.nager.at")
	v.SetDefault("holidays.timeout", "15s")
	v.SetDefault("holidays.fallback", "none")

	v.SetDefault("display.country", "US")
	v.SetDefault("display.min_year", 2010)
	v.SetDefault("display.max_year", 2030)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit", 10.0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.metrics", true)
	v.SetDefault("server.trust_proxy_headers", false)

	v.SetDefault("daemon.daily_time", "08:00")
	v.SetDefault("daemon.system_tray", false)

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file. Without an explicit path a missing config file is
// not an error and defaults plus environment apply.
func Load(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.holiday-calendar")
		v.AddConfigPath("/etc/holiday-calendar")
	}

	// Read environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.normalize()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.Holidays.Source = strings.ToLower(strings.TrimSpace(c.Holidays.Source))
	c.Holidays.Fallback = strings.ToLower(strings.TrimSpace(c.Holidays.Fallback))
	c.Display.Country = strings.ToUpper(strings.TrimSpace(c.Display.Country))
	c.Holidays.APIURL = strings.TrimRight(c.Holidays.APIURL, "/")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Holidays.Source {
	case "nager":
		if c.Holidays.APIURL == "" {
			return fmt.Errorf("holidays.api_url is required for nager source")
		}
	case "offline":
	default:
		return fmt.Errorf("holidays.source must be 'nager' or 'offline', got '%s'", c.Holidays.Source)
	}

	switch c.Holidays.Fallback {
	case "", "none", "offline":
	default:
		return fmt.Errorf("holidays.fallback must be 'none' or 'offline', got '%s'", c.Holidays.Fallback)
	}

	if c.Holidays.Timeout != "" {
		if d, err := time.ParseDuration(c.Holidays.Timeout); err != nil || d <= 0 {
			return fmt.Errorf("holidays.timeout must be a positive duration, got '%s'", c.Holidays.Timeout)
		}
	}

	if c.Display.Country == "" {
		return fmt.Errorf("display.country is required")
	}
	if c.Display.MinYear < 1 || c.Display.MaxYear > 9999 || c.Display.MinYear > c.Display.MaxYear {
		return fmt.Errorf("display year range %d..%d is invalid", c.Display.MinYear, c.Display.MaxYear)
	}

	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("server.rate_limit and server.rate_burst must not be negative")
	}

	if c.Daemon.DailyTime != "" {
		if _, _, err := parseClock(c.Daemon.DailyTime); err != nil {
			return fmt.Errorf("daemon.daily_time: %w", err)
		}
	}

	return nil
}

// UseFallback reports whether the offline tables back up the primary source
func (c *HolidaysConfig) UseFallback() bool {
	return c.Source != "offline" && c.Fallback == "offline"
}

// GetTimeout returns the holiday fetch timeout
func (c *HolidaysConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 15 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return duration
}

// GetDailyTime returns the configured daily refresh time.
// Returns hour and minute (0-23, 0-59). Default: 08:00
func (c *DaemonConfig) GetDailyTime() (hour, minute int) {
	if c.DailyTime == "" {
		return 8, 0
	}
	h, m, err := parseClock(c.DailyTime)
	if err != nil {
		return 8, 0
	}
	return h, m
}

func parseClock(s string) (hour, minute int, err error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got '%s'", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("time %s out of range", s)
	}
	return h, m, nil
}
