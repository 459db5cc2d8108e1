package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL string `env:"DATABASE_URL,required"`
	Port        int    `env:"PORT" envDefault:"5000"`

	// Rate limiting (disabled when REDIS_URL is empty)
	RedisURL           string `env:"REDIS_URL"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`

	// Salon operating rules
	TimeZone      string `env:"SALON_TIMEZONE" envDefault:"Africa/Nairobi"`
	OpenHour      int    `env:"SALON_OPEN_HOUR" envDefault:"9"`
	CloseHour     int    `env:"SALON_CLOSE_HOUR" envDefault:"19"`
	ClosedWeekday int    `env:"SALON_CLOSED_WEEKDAY" envDefault:"0"` // 0 = Sunday
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.OpenHour < 0 || cfg.CloseHour > 24 || cfg.OpenHour >= cfg.CloseHour {
		return nil, fmt.Errorf("invalid operating hours: open=%d close=%d", cfg.OpenHour, cfg.CloseHour)
	}
	return cfg, nil
}

// Location resolves the configured salon time zone. All booking times are
// interpreted and displayed in this single zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
