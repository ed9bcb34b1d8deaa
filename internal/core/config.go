package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSessionTimeout bounds the wait for the next interaction on a session.
const DefaultSessionTimeout = time.Hour

// Config holds the application configuration.
type Config struct {
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"` // debug, info, warn, error
	Debug          bool          `env:"DEBUG"`                       // overrides LogLevel
	LogFile        string        `env:"MC_LOG_FILE"`                 // also append logs here
	BotToken       string        `env:"BOT_TOKEN"`                   // required to connect
	AppID          string        `env:"APP_ID"`                      // required to register commands
	LayoutPath     string        `env:"MC_LAYOUT" envDefault:"layout.yaml"`
	MetricsAddr    string        `env:"MC_METRICS_ADDR"` // empty disables /metrics
	SessionTimeout time.Duration `env:"MC_SESSION_TIMEOUT" envDefault:"1h"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	return loadConfig(env.Options{})
}

// LoadConfigFrom loads configuration from the given variables instead of the
// process environment.
func LoadConfigFrom(vars map[string]string) (*Config, error) {
	return loadConfig(env.Options{Environment: vars})
}

func loadConfig(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// DEBUG flag overrides log level
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = DefaultSessionTimeout
	}

	return cfg, nil
}

// Validate checks the fields required to connect to the platform.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}

	if c.AppID == "" {
		return fmt.Errorf("APP_ID is required")
	}

	if _, err := strconv.ParseUint(c.AppID, 10, 64); err != nil {
		return fmt.Errorf("APP_ID is not a valid id: %w", err)
	}

	return nil
}
