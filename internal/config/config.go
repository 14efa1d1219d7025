package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey     string        `env:"GEMINI_API_KEY"`
	Model            string        `env:"NAIRAWISE_MODEL"             envDefault:"gemini-2.5-flash"`
	SaveDir          string        `env:"NAIRAWISE_SAVE_DIR"          envDefault:".saves"`
	WeekLimit        int           `env:"NAIRAWISE_WEEK_LIMIT"        envDefault:"52"` // 0 means unbounded
	StrictBankruptcy bool          `env:"NAIRAWISE_STRICT_BANKRUPTCY" envDefault:"false"`
	PrefetchTimeout  time.Duration `env:"NAIRAWISE_PREFETCH_TIMEOUT"  envDefault:"20s"`
	OracleTimeout    time.Duration `env:"NAIRAWISE_ORACLE_TIMEOUT"    envDefault:"30s"`
	LogLevel         string        `env:"NAIRAWISE_LOG_LEVEL"         envDefault:"info"`
	Seed             int64         `env:"NAIRAWISE_SEED"              envDefault:"0"`
}

// LoadConfig loads the configuration from environment variables, reading a
// .env file in the working directory first when one exists.
func LoadConfig() (*Config, error) {
	cfg, err := LoadLocalConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is not set")
	}
	return cfg, nil
}

// LoadLocalConfig is LoadConfig for commands that never call Gemini, such as
// listing saves. The API key may be empty.
func LoadLocalConfig() (*Config, error) {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the tuning fields.
func (c *Config) Validate() error {
	if c.WeekLimit < 0 {
		return fmt.Errorf("NAIRAWISE_WEEK_LIMIT must be >= 0, got %d", c.WeekLimit)
	}
	if c.PrefetchTimeout <= 0 {
		return fmt.Errorf("NAIRAWISE_PREFETCH_TIMEOUT must be positive, got %s", c.PrefetchTimeout)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
