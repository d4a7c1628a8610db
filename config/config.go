package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	LogLevel         string
	DBPath           string
	SchemaVersion    uint
	OpenTimeout      time.Duration
	OpTimeout        time.Duration
	BusyTimeout      time.Duration
	AutoSaveInterval time.Duration
	CORSOrigins      string
}

// Load reads .env (if present) and the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:        GetEnv("PORT", "3000"),
		Env:         GetEnv("ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		DBPath:      GetEnv("DB_PATH", "./data/notes.db"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "*"),
	}

	version, err := strconv.ParseUint(GetEnv("DB_SCHEMA_VERSION", "1"), 10, 32)
	if err != nil || version == 0 {
		return nil, fmt.Errorf("DB_SCHEMA_VERSION must be a positive integer")
	}
	cfg.SchemaVersion = uint(version)

	durations := []struct {
		key      string
		fallback string
		target   *time.Duration
	}{
		{"DB_OPEN_TIMEOUT", "10s", &cfg.OpenTimeout},
		{"DB_OP_TIMEOUT", "5s", &cfg.OpTimeout},
		{"DB_BUSY_TIMEOUT", "2s", &cfg.BusyTimeout},
		{"AUTOSAVE_INTERVAL", "10s", &cfg.AutoSaveInterval},
	}
	for _, d := range durations {
		value, err := time.ParseDuration(GetEnv(d.key, d.fallback))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.target = value
	}

	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// NewLogger builds the process logger writing to w: JSON in production, text otherwise
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     c.level(),
		AddSource: c.Env == "development",
	}

	if c.Env == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func (c *Config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
