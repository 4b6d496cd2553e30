// Package config holds the environment-driven defaults of the fraglog CLI.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration. Command-line flags override it.
type Config struct {
	DBPath    string `env:"FRAGLOG_DB"`
	LogLevel  string `env:"FRAGLOG_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FRAGLOG_LOG_FORMAT" envDefault:"text"`
	// Top caps how many unknown lines parse prints; 0 prints all of them.
	Top int `env:"FRAGLOG_TOP" envDefault:"20"`
}

// Load reads the environment, filling DBPath under home when unset.
func Load(home string) (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(home, ".fraglog", "sessions.db")
	}
	if cfg.Top < 0 {
		return Config{}, fmt.Errorf("FRAGLOG_TOP must not be negative, got %d", cfg.Top)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("FRAGLOG_LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// NewLogger builds the process logger writing to w in the configured format.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
