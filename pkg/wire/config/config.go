package config

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Config holds dispatcher construction settings.
type Config struct {
	// Name identifies the dispatcher in logs, metrics and spans.
	// Default: "wire"
	Name string `yaml:"name" json:"name"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Metrics enables OpenTelemetry metrics.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Tracing enables OpenTelemetry tracing.
	Tracing bool `yaml:"tracing" json:"tracing"`

	// Skip maps a pattern to handler names suppressed on channels it matches.
	Skip map[string][]string `yaml:"skip" json:"skip"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Name:     "wire",
		LogLevel: "info",
	}
}

// Level converts LogLevel to a slog.Level.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

// SkipPatterns returns the skip rule patterns in sorted order, so rules are
// applied deterministically regardless of map iteration.
func (c Config) SkipPatterns() []string {
	patterns := make([]string, 0, len(c.Skip))
	for p := range c.Skip {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

// Validate checks fields that can be checked without a dispatcher.
// Pattern syntax is validated by the dispatcher when rules are applied.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	for p, names := range c.Skip {
		if len(names) == 0 {
			return fmt.Errorf("skip rule %q has no handler names", p)
		}
	}
	return nil
}
