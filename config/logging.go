package config

import (
	"fmt"
	"strings"
)

// LoggingConfig controls the log level and output format.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error, fatal or panic.
	Level string `json:"level"`
	// Env switches the output format: "development" renders a console
	// writer, anything else emits JSON lines.
	Env string `json:"env"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the level name.
func (c LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		return nil
	default:
		return fmt.Errorf("unknown log level %s", c.Level)
	}
}
