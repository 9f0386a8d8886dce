package config

import (
	"fmt"
	"slices"
	"strings"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// LoggingConfig sets the level and format of the service loggers. Empty
// fields keep the logger defaults.
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Validate checks the level and format names.
func (c LoggingConfig) Validate() error {
	if c.Level != "" && !slices.Contains(logLevels, strings.ToLower(c.Level)) {
		return fmt.Errorf("logging.level: unknown level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "", "json", "console":
		return nil
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Format)
	}
}
