package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(Formats(), c.Format) {
		return fmt.Errorf("invalid format %q (available: %s)", c.Format, strings.Join(Formats(), ", "))
	}
	if !slices.Contains(ColorModes(), c.Color) {
		return fmt.Errorf("invalid color mode %q (available: %s)", c.Color, strings.Join(ColorModes(), ", "))
	}
	if !slices.Contains(LogLevels(), strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level %q (available: %s)", c.LogLevel, strings.Join(LogLevels(), ", "))
	}
	if c.RealPrecision < 1 || c.RealPrecision > 17 {
		return fmt.Errorf("real_precision must be between 1 and 17, got %d", c.RealPrecision)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("check.jobs must not be negative, got %d", c.Check.Jobs)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	return nil
}
