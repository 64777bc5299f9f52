// Package config provides configuration management for the leaplang CLI.
//
// Configuration is layered, lowest precedence first: built-in defaults,
// leaplang.yaml, LEAPLANG_* environment variables, then explicitly set
// command-line flags.
package config

import "time"

// Config holds all CLI configuration options.
type Config struct {
	Format        string        `koanf:"format"`
	Color         string        `koanf:"color"`
	Verbose       bool          `koanf:"verbose"`
	LogLevel      string        `koanf:"log_level"`
	RealPrecision int           `koanf:"real_precision"`
	REPL          REPLConfig    `koanf:"repl"`
	Watch         WatchConfig   `koanf:"watch"`
	Check         CheckConfig   `koanf:"check"`
	History       HistoryConfig `koanf:"history"`
}

// REPLConfig holds settings for the interactive session.
type REPLConfig struct {
	Prompt string `koanf:"prompt"`
	// HistoryFile defaults to ~/.leaplang_history when empty.
	HistoryFile string `koanf:"history_file"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// CheckConfig holds settings for batch checking.
type CheckConfig struct {
	// Jobs is the number of files checked in parallel. Zero means one per CPU.
	Jobs int `koanf:"jobs"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Enabled records every run, as if --record were passed.
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// Output formats.
const (
	FormatPlain = "plain"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default configuration values.
const (
	DefaultFormat        = FormatPlain
	DefaultColor         = ColorAuto
	DefaultLogLevel      = "warn"
	DefaultRealPrecision = 6
	DefaultPrompt        = "leaplang> "
	DefaultDebounce      = 100 * time.Millisecond
	DefaultHistoryPath   = ".leaplang/history.db"
)

// Formats lists the accepted --format values.
func Formats() []string {
	return []string{FormatPlain, FormatTable, FormatJSON, FormatYAML}
}

// ColorModes lists the accepted --color values.
func ColorModes() []string {
	return []string{ColorAuto, ColorAlways, ColorNever}
}

// LogLevels lists the accepted --log-level values.
func LogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Format:        DefaultFormat,
		Color:         DefaultColor,
		LogLevel:      DefaultLogLevel,
		RealPrecision: DefaultRealPrecision,
		REPL:          REPLConfig{Prompt: DefaultPrompt},
		Watch:         WatchConfig{Debounce: DefaultDebounce},
		History:       HistoryConfig{Path: DefaultHistoryPath},
	}
}
