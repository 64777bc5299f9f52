package commands

import (
	"log/slog"

	"github.com/leapstack-labs/leaplang/internal/cli/config"
	"github.com/leapstack-labs/leaplang/internal/cli/output"
	"github.com/leapstack-labs/leaplang/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer

	// Record stores executed runs in the history database.
	Record bool
}

// NewCommandContext creates a CommandContext from the loaded configuration
// and the logger stored in the command's context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Format))
	r.SetColor(cfg.Color)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   engine.New(engine.Config{Logger: logger}),
		Renderer: r,
		Record:   cfg.History.Enabled,
	}
}

// getConfig returns the current configuration, or the defaults when no
// configuration was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}
