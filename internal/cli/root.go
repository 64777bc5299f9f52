// Package cli provides the command-line interface for leaplang.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/leaplang/internal/cli/commands"
	"github.com/leapstack-labs/leaplang/internal/cli/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// modeUsage is printed for any invocation that does not select exactly one
// pipeline mode and one file.
const modeUsage = `Uso:
  leaplang --tokens <arquivo>
  leaplang --ast    <arquivo>
  leaplang --run    <arquivo>

Run 'leaplang --help' for subcommands and flags.
`

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	modes := make(map[commands.Mode]*bool)

	rootCmd := &cobra.Command{
		Use:   "leaplang [--tokens|--ast|--run] <file>",
		Short: "leaplang - a small typed teaching language",
		Long: `leaplang lexes, parses, type-checks and interprets programs written in a
small statically typed language with int, float, string and boolean
variables, blocks and if/else.

Pick one pipeline mode for a file, or use a subcommand.`,
		Example: `  leaplang --tokens hello.lp
  leaplang --ast hello.lp
  leaplang --run hello.lp
  leaplang check *.lp
  leaplang repl`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg)
			cmd.SetContext(context.WithValue(cmd.Context(), config.LoggerKey(), logger))

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var selected []commands.Mode
			for _, m := range commands.Modes() {
				if *modes[m] {
					selected = append(selected, m)
				}
			}
			if len(selected) != 1 || len(args) != 1 {
				printModeUsage(cmd.ErrOrStderr())
				return commands.ErrUsage
			}
			return commands.RunMode(cmd, selected[0], args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Pipeline modes
	for _, m := range commands.Modes() {
		modes[m] = rootCmd.Flags().Bool(string(m), false, fmt.Sprintf("Process <file> in %s mode", m))
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: nearest leaplang.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", config.DefaultFormat, "Output format (plain|table|json|yaml)")
	rootCmd.PersistentFlags().String("color", config.DefaultColor, "Color output (auto|always|never)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Int("real-precision", config.DefaultRealPrecision, "Significant digits when printing reals")

	// Register completion for enum flags
	_ = rootCmd.RegisterFlagCompletionFunc("format", fixedCompletion(config.Formats()))
	_ = rootCmd.RegisterFlagCompletionFunc("color", fixedCompletion(config.ColorModes()))
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", fixedCompletion(config.LogLevels()))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Erro: %v\n", err)
		if cmd == cmd.Root() {
			printModeUsage(cmd.ErrOrStderr())
		} else {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		}
		return commands.ErrUsage
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(commands.BuildInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
	}))
	rootCmd.AddCommand(commands.NewTokensCommand())
	rootCmd.AddCommand(commands.NewASTCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewFmtCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

func printModeUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, modeUsage)
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// Execute runs the root command with args. Errors that were not already
// reported are printed as "Erro: <message>".
func Execute(ctx context.Context, args []string) error {
	return execute(ctx, args, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !commands.IsReported(err) {
		_, _ = fmt.Fprintf(errOut, "Erro: %v\n", err)
	}
	return err
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for the given shell and write it to stdout.
Load it for the current session with: source <(leaplang completion bash)`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
