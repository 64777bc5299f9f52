package commands

import "github.com/spf13/cobra"

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a source file",
		Long: `Tokenize a source file and print one token per line, including the
final end-of-file token.`,
		Example: `  leaplang tokens examples/hello.lp
  leaplang tokens examples/hello.lp --format table`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMode(cmd, ModeTokens, args[0])
		},
	}
}

// NewASTCommand creates the ast command.
func NewASTCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree and semantic diagnostics",
		Long: `Parse and check a source file. The tree is printed one node per line,
indented by depth. Semantic diagnostics go to stderr and do not change the
exit status.`,
		Example: `  leaplang ast examples/hello.lp
  leaplang ast examples/hello.lp --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMode(cmd, ModeAST, args[0])
		},
	}
}

// RunOptions holds options for the run command.
type RunOptions struct {
	Record bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Check and execute a source file",
		Long: `Run the full pipeline on a source file and print the final value of
every variable. A file with semantic errors is not executed.`,
		Example: `  leaplang run examples/hello.lp
  leaplang run examples/hello.lp --real-precision 10
  leaplang run examples/hello.lp --record`,
		Aliases: []string{"exec"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			cc.Record = cc.Record || opts.Record
			return cc.runFile(cmd.Context(), ModeRun, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Record, "record", false, "Store the outcome in the run history")
	return cmd
}
