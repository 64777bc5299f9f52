package commands

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/leaplang/pkg/format"
	"github.com/spf13/cobra"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Print a source file in canonical form",
		Long: `Reformat a source file: one statement per line, blocks indented by two
spaces and only the parentheses precedence requires. Comments are kept.`,
		Example: `  # Print the formatted source
  leaplang fmt examples/hello.lp

  # Rewrite the file in place
  leaplang fmt -w examples/hello.lp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to the file")

	return cmd
}

func runFmt(cmd *cobra.Command, opts *FmtOptions, path string) error {
	cc := NewCommandContext(cmd)

	src, err := readSource(path)
	if err != nil {
		return err
	}

	tokens := cc.Engine.Tokenize(src)
	prog, _, err := cc.Engine.Parse(tokens)
	if err != nil {
		return err
	}
	formatted := format.WithComments(prog, tokens)

	if !opts.Write {
		cc.Renderer.Printf("%s", formatted)
		return nil
	}
	if formatted == src {
		cc.Logger.DebugContext(cmd.Context(), "already formatted", "file", path)
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cc.Logger.InfoContext(cmd.Context(), "formatted", "file", path)
	return nil
}
