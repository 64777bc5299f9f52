package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/leaplang/internal/engine"
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/lexer"
	"github.com/leapstack-labs/leaplang/pkg/token"
	"github.com/spf13/cobra"
)

const continuationPrompt = "     ...> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session. Declarations and values persist between
inputs. A statement may span several lines: input is evaluated once it ends
with ';' or a closing '}' and every block is closed.

Input with semantic, syntax or runtime errors is rejected and leaves the
session unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd)
		},
	}
}

// lineReader is the part of readline the session loop needs.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// replSession is one interactive session.
type replSession struct {
	cc      *CommandContext
	session *engine.Session
	in      lineReader
	prompt  string
}

func runREPL(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)

	historyFile := cc.Cfg.REPL.HistoryFile
	if historyFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			historyFile = filepath.Join(home, ".leaplang_history")
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cc.Cfg.REPL.Prompt,
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	cc.Renderer.Header(1, "leaplang repl")
	cc.Renderer.Muted("Type .help for commands, .quit to exit")
	cc.Renderer.Println()

	s := newREPLSession(cc, rl)
	return s.loop(cmd.Context())
}

func newREPLSession(cc *CommandContext, in lineReader) *replSession {
	return &replSession{
		cc:      cc,
		session: cc.Engine.NewSession(),
		in:      in,
		prompt:  cc.Cfg.REPL.Prompt,
	}
}

func (s *replSession) loop(ctx context.Context) error {
	var buf strings.Builder
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			s.in.SetPrompt(s.prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 {
			if trimmed == "" {
				continue
			}
			// Handle dot-commands
			if strings.HasPrefix(trimmed, ".") {
				if quit := s.handleDotCommand(ctx, trimmed); quit {
					return nil
				}
				continue
			}
		}

		// Accumulate lines until the input forms whole statements
		buf.WriteString(line)
		buf.WriteByte('\n')
		if !chunkComplete(buf.String()) {
			s.in.SetPrompt(continuationPrompt)
			continue
		}
		s.in.SetPrompt(s.prompt)

		src := buf.String()
		buf.Reset()
		s.eval(ctx, src)
	}
}

// chunkComplete reports whether src ends a statement at brace depth zero.
func chunkComplete(src string) bool {
	depth := 0
	var last token.Token
	for _, t := range lexer.Tokenize(src) {
		switch {
		case t.Kind == token.Comment || t.Kind == token.EOF:
			continue
		case t.Is(token.Punctuation, "{"):
			depth++
		case t.Is(token.Punctuation, "}"):
			depth--
		}
		last = t
	}
	if depth > 0 {
		return false
	}
	return last.Is(token.Punctuation, ";") || last.Is(token.Punctuation, "}")
}

func (s *replSession) eval(ctx context.Context, src string) {
	r := s.cc.Renderer

	res, err := s.session.Eval(ctx, src)
	if err != nil {
		r.Error("Erro: " + err.Error())
		return
	}
	printDiagnostics(r, res.Diagnostics)
	if !res.Executed {
		return
	}

	env := s.session.Env()
	for _, name := range assignedNames(res.Program) {
		if v, ok := env.Get(name); ok {
			r.Printf("%s = %s\n", name, v.Format(s.cc.Cfg.RealPrecision))
		}
	}
}

// assignedNames lists the variables a program declares or assigns, once
// each, in source order.
func assignedNames(prog *ast.Program) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	ast.Walk(prog, func(n ast.Node, _ int) bool {
		switch n := n.(type) {
		case *ast.Decl:
			add(n.Name.Name())
		case *ast.Assign:
			add(n.Target.Name())
		case ast.Expr:
			return false
		}
		return true
	})
	return names
}

// handleDotCommand runs a dot-command and reports whether the session
// should end.
func (s *replSession) handleDotCommand(ctx context.Context, line string) bool {
	r := s.cc.Renderer
	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".vars":
		s.printVars()

	case ".tokens":
		if arg == "" {
			r.Error("Usage: .tokens <source>")
			return false
		}
		for _, t := range s.cc.Engine.Tokenize(arg) {
			r.Println(t.String())
		}

	case ".ast":
		if arg == "" {
			r.Error("Usage: .ast <source>")
			return false
		}
		prog, _, err := s.cc.Engine.Parse(s.cc.Engine.Tokenize(arg))
		if err != nil {
			r.Error("Erro: " + err.Error())
			return false
		}
		_ = ast.Fprint(r.Writer(), prog)

	case ".reset":
		s.session.Reset()
		s.cc.Logger.DebugContext(ctx, "session reset")
		r.Success("Session reset")

	default:
		r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

func (s *replSession) printVars() {
	r := s.cc.Renderer
	symbols := s.session.Symbols().Symbols()
	if len(symbols) == 0 {
		r.Muted("(no variables)")
		return
	}

	env := s.session.Env()
	rows := make([][]string, len(symbols))
	for i, sym := range symbols {
		value := ""
		if v, ok := env.Get(sym.Name); ok {
			value = v.Format(s.cc.Cfg.RealPrecision)
		}
		rows[i] = []string{sym.Name, sym.Type.String(), value}
	}
	r.Table([]string{"name", "type", "value"}, rows)
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .vars            List declared variables and their values
  .tokens <src>    Print the tokens of <src>
  .ast <src>       Print the syntax tree of <src>
  .reset           Forget every variable
  .quit / .exit    Exit the REPL

Tips:
  - Input runs once it ends with ';' or '}' and all blocks are closed
  - An 'else' must start on the line that closes its 'if'
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter completes dot-commands and type keywords.
func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".vars"),
		readline.PcItem(".tokens"),
		readline.PcItem(".ast"),
		readline.PcItem(".reset"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
		readline.PcItem("int"),
		readline.PcItem("float"),
		readline.PcItem("string"),
		readline.PcItem("boolean"),
		readline.PcItem("if"),
	)
}
