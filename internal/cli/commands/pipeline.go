package commands

import (
	"context"
	"strconv"

	"github.com/leapstack-labs/leaplang/internal/cli/output"
	"github.com/leapstack-labs/leaplang/internal/engine"
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/diag"
	"github.com/leapstack-labs/leaplang/pkg/interp"
	"github.com/leapstack-labs/leaplang/pkg/token"
	"github.com/spf13/cobra"
)

// Mode selects how far a file is taken through the pipeline.
type Mode string

// Pipeline modes, matching the --tokens, --ast and --run flags.
const (
	ModeTokens Mode = "tokens"
	ModeAST    Mode = "ast"
	ModeRun    Mode = "run"
)

// Modes lists every mode in flag order.
func Modes() []Mode {
	return []Mode{ModeTokens, ModeAST, ModeRun}
}

// RunMode reads path and processes it in the given mode.
func RunMode(cmd *cobra.Command, mode Mode, path string) error {
	return NewCommandContext(cmd).runFile(cmd.Context(), mode, path)
}

func (cc *CommandContext) runFile(ctx context.Context, mode Mode, path string) error {
	src, err := readSource(path)
	if err != nil {
		return err
	}
	return cc.process(ctx, mode, path, src)
}

func (cc *CommandContext) process(ctx context.Context, mode Mode, name, src string) error {
	switch mode {
	case ModeTokens:
		return cc.showTokens(ctx, name, src)
	case ModeAST:
		return cc.showAST(ctx, name, src)
	default:
		return cc.runProgram(ctx, name, src)
	}
}

func (cc *CommandContext) showTokens(ctx context.Context, name, src string) error {
	res, err := cc.Engine.Run(ctx, name, src, engine.StageLex)
	if err != nil {
		return err
	}
	r := cc.Renderer

	if ok, err := r.Encode(TokensOutput{File: name, Tokens: res.Tokens}); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeTable {
		r.Table([]string{"kind", "lexeme", "line", "column"}, tokenRows(res.Tokens))
		return nil
	}
	for _, t := range res.Tokens {
		r.Println(t.String())
	}
	return nil
}

func (cc *CommandContext) showAST(ctx context.Context, name, src string) error {
	res, err := cc.Engine.Run(ctx, name, src, engine.StageCheck)
	if err != nil {
		return err
	}
	cc.logWarnings(ctx, res.Warnings)
	r := cc.Renderer

	doc := ASTOutput{
		File:        name,
		Program:     ast.ToTree(res.Program),
		Symbols:     res.Symbols.Symbols(),
		Diagnostics: nonNil(res.Diagnostics),
	}
	if ok, err := r.Encode(doc); ok {
		return err
	}
	if err := ast.Fprint(r.Writer(), res.Program); err != nil {
		return err
	}
	printDiagnostics(r, res.Diagnostics)
	return nil
}

func (cc *CommandContext) runProgram(ctx context.Context, name, src string) error {
	res, err := cc.Engine.Run(ctx, name, src, engine.StageExecute)
	if cc.Record {
		cc.recordRun(ctx, res, err)
	}
	if err != nil {
		return err
	}
	cc.logWarnings(ctx, res.Warnings)
	r := cc.Renderer

	doc := RunOutput{
		File:        name,
		RunID:       res.RunID,
		Executed:    res.Executed,
		Bindings:    bindingViews(res.Env),
		Diagnostics: nonNil(res.Diagnostics),
	}
	if ok, err := r.Encode(doc); ok {
		if err != nil {
			return err
		}
		if res.HasErrors() {
			return ErrDiagnostics
		}
		return nil
	}

	printDiagnostics(r, res.Diagnostics)
	if res.HasErrors() {
		return ErrDiagnostics
	}
	printBindings(r, res.Env, cc.Cfg.RealPrecision)
	return nil
}

// logWarnings records the parser's advisories. The analyzer reports the
// same problems as diagnostics, so they are not printed.
func (cc *CommandContext) logWarnings(ctx context.Context, warnings diag.List) {
	for _, w := range warnings {
		cc.Logger.DebugContext(ctx, "parser advisory", "message", w.Message, "pos", w.Pos.String())
	}
}

func printDiagnostics(r *output.Renderer, list diag.List) {
	for _, d := range list {
		if d.Severity == diag.SeverityWarning {
			r.Warning(d.String())
			continue
		}
		r.Error(d.String())
	}
}

func printBindings(r *output.Renderer, env *interp.Env, precision int) {
	if env == nil {
		return
	}
	if r.EffectiveMode() == output.ModeTable {
		rows := make([][]string, 0, env.Len())
		for _, b := range env.Bindings() {
			rows = append(rows, []string{b.Name, b.Value.Type.String(), b.Value.Format(precision)})
		}
		r.Table([]string{"name", "type", "value"}, rows)
		return
	}
	for _, b := range env.Bindings() {
		r.Printf("%s = %s\n", b.Name, b.Value.Format(precision))
	}
}

func tokenRows(tokens []token.Token) [][]string {
	rows := make([][]string, len(tokens))
	for i, t := range tokens {
		rows[i] = []string{t.Kind.String(), t.Lexeme, strconv.Itoa(t.Pos.Line), strconv.Itoa(t.Pos.Column)}
	}
	return rows
}
