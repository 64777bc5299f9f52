// Package engine wires the leaplang pipeline stages together.
// It runs lexing, parsing, checking and execution for one source text,
// stamps every run with an ID and logs stage timings.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/diag"
	"github.com/leapstack-labs/leaplang/pkg/interp"
	"github.com/leapstack-labs/leaplang/pkg/lexer"
	"github.com/leapstack-labs/leaplang/pkg/parser"
	"github.com/leapstack-labs/leaplang/pkg/semantic"
	"github.com/leapstack-labs/leaplang/pkg/token"
)

// Stage names a pipeline stage.
type Stage string

// Pipeline stages, in execution order.
const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageCheck   Stage = "check"
	StageExecute Stage = "execute"
)

// stageOrder maps a stage to its position in the pipeline.
var stageOrder = map[Stage]int{
	StageLex:     0,
	StageParse:   1,
	StageCheck:   2,
	StageExecute: 3,
}

// Engine runs the pipeline. It holds no per-run state, so one Engine can
// serve any number of runs.
type Engine struct {
	// Structured logger
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates a new engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger}
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// Tokenize runs the lexer.
func (e *Engine) Tokenize(src string) []token.Token {
	return lexer.Tokenize(src)
}

// Parse parses tokens and returns the program with the parser's advisory
// warnings.
func (e *Engine) Parse(tokens []token.Token) (*ast.Program, diag.List, error) {
	p := parser.New(tokens)
	prog, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}
	return prog, p.Diagnostics(), nil
}

// Check runs the semantic analyzer.
func (e *Engine) Check(prog *ast.Program) (*semantic.SymbolTable, diag.List) {
	return semantic.Check(prog)
}

// Execute runs the interpreter.
func (e *Engine) Execute(prog *ast.Program, symbols *semantic.SymbolTable) (*interp.Env, error) {
	return interp.Execute(prog, symbols)
}

// newRunID returns a fresh run identifier.
func newRunID() string {
	return uuid.NewString()
}

// timeStage logs how long a stage took.
func (e *Engine) timeStage(ctx context.Context, runID string, stage Stage, start time.Time, attrs ...any) time.Duration {
	d := time.Since(start)
	args := append([]any{"run_id", runID, "stage", string(stage), "duration", d}, attrs...)
	e.logger.DebugContext(ctx, "stage complete", args...)
	return d
}
