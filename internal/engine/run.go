package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/diag"
	"github.com/leapstack-labs/leaplang/pkg/interp"
	"github.com/leapstack-labs/leaplang/pkg/semantic"
	"github.com/leapstack-labs/leaplang/pkg/token"
)

// Result holds everything a run produced, up to the stage where it stopped.
type Result struct {
	RunID     string
	Name      string
	StartedAt time.Time

	Tokens  []token.Token
	Program *ast.Program
	Symbols *semantic.SymbolTable

	// Warnings are the parser's advisory findings.
	Warnings diag.List
	// Diagnostics are the semantic analyzer's findings.
	Diagnostics diag.List

	Env      *interp.Env
	Executed bool

	Timings map[Stage]time.Duration
}

// HasErrors reports whether semantic analysis found blocking problems.
func (r *Result) HasErrors() bool {
	return r.Diagnostics.HasErrors()
}

// Run processes src through every stage up to and including until.
//
// A syntax or runtime error is returned unchanged, together with the
// partial result. Semantic diagnostics are not an error: when they contain
// errors, execution is skipped and Executed stays false.
func (e *Engine) Run(ctx context.Context, name, src string, until Stage) (*Result, error) {
	if _, ok := stageOrder[until]; !ok {
		return nil, fmt.Errorf("unknown stage %q", until)
	}

	res := &Result{
		RunID:     newRunID(),
		Name:      name,
		StartedAt: time.Now().UTC(),
		Timings:   make(map[Stage]time.Duration),
	}
	logger := e.logger.With("run_id", res.RunID, "name", name)
	logger.DebugContext(ctx, "run started", "until", string(until), "bytes", len(src))

	start := time.Now()
	res.Tokens = e.Tokenize(src)
	res.Timings[StageLex] = e.timeStage(ctx, res.RunID, StageLex, start, "tokens", len(res.Tokens))
	if !reaches(until, StageParse) {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	start = time.Now()
	prog, warnings, err := e.Parse(res.Tokens)
	res.Timings[StageParse] = e.timeStage(ctx, res.RunID, StageParse, start)
	if err != nil {
		logger.DebugContext(ctx, "syntax error", "error", err)
		return res, err
	}
	res.Program = prog
	res.Warnings = warnings
	if !reaches(until, StageCheck) {
		return res, nil
	}

	start = time.Now()
	res.Symbols, res.Diagnostics = e.Check(prog)
	res.Timings[StageCheck] = e.timeStage(ctx, res.RunID, StageCheck, start,
		"symbols", res.Symbols.Len(), "diagnostics", len(res.Diagnostics))
	if !reaches(until, StageExecute) {
		return res, nil
	}
	if res.HasErrors() {
		logger.InfoContext(ctx, "execution skipped", "diagnostics", len(res.Diagnostics.Errors()))
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	start = time.Now()
	env, err := e.Execute(prog, res.Symbols)
	res.Timings[StageExecute] = e.timeStage(ctx, res.RunID, StageExecute, start)
	if err != nil {
		logger.DebugContext(ctx, "runtime error", "error", err)
		return res, err
	}
	res.Env = env
	res.Executed = true
	return res, nil
}

// Duration is the total time spent in the stages that ran.
func (r *Result) Duration() time.Duration {
	var total time.Duration
	for _, d := range r.Timings {
		total += d
	}
	return total
}

// reaches reports whether a run stopping at until includes stage.
func reaches(until, stage Stage) bool {
	return stageOrder[until] >= stageOrder[stage]
}
