package engine

import (
	"context"
	"time"

	"github.com/leapstack-labs/leaplang/pkg/interp"
	"github.com/leapstack-labs/leaplang/pkg/semantic"
)

// Session keeps a symbol table and environment alive across chunks of
// source, for interactive use. A chunk either applies completely or not at
// all: chunks with semantic errors, syntax errors or runtime errors leave
// the session unchanged.
type Session struct {
	engine  *Engine
	symbols *semantic.SymbolTable
	env     *interp.Env
}

// NewSession starts an empty session.
func (e *Engine) NewSession() *Session {
	s := &Session{engine: e}
	s.Reset()
	return s
}

// Reset forgets every declaration and value.
func (s *Session) Reset() {
	s.symbols = semantic.NewSymbolTable()
	s.env = interp.NewEnv()
}

// Symbols returns the committed symbol table.
func (s *Session) Symbols() *semantic.SymbolTable {
	return s.symbols
}

// Env returns the committed environment.
func (s *Session) Env() *interp.Env {
	return s.env
}

// Eval runs one chunk of statements against the session state.
func (s *Session) Eval(ctx context.Context, src string) (*Result, error) {
	e := s.engine
	res := &Result{
		RunID:   newRunID(),
		Name:    "repl",
		Timings: make(map[Stage]time.Duration),
	}

	start := time.Now()
	res.Tokens = e.Tokenize(src)
	res.Timings[StageLex] = e.timeStage(ctx, res.RunID, StageLex, start, "tokens", len(res.Tokens))

	start = time.Now()
	prog, warnings, err := e.Parse(res.Tokens)
	res.Timings[StageParse] = e.timeStage(ctx, res.RunID, StageParse, start)
	if err != nil {
		return res, err
	}
	res.Program = prog
	res.Warnings = warnings

	start = time.Now()
	checker := semantic.NewChecker(s.symbols.Clone())
	checker.CheckProgram(prog)
	res.Symbols = checker.Symbols()
	res.Diagnostics = checker.Diagnostics()
	res.Timings[StageCheck] = e.timeStage(ctx, res.RunID, StageCheck, start, "diagnostics", len(res.Diagnostics))
	if res.HasErrors() {
		return res, nil
	}

	start = time.Now()
	in := interp.New(res.Symbols, s.env.Clone())
	err = in.Run(prog)
	res.Timings[StageExecute] = e.timeStage(ctx, res.RunID, StageExecute, start)
	if err != nil {
		return res, err
	}

	s.symbols = res.Symbols
	s.env = in.Env()
	res.Env = s.env
	res.Executed = true
	return res, nil
}
