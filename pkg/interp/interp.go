// Package interp executes leaplang programs by walking the AST.
//
// The interpreter assumes the program passed semantic analysis, but it
// still verifies every operation at run time: the first violation aborts
// the run with a *RuntimeError.
package interp

import (
	"strconv"

	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/semantic"
	"github.com/leapstack-labs/leaplang/pkg/token"
	"github.com/leapstack-labs/leaplang/pkg/types"
)

// Execute runs prog with a fresh environment. On failure no bindings are
// returned.
func Execute(prog *ast.Program, symbols *semantic.SymbolTable) (*Env, error) {
	in := New(symbols, nil)
	if err := in.Run(prog); err != nil {
		return nil, err
	}
	return in.Env(), nil
}

// Interpreter evaluates statements against an environment. Declared types
// come from the symbol table produced by the semantic pass.
type Interpreter struct {
	symbols *semantic.SymbolTable
	env     *Env
}

// New creates an interpreter. Nil arguments are replaced by empty ones.
func New(symbols *semantic.SymbolTable, env *Env) *Interpreter {
	if symbols == nil {
		symbols = semantic.NewSymbolTable()
	}
	if env == nil {
		env = NewEnv()
	}
	return &Interpreter{symbols: symbols, env: env}
}

// Env returns the environment being mutated.
func (in *Interpreter) Env() *Env {
	return in.env
}

// Run executes every top-level statement of prog.
func (in *Interpreter) Run(prog *ast.Program) error {
	for _, s := range prog.Stmts {
		if err := in.ExecStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// ExecStmt executes one statement.
func (in *Interpreter) ExecStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Decl:
		return in.execDecl(s)
	case *ast.Assign:
		return in.execAssign(s)
	case *ast.If:
		return in.execIf(s)
	case *ast.Block:
		for _, inner := range s.Stmts {
			if err := in.ExecStmt(inner); err != nil {
				return err
			}
		}
	}
	return nil
}

func (in *Interpreter) declaredType(name string) types.Type {
	t, _ := in.symbols.Lookup(name)
	return t
}

func (in *Interpreter) execDecl(d *ast.Decl) error {
	name := d.Name.Name()
	t := in.declaredType(name)
	in.env.Set(name, Zero(t))

	if d.Init == nil {
		return nil
	}
	init, err := in.Eval(d.Init)
	if err != nil {
		return err
	}
	switch {
	case types.Widens(t, init.Type):
		init = init.Promote()
	case t != init.Type && t != types.Unknown:
		return errorAt(d.Name.Token(), ErrInitMismatch, name)
	}
	in.env.Set(name, init)
	return nil
}

func (in *Interpreter) execAssign(a *ast.Assign) error {
	name := a.Target.Name()
	rhs, err := in.Eval(a.Expr)
	if err != nil {
		return err
	}

	t := in.declaredType(name)
	switch {
	case types.Widens(t, rhs.Type):
		rhs = rhs.Promote()
	case t != types.Unknown && rhs.Type != t:
		return errorAt(a.Target.Token(), ErrAssignMismatch, name)
	}
	in.env.Set(name, rhs)
	return nil
}

func (in *Interpreter) execIf(s *ast.If) error {
	cond, err := in.Eval(s.Cond)
	if err != nil {
		return err
	}
	if cond.Type != types.Boolean {
		return errorAt(s.Cond.Token(), ErrIfCondition)
	}
	if cond.Bool {
		return in.ExecStmt(s.Then)
	}
	if s.Else != nil {
		return in.ExecStmt(s.Else)
	}
	return nil
}

// Eval evaluates an expression.
func (in *Interpreter) Eval(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Token())
	case *ast.Identifier:
		v, ok := in.env.Get(e.Name())
		if !ok {
			return Value{}, errorAt(e.Token(), ErrUnbound, e.Name())
		}
		return v, nil
	case *ast.Binary:
		left, err := in.Eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := in.Eval(e.Right)
		if err != nil {
			return Value{}, err
		}
		return binary(e.Token(), left, right)
	}
	return Value{}, nil
}

func literalValue(tok token.Token) (Value, error) {
	switch {
	case tok.Kind == token.IntegerLiteral:
		i, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return Value{}, errorAt(tok, ErrIntegerRange, tok.Lexeme)
		}
		return IntValue(i), nil
	case tok.Kind == token.RealLiteral:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return Value{}, errorAt(tok, ErrInvalidLiteral, tok.Lexeme)
		}
		return RealValue(f), nil
	case tok.Kind == token.StringLiteral:
		return StringValue(unquote(tok.Lexeme)), nil
	case tok.IsBoolLiteral():
		return BoolValue(tok.Lexeme == "true"), nil
	}
	return Value{}, errorAt(tok, ErrInvalidLiteral, tok.Lexeme)
}

// unquote strips the surrounding quotes. Escapes are kept verbatim.
func unquote(lexeme string) string {
	if len(lexeme) >= 2 && lexeme[0] == '"' && lexeme[len(lexeme)-1] == '"' {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}
