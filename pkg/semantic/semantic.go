// Package semantic checks leaplang programs for declaration and type errors.
//
// The checker walks the AST once, rebuilding the symbol table from
// declarations and validating every statement and expression. It never
// stops early: every problem becomes a diagnostic and the caller decides
// whether to execute.
package semantic

import (
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/diag"
	"github.com/leapstack-labs/leaplang/pkg/token"
	"github.com/leapstack-labs/leaplang/pkg/types"
)

// Check analyzes prog with a fresh table and returns the table together with
// all diagnostics found.
func Check(prog *ast.Program) (*SymbolTable, diag.List) {
	c := NewChecker(nil)
	c.CheckProgram(prog)
	return c.Symbols(), c.Diagnostics()
}

// Checker carries the symbol table and diagnostics through the walk. A
// Checker may be fed statements one at a time; its table persists between
// calls.
type Checker struct {
	symbols *SymbolTable
	diags   diag.List
}

// NewChecker creates a checker over symbols. A nil table starts empty.
func NewChecker(symbols *SymbolTable) *Checker {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	return &Checker{symbols: symbols}
}

// Symbols returns the table being built.
func (c *Checker) Symbols() *SymbolTable {
	return c.symbols
}

// Diagnostics returns everything reported so far.
func (c *Checker) Diagnostics() diag.List {
	return c.diags
}

// CheckProgram checks every top-level statement in order.
func (c *Checker) CheckProgram(prog *ast.Program) {
	for _, s := range prog.Stmts {
		c.CheckStmt(s)
	}
}

// CheckStmt checks one statement.
func (c *Checker) CheckStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Decl:
		c.checkDecl(s)
	case *ast.Assign:
		c.checkAssign(s)
	case *ast.If:
		c.checkIf(s)
	case *ast.Block:
		for _, inner := range s.Stmts {
			c.CheckStmt(inner)
		}
	}
}

func (c *Checker) checkDecl(d *ast.Decl) {
	declared, _ := types.FromKeyword(d.TypeName())
	name := d.Name.Name()

	// Sibling blocks share one table, so a redeclaration with the same type
	// only warns. Changing the type is an error.
	prev, existed := c.symbols.Lookup(name)
	c.symbols.Declare(name, declared)
	switch {
	case existed && prev == declared:
		c.diags = append(c.diags, diag.Warningf(d.Token().Pos, MsgRedeclared, name))
	case existed:
		c.report(d.Token(), MsgRedeclared, name)
	}

	if d.Init == nil {
		return
	}
	got := c.TypeOf(d.Init)
	if got != types.Unknown && !types.Assignable(declared, got) {
		c.report(d.Name.Token(), MsgInitMismatch, name, declared, got)
	}
}

func (c *Checker) checkAssign(a *ast.Assign) {
	target, ok := c.symbols.Lookup(a.Target.Name())
	if !ok {
		c.report(a.Target.Token(), MsgUndeclared, a.Target.Name())
	}

	got := c.TypeOf(a.Expr)
	if !ok || got == types.Unknown || target == types.Unknown {
		return
	}
	if !types.Assignable(target, got) {
		c.report(a.Target.Token(), MsgAssignMismatch, target, got)
	}
}

func (c *Checker) checkIf(s *ast.If) {
	cond := c.TypeOf(s.Cond)
	if cond != types.Boolean && cond != types.Unknown {
		c.report(s.Cond.Token(), MsgIfCondition)
	}
	c.CheckStmt(s.Then)
	if s.Else != nil {
		c.CheckStmt(s.Else)
	}
}

// TypeOf computes the static type of expr, reporting problems on the way.
// An expression that cannot be typed yields types.Unknown.
func (c *Checker) TypeOf(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalType(e.Token())
	case *ast.Identifier:
		t, ok := c.symbols.Lookup(e.Name())
		if !ok {
			c.report(e.Token(), MsgUndeclared, e.Name())
			return types.Unknown
		}
		return t
	case *ast.Binary:
		return c.binaryType(e)
	}
	return types.Unknown
}

func (c *Checker) binaryType(b *ast.Binary) types.Type {
	left := c.TypeOf(b.Left)
	right := c.TypeOf(b.Right)
	op := b.Op()

	switch {
	case IsArithmetic(op):
		if !left.IsNumeric() || !right.IsNumeric() {
			c.report(b.Token(), MsgArithNumeric, op)
			return types.Unknown
		}
		if op == "%" && (left != types.Integer || right != types.Integer) {
			c.report(b.Token(), MsgModuloInteger)
		}
		return types.ArithmeticResult(left, right)

	case IsComparison(op):
		if !left.IsNumeric() || !right.IsNumeric() {
			c.report(b.Token(), MsgCompareNumeric, op)
		}
		return types.Boolean

	case IsLogical(op):
		if left != types.Boolean || right != types.Boolean {
			c.report(b.Token(), MsgLogicalBoolean, op)
		}
		return types.Boolean
	}
	return types.Unknown
}

func (c *Checker) report(tok token.Token, format string, args ...any) {
	c.diags = append(c.diags, diag.Errorf(tok.Pos, format, args...))
}

func literalType(tok token.Token) types.Type {
	switch {
	case tok.Kind == token.IntegerLiteral:
		return types.Integer
	case tok.Kind == token.RealLiteral:
		return types.Real
	case tok.Kind == token.StringLiteral:
		return types.String
	case tok.IsBoolLiteral():
		return types.Boolean
	}
	return types.Unknown
}

// IsArithmetic reports whether op is one of + - * / %.
func IsArithmetic(op string) bool {
	switch op {
	case "+", "-", "*", "/", "%":
		return true
	}
	return false
}

// IsComparison reports whether op is one of == != < > <= >=.
func IsComparison(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

// IsLogical reports whether op is && or ||.
func IsLogical(op string) bool {
	return op == "&&" || op == "||"
}
