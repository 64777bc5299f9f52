package format

import (
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/parser"
)

func (p *Printer) formatExpr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.Binary:
		p.formatBinaryExpr(ex)
	case *ast.Literal:
		p.write(ex.Value())
	case *ast.Identifier:
		p.write(ex.Name())
	}
}

func (p *Printer) formatBinaryExpr(expr *ast.Binary) {
	prec := parser.Precedence(expr.Op())

	// Operators are left-associative: a right operand at the same level
	// needs parentheses, a left one does not.
	p.formatOperand(expr.Left, prec)
	p.space()
	p.write(expr.Op())
	p.space()
	p.formatOperand(expr.Right, prec+1)
}

// formatOperand prints e, parenthesized when it binds looser than min.
func (p *Printer) formatOperand(e ast.Expr, minPrec int) {
	if b, ok := e.(*ast.Binary); ok && parser.Precedence(b.Op()) < minPrec {
		p.write("(")
		p.formatBinaryExpr(b)
		p.write(")")
		return
	}
	p.formatExpr(e)
}
