package format

import "github.com/leapstack-labs/leaplang/pkg/ast"

func (p *Printer) formatProgram(prog *ast.Program) {
	if prog == nil {
		return
	}
	for _, s := range prog.Stmts {
		p.formatStmt(s)
		p.writeln()
	}
	p.flushComments(-1)
}

func (p *Printer) formatStmt(stmt ast.Stmt) {
	p.flushComments(stmt.Token().Pos.Offset)

	switch s := stmt.(type) {
	case *ast.Decl:
		p.write(s.TypeName())
		p.space()
		p.write(s.Name.Name())
		if s.Init != nil {
			p.write(" = ")
			p.formatExpr(s.Init)
		}
		p.write(";")
	case *ast.Assign:
		p.write(s.Target.Name())
		p.write(" = ")
		p.formatExpr(s.Expr)
		p.write(";")
	case *ast.Block:
		p.formatBlock(s)
	case *ast.If:
		p.formatIf(s)
	}
}

func (p *Printer) formatBlock(b *ast.Block) {
	if len(b.Stmts) == 0 {
		p.write("{}")
		return
	}
	p.write("{")
	p.writeln()
	p.indent()
	for _, s := range b.Stmts {
		p.formatStmt(s)
		p.writeln()
	}
	p.dedent()
	p.write("}")
}

func (p *Printer) formatIf(s *ast.If) {
	p.write("if (")
	p.formatExpr(s.Cond)
	p.write(")")

	then := s.Then
	// An else-less if as the then branch would capture our else when the
	// output is parsed again.
	if inner, ok := then.(*ast.If); ok && inner.Else == nil && s.Else != nil {
		then = ast.NewBlock(inner.Token(), []ast.Stmt{inner})
	}
	thenIsBlock := p.formatBranch(then)

	if s.Else == nil {
		return
	}
	if thenIsBlock {
		p.write(" else")
	} else {
		p.writeln()
		p.write("else")
	}
	if elseIf, ok := s.Else.(*ast.If); ok {
		p.space()
		p.formatIf(elseIf)
		return
	}
	p.formatBranch(s.Else)
}

// formatBranch prints the body of an if or else. Blocks stay on the same
// line; other statements go on their own indented line.
func (p *Printer) formatBranch(stmt ast.Stmt) (isBlock bool) {
	if b, ok := stmt.(*ast.Block); ok {
		p.space()
		p.formatBlock(b)
		return true
	}
	p.writeln()
	p.indent()
	p.formatStmt(stmt)
	p.dedent()
	return false
}
