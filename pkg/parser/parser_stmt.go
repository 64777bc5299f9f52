package parser

import (
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/token"
)

// parseStatement dispatches on the leading token.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	tok := p.peek()
	switch {
	case tok.IsTypeKeyword():
		return p.parseDecl()
	case tok.Is(token.Keyword, "if"):
		return p.parseIf()
	case tok.Is(token.Punctuation, "{"):
		return p.parseBlock()
	case tok.Kind == token.Identifier:
		return p.parseAssign()
	}
	return nil, p.errorf(ErrExpectedStatement)
}

// parseDecl parses: TYPE IDENTIFIER ["=" expr] ";"
func (p *Parser) parseDecl() (ast.Stmt, error) {
	typeTok := p.advance()

	if !p.checkKind(token.Identifier) {
		return nil, p.errorf(ErrExpectedIdentAfter, typeTok.Lexeme)
	}
	name := ast.NewIdentifier(p.advance())
	p.declare(name.Name())

	var init ast.Expr
	if p.match(token.Operator, "=") {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		init = expr
	}

	if _, err := p.expect(token.Punctuation, ";", ErrExpectedDeclEnd); err != nil {
		return nil, err
	}
	return ast.NewDecl(typeTok, name, init), nil
}

// parseBlock parses: "{" statement* "}"
func (p *Parser) parseBlock() (ast.Stmt, error) {
	lbrace, err := p.expect(token.Punctuation, "{", ErrExpectedBlockStart)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for !p.check(token.Punctuation, "}") && !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if _, err := p.expect(token.Punctuation, "}", ErrExpectedBlockEnd); err != nil {
		return nil, err
	}
	return ast.NewBlock(lbrace, stmts), nil
}

// parseIf parses: "if" "(" expr ")" statement ["else" statement]
func (p *Parser) parseIf() (ast.Stmt, error) {
	ifTok := p.advance()

	if _, err := p.expect(token.Punctuation, "(", ErrExpectedIfParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Punctuation, ")", ErrExpectedCondParen); err != nil {
		return nil, err
	}

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var els ast.Stmt
	if p.match(token.Keyword, "else") {
		els, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIf(ifTok, cond, then, els), nil
}

// parseAssign parses: IDENTIFIER "=" expr ";"
func (p *Parser) parseAssign() (ast.Stmt, error) {
	idTok := p.advance()
	p.reference(idTok)

	if _, err := p.expect(token.Operator, "=", ErrExpectedAssignOp); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Punctuation, ";", ErrExpectedAssignEnd); err != nil {
		return nil, err
	}
	return ast.NewAssign(ast.NewIdentifier(idTok), expr), nil
}
