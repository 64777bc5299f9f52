package parser

import (
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/token"
)

// parsePrimary parses:
//
//	primary → IDENTIFIER | INT | REAL | STRING | "true" | "false" | "(" expr ")"
func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()

	switch {
	case tok.Kind == token.Identifier:
		p.advance()
		p.reference(tok)
		return ast.NewIdentifier(tok), nil

	case tok.Kind == token.IntegerLiteral, tok.Kind == token.RealLiteral,
		tok.Kind == token.StringLiteral, tok.IsBoolLiteral():
		p.advance()
		return ast.NewLiteral(tok), nil

	case tok.Is(token.Punctuation, "("):
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Punctuation, ")", ErrExpectedCloseParen); err != nil {
			return nil, err
		}
		return expr, nil
	}

	return nil, p.errorf(ErrExpectedExpression)
}
