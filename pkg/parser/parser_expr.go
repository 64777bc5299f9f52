package parser

import (
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/token"
)

// Expression parsing uses precedence climbing.
//
// Precedence levels, lowest first:
//
//	PrecedenceOr         = 1  (||)
//	PrecedenceAnd        = 2  (&&)
//	PrecedenceEquality   = 3  (==, !=)
//	PrecedenceRelational = 4  (<, >, <=, >=)
//	PrecedenceAdditive   = 5  (+, -)
//	PrecedenceMultiply   = 6  (*, /, %)
//
// Every level is left-associative.
const (
	PrecedenceNone = iota
	PrecedenceOr
	PrecedenceAnd
	PrecedenceEquality
	PrecedenceRelational
	PrecedenceAdditive
	PrecedenceMultiply
)

// Precedence returns the binding power of a binary operator symbol, or
// PrecedenceNone if op is not a binary operator.
func Precedence(op string) int {
	switch op {
	case "||":
		return PrecedenceOr
	case "&&":
		return PrecedenceAnd
	case "==", "!=":
		return PrecedenceEquality
	case "<", ">", "<=", ">=":
		return PrecedenceRelational
	case "+", "-":
		return PrecedenceAdditive
	case "*", "/", "%":
		return PrecedenceMultiply
	default:
		return PrecedenceNone
	}
}

// parseExpression parses a full expression.
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseExpressionWithPrecedence(PrecedenceOr)
}

// parseExpressionWithPrecedence parses operators that bind at least as
// tightly as minPrecedence.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) (ast.Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		prec := p.infixPrecedence()
		if prec == PrecedenceNone || prec < minPrecedence {
			return left, nil
		}
		op := p.advance()

		// The right operand only takes tighter operators, which makes the
		// current level left-associative.
		right, err := p.parseExpressionWithPrecedence(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(op, left, right)
	}
}

// infixPrecedence returns the precedence of the current token as an infix
// operator.
func (p *Parser) infixPrecedence() int {
	tok := p.peek()
	if tok.Kind != token.Operator {
		return PrecedenceNone
	}
	return Precedence(tok.Lexeme)
}
