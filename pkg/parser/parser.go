// Package parser builds a leaplang AST from a token sequence.
//
// # Usage
//
//	prog, err := parser.Parse(lexer.Tokenize(src))
//	if err != nil {
//	    // err is a *parser.SyntaxError
//	}
//
// # Grammar Overview
//
// The parser is a recursive descent parser with one token of lookahead:
//
//	program    → statement* EOF
//	statement  → decl | ifStmt | block | assign
//	decl       → TYPE IDENTIFIER ["=" expr] ";"
//	block      → "{" statement* "}"
//	ifStmt     → "if" "(" expr ")" statement ["else" statement]
//	assign     → IDENTIFIER "=" expr ";"
//
// Expressions are described in parser_expr.go. Comment tokens are dropped
// before parsing, so they may appear anywhere.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/diag"
	"github.com/leapstack-labs/leaplang/pkg/lexer"
	"github.com/leapstack-labs/leaplang/pkg/token"
)

// Parser parses tokens into an AST.
type Parser struct {
	tokens  []token.Token
	current int

	// declared is the provisional set of names seen in declarations so far,
	// in source order. It drives the advisory use-before-declare check and
	// is not authoritative.
	declared map[string]struct{}
	diags    diag.List
}

// New creates a parser over tokens. Comment tokens are skipped, and an EOF
// token is appended if the sequence lacks one.
func New(tokens []token.Token) *Parser {
	filtered := make([]token.Token, 0, len(tokens)+1)
	for _, t := range tokens {
		if t.Kind == token.Comment {
			continue
		}
		filtered = append(filtered, t)
		if t.Kind == token.EOF {
			break
		}
	}
	if len(filtered) == 0 || filtered[len(filtered)-1].Kind != token.EOF {
		var pos token.Position
		if len(filtered) > 0 {
			pos = filtered[len(filtered)-1].Pos
		}
		filtered = append(filtered, token.Token{Kind: token.EOF, Pos: pos})
	}
	return &Parser{tokens: filtered}
}

// Parse parses a whole token sequence.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return New(tokens).Parse()
}

// ParseSource tokenizes and parses src.
func ParseSource(src string) (*ast.Program, error) {
	return Parse(lexer.Tokenize(src))
}

// Parse parses the program. It may be called more than once; each call
// starts from the first token with a fresh provisional table.
func (p *Parser) Parse() (*ast.Program, error) {
	p.current = 0
	p.declared = make(map[string]struct{})
	p.diags = nil

	first := p.peek()
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.NewProgram(first, stmts), nil
}

// Diagnostics returns the advisory warnings of the last Parse call.
func (p *Parser) Diagnostics() diag.List {
	return p.diags
}

// ---------- Token Helpers ----------

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

// advance consumes the current token and returns it. EOF is never consumed.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

// checkKind returns true if the current token is of the given kind.
func (p *Parser) checkKind(k token.Kind) bool {
	return p.peek().Kind == k
}

// check returns true if the current token has the given kind and text.
func (p *Parser) check(k token.Kind, lexeme string) bool {
	return p.peek().Is(k, lexeme)
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(k token.Kind, lexeme string) bool {
	if p.check(k, lexeme) {
		p.advance()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise returns a
// syntax error carrying msg.
func (p *Parser) expect(k token.Kind, lexeme, msg string) (token.Token, error) {
	if p.check(k, lexeme) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorf("%s", msg)
}

// errorf builds a syntax error at the current token.
func (p *Parser) errorf(format string, args ...any) error {
	tok := p.peek()
	return &SyntaxError{
		Pos:     tok.Pos,
		Lexeme:  tok.Lexeme,
		Message: fmt.Sprintf(format, args...),
	}
}

// ---------- Provisional Symbol Helpers ----------

func (p *Parser) declare(name string) {
	p.declared[name] = struct{}{}
}

// reference emits an advisory warning when name has not been declared yet
// in source order.
func (p *Parser) reference(tok token.Token) {
	if _, ok := p.declared[tok.Lexeme]; !ok {
		p.diags = append(p.diags, diag.Warningf(tok.Pos, WarnUndeclared, tok.Lexeme))
	}
}
