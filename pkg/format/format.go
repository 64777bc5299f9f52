// Package format prints leaplang programs as canonical source.
//
// The canonical form has one statement per line, two-space indentation
// inside blocks and single spaces around binary operators. Parentheses are
// emitted only where precedence or left-associativity requires them, so
// parsing the output yields a structurally equal tree.
package format

import (
	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/token"
)

// Format formats a parsed program.
func Format(prog *ast.Program) string {
	p := newPrinter(nil)
	p.formatProgram(prog)
	return p.String()
}

// WithComments formats prog and keeps the line comments found in tokens.
// Each comment is printed on its own line before the first statement that
// follows it in the source; comments after the last statement close the
// output.
func WithComments(prog *ast.Program, tokens []token.Token) string {
	var comments []token.Token
	for _, t := range tokens {
		if t.Kind == token.Comment {
			comments = append(comments, t)
		}
	}
	p := newPrinter(comments)
	p.formatProgram(prog)
	return p.String()
}
