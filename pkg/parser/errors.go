package parser

import (
	"fmt"

	"github.com/leapstack-labs/leaplang/pkg/token"
)

// SyntaxError is the single fatal error of a parse. Parsing stops at the
// first one; there is no recovery.
type SyntaxError struct {
	Pos     token.Position
	Lexeme  string // text of the offending token
	Message string // what was expected
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Erro sintatico na linha %d, coluna %d: %s (encontrei '%s')",
		e.Pos.Line, e.Pos.Column, e.Message, e.Lexeme)
}

// Common error messages
const (
	ErrExpectedStatement  = "declaracao, if, bloco ou atribuicao esperado"
	ErrExpectedIdentAfter = "identificador esperado apos '%s'"
	ErrExpectedDeclEnd    = "';' esperado ao final da declaracao"
	ErrExpectedBlockStart = "esperado '{' para iniciar bloco"
	ErrExpectedBlockEnd   = "esperado '}' ao final do bloco"
	ErrExpectedIfParen    = "esperado '(' apos if"
	ErrExpectedCondParen  = "esperado ')' apos condicao do if"
	ErrExpectedAssignOp   = "esperado '=' na atribuicao"
	ErrExpectedAssignEnd  = "esperado ';' ao final da atribuicao"
	ErrExpectedExpression = "expressao, identificador ou literal esperado"
	ErrExpectedCloseParen = "esperado ')' apos expressao"

	// Advisory, reported as a warning while parsing.
	WarnUndeclared = "variavel '%s' usada sem declarar"
)
