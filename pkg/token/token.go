// Package token defines the lexical tokens of the leaplang language.
package token

import "fmt"

// Kind represents the lexical category of a token.
type Kind int

const (
	// Special tokens
	EOF Kind = iota
	Unknown
	Comment

	// Literals
	Identifier
	IntegerLiteral
	RealLiteral
	StringLiteral

	Keyword
	Operator
	Punctuation
)

// kindNames holds the labels printed by `leaplang --tokens`.
var kindNames = map[Kind]string{
	EOF:            "FIM DE ARQUIVO",
	Unknown:        "UNKNOWN",
	Comment:        "COMMENTARIO",
	Identifier:     "IDENTIFICADOR",
	IntegerLiteral: "NUM_INT",
	RealLiteral:    "NUM_REAL",
	StringLiteral:  "STRING",
	Keyword:        "KEYWORD",
	Operator:       "OPERADOR",
	Punctuation:    "PONTUACAO",
}

// String returns the printed label of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// MarshalText lets kinds appear by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a lexical token with its source position. Tokens are values and
// are never mutated after the lexer produces them.
type Token struct {
	Kind   Kind     `json:"kind" yaml:"kind"`
	Lexeme string   `json:"lexeme" yaml:"lexeme"`
	Pos    Position `json:"pos" yaml:"pos"`
}

// String renders the token as `KIND -> "lexeme" [line,column]`. The lexeme
// is printed raw, without escaping.
func (t Token) String() string {
	return fmt.Sprintf("%s -> \"%s\" [%d,%d]", t.Kind, t.Lexeme, t.Pos.Line, t.Pos.Column)
}

// Is reports whether the token has the given kind and lexeme.
func (t Token) Is(k Kind, lexeme string) bool {
	return t.Kind == k && t.Lexeme == lexeme
}

// IsTypeKeyword reports whether the token names a primitive type.
func (t Token) IsTypeKeyword() bool {
	if t.Kind != Keyword {
		return false
	}
	_, ok := typeKeywords[t.Lexeme]
	return ok
}

// IsBoolLiteral reports whether the token is the keyword true or false.
func (t Token) IsBoolLiteral() bool {
	return t.Kind == Keyword && (t.Lexeme == "true" || t.Lexeme == "false")
}
