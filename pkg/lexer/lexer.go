// Package lexer converts leaplang source text into tokens.
//
// The lexer never fails. Characters it cannot classify become Unknown tokens,
// and an unterminated string becomes an Unknown token whose lexeme carries a
// descriptive suffix. Later stages reject Unknown tokens wherever a valid
// token is required.
package lexer

import (
	"unicode/utf8"

	"github.com/leapstack-labs/leaplang/pkg/token"
)

// UnterminatedStringSuffix is appended to the lexeme of a string literal that
// reaches end of input before its closing quote.
const UnterminatedStringSuffix = "(String nunca foi fechada)"

// Lexer tokenizes leaplang input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// New creates a new Lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.Reset()
	return l
}

// Reset rewinds the lexer to the start of its input.
func (l *Lexer) Reset() {
	l.pos = 0
	l.readPos = 0
	l.ch = 0
	l.line = 1
	l.col = 0
	l.readChar()
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	if l.pos < len(l.input) && l.readPos > 0 && l.input[l.pos] == '\n' {
		l.line++
		l.col = 0
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the position of the current character.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token. Once the input is exhausted every call
// returns an EOF token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Kind: token.EOF, Pos: pos}
	}

	switch {
	case isLetter(l.ch) || l.ch == '_':
		lexeme := l.readIdentifier()
		return token.Token{Kind: token.LookupIdent(lexeme), Lexeme: lexeme, Pos: pos}
	case isDigit(l.ch):
		kind, lexeme := l.readNumber()
		return token.Token{Kind: kind, Lexeme: lexeme, Pos: pos}
	case l.ch == '"':
		kind, lexeme := l.readString()
		return token.Token{Kind: kind, Lexeme: lexeme, Pos: pos}
	case l.ch == '/' && l.peekChar() == '/':
		return token.Token{Kind: token.Comment, Lexeme: l.readLineComment(), Pos: pos}
	}

	if isTwoCharOperator(l.ch, l.peekChar()) {
		lexeme := l.input[l.pos : l.pos+2]
		l.readChar()
		l.readChar()
		return token.Token{Kind: token.Operator, Lexeme: lexeme, Pos: pos}
	}

	switch l.ch {
	case '+', '-', '*', '/', '=', '<', '>', '%':
		return l.single(token.Operator, pos)
	case '(', ')', ';', ',', '{', '}', '[', ']':
		return l.single(token.Punctuation, pos)
	}

	// Anything else is one unknown character. Decode a whole rune so the
	// lexeme stays valid UTF-8.
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	lexeme := l.input[l.pos : l.pos+size]
	for i := 0; i < size; i++ {
		l.readChar()
	}
	return token.Token{Kind: token.Unknown, Lexeme: lexeme, Pos: pos}
}

// single consumes the current character as a one-character token.
func (l *Lexer) single(kind token.Kind, pos token.Position) token.Token {
	lexeme := l.input[l.pos : l.pos+1]
	l.readChar()
	return token.Token{Kind: kind, Lexeme: lexeme, Pos: pos}
}

// skipWhitespace skips spaces, tabs, carriage returns and newlines.
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch) || l.ch == '_') {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads an integer or real literal. A '.' is part of the number
// only when it is the first one and a digit follows it.
func (l *Lexer) readNumber() (token.Kind, string) {
	start := l.pos
	kind := token.IntegerLiteral
	for !l.atEOF() {
		if isDigit(l.ch) {
			l.readChar()
			continue
		}
		if l.ch == '.' && kind == token.IntegerLiteral && isDigit(l.peekChar()) {
			kind = token.RealLiteral
			l.readChar()
			continue
		}
		break
	}
	return kind, l.input[start:l.pos]
}

// readString reads a double-quoted string literal including its quotes.
// Escapes are kept verbatim: a backslash simply protects the next character.
func (l *Lexer) readString() (token.Kind, string) {
	start := l.pos
	l.readChar() // skip opening quote

	for !l.atEOF() {
		switch l.ch {
		case '\\':
			l.readChar()
			if l.atEOF() {
				return token.Unknown, l.input[start:l.pos] + UnterminatedStringSuffix
			}
			l.readChar()
		case '"':
			l.readChar() // skip closing quote
			return token.StringLiteral, l.input[start:l.pos]
		default:
			l.readChar()
		}
	}
	return token.Unknown, l.input[start:l.pos] + UnterminatedStringSuffix
}

// readLineComment reads a // comment up to, but excluding, the newline.
func (l *Lexer) readLineComment() string {
	start := l.pos
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// Tokenize returns all remaining tokens, ending with exactly one EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// Tokenize returns all tokens of input, ending with exactly one EOF token.
func Tokenize(input string) []token.Token {
	return New(input).Tokenize()
}

func isTwoCharOperator(a, b byte) bool {
	switch {
	case b == '=' && (a == '=' || a == '!' || a == '<' || a == '>'):
		return true
	case a == '&' && b == '&', a == '|' && b == '|':
		return true
	}
	return false
}

// isLetter returns true if ch is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
