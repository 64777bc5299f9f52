package lexer

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/leaplang/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kl struct {
	kind   token.Kind
	lexeme string
}

func kinds(tokens []token.Token) []kl {
	out := make([]kl, len(tokens))
	for i, t := range tokens {
		out[i] = kl{t.Kind, t.Lexeme}
	}
	return out
}

func TestTokenize_Basics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []kl
	}{
		{
			name:  "empty input",
			input: "",
			want:  []kl{{token.EOF, ""}},
		},
		{
			name:  "declaration with initializer",
			input: "int x = 5;",
			want: []kl{
				{token.Keyword, "int"},
				{token.Identifier, "x"},
				{token.Operator, "="},
				{token.IntegerLiteral, "5"},
				{token.Punctuation, ";"},
				{token.EOF, ""},
			},
		},
		{
			name:  "real literal",
			input: "3.14",
			want:  []kl{{token.RealLiteral, "3.14"}, {token.EOF, ""}},
		},
		{
			name:  "dot without following digit",
			input: "3.",
			want:  []kl{{token.IntegerLiteral, "3"}, {token.Unknown, "."}, {token.EOF, ""}},
		},
		{
			name:  "second dot ends the number",
			input: "1.2.3",
			want: []kl{
				{token.RealLiteral, "1.2"},
				{token.Unknown, "."},
				{token.IntegerLiteral, "3"},
				{token.EOF, ""},
			},
		},
		{
			name:  "identifier with underscore and digits",
			input: "_tmp_2x",
			want:  []kl{{token.Identifier, "_tmp_2x"}, {token.EOF, ""}},
		},
		{
			name:  "two-character operators before single ones",
			input: "== != <= >= && || < > = !",
			want: []kl{
				{token.Operator, "=="},
				{token.Operator, "!="},
				{token.Operator, "<="},
				{token.Operator, ">="},
				{token.Operator, "&&"},
				{token.Operator, "||"},
				{token.Operator, "<"},
				{token.Operator, ">"},
				{token.Operator, "="},
				{token.Unknown, "!"},
				{token.EOF, ""},
			},
		},
		{
			name:  "single ampersand is unknown",
			input: "a & b",
			want: []kl{
				{token.Identifier, "a"},
				{token.Unknown, "&"},
				{token.Identifier, "b"},
				{token.EOF, ""},
			},
		},
		{
			name:  "punctuation",
			input: "(){}[];,",
			want: []kl{
				{token.Punctuation, "("},
				{token.Punctuation, ")"},
				{token.Punctuation, "{"},
				{token.Punctuation, "}"},
				{token.Punctuation, "["},
				{token.Punctuation, "]"},
				{token.Punctuation, ";"},
				{token.Punctuation, ","},
				{token.EOF, ""},
			},
		},
		{
			name:  "line comment stays in the stream",
			input: "x = 1; // set x\ny = 2;",
			want: []kl{
				{token.Identifier, "x"},
				{token.Operator, "="},
				{token.IntegerLiteral, "1"},
				{token.Punctuation, ";"},
				{token.Comment, "// set x"},
				{token.Identifier, "y"},
				{token.Operator, "="},
				{token.IntegerLiteral, "2"},
				{token.Punctuation, ";"},
				{token.EOF, ""},
			},
		},
		{
			name:  "slash alone is division",
			input: "a / b",
			want: []kl{
				{token.Identifier, "a"},
				{token.Operator, "/"},
				{token.Identifier, "b"},
				{token.EOF, ""},
			},
		},
		{
			name:  "keywords",
			input: "if else while true false boolean",
			want: []kl{
				{token.Keyword, "if"},
				{token.Keyword, "else"},
				{token.Keyword, "while"},
				{token.Keyword, "true"},
				{token.Keyword, "false"},
				{token.Keyword, "boolean"},
				{token.EOF, ""},
			},
		},
		{
			name:  "non-ascii character is one unknown token",
			input: "é",
			want:  []kl{{token.Unknown, "é"}, {token.EOF, ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(Tokenize(tt.input)))
		})
	}
}

func TestTokenize_Strings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  kl
	}{
		{"simple", `"hi"`, kl{token.StringLiteral, `"hi"`}},
		{"escaped quote kept verbatim", `"a\"b"`, kl{token.StringLiteral, `"a\"b"`}},
		{"escaped backslash", `"a\\"`, kl{token.StringLiteral, `"a\\"`}},
		{"unterminated", `"abc`, kl{token.Unknown, `"abc` + UnterminatedStringSuffix}},
		{"unterminated after escape", `"abc\`, kl{token.Unknown, `"abc\` + UnterminatedStringSuffix}},
		{"spans newline", "\"a\nb\"", kl{token.StringLiteral, "\"a\nb\""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := Tokenize(tt.input)
			require.Len(t, toks, 2)
			assert.Equal(t, tt.want, kinds(toks)[0])
			assert.Equal(t, token.EOF, toks[1].Kind)
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	input := "int x;\n  x = 10;\n"
	toks := Tokenize(input)

	want := []token.Position{
		{Line: 1, Column: 1, Offset: 0},  // int
		{Line: 1, Column: 5, Offset: 4},  // x
		{Line: 1, Column: 6, Offset: 5},  // ;
		{Line: 2, Column: 3, Offset: 9},  // x
		{Line: 2, Column: 5, Offset: 11}, // =
		{Line: 2, Column: 7, Offset: 13}, // 10
		{Line: 2, Column: 9, Offset: 15}, // ;
		{Line: 3, Column: 1, Offset: 17}, // EOF
	}
	require.Len(t, toks, len(want))
	for i, p := range want {
		assert.Equal(t, p, toks[i].Pos, "token[%d] %q", i, toks[i].Lexeme)
	}
}

func TestTokenize_PositionAfterMultilineString(t *testing.T) {
	toks := Tokenize("\"a\nb\" x")
	require.Len(t, toks, 3)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, 2, toks[1].Pos.Line)
	assert.Equal(t, 4, toks[1].Pos.Column)
}

func TestTokenize_EndsWithSingleEOF(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t",
		"int x = 1 + ;",
		"\"never closed",
		"@#$ ~ ` ^",
		"// only a comment",
		"if (a < b) { x = 1; } else { x = 2; }",
		"a\x00b",
	}

	for _, in := range inputs {
		toks := Tokenize(in)
		require.NotEmpty(t, toks)
		assert.Equal(t, token.EOF, toks[len(toks)-1].Kind, "input %q", in)
		for _, tok := range toks[:len(toks)-1] {
			assert.NotEqual(t, token.EOF, tok.Kind, "input %q", in)
		}
	}
}

func TestTokenize_SignificantCharacters(t *testing.T) {
	input := "int total = (a+b)*2;\n// comment here\nif (total >= 10.5) { ok = \"sim\"; }"

	var got strings.Builder
	for _, tok := range Tokenize(input) {
		if tok.Kind == token.Comment {
			continue
		}
		got.WriteString(tok.Lexeme)
	}

	var want strings.Builder
	for _, line := range strings.Split(input, "\n") {
		if strings.HasPrefix(line, "//") {
			continue
		}
		want.WriteString(strings.Join(strings.Fields(line), ""))
	}
	assert.Equal(t, want.String(), got.String())
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"int x = 5; int y = 2; int z = x + y;",
		"float f = 1; f = f + 1;",
		"if (1 < 2) { int a = 1; } else { int a = 2; }",
		"boolean b = true && (x != 3 || y >= 4.25);",
		"string s = \"ola mundo\"; ? x % 2",
	}

	for _, in := range inputs {
		first := Tokenize(in)
		lexemes := make([]string, 0, len(first))
		for _, tok := range first {
			lexemes = append(lexemes, tok.Lexeme)
		}
		second := Tokenize(strings.Join(lexemes, " "))
		assert.Equal(t, kinds(first), kinds(second), "input %q", in)
	}
}

func TestLexer_ResetRestarts(t *testing.T) {
	l := New("int a; a = 1;")
	first := l.Tokenize()

	assert.Equal(t, token.EOF, l.NextToken().Kind, "exhausted lexer keeps returning EOF")

	l.Reset()
	second := l.Tokenize()
	assert.Equal(t, first, second)
}
