package parser_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/leapstack-labs/leaplang/pkg/diag"
	"github.com/leapstack-labs/leaplang/pkg/lexer"
	"github.com/leapstack-labs/leaplang/pkg/parser"
	"github.com/leapstack-labs/leaplang/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseSource(src)
	require.NoError(t, err)
	require.NotNil(t, prog)
	return prog
}

// ---------- Statement Tests ----------

func TestParse_Declarations(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		typeName string
		varName  string
		hasInit  bool
	}{
		{"int without initializer", "int a;", "int", "a", false},
		{"int with initializer", "int x = 5;", "int", "x", true},
		{"float", "float f = 1.5;", "float", "f", true},
		{"string", `string s = "oi";`, "string", "s", true},
		{"boolean", "boolean b = true;", "boolean", "b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			require.Len(t, prog.Stmts, 1)

			decl, ok := prog.Stmts[0].(*ast.Decl)
			require.True(t, ok, "expected *ast.Decl, got %T", prog.Stmts[0])
			assert.Equal(t, tt.typeName, decl.TypeName())
			assert.Equal(t, tt.varName, decl.Value())
			assert.Equal(t, tt.hasInit, decl.Init != nil)

			n := len(decl.Children())
			assert.True(t, n == 1 || n == 2)
		})
	}
}

func TestParse_IfElse(t *testing.T) {
	prog := mustParse(t, "int a; if (a < 2) a = 1; else { a = 2; }")
	require.Len(t, prog.Stmts, 2)

	ifStmt, ok := prog.Stmts[1].(*ast.If)
	require.True(t, ok)
	assert.Len(t, ifStmt.Children(), 3)
	assert.IsType(t, &ast.Binary{}, ifStmt.Cond)
	assert.IsType(t, &ast.Assign{}, ifStmt.Then)
	assert.IsType(t, &ast.Block{}, ifStmt.Else)
}

func TestParse_DanglingElseBindsToInnerIf(t *testing.T) {
	prog := mustParse(t, "int a; if (true) if (false) a = 1; else a = 2;")
	outer := prog.Stmts[1].(*ast.If)
	assert.Nil(t, outer.Else)

	inner, ok := outer.Then.(*ast.If)
	require.True(t, ok)
	assert.NotNil(t, inner.Else)
}

func TestParse_NestedBlocksAndComments(t *testing.T) {
	src := `// header
int x = 1; // trailing
{
  // inside
  { x = 2; }
  // before close
}
// footer`
	prog := mustParse(t, src)
	require.Len(t, prog.Stmts, 2)

	outer := prog.Stmts[1].(*ast.Block)
	require.Len(t, outer.Stmts, 1)
	inner := outer.Stmts[0].(*ast.Block)
	require.Len(t, inner.Stmts, 1)
	assert.IsType(t, &ast.Assign{}, inner.Stmts[0])
}

func TestParse_EmptyProgram(t *testing.T) {
	for _, src := range []string{"", "   ", "// nothing"} {
		prog := mustParse(t, src)
		assert.Empty(t, prog.Stmts)
		assert.Equal(t, "program", prog.Value())
		assert.Equal(t, token.EOF, prog.Token().Kind)
	}
}

func TestParse_ProgramLocatedAtFirstToken(t *testing.T) {
	prog := mustParse(t, "\n\n  int x;")
	assert.Equal(t, token.Position{Line: 3, Column: 3, Offset: 4}, prog.Token().Pos)
}

// ---------- Expression Tests ----------

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string // AST printed with explicit parentheses
	}{
		{"mul binds tighter than add", "1 + 2 * 3", "(1 + (2 * 3))"},
		{"left associative subtraction", "a - b - c", "((a - b) - c)"},
		{"left associative division", "a / b % c", "((a / b) % c)"},
		{"parentheses override", "(1 + 2) * 3", "((1 + 2) * 3)"},
		{"relational over equality", "a < b == c > d", "((a < b) == (c > d))"},
		{"and over or", "a || b && c", "(a || (b && c))"},
		{"comparison over and", "a < 1 && b >= 2", "((a < 1) && (b >= 2))"},
		{"or chain", "a || b || c", "((a || b) || c)"},
		{"full ladder", "a || b && c == d < e + f * g",
			"(a || (b && (c == (d < (e + (f * g))))))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, "x = "+tt.expr+";")
			assign := prog.Stmts[0].(*ast.Assign)
			assert.Equal(t, tt.want, paren(assign.Expr))
		})
	}
}

func paren(e ast.Expr) string {
	if b, ok := e.(*ast.Binary); ok {
		return "(" + paren(b.Left) + " " + b.Op() + " " + paren(b.Right) + ")"
	}
	return e.Value()
}

func TestParse_Literals(t *testing.T) {
	prog := mustParse(t, `x = 1; x = 2.5; x = "s"; x = true; x = false;`)
	want := []token.Kind{token.IntegerLiteral, token.RealLiteral, token.StringLiteral, token.Keyword, token.Keyword}
	require.Len(t, prog.Stmts, len(want))
	for i, k := range want {
		lit, ok := prog.Stmts[i].(*ast.Assign).Expr.(*ast.Literal)
		require.True(t, ok)
		assert.Equal(t, k, lit.Token().Kind)
	}
}

// ---------- Error Tests ----------

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		line    int
		column  int
		lexeme  string
		message string
	}{
		{"dangling operator", "int x = 1 + ;", 1, 13, ";", parser.ErrExpectedExpression},
		{"missing semicolon", "int x = 1", 1, 10, "", parser.ErrExpectedDeclEnd},
		{"missing identifier", "int 5;", 1, 5, "5", "identificador esperado apos 'int'"},
		{"bad statement start", "5 = x;", 1, 1, "5", parser.ErrExpectedStatement},
		{"reserved but unused keyword", "while (true) {}", 1, 1, "while", parser.ErrExpectedStatement},
		{"missing assign operator", "x 1;", 1, 3, "1", parser.ErrExpectedAssignOp},
		{"missing if paren", "if x < 1) x = 1;", 1, 4, "x", parser.ErrExpectedIfParen},
		{"missing close paren", "if (x < 1 x = 1;", 1, 11, "x", parser.ErrExpectedCondParen},
		{"unclosed block", "{ int x;", 1, 9, "", parser.ErrExpectedBlockEnd},
		{"unclosed group", "x = (1 + 2;", 1, 11, ";", parser.ErrExpectedCloseParen},
		{"unknown token", "x = @;", 1, 5, "@", parser.ErrExpectedExpression},
		{"unterminated string", `x = "abc`, 1, 5, `"abc(String nunca foi fechada)`, parser.ErrExpectedExpression},
		{"stray close brace", "}", 1, 1, "}", parser.ErrExpectedStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := parser.ParseSource(tt.src)
			require.Error(t, err)
			assert.Nil(t, prog, "no partial AST on failure")

			var synErr *parser.SyntaxError
			require.True(t, errors.As(err, &synErr))
			assert.Equal(t, tt.line, synErr.Pos.Line)
			assert.Equal(t, tt.column, synErr.Pos.Column)
			assert.Equal(t, tt.lexeme, synErr.Lexeme)
			assert.Equal(t, tt.message, synErr.Message)
		})
	}
}

func TestSyntaxError_Message(t *testing.T) {
	_, err := parser.ParseSource("int x = 1 + ;")
	require.Error(t, err)
	assert.Equal(t,
		"Erro sintatico na linha 1, coluna 13: expressao, identificador ou literal esperado (encontrei ';')",
		err.Error())
}

// ---------- Advisory Diagnostics ----------

func TestParser_UseBeforeDeclareWarnings(t *testing.T) {
	p := parser.New(lexer.Tokenize("y = 1; int y; y = x + y;"))
	_, err := p.Parse()
	require.NoError(t, err)

	warnings := p.Diagnostics()
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, diag.SeverityWarning, w.Severity)
	}
	assert.Equal(t, "variavel 'y' usada sem declarar", warnings[0].Message)
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, warnings[0].Pos)
	assert.Equal(t, "variavel 'x' usada sem declarar", warnings[1].Message)
	assert.False(t, warnings.HasErrors())
}

func TestParser_WarningsResetBetweenParses(t *testing.T) {
	p := parser.New(lexer.Tokenize("z = 1;"))
	_, err := p.Parse()
	require.NoError(t, err)
	_, err = p.Parse()
	require.NoError(t, err)
	assert.Len(t, p.Diagnostics(), 1)
}

// ---------- Properties ----------

func TestParse_Idempotent(t *testing.T) {
	sources := []string{
		"int x = 5; int y = 2; int z = x + y;",
		"float f = 1; f = f + 1;",
		"if (1 < 2) { int a = 1; } else { int a = 2; }",
		"boolean ok = (1 + 2) * 3 >= 9 && != ;",
		"string s = \"a\"; { { s = \"b\"; } }",
	}

	for _, src := range sources {
		toks := lexer.Tokenize(src)
		first, err1 := parser.Parse(toks)
		second, err2 := parser.Parse(toks)
		if err1 != nil {
			assert.Equal(t, err1, err2, "source %q", src)
			continue
		}
		require.NoError(t, err2)
		assert.True(t, ast.Equal(first, second), "source %q", src)
	}
}

func TestParse_TokensWithoutEOF(t *testing.T) {
	toks := lexer.Tokenize("int a;")
	prog, err := parser.Parse(toks[:len(toks)-1])
	require.NoError(t, err)
	assert.Len(t, prog.Stmts, 1)

	prog, err = parser.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, prog.Stmts)
}

func TestPrecedence(t *testing.T) {
	assert.Equal(t, parser.PrecedenceNone, parser.Precedence("="))
	assert.Less(t, parser.Precedence("||"), parser.Precedence("&&"))
	assert.Less(t, parser.Precedence("&&"), parser.Precedence("=="))
	assert.Less(t, parser.Precedence("=="), parser.Precedence("<"))
	assert.Less(t, parser.Precedence("<"), parser.Precedence("+"))
	assert.Less(t, parser.Precedence("+"), parser.Precedence("%"))
}
