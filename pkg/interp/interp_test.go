package interp_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leaplang/pkg/interp"
	"github.com/leapstack-labs/leaplang/pkg/parser"
	"github.com/leapstack-labs/leaplang/pkg/semantic"
	"github.com/leapstack-labs/leaplang/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses, checks and executes src, failing the test on diagnostics.
func run(t *testing.T, src string) (*interp.Env, error) {
	t.Helper()
	prog, err := parser.ParseSource(src)
	require.NoError(t, err)
	symbols, diags := semantic.Check(prog)
	require.False(t, diags.HasErrors(), "unexpected diagnostics:\n%s", diags)
	return interp.Execute(prog, symbols)
}

// runUnchecked executes src without honoring semantic diagnostics, which
// exercises the runtime checks.
func runUnchecked(t *testing.T, src string) (*interp.Env, error) {
	t.Helper()
	prog, err := parser.ParseSource(src)
	require.NoError(t, err)
	symbols, _ := semantic.Check(prog)
	return interp.Execute(prog, symbols)
}

func lines(env *interp.Env) []string {
	var out []string
	for _, b := range env.Bindings() {
		out = append(out, b.Name+" = "+b.Value.String())
	}
	return out
}

func TestExecute_Examples(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "integer sum",
			src:  "int x = 5; int y = 2; int z = x + y;",
			want: []string{"x = 5", "y = 2", "z = 7"},
		},
		{
			name: "int initializer widens to real",
			src:  "float f = 1; f = f + 1;",
			want: []string{"f = 2"},
		},
		{
			name: "flat scope shares one binding",
			src:  "if (1 < 2) { int a = 1; } else { int a = 2; }",
			want: []string{"a = 1"},
		},
		{
			name: "else branch",
			src:  "int a; if (2 < 1) a = 1; else a = 2;",
			want: []string{"a = 2"},
		},
		{
			name: "defaults",
			src:  "int i; float f; string s; boolean b;",
			want: []string{"i = 0", "f = 0", "s = ", "b = false"},
		},
		{
			name: "strings print raw",
			src:  `string s = "ola mundo"; string e = "a\"b";`,
			want: []string{"s = ola mundo", `e = a\"b`},
		},
		{
			name: "first-binding order survives reassignment",
			src:  "int b = 1; int a = 2; b = 3;",
			want: []string{"b = 3", "a = 2"},
		},
		{
			name: "logical and comparison",
			src:  "boolean t = 1 < 2 && 2.5 >= 2 || false; boolean f = 3 != 3;",
			want: []string{"t = true", "f = false"},
		},
		{
			name: "nested blocks",
			src:  "int n = 1; { { n = n * 10; } }",
			want: []string{"n = 10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := run(t, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines(env))
		})
	}
}

func TestExecute_Arithmetic(t *testing.T) {
	tests := []struct {
		expr string
		want interp.Value
	}{
		{"7 / 2", interp.IntValue(3)},
		{"(0 - 7) / 2", interp.IntValue(-3)},
		{"7 % 3", interp.IntValue(1)},
		{"(0 - 7) % 2", interp.IntValue(-1)},
		{"7 / 2.0", interp.RealValue(3.5)},
		{"1 + 2 * 3", interp.IntValue(7)},
		{"(1 + 2) * 3", interp.IntValue(9)},
		{"10 - 4 - 3", interp.IntValue(3)},
		{"1.5 * 2", interp.RealValue(3)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			decl := "int"
			if tt.want.Type == types.Real {
				decl = "float"
			}
			env, err := run(t, decl+" r = "+tt.expr+";")
			require.NoError(t, err)
			got, ok := env.Get("r")
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecute_RuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		line    int
		column  int
	}{
		{"integer division by zero", "int a = 1 / 0;", "divisao por zero", 1, 11},
		{"modulo by zero", "int a = 1 % 0;", "divisao por zero", 1, 11},
		{"literal out of range", "int a = 99999999999999999999;", "literal inteiro fora do intervalo: 99999999999999999999", 1, 9},
		{"assignment mismatch", `int a; a = "hi";`, "atribuicao incompativel para 'a'", 1, 8},
		{"init mismatch", "int a = true;", "inicializacao incompativel de 'a'", 1, 5},
		{"non-bool condition", "if (1) { int a; }", "condicao do if nao booleana", 1, 5},
		{"unbound read", "int a = b;", "variavel 'b' sem valor em tempo de execucao", 1, 9},
		{"string arithmetic", `int a = "x" + 1;`, "operando nao numerico em '+': esquerda", 1, 13},
		{"bool comparison", "boolean b = 1 < true;", "operando nao numerico em '<': direita", 1, 15},
		{"modulo on real", "float f = 2.5 % 2;", "operador '%' exige int", 1, 15},
		{"logical on ints", "boolean b = 1 || 0;", "operador logico '||' exige bool", 1, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := runUnchecked(t, tt.src)
			require.Error(t, err)
			assert.Nil(t, env, "no bindings on failure")

			var rtErr *interp.RuntimeError
			require.True(t, errors.As(err, &rtErr))
			assert.Equal(t, tt.message, rtErr.Message)
			assert.Equal(t, tt.line, rtErr.Pos.Line)
			assert.Equal(t, tt.column, rtErr.Pos.Column)
		})
	}
}

func TestRuntimeError_Message(t *testing.T) {
	_, err := runUnchecked(t, "int a = 1 / 0;")
	require.Error(t, err)
	assert.Equal(t, "Erro de execucao na linha 1, coluna 11: divisao por zero", err.Error())
}

func TestExecute_WithoutSymbolsAcceptsAnyType(t *testing.T) {
	prog, err := parser.ParseSource(`int a = "s"; a = 1.5;`)
	require.NoError(t, err)

	env, err := interp.Execute(prog, nil)
	require.NoError(t, err)
	v, _ := env.Get("a")
	assert.Equal(t, interp.RealValue(1.5), v)
}

func TestInterpreter_PersistentEnv(t *testing.T) {
	symbols := semantic.NewSymbolTable()
	symbols.Declare("n", types.Integer)
	in := interp.New(symbols, nil)

	for _, src := range []string{"int n = 1;", "n = n + 41;"} {
		prog, err := parser.ParseSource(src)
		require.NoError(t, err)
		require.NoError(t, in.Run(prog))
	}

	v, ok := in.Env().Get("n")
	require.True(t, ok)
	assert.Equal(t, interp.IntValue(42), v)
}

func TestValue_Format(t *testing.T) {
	tests := []struct {
		value     interp.Value
		precision int
		want      string
	}{
		{interp.IntValue(-12), 6, "-12"},
		{interp.RealValue(2), 6, "2"},
		{interp.RealValue(0.1), 6, "0.1"},
		{interp.RealValue(1.0 / 3), 6, "0.333333"},
		{interp.RealValue(1.0 / 3), 3, "0.333"},
		{interp.RealValue(1e6), 6, "1e+06"},
		{interp.RealValue(123456), 6, "123456"},
		{interp.RealValue(2.5), 0, "2.5"},
		{interp.StringValue("raw \\n"), 6, "raw \\n"},
		{interp.BoolValue(true), 6, "true"},
		{interp.Zero(types.Unknown), 6, "?"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.value.Format(tt.precision))
	}
}

func TestValue_Zero(t *testing.T) {
	assert.Equal(t, interp.IntValue(0), interp.Zero(types.Integer))
	assert.Equal(t, interp.RealValue(0), interp.Zero(types.Real))
	assert.Equal(t, interp.StringValue(""), interp.Zero(types.String))
	assert.Equal(t, interp.BoolValue(false), interp.Zero(types.Boolean))
}

func TestEnv_Clone(t *testing.T) {
	env := interp.NewEnv()
	env.Set("a", interp.IntValue(1))

	c := env.Clone()
	c.Set("a", interp.IntValue(2))
	c.Set("b", interp.IntValue(3))

	v, _ := env.Get("a")
	assert.Equal(t, interp.IntValue(1), v)
	assert.Equal(t, 1, env.Len())
	assert.Equal(t, 2, c.Len())
}
