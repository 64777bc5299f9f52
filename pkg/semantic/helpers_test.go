package semantic_test

import (
	"testing"

	"github.com/leapstack-labs/leaplang/pkg/ast"
	"github.com/stretchr/testify/require"
)

func exprOf(t *testing.T, stmt ast.Stmt) ast.Expr {
	t.Helper()
	assign, ok := stmt.(*ast.Assign)
	require.True(t, ok, "expected assignment, got %T", stmt)
	return assign.Expr
}
