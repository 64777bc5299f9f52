package interp

import (
	"fmt"

	"github.com/leapstack-labs/leaplang/pkg/token"
)

// RuntimeError aborts execution. There is no recovery.
type RuntimeError struct {
	Pos     token.Position
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Erro de execucao na linha %d, coluna %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Runtime error messages.
const (
	ErrUnbound        = "variavel '%s' sem valor em tempo de execucao"
	ErrNotNumeric     = "operando nao numerico em '%s': %s"
	ErrModuloInteger  = "operador '%%' exige int"
	ErrLogicalBoolean = "operador logico '%s' exige bool"
	ErrUnsupportedOp  = "operador nao suportado: %s"
	ErrInitMismatch   = "inicializacao incompativel de '%s'"
	ErrAssignMismatch = "atribuicao incompativel para '%s'"
	ErrIfCondition    = "condicao do if nao booleana"
	ErrDivisionByZero = "divisao por zero"
	ErrIntegerRange   = "literal inteiro fora do intervalo: %s"
	ErrInvalidLiteral = "literal invalido: %s"
)

func errorAt(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Pos: tok.Pos, Message: fmt.Sprintf(format, args...)}
}
