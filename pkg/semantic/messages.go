package semantic

// Diagnostic messages.
const (
	MsgRedeclared     = "variavel '%s' redeclarada"
	MsgUndeclared     = "variavel '%s' usada sem declarar"
	MsgInitMismatch   = "tipos incompativeis na inicializacao de '%s': esperado %s, obtido %s"
	MsgAssignMismatch = "tipos incompativeis na atribuicao: esperado %s, obtido %s"
	MsgIfCondition    = "condicao do if deve ser bool"
	MsgArithNumeric   = "operador '%s' exige operandos numericos"
	MsgModuloInteger  = "operador '%%' exige operandos int"
	MsgCompareNumeric = "comparacao '%s' exige operandos numericos"
	MsgLogicalBoolean = "operador logico '%s' exige operandos bool"
)
