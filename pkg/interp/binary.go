package interp

import (
	"github.com/leapstack-labs/leaplang/pkg/semantic"
	"github.com/leapstack-labs/leaplang/pkg/token"
	"github.com/leapstack-labs/leaplang/pkg/types"
)

func binary(op token.Token, left, right Value) (Value, error) {
	sym := op.Lexeme
	switch {
	case semantic.IsArithmetic(sym):
		if err := requireNumeric(op, left, right); err != nil {
			return Value{}, err
		}
		if sym == "%" {
			if left.Type != types.Integer || right.Type != types.Integer {
				return Value{}, errorAt(op, ErrModuloInteger)
			}
			if right.Int == 0 {
				return Value{}, errorAt(op, ErrDivisionByZero)
			}
			return IntValue(left.Int % right.Int), nil
		}
		if left.Type == types.Real || right.Type == types.Real {
			return realArith(sym, left.AsReal(), right.AsReal()), nil
		}
		return intArith(op, left.Int, right.Int)

	case semantic.IsComparison(sym):
		if err := requireNumeric(op, left, right); err != nil {
			return Value{}, err
		}
		if left.Type == types.Integer && right.Type == types.Integer {
			return BoolValue(compare(sym, left.Int, right.Int)), nil
		}
		return BoolValue(compare(sym, left.AsReal(), right.AsReal())), nil

	case semantic.IsLogical(sym):
		if left.Type != types.Boolean || right.Type != types.Boolean {
			return Value{}, errorAt(op, ErrLogicalBoolean, sym)
		}
		if sym == "&&" {
			return BoolValue(left.Bool && right.Bool), nil
		}
		return BoolValue(left.Bool || right.Bool), nil
	}
	return Value{}, errorAt(op, ErrUnsupportedOp, sym)
}

func requireNumeric(op token.Token, left, right Value) error {
	if !left.IsNumeric() {
		return errorAt(op, ErrNotNumeric, op.Lexeme, "esquerda")
	}
	if !right.IsNumeric() {
		return errorAt(op, ErrNotNumeric, op.Lexeme, "direita")
	}
	return nil
}

func realArith(op string, l, r float64) Value {
	switch op {
	case "+":
		return RealValue(l + r)
	case "-":
		return RealValue(l - r)
	case "*":
		return RealValue(l * r)
	default:
		return RealValue(l / r)
	}
}

// intArith performs integer arithmetic. Division truncates toward zero.
func intArith(op token.Token, l, r int64) (Value, error) {
	switch op.Lexeme {
	case "+":
		return IntValue(l + r), nil
	case "-":
		return IntValue(l - r), nil
	case "*":
		return IntValue(l * r), nil
	}
	if r == 0 {
		return Value{}, errorAt(op, ErrDivisionByZero)
	}
	return IntValue(l / r), nil
}

func compare[T int64 | float64](op string, l, r T) bool {
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	default:
		return l >= r
	}
}
