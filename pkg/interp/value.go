package interp

import (
	"strconv"

	"github.com/leapstack-labs/leaplang/pkg/types"
)

// DefaultPrecision is the number of significant digits used to print reals.
const DefaultPrecision = 6

// Value is a runtime value. Type selects which field is meaningful.
type Value struct {
	Type types.Type
	Int  int64
	Real float64
	Str  string
	Bool bool
}

// IntValue returns an Integer value.
func IntValue(i int64) Value { return Value{Type: types.Integer, Int: i} }

// RealValue returns a Real value.
func RealValue(f float64) Value { return Value{Type: types.Real, Real: f} }

// StringValue returns a String value.
func StringValue(s string) Value { return Value{Type: types.String, Str: s} }

// BoolValue returns a Boolean value.
func BoolValue(b bool) Value { return Value{Type: types.Boolean, Bool: b} }

// Zero returns the default value of a variable declared with type t:
// 0, 0.0, "" or false. Unknown yields an Unknown value.
func Zero(t types.Type) Value {
	return Value{Type: t}
}

// IsNumeric reports whether v holds an Integer or a Real.
func (v Value) IsNumeric() bool {
	return v.Type.IsNumeric()
}

// AsReal returns v as a float64, promoting integers.
func (v Value) AsReal() float64 {
	if v.Type == types.Integer {
		return float64(v.Int)
	}
	return v.Real
}

// Promote converts an Integer to a Real. Other values are returned as is.
func (v Value) Promote() Value {
	if v.Type == types.Integer {
		return RealValue(float64(v.Int))
	}
	return v
}

// String formats v with DefaultPrecision.
func (v Value) String() string {
	return v.Format(DefaultPrecision)
}

// Format renders v for output. Reals use the shortest of fixed or
// exponent notation with the given number of significant digits.
func (v Value) Format(precision int) string {
	switch v.Type {
	case types.Integer:
		return strconv.FormatInt(v.Int, 10)
	case types.Real:
		if precision <= 0 {
			precision = DefaultPrecision
		}
		return strconv.FormatFloat(v.Real, 'g', precision, 64)
	case types.String:
		return v.Str
	case types.Boolean:
		return strconv.FormatBool(v.Bool)
	default:
		return "?"
	}
}

// Interface returns v as a plain Go value for structured output.
func (v Value) Interface() any {
	switch v.Type {
	case types.Integer:
		return v.Int
	case types.Real:
		return v.Real
	case types.String:
		return v.Str
	case types.Boolean:
		return v.Bool
	default:
		return nil
	}
}
