// Package types defines the static types of leaplang and the single
// implicit conversion between them.
package types

// Type is a leaplang static type.
type Type int

// Type constants. Unknown marks an expression whose type could not be
// determined; the problem has already been reported where it arose.
const (
	Unknown Type = iota
	Integer
	Real
	String
	Boolean
)

// String returns the name used in diagnostics.
func (t Type) String() string {
	switch t {
	case Integer:
		return "int"
	case Real:
		return "real"
	case String:
		return "string"
	case Boolean:
		return "bool"
	default:
		return "unknown"
	}
}

// MarshalText lets types appear by name in JSON and YAML output.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// FromKeyword maps a type keyword to its Type. It returns Unknown and false
// for anything that is not a type keyword.
func FromKeyword(kw string) (Type, bool) {
	switch kw {
	case "int":
		return Integer, true
	case "float":
		return Real, true
	case "string":
		return String, true
	case "boolean":
		return Boolean, true
	default:
		return Unknown, false
	}
}

// IsNumeric reports whether t is Integer or Real.
func (t Type) IsNumeric() bool {
	return t == Integer || t == Real
}

// Assignable reports whether a value of type src may be stored in a variable
// of type dst. Types must match, except that Integer widens to Real.
func Assignable(dst, src Type) bool {
	return dst == src || Widens(dst, src)
}

// Widens reports whether storing src into dst needs the Integer to Real
// promotion.
func Widens(dst, src Type) bool {
	return dst == Real && src == Integer
}

// ArithmeticResult is the result type of an arithmetic operator applied to
// two numeric operands.
func ArithmeticResult(left, right Type) Type {
	if left == Real || right == Real {
		return Real
	}
	return Integer
}
