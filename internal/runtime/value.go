package runtime

import (
	"strconv"

	"lox/internal/lexer"
)

// Value is any runtime value: Nil, Bool, Number, String, or one of the
// callable / object kinds (*NativeFunction, *Function, *Class, *Instance).
type Value interface {
	String() string
}

type Nil struct{}

func (Nil) String() string { return "nil" }

type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

type Number float64

func (n Number) String() string { return lexer.FormatNumber(float64(n)) }

type String string

func (s String) String() string { return string(s) }

// Callable is anything that can appear on the left of a call.
type Callable interface {
	Value
	Arity() int
	Call(ex Executor, args []Value) (Value, error)
}

// IsTruthy reports the truthiness of v: nil and false are falsy, all else is truthy.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case nil, Nil:
		return false
	case Bool:
		return bool(v)
	}
	return true
}

// FromLiteral converts a scanned literal into a runtime value.
func FromLiteral(lit lexer.Literal) Value {
	switch lit.Kind {
	case lexer.StringLiteral:
		return String(lit.Str)
	case lexer.NumberLiteral:
		return Number(lit.Number)
	case lexer.BoolLiteral:
		return Bool(lit.Bool)
	}
	return Nil{}
}

// Repr is like String but quotes strings, for error messages.
func Repr(v Value) string {
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}
	if v == nil {
		return "nil"
	}
	return v.String()
}

// TypeName names the kind of v.
func TypeName(v Value) string {
	switch v.(type) {
	case nil, Nil:
		return "nil"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	case Callable:
		return "function"
	}
	return "unknown"
}
