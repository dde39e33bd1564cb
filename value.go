package main

import (
	"math"
	"strconv"
)

// Value is a runtime value: nil, bool, float64, string or Callable.
type Value any

// Callable is anything that can appear as the callee of a call
// expression.
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// NativeFn implements a NativeFunction. len(args) always equals the
// declared arity. Go integer and float32 results are converted to
// numbers; other non-Lox results and plain errors become runtime errors
// at the call site.
type NativeFn func(in *Interpreter, args []Value) (Value, error)

// NativeFunction is a callable implemented by the host.
type NativeFunction struct {
	Name     string
	NumArgs  int
	Function NativeFn
}

func (f *NativeFunction) Arity() int { return f.NumArgs }

func (f *NativeFunction) Call(in *Interpreter, args []Value) (Value, error) {
	return f.Function(in, args)
}

func (f *NativeFunction) String() string { return "<native fn>" }

// Function is a user-defined function together with the environment that
// was current when its declaration executed.
type Function struct {
	Declaration *ASTNode // NodeFunc
	Closure     *Environment
}

func (f *Function) Arity() int { return len(f.Declaration.Params) }

func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	result, err := in.executeBlock(f.Declaration.Children, env)
	if err != nil {
		return nil, err
	}
	if result.flow == flowReturn {
		return result.value, nil
	}
	return nil, nil
}

func (f *Function) String() string {
	return "<fn " + f.Declaration.Name() + ">"
}

// isTruthy reports whether v counts as true: everything except nil and
// false does.
func isTruthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// isEqual never fails; values of different kinds are simply unequal.
// Numbers compare by bit pattern after folding NaNs together, so NaN
// equals itself and 0 differs from -0.
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if x, ok := a.(float64); ok {
		y, ok := b.(float64)
		if !ok {
			return false
		}
		if math.IsNaN(x) || math.IsNaN(y) {
			return math.IsNaN(x) && math.IsNaN(y)
		}
		return math.Float64bits(x) == math.Float64bits(y)
	}
	return a == b
}

// Stringify renders v the way print shows it.
func Stringify(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case string:
		return v
	case Callable:
		return v.String()
	default:
		panic("not a runtime value")
	}
}

// formatNumber prints the shortest decimal that round-trips; integral
// values get no decimal point.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// typeName is the kind of v as the REPL's :env command shows it.
func typeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case Callable:
		return "function"
	default:
		return "unknown"
	}
}
