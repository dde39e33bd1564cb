package main

import (
	"errors"
	"fmt"
	"io"
)

type flow int

const (
	flowNormal flow = iota
	flowReturn
)

// completion is how a statement finished. A return statement produces
// flowReturn, which each enclosing statement passes outward until the
// function call that is running it.
type completion struct {
	flow  flow
	value Value
}

var normalCompletion = completion{flow: flowNormal}

// DefaultMaxCallDepth is how many calls may be active at once before a
// call fails with "Stack overflow.".
const DefaultMaxCallDepth = 4096

// Interpreter walks the AST and executes it.
type Interpreter struct {
	globals  *Environment
	env      *Environment // current scope
	locals   Locals
	out      io.Writer
	reporter *Reporter

	depth        int // active calls
	maxCallDepth int
}

// NewInterpreter creates an interpreter whose print statements write to
// out and whose runtime errors go to reporter. The built-in natives are
// already defined.
func NewInterpreter(out io.Writer, reporter *Reporter) *Interpreter {
	globals := NewEnvironment(nil)
	in := &Interpreter{
		globals:      globals,
		env:          globals,
		locals:       make(Locals),
		out:          out,
		reporter:     reporter,
		maxCallDepth: DefaultMaxCallDepth,
	}
	defineNatives(in)
	return in
}

func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// SetMaxCallDepth limits how deeply calls may nest. Values below 1
// restore the default.
func (in *Interpreter) SetMaxCallDepth(n int) {
	if n < 1 {
		n = DefaultMaxCallDepth
	}
	in.maxCallDepth = n
}

// DefineNative binds a host function in the global scope.
func (in *Interpreter) DefineNative(name string, arity int, fn NativeFn) {
	in.globals.Define(name, &NativeFunction{Name: name, NumArgs: arity, Function: fn})
}

// Resolve records the distances computed by a Resolver. Tables from
// successive REPL entries accumulate.
func (in *Interpreter) Resolve(locals Locals) {
	for node, distance := range locals {
		in.locals[node] = distance
	}
}

// Interpret executes statements in order. The first runtime error is
// reported and the remaining statements are skipped.
func (in *Interpreter) Interpret(statements []*ASTNode) {
	for _, stmt := range statements {
		if _, err := in.execute(stmt); err != nil {
			in.reportError(err)
			return
		}
	}
}

// Evaluate evaluates a single expression in the current scope.
func (in *Interpreter) Evaluate(expr *ASTNode) (Value, error) {
	return in.evaluate(expr)
}

func (in *Interpreter) reportError(err error) {
	in.reporter.RuntimeError(asRuntimeError(err, Token{}))
}

// asRuntimeError returns err as a *RuntimeError, wrapping a plain error
// (as natives may return) at tok.
func asRuntimeError(err error, tok Token) *RuntimeError {
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		return rtErr
	}
	return &RuntimeError{Token: tok, Kind: err, Message: err.Error()}
}

func (in *Interpreter) execute(stmt *ASTNode) (completion, error) {
	switch stmt.Kind {
	case NodeExprStmt:
		_, err := in.evaluate(stmt.Children[0])
		return normalCompletion, err

	case NodePrint:
		value, err := in.evaluate(stmt.Children[0])
		if err != nil {
			return normalCompletion, err
		}
		fmt.Fprintln(in.out, Stringify(value))
		return normalCompletion, nil

	case NodeVar:
		var value Value
		if len(stmt.Children) > 0 {
			var err error
			value, err = in.evaluate(stmt.Children[0])
			if err != nil {
				return normalCompletion, err
			}
		}
		in.env.Define(stmt.Name(), value)
		return normalCompletion, nil

	case NodeBlock:
		return in.executeBlock(stmt.Children, NewEnvironment(in.env))

	case NodeIf:
		test, err := in.evaluate(stmt.Children[0])
		if err != nil {
			return normalCompletion, err
		}
		if isTruthy(test) {
			return in.execute(stmt.Children[1])
		}
		if len(stmt.Children) > 2 {
			return in.execute(stmt.Children[2])
		}
		return normalCompletion, nil

	case NodeWhile:
		body := stmt.Children[1:2]
		for {
			test, err := in.evaluate(stmt.Children[0])
			if err != nil {
				return normalCompletion, err
			}
			if !isTruthy(test) {
				return normalCompletion, nil
			}
			// Each iteration gets its own scope, matching the resolver.
			result, err := in.executeBlock(body, NewEnvironment(in.env))
			if err != nil || result.flow == flowReturn {
				return result, err
			}
		}

	case NodeFunc:
		in.env.Define(stmt.Name(), &Function{Declaration: stmt, Closure: in.env})
		return normalCompletion, nil

	case NodeReturn:
		var value Value
		if len(stmt.Children) > 0 {
			var err error
			value, err = in.evaluate(stmt.Children[0])
			if err != nil {
				return normalCompletion, err
			}
		}
		return completion{flow: flowReturn, value: value}, nil

	default:
		panic("interpreter: not a statement: " + string(stmt.Kind))
	}
}

// executeBlock runs statements with env as the current scope. The previous
// scope is restored on every exit path.
func (in *Interpreter) executeBlock(statements []*ASTNode, env *Environment) (completion, error) {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range statements {
		result, err := in.execute(stmt)
		if err != nil || result.flow == flowReturn {
			return result, err
		}
	}
	return normalCompletion, nil
}

func (in *Interpreter) evaluate(expr *ASTNode) (Value, error) {
	switch expr.Kind {
	case NodeLiteral:
		return expr.Literal, nil

	case NodeGrouping:
		return in.evaluate(expr.Children[0])

	case NodeUnary:
		right, err := in.evaluate(expr.Children[0])
		if err != nil {
			return nil, err
		}
		switch expr.Token.Type {
		case BANG:
			return !isTruthy(right), nil
		case MINUS:
			n, ok := right.(float64)
			if !ok {
				return nil, NewRuntimeError(expr.Token, ErrOperandType, "Operand must be a number.")
			}
			return -n, nil
		}
		panic("interpreter: unexpected unary operator " + expr.Token.Lexeme)

	case NodeBinary:
		left, err := in.evaluate(expr.Children[0])
		if err != nil {
			return nil, err
		}
		right, err := in.evaluate(expr.Children[1])
		if err != nil {
			return nil, err
		}
		return in.binary(expr.Token, left, right)

	case NodeLogical:
		left, err := in.evaluate(expr.Children[0])
		if err != nil {
			return nil, err
		}
		if expr.Token.Type == OR {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return in.evaluate(expr.Children[1])

	case NodeVariable:
		return in.lookUpVariable(expr)

	case NodeAssign:
		value, err := in.evaluate(expr.Children[0])
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[expr]; ok {
			err = in.env.AssignAt(distance, expr.Token, value)
		} else {
			err = in.globals.Assign(expr.Token, value)
		}
		if err != nil {
			return nil, err
		}
		return value, nil

	case NodeCall:
		return in.call(expr)

	default:
		panic("interpreter: not an expression: " + string(expr.Kind))
	}
}

func (in *Interpreter) lookUpVariable(expr *ASTNode) (Value, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, expr.Token)
	}
	return in.globals.Get(expr.Token)
}

func (in *Interpreter) binary(operator Token, left, right Value) (Value, error) {
	switch operator.Type {
	case EQ:
		return isEqual(left, right), nil
	case NOT_EQ:
		return !isEqual(left, right), nil
	case PLUS:
		switch l := left.(type) {
		case float64:
			if r, ok := right.(float64); ok {
				return l + r, nil
			}
		case string:
			switch r := right.(type) {
			case string:
				return l + r, nil
			case float64:
				return l + formatNumber(r), nil
			}
		}
		return nil, NewRuntimeError(operator, ErrOperandType, "Operands must be two numbers or two strings.")
	}

	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, NewRuntimeError(operator, ErrOperandType, "Operands must be numbers.")
	}

	switch operator.Type {
	case MINUS:
		return l - r, nil
	case ASTERISK:
		return l * r, nil
	case SLASH:
		if r == 0 {
			return nil, NewRuntimeError(operator, ErrDivisionByZero, "Division by zero.")
		}
		return l / r, nil
	case GT:
		return l > r, nil
	case GE:
		return l >= r, nil
	case LT:
		return l < r, nil
	case LE:
		return l <= r, nil
	}
	panic("interpreter: unexpected binary operator " + operator.Lexeme)
}

func (in *Interpreter) call(expr *ASTNode) (Value, error) {
	callee, err := in.evaluate(expr.Children[0])
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(expr.Children)-1)
	for _, argExpr := range expr.Children[1:] {
		arg, err := in.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, NewRuntimeError(expr.Token, ErrNotCallable, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, NewRuntimeError(expr.Token, ErrArity, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if in.depth >= in.maxCallDepth {
		return nil, NewRuntimeError(expr.Token, ErrStackOverflow, "Stack overflow.")
	}
	in.depth++
	defer func() { in.depth-- }()

	result, err := fn.Call(in, args)
	if native, ok := fn.(*NativeFunction); ok {
		return nativeResult(native, expr.Token, result, err)
	}
	return result, err
}

// nativeResult converts what a host function returned into a Lox value.
// Go numbers become float64; any other non-Lox value is a runtime error.
func nativeResult(fn *NativeFunction, tok Token, result Value, err error) (Value, error) {
	if err != nil {
		return nil, asRuntimeError(err, tok)
	}
	switch v := result.(type) {
	case nil, bool, float64, string, Callable:
		return v, nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	default:
		return nil, NewRuntimeError(tok, ErrNativeResult, "Native function '%s' returned a value of unsupported type %T.", fn.Name, v)
	}
}
