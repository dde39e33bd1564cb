package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"42", "(number 42)"},
		{"3.5", "(number 3.5)"},
		{`"hi"`, `(string "hi")`},
		{`"say \"q"`, `(string "say \\")`},
		{"true", "true"},
		{"false", "false"},
		{"nil", "nil"},
		{"x", `(ident "x")`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if tt.input == `"say \"q"` {
				// Lox strings have no escapes, so the string ends at the
				// second quote and the rest is left over.
				reporter := NewReporter(nil)
				expr := NewParser(Tokenize(tt.input, reporter), reporter).ParseExpression()
				be.True(t, expr == nil)
				be.Equal(t, reporter.HadError(), true)
				return
			}
			be.Equal(t, ToSExpr(parseExpr(t, tt.input)), tt.expected)
		})
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", `(binary "+" (number 1) (binary "*" (number 2) (number 3)))`},
		{"1 * 2 + 3", `(binary "+" (binary "*" (number 1) (number 2)) (number 3))`},
		{"1 - 2 - 3", `(binary "-" (binary "-" (number 1) (number 2)) (number 3))`},
		{"8 / 4 / 2", `(binary "/" (binary "/" (number 8) (number 4)) (number 2))`},
		{"(1 + 2) * 3", `(binary "*" (group (binary "+" (number 1) (number 2))) (number 3))`},
		{"1 < 2 == true", `(binary "==" (binary "<" (number 1) (number 2)) true)`},
		{"a != b", `(binary "!=" (ident "a") (ident "b"))`},
		{"1 + 2 >= 3", `(binary ">=" (binary "+" (number 1) (number 2)) (number 3))`},
		{"1 <= 2 > 0", `(binary ">" (binary "<=" (number 1) (number 2)) (number 0))`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			be.Equal(t, ToSExpr(parseExpr(t, tt.input)), tt.expected)
		})
	}
}

func TestParseUnary(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-1", `(unary "-" (number 1))`},
		{"!true", `(unary "!" true)`},
		{"!!x", `(unary "!" (unary "!" (ident "x")))`},
		{"-a * b", `(binary "*" (unary "-" (ident "a")) (ident "b"))`},
		{"- -1", `(unary "-" (unary "-" (number 1)))`},
	}

	for _, tt := range tests {
		be.Equal(t, ToSExpr(parseExpr(t, tt.input)), tt.expected)
	}
}

func TestParseLogical(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a or b", `(logical "or" (ident "a") (ident "b"))`},
		{"a and b", `(logical "and" (ident "a") (ident "b"))`},
		// and binds tighter than or.
		{"a or b and c", `(logical "or" (ident "a") (logical "and" (ident "b") (ident "c")))`},
		{"a and b or c", `(logical "or" (logical "and" (ident "a") (ident "b")) (ident "c"))`},
		{"a == b or c", `(logical "or" (binary "==" (ident "a") (ident "b")) (ident "c"))`},
	}

	for _, tt := range tests {
		be.Equal(t, ToSExpr(parseExpr(t, tt.input)), tt.expected)
	}
}

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x = 1", `(assign "x" (number 1))`},
		{"a = b = c", `(assign "a" (assign "b" (ident "c")))`},
		{"x = a or b", `(assign "x" (logical "or" (ident "a") (ident "b")))`},
	}

	for _, tt := range tests {
		be.Equal(t, ToSExpr(parseExpr(t, tt.input)), tt.expected)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	reporter := NewReporter(nil)
	expr := NewParser(Tokenize("a + b = c", reporter), reporter).ParseExpression()
	be.Equal(t, reporter.String(), "[line 1] Error at '=': Invalid assignment target.")
	// The error does not unwind, so the left-hand side is still returned.
	be.Equal(t, ToSExpr(expr), `(binary "+" (ident "a") (ident "b"))`)
}

func TestParseCall(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"f()", `(call (ident "f"))`},
		{"f(1, 2)", `(call (ident "f") (number 1) (number 2))`},
		{"f(1)(2)", `(call (call (ident "f") (number 1)) (number 2))`},
		{"f(g(x))", `(call (ident "f") (call (ident "g") (ident "x")))`},
		{"-f()", `(unary "-" (call (ident "f")))`},
		{"f(a = 1)", `(call (ident "f") (assign "a" (number 1)))`},
	}

	for _, tt := range tests {
		be.Equal(t, ToSExpr(parseExpr(t, tt.input)), tt.expected)
	}
}

func TestParseCallTokenIsClosingParen(t *testing.T) {
	expr := parseExpr(t, "f(\n1\n)")
	be.Equal(t, expr.Token.Type, RPAREN)
	be.Equal(t, expr.Token.Line, 3)
}

func argumentList(n int) string {
	args := make([]string, n)
	for i := range args {
		args[i] = "1"
	}
	return strings.Join(args, ", ")
}

func TestParseCallArgumentLimit(t *testing.T) {
	reporter := NewReporter(nil)
	NewParser(Tokenize("f("+argumentList(255)+")", reporter), reporter).ParseExpression()
	be.Equal(t, reporter.HadError(), false)

	reporter = NewReporter(nil)
	expr := NewParser(Tokenize("f("+argumentList(256)+")", reporter), reporter).ParseExpression()
	be.Equal(t, reporter.String(), "[line 1] Error at '1': Can't have more than 255 arguments.")
	// Reported without unwinding.
	be.Equal(t, len(expr.Children), 257)
}

func TestParseExpressionErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "[line 1] Error at end: Expect expression."},
		{"1 +", "[line 1] Error at end: Expect expression."},
		{"(1", "[line 1] Error at end: Expect ')' after expression."},
		{"f(1", "[line 1] Error at end: Expect ')' after arguments."},
		{"1 2", "[line 1] Error at '2': Expect end of expression."},
		{")", "[line 1] Error at ')': Expect expression."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			reporter := NewReporter(nil)
			expr := NewParser(Tokenize(tt.input, reporter), reporter).ParseExpression()
			be.True(t, expr == nil)
			be.Equal(t, reporter.String(), tt.expected)
		})
	}
}
