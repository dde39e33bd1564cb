package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"test_var", "test_var"},
		{"func-name", "func-name"},
		{"x", "x"},
		{"<nil>", "<nil>"},
		{"+", "+"},
		{"_", "_"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeSymbol)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		output   string
	}{
		{`"hello"`, "hello", `"hello"`},
		{`"hello world"`, "hello world", `"hello world"`},
		{`""`, "", `""`},
		{`"test\"quote"`, `test"quote`, `"test\"quote"`},
		{`"test\\backslash"`, `test\backslash`, `"test\\backslash"`},
		{`"two\nlines"`, "two\nlines", `"two\nlines"`},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeString)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.output)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []string{"0", "42", "-7", "+3", "3.5", "0.25", "-1.5"}

	for _, input := range tests {
		result, err := Parse(input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeNumber)
		be.Equal(t, result.Text, input)
	}
}

func TestParseNumberFollowedByDot(t *testing.T) {
	// A trailing dot with no digits is not part of the number.
	_, err := Parse("3.")
	be.Err(t, err, "unexpected character '.'")
}

func TestParseEllipsis(t *testing.T) {
	result, err := Parse("...")
	be.Err(t, err, nil)
	be.Equal(t, result.Type, NodeEllipsis)
	be.Equal(t, result.String(), "...")
}

func TestParseList(t *testing.T) {
	result, err := Parse(`(binary "+" (number 1) (ident "x"))`)
	be.Err(t, err, nil)

	be.Equal(t, result.Type, NodeList)
	be.Equal(t, len(result.Items), 4)
	be.Equal(t, result.Items[0].Text, "binary")
	be.Equal(t, result.Items[1].Type, NodeString)
	be.Equal(t, result.Items[2].Type, NodeList)
	be.Equal(t, result.Items[2].Items[1].Type, NodeNumber)
	be.Equal(t, result.String(), `(binary "+" (number 1) (ident "x"))`)
}

func TestParseEmptyList(t *testing.T) {
	result, err := Parse("()")
	be.Err(t, err, nil)
	be.Equal(t, result.Type, NodeList)
	be.Equal(t, len(result.Items), 0)
	be.Equal(t, result.String(), "()")
}

func TestParseAll(t *testing.T) {
	nodes, err := ParseAll(`
		(var "a" (number 1))
		; a comment between data
		(print (ident "a"))
	`)
	be.Err(t, err, nil)
	be.Equal(t, len(nodes), 2)
	be.Equal(t, nodes[0].String(), `(var "a" (number 1))`)
	be.Equal(t, nodes[1].String(), `(print (ident "a"))`)
}

func TestParseAllEmpty(t *testing.T) {
	nodes, err := ParseAll("  ; only a comment\n")
	be.Err(t, err, nil)
	be.Equal(t, len(nodes), 0)
}

func TestRoundTripParsing(t *testing.T) {
	tests := []string{
		`(fun "add" ("a" "b") (return (binary "+" (ident "a") (ident "b"))))`,
		`(if (ident "x") (block) (print (string "no")))`,
		`(call (ident "f") ... (number 2.5))`,
		`(while true (block (expr (assign "i" (binary "+" (ident "i") (number 1))))))`,
	}

	for _, input := range tests {
		result, err := Parse(input)
		be.Err(t, err, nil)
		be.Equal(t, result.String(), input)
	}
}

func TestParseComments(t *testing.T) {
	result, err := Parse("; leading comment\n(a ; inside\n b)")
	be.Err(t, err, nil)
	be.Equal(t, result.String(), "(a b)")
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"unterminated string`, "unterminated string"},
		{`"invalid \escape"`, "invalid escape sequence"},
		{".", "unexpected character '.'"},
		{"@", "unexpected character '@'"},
		{"$", "unexpected character '$'"},
		{"(1 2 3 . 4)", "unexpected character '.'"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result, err := Parse(test.input)
			be.Err(t, err, test.expected)
			be.True(t, result == nil)
		})
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(", "expected ')'"},
		{"(hello", "expected ')'"},
		{")", "unexpected token: ')'"},
		{"hello world", "expected one datum but got 2"},
		{"", "expected one datum but got 0"},
	}

	for _, test := range tests {
		_, err := Parse(test.input)
		be.Err(t, err, test.expected)
	}
}

func TestNodeTypeHelpers(t *testing.T) {
	be.True(t, NewSymbol("x").IsAtom())
	be.True(t, NewString("x").IsAtom())
	be.True(t, NewNumber("1").IsAtom())
	be.True(t, NewEllipsis().IsAtom())
	be.True(t, !NewList().IsAtom())

	be.True(t, NewSymbol("_").IsWildcard())
	be.True(t, !NewString("_").IsWildcard())
	be.True(t, !NewSymbol("x").IsWildcard())
}
