package main

import (
	"bytes"
	"testing"
)

// runProgram runs source through a fresh Runner and returns what it
// printed to stdout and stderr.
func runProgram(t *testing.T, source string) (stdout, stderr string, runner *Runner) {
	t.Helper()
	var out, errOut bytes.Buffer
	runner = NewRunner(&out, &errOut)
	runner.SetColor(false)
	runner.Run(source)
	return out.String(), errOut.String(), runner
}

// parseProgram parses source and fails the test on a syntax error.
func parseProgram(t *testing.T, source string) []*ASTNode {
	t.Helper()
	reporter := NewReporter(nil)
	statements := NewParser(Tokenize(source, reporter), reporter).Parse()
	if reporter.HadError() {
		t.Fatalf("unexpected syntax error:\n%s", reporter.String())
	}
	return statements
}

// parseExpr parses a single expression and fails the test on a syntax
// error.
func parseExpr(t *testing.T, source string) *ASTNode {
	t.Helper()
	reporter := NewReporter(nil)
	expr := NewParser(Tokenize(source, reporter), reporter).ParseExpression()
	if reporter.HadError() {
		t.Fatalf("unexpected syntax error:\n%s", reporter.String())
	}
	return expr
}
