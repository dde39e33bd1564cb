package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Runner runs source text through every phase. Globals persist across
// calls, so one Runner serves a whole REPL session.
type Runner struct {
	Reporter    *Reporter
	Interpreter *Interpreter
	Verbose     bool

	stderr io.Writer
	logger *color.Color
}

func NewRunner(stdout, stderr io.Writer) *Runner {
	reporter := NewReporter(stderr)
	return &Runner{
		Reporter:    reporter,
		Interpreter: NewInterpreter(stdout, reporter),
		stderr:      stderr,
		logger:      color.New(color.Faint),
	}
}

// SetColor turns colored diagnostics on or off.
func (r *Runner) SetColor(enabled bool) {
	r.Reporter.SetColor(enabled)
	if enabled {
		r.logger.EnableColor()
	} else {
		r.logger.DisableColor()
	}
}

func (r *Runner) logf(format string, args ...any) {
	if r.Verbose {
		r.logger.Fprintf(r.stderr, format+"\n", args...)
	}
}

// ParseSource lexes and parses source. Syntax errors go to the reporter.
func (r *Runner) ParseSource(source string) []*ASTNode {
	r.logf("Parsing...")
	tokens := Tokenize(source, r.Reporter)
	statements := NewParser(tokens, r.Reporter).Parse()
	if r.Verbose && !r.Reporter.HadError() {
		r.logf("AST: %s", ProgramToSExpr(statements))
	}
	return statements
}

// Check parses and resolves source without running it. It returns nil
// when any error was reported.
func (r *Runner) Check(source string) ([]*ASTNode, Locals) {
	statements := r.ParseSource(source)
	if r.Reporter.HadError() {
		return nil, nil
	}

	r.logf("Resolving...")
	locals := NewResolver(r.Reporter).Resolve(statements)
	if r.Reporter.HadError() {
		return nil, nil
	}
	r.logf("Resolved %d local references", len(locals))
	return statements, locals
}

// Run executes source. Nothing runs if it has syntax or static errors.
func (r *Runner) Run(source string) {
	statements, locals := r.Check(source)
	if statements == nil {
		return
	}
	r.logf("Executing...")
	r.Interpreter.Resolve(locals)
	r.Interpreter.Interpret(statements)
}

// ExitCode maps the reporter's state to a process exit status.
func (r *Runner) ExitCode() int {
	switch {
	case r.Reporter.HadError():
		return ExitDataErr
	case r.Reporter.HadRuntimeError():
		return ExitSoftware
	default:
		return ExitOK
	}
}

// EvalExpression parses and evaluates one expression in the global scope.
func (r *Runner) EvalExpression(source string) (Value, error) {
	tokens := Tokenize(source, r.Reporter)
	expr := NewParser(tokens, r.Reporter).ParseExpression()
	if expr == nil || r.Reporter.HadError() {
		return nil, fmt.Errorf("syntax error:\n%s", r.Reporter.String())
	}
	r.Interpreter.Resolve(NewResolver(r.Reporter).Resolve([]*ASTNode{
		{Kind: NodeExprStmt, Token: expr.Token, Children: []*ASTNode{expr}},
	}))
	return r.Interpreter.Evaluate(expr)
}
