package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tevino/abool/v2"
)

// Process exit codes, following sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitNoInput  = 66
	ExitSoftware = 70
	ExitConfig   = 78
)

// Runtime error kinds. A *RuntimeError unwraps to exactly one of these.
var (
	ErrOperandType       = errors.New("operand type mismatch")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrNotCallable       = errors.New("value is not callable")
	ErrArity             = errors.New("wrong number of arguments")
	ErrStackOverflow     = errors.New("call depth exceeded")
	ErrNativeResult      = errors.New("native returned a non-Lox value")
)

// RuntimeError is raised by the interpreter and aborts the remaining
// top-level statements of one Interpret call.
type RuntimeError struct {
	Token   Token
	Kind    error
	Message string
}

func NewRuntimeError(tok Token, kind error, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Token:   tok,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func (e *RuntimeError) Unwrap() error {
	return e.Kind
}

// Diagnostic is a syntax or static error found before execution.
type Diagnostic struct {
	Line    int
	Where   string // "", " at end" or " at 'lexeme'"
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Reporter is the error sink shared by the lexer, parser, resolver and
// interpreter. Its flags decide the driver's exit status; the REPL resets
// them between entries.
type Reporter struct {
	out             io.Writer
	errorColor      *color.Color
	hadError        *abool.AtomicBool
	hadRuntimeError *abool.AtomicBool
	diagnostics     []Diagnostic
	runtimeErrors   []*RuntimeError
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:             out,
		errorColor:      color.New(color.FgRed),
		hadError:        abool.New(),
		hadRuntimeError: abool.New(),
	}
}

// SetColor forces colored output on or off, overriding terminal detection.
func (r *Reporter) SetColor(enabled bool) {
	if enabled {
		r.errorColor.EnableColor()
	} else {
		r.errorColor.DisableColor()
	}
}

// Error reports a diagnostic that has a line but no token, such as a
// lexer error.
func (r *Reporter) Error(line int, message string) {
	r.report(Diagnostic{Line: line, Message: message})
}

// ErrorAt reports a diagnostic located at tok.
func (r *Reporter) ErrorAt(tok Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == EOF {
		where = " at end"
	}
	r.report(Diagnostic{Line: tok.Line, Where: where, Message: message})
}

func (r *Reporter) report(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
	r.hadError.Set()
	if r.out != nil {
		r.errorColor.Fprintln(r.out, d.String())
	}
}

// RuntimeError reports an error that stopped execution.
func (r *Reporter) RuntimeError(err *RuntimeError) {
	r.runtimeErrors = append(r.runtimeErrors, err)
	r.hadRuntimeError.Set()
	if r.out != nil {
		r.errorColor.Fprintln(r.out, err.Error())
	}
}

func (r *Reporter) HadError() bool {
	return r.hadError.IsSet()
}

func (r *Reporter) HadRuntimeError() bool {
	return r.hadRuntimeError.IsSet()
}

func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

func (r *Reporter) RuntimeErrors() []*RuntimeError {
	return r.runtimeErrors
}

// Reset clears all flags and collected errors.
func (r *Reporter) Reset() {
	r.hadError.UnSet()
	r.hadRuntimeError.UnSet()
	r.diagnostics = nil
	r.runtimeErrors = nil
}

// String returns every collected error, one per line, without color.
func (r *Reporter) String() string {
	var lines []string
	for _, d := range r.diagnostics {
		lines = append(lines, d.String())
	}
	for _, err := range r.runtimeErrors {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}
