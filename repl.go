package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"
)

const replHelp = `Enter statements or a bare expression to print its value.
Unclosed parentheses, braces and strings continue on the next line.

Commands:
    :help    Show this message
    :env     List global variables
    :quit    Leave the REPL (Ctrl+D also works)
`

// lineReader is the part of *liner.State the REPL needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

type repl struct {
	runner *Runner
	in     lineReader
	out    io.Writer
	config Config
	// history is nil when input is not a terminal.
	history *liner.State
}

// runREPL starts an interactive session on the terminal.
func runREPL(runner *Runner, stdout io.Writer, cfg Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			ln.Close()
			os.Exit(130)
		}
	}()

	fmt.Fprintln(stdout, "Lox REPL. Type :help for help.")
	r := &repl{runner: runner, in: ln, out: stdout, config: cfg, history: ln}
	r.loop()
	return ExitOK
}

func (r *repl) loop() {
	for {
		code, ok := r.read()
		if !ok {
			fmt.Fprintln(r.out)
			return
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if r.command(trimmed) {
				return
			}
			continue
		}

		r.eval(code)
		if r.history != nil {
			r.history.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		}
	}
}

// read collects lines until the input is complete. It returns false on
// end of input.
func (r *repl) read() (string, bool) {
	var b strings.Builder
	for {
		prompt := r.config.Prompt
		if b.Len() > 0 {
			prompt = r.config.ContinuationPrompt
		}
		line, err := r.in.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !isIncomplete(b.String()) {
			return b.String(), true
		}
	}
}

// eval runs one entry. A lone expression without a trailing semicolon has
// its value printed.
func (r *repl) eval(code string) {
	defer r.runner.Reporter.Reset()

	if isExpression(code) {
		value, err := r.runner.EvalExpression(code)
		if err != nil {
			// Syntax errors were already reported.
			if !r.runner.Reporter.HadError() {
				r.runner.Interpreter.reportError(err)
			}
			return
		}
		fmt.Fprintln(r.out, Stringify(value))
		return
	}
	r.runner.Run(code)
}

// command handles a line starting with ':'. It returns true to leave the
// REPL.
func (r *repl) command(line string) bool {
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ":quit", ":exit":
		return true
	case ":help":
		fmt.Fprint(r.out, replHelp)
	case ":env":
		globals := r.runner.Interpreter.Globals()
		for _, name := range globals.Names() {
			value, _ := globals.Get(Token{Type: IDENT, Lexeme: name})
			fmt.Fprintf(r.out, "%s: %s = %s\n", name, typeName(value), Stringify(value))
		}
	default:
		fmt.Fprintln(r.out, "Unknown command. Type :help for help.")
	}
	return false
}

// isIncomplete reports whether src has an unterminated string or more
// opening than closing parentheses or braces.
func isIncomplete(src string) bool {
	reporter := NewReporter(nil)
	depth := 0
	for _, tok := range Tokenize(src, reporter) {
		switch tok.Type {
		case LPAREN, LBRACE:
			depth++
		case RPAREN, RBRACE:
			depth--
		}
	}
	for _, d := range reporter.Diagnostics() {
		if d.Message == "Unterminated string." {
			return true
		}
	}
	return depth > 0
}

// isExpression reports whether src parses, silently, as one expression.
func isExpression(src string) bool {
	reporter := NewReporter(nil)
	tokens := Tokenize(src, reporter)
	if reporter.HadError() {
		return false
	}
	expr := NewParser(tokens, reporter).ParseExpression()
	return expr != nil && !reporter.HadError()
}
