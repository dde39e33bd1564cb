package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
)

const usage = `Lox - a small dynamically typed scripting language

Usage:
    lox <command> [arguments]
    lox <file.lox>
    lox

Commands:
    run <file>      Run a .lox script
    eval <code>     Run inline Lox code
    check <file>    Parse and resolve a .lox script without running it
    ast <file>      Print the syntax tree of a .lox script
    repl            Start an interactive prompt (the default)
    help            Show this help message

Flags:
    -v              Log each phase to stderr (run, eval, check)
    -e              Treat the argument of ast as an inline expression
    -c <file>       Read settings from this YAML file (all commands)

Examples:
    lox run examples/fib.lox
    lox eval 'print 1 + 2;'
    lox ast -e '1 + 2 * 3'
    lox check myfile.lox
`

// cli runs one command. Every command returns a process exit status.
type cli struct {
	stdout io.Writer
	stderr io.Writer
}

func main() {
	c := &cli{stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.Main(os.Args[1:]))
}

func (c *cli) Main(args []string) int {
	if len(args) == 0 {
		return c.replCommand(nil)
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "run":
		return c.runCommand(rest)
	case "eval":
		return c.evalCommand(rest)
	case "check":
		return c.checkCommand(rest)
	case "ast":
		return c.astCommand(rest)
	case "repl":
		return c.replCommand(rest)
	case "help", "-h", "--help":
		fmt.Fprint(c.stdout, usage)
		return ExitOK
	default:
		if len(args) == 1 && strings.HasSuffix(command, ".lox") {
			return c.runCommand(args)
		}
		fmt.Fprintf(c.stderr, "Unknown command: %s\n\n", command)
		fmt.Fprint(c.stderr, usage)
		return ExitUsage
	}
}

// options is the result of parsing one command's flags.
type options struct {
	verbose    bool
	expression bool
	configPath string
	args       []string
}

// parseOptions parses args for command using a getopt spec such as "vc:".
func (c *cli) parseOptions(command, spec string, args []string) (options, error) {
	// Getopts expects argv[0] to be the program name.
	argv := append([]string{"lox " + command}, args...)
	opts, optind, err := getopt.Getopts(argv, spec)
	if err != nil {
		return options{}, err
	}

	var o options
	for _, opt := range opts {
		switch opt.Option {
		case 'v':
			o.verbose = true
		case 'e':
			o.expression = true
		case 'c':
			o.configPath = opt.Value
		}
	}
	o.args = argv[optind:]
	return o, nil
}

func (c *cli) usageError(command, synopsis string, err error) int {
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
	}
	fmt.Fprintf(c.stderr, "Usage: lox %s %s\n", command, synopsis)
	return ExitUsage
}

// newRunner loads the configuration and builds a Runner from it.
func (c *cli) newRunner(o options) (*Runner, Config, bool) {
	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return nil, Config{}, false
	}
	runner := NewRunner(c.stdout, c.stderr)
	runner.Verbose = o.verbose || cfg.Verbose
	runner.Interpreter.SetMaxCallDepth(cfg.MaxCallDepth)
	if cfg.Color != nil {
		runner.SetColor(*cfg.Color)
	}
	return runner, cfg, true
}

func (c *cli) readSource(filename string) (string, bool) {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error reading file %s: %v\n", filename, err)
		return "", false
	}
	return string(source), true
}

func (c *cli) runCommand(args []string) int {
	const synopsis = "[-v] [-c config] <file>"
	o, err := c.parseOptions("run", "vc:", args)
	if err != nil || len(o.args) != 1 {
		return c.usageError("run", synopsis, err)
	}

	runner, _, ok := c.newRunner(o)
	if !ok {
		return ExitConfig
	}
	source, ok := c.readSource(o.args[0])
	if !ok {
		return ExitNoInput
	}
	runner.logf("Running %s...", o.args[0])
	runner.Run(source)
	return runner.ExitCode()
}

func (c *cli) evalCommand(args []string) int {
	const synopsis = "[-v] [-c config] <code>"
	o, err := c.parseOptions("eval", "vc:", args)
	if err != nil || len(o.args) != 1 {
		return c.usageError("eval", synopsis, err)
	}

	runner, _, ok := c.newRunner(o)
	if !ok {
		return ExitConfig
	}
	runner.logf("Evaluating: %s", o.args[0])
	runner.Run(o.args[0])
	return runner.ExitCode()
}

func (c *cli) checkCommand(args []string) int {
	const synopsis = "[-v] [-c config] <file>"
	o, err := c.parseOptions("check", "vc:", args)
	if err != nil || len(o.args) != 1 {
		return c.usageError("check", synopsis, err)
	}

	runner, _, ok := c.newRunner(o)
	if !ok {
		return ExitConfig
	}
	filename := o.args[0]
	source, ok := c.readSource(filename)
	if !ok {
		return ExitNoInput
	}
	runner.logf("Checking %s...", filename)
	runner.Check(source)
	if runner.Reporter.HadError() {
		return ExitDataErr
	}
	fmt.Fprintf(c.stdout, "%s: no errors found\n", filename)
	return ExitOK
}

func (c *cli) astCommand(args []string) int {
	const synopsis = "[-e] [-c config] <file|expression>"
	o, err := c.parseOptions("ast", "ec:", args)
	if err != nil || len(o.args) != 1 {
		return c.usageError("ast", synopsis, err)
	}

	runner, _, ok := c.newRunner(o)
	if !ok {
		return ExitConfig
	}

	if o.expression {
		tokens := Tokenize(o.args[0], runner.Reporter)
		expr := NewParser(tokens, runner.Reporter).ParseExpression()
		if runner.Reporter.HadError() {
			return ExitDataErr
		}
		fmt.Fprintln(c.stdout, ToSExpr(expr))
		return ExitOK
	}

	source, ok := c.readSource(o.args[0])
	if !ok {
		return ExitNoInput
	}
	statements := runner.ParseSource(source)
	if runner.Reporter.HadError() {
		return ExitDataErr
	}
	for _, stmt := range statements {
		fmt.Fprintln(c.stdout, ToSExpr(stmt))
	}
	return ExitOK
}

func (c *cli) replCommand(args []string) int {
	const synopsis = "[-v] [-c config]"
	o, err := c.parseOptions("repl", "vc:", args)
	if err != nil || len(o.args) != 0 {
		return c.usageError("repl", synopsis, err)
	}

	runner, cfg, ok := c.newRunner(o)
	if !ok {
		return ExitConfig
	}
	return runREPL(runner, c.stdout, cfg)
}
