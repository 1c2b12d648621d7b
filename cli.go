package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"

	"github.com/sbool-dev/sbool/config"
	"github.com/sbool-dev/sbool/expr"
	"github.com/sbool-dev/sbool/logging"
	"github.com/sbool-dev/sbool/sbool"
	"github.com/sbool-dev/sbool/telemetry"
	"github.com/sbool-dev/sbool/version"
)

// Exit codes are int values that represent an exit code for a particular error.
// Sub-systems may check this unique error to determine the cause of an error
// without parsing the output or help text.
const ExitCodeOK int = 0

// Errors start at 10
const (
	ExitCodeError int = 10 + iota
	ExitCodeParseFlagsError
	ExitCodeParseConfigError
	ExitCodeLoggingError
	ExitCodeTelemetryError
	ExitCodeEvalError
)

// CLI is the main entry point.
type CLI struct {
	// outStream and errStream are the standard out and standard error streams
	// to write messages from the CLI.
	outStream, errStream io.Writer

	// registry hands out the booleans bound by -flag and config flag blocks.
	registry *sbool.Registry
}

// NewCLI creates a new CLI object with the given stdout and stderr streams,
// evaluating against the process-wide registry.
func NewCLI(out, err io.Writer) *CLI {
	return &CLI{
		outStream: out,
		errStream: err,
		registry:  sbool.Default,
	}
}

// Run accepts a slice of arguments and returns an int representing the exit
// status from the command.
func (cli *CLI) Run(args []string) int {
	if err := cli.run(args); err != nil {
		if err == flag.ErrHelp {
			return ExitCodeOK
		}
		return cli.handleError(err)
	}
	return ExitCodeOK
}

func (cli *CLI) run(args []string) error {
	cfg, paths, exprs, isVersion, err := cli.ParseFlags(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			fmt.Fprintf(cli.errStream, usage, version.Name)
			return err
		}
		return NewErrExit(ExitCodeParseFlagsError, err)
	}

	// If the version was requested, return an "error" containing the version
	// information. This might sound weird, but most *nix applications actually
	// print their version on stderr anyway.
	if isVersion {
		log.Printf("[DEBUG] (cli) version flag was given, exiting now")
		fmt.Fprintf(cli.errStream, "%s\n", version.HumanVersion)
		return nil
	}

	cfg, err = loadConfigs(paths, cfg)
	if err != nil {
		return NewErrExit(ExitCodeParseConfigError, err)
	}

	if err := logging.Setup(&logging.Config{
		Name:              version.Name,
		Level:             config.StringVal(cfg.LogLevel),
		LogFilePath:       config.StringVal(cfg.LogFile.LogFilePath),
		LogRotateBytes:    config.IntVal(cfg.LogFile.LogRotateBytes),
		LogRotateDuration: config.TimeDurationVal(cfg.LogFile.LogRotateDuration),
		LogRotateMaxFiles: config.IntVal(cfg.LogFile.LogRotateMaxFiles),
		Syslog:            config.BoolVal(cfg.Syslog.Enabled),
		SyslogFacility:    config.StringVal(cfg.Syslog.Facility),
		SyslogName:        config.StringVal(cfg.Syslog.Name),
		Writer:            cli.errStream,
	}); err != nil {
		return NewErrExit(ExitCodeLoggingError, err)
	}

	// The library is silent by default; route its tracing into ours.
	cli.registry.SetLogger(log.Default())

	log.Printf("[INFO] %s", version.HumanVersion)
	log.Printf("[DEBUG] (cli) final config: %#v", cfg)

	tel, err := telemetry.Init(cfg.Telemetry)
	if err != nil {
		return NewErrExit(ExitCodeTelemetryError, errors.Wrap(err, "initializing telemetry"))
	}
	defer tel.Stop()

	brain, err := cli.bind(cfg.Flags)
	if err != nil {
		return NewErrExit(ExitCodeParseConfigError, err)
	}

	// Without expressions every binding is printed.
	if len(exprs) == 0 {
		exprs = brain.Names()
	}
	if len(exprs) == 0 {
		fmt.Fprintf(cli.errStream, usage, version.Name)
		return NewErrExitf(ExitCodeParseFlagsError, "no expressions given")
	}

	evaluator := expr.NewEvaluator(cli.registry, brain)
	evaluator.SetLogger(log.Default())

	return cli.evaluate(evaluator, exprs)
}

// evaluate evaluates every expression in order. A failing expression does
// not stop the ones after it.
func (cli *CLI) evaluate(e *expr.Evaluator, exprs []string) error {
	errs := NewErrorList("evaluating expressions")

	for _, src := range exprs {
		log.Printf("[DEBUG] (cli) evaluating %q", src)

		v, err := e.Eval(src)
		if err != nil {
			log.Printf("[ERR] (cli) %q: %s", src, err)
			errs.Append(errors.Wrapf(err, "%q", src))
			continue
		}

		fmt.Fprintf(cli.outStream, "%s => %s\n", src, expr.Format(v))
	}

	if err := errs.GetError(); err != nil {
		return NewErrExit(ExitCodeEvalError, err)
	}
	return nil
}

// bind obtains the boolean for every configured flag and remembers it under
// the flag's name.
func (cli *CLI) bind(flags *config.FlagConfigs) (*Brain, error) {
	brain := NewBrain()
	if flags == nil {
		return brain, nil
	}

	for _, f := range *flags {
		name := config.StringVal(f.Name)
		if expr.IsKeyword(name) {
			return nil, fmt.Errorf("flag %q: name is reserved", name)
		}

		truth := config.BoolVal(f.Value)
		if !f.Flavored() {
			brain.Remember(name, cli.registry.Of(truth))
			continue
		}

		key, err := f.FlavorKey()
		if err != nil {
			return nil, err
		}

		b, err := cli.registry.Obtain(truth, key)
		if err != nil {
			return nil, errors.Wrapf(err, "flag %q", name)
		}

		log.Printf("[TRACE] (cli) binding %s to %s", name, b)
		brain.Remember(name, b)
	}

	return brain, nil
}

// ParseFlags is a helper function for parsing command line flags using Go's
// Flag library. This is extracted into a helper to keep the main function
// small, but it also makes writing tests for parsing command line arguments
// much easier and cleaner. The remaining arguments are the expressions.
func (cli *CLI) ParseFlags(args []string) (*config.Config, []string, []string, bool, error) {
	var isVersion bool
	var paths []string
	c := config.DefaultConfig()

	// Parse the flags and options
	flags := flag.NewFlagSet(version.Name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}

	flags.Var((funcVar)(func(s string) error {
		paths = append(paths, s)
		return nil
	}), "config", "")

	flags.Var((*flagConfigsVar)(c.Flags), "flag", "")

	flags.Var((funcVar)(func(s string) error {
		c.LogLevel = config.String(s)
		return nil
	}), "log-level", "")

	flags.Var((funcVar)(func(s string) error {
		c.LogFile.LogFilePath = config.String(s)
		return nil
	}), "log-file", "")

	flags.Var((funcBoolVar)(func(b bool) error {
		c.Syslog.Enabled = config.Bool(b)
		return nil
	}), "syslog", "")

	flags.Var((funcVar)(func(s string) error {
		c.Syslog.Facility = config.String(s)
		return nil
	}), "syslog-facility", "")

	flags.Var((funcVar)(func(s string) error {
		c.Syslog.Name = config.String(s)
		return nil
	}), "syslog-name", "")

	flags.BoolVar(&isVersion, "v", false, "")
	flags.BoolVar(&isVersion, "version", false, "")

	// If there was a parser error, stop
	if err := flags.Parse(args); err != nil {
		return nil, nil, nil, false, err
	}

	return c, paths, flags.Args(), isVersion, nil
}

// loadConfigs loads the configuration from the list of paths. The optional
// configuration is the list of overrides to apply at the very end, taking
// precedence over any configurations that were loaded from the paths. The
// result is finalized and validated.
func loadConfigs(paths []string, o *config.Config) (*config.Config, error) {
	finalC := config.DefaultConfig()

	for _, path := range paths {
		c, err := config.FromPath(path)
		if err != nil {
			return nil, err
		}

		finalC = finalC.Merge(c)
	}

	finalC = finalC.Merge(o)
	finalC.Finalize()

	if err := finalC.Validate(); err != nil {
		return nil, err
	}
	return finalC, nil
}

// handleError outputs the given error's Error() to the errStream and returns
// the exit status carried by the error.
func (cli *CLI) handleError(err error) int {
	fmt.Fprintf(cli.errStream, "%s\n", strings.TrimSpace(err.Error()))

	if exit, ok := err.(ErrExitable); ok {
		return exit.ExitStatus()
	}
	return ExitCodeError
}

const usage = `Usage: %s [options] EXPRESSION...

  Evaluates each expression over flavored singleton booleans and prints
  "EXPRESSION => RESULT". Names used in the expressions are bound with -flag
  or with flag blocks in a configuration file. Without expressions every
  bound name is printed.

Expressions:

  a & b, a | b, a ^ b      Strict logic. Operands must be 0 or 1, equal
                           flavors stay flavored
  a and b, a or b, not a   Short-circuit logic on truthiness
  truthy(x), falsy(x)      The boolean of flavor x
  TRUTH, LIE               The unflavored pair
  ~a, not_(a)              Strict negation, keeps the flavor
  a == b, a is b           Equality and identity

Options:

  -config=<path>
      Sets the path to a configuration file or folder on disk. This can be
      specified multiple times to load multiple files or folders. If multiple
      values are given, they are merged left-to-right, and CLI arguments take
      the top-most precedence.

  -flag=<name[:flavor]=value>
      Binds name to the boolean of the given flavor and value. Without a
      flavor the name is bound to TRUTH or LIE. This can be specified
      multiple times.

  -log-level=<level>
      Set the logging level - values are "trace", "debug", "info", "warn",
      and "err"

  -log-file=<path>
      Also write logs to the given file, rotated daily

  -syslog
      Also send the logs to syslog. The syslog facility defaults to LOCAL0 and
      can be changed using a configuration file

  -syslog-facility=<facility>
      Set the facility where syslog should log - if this attribute is supplied,
      the -syslog flag must also be supplied

  -syslog-name=<name>
      Set the name of the application which will appear in syslog

  -v, -version
      Print the version of this daemon
`
