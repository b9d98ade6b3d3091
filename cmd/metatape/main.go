// Command metatape loads a Metatape source file, links it, and runs it
// against stdin/stdout to completion, until a SubroutineNotFound or
// InstructionPointerOutOfBounds error, or until -steps instructions have
// run. Halt does not stop the run; execution resumes past it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"golang.org/x/term"

	"metatape/internal/ast"
	"metatape/internal/engine"
	interr "metatape/internal/errors"
	"metatape/internal/linker"
	"metatape/internal/parser"
)

var (
	verbose = flag.Bool("v", false, "print a trace line for every executed instruction")
	steps   = flag.Uint64("steps", 0, "stop after N instructions (0 = run to completion)")
	seed    = flag.Int64("seed", 1, "seed for the Random instruction's coin flips")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-v] [-steps N] [-seed N] <file.mt>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		glog.Fatalf("reading %s: %v", path, err)
	}

	prog, perrs := parser.ParseSource(path, string(source))
	if len(perrs) > 0 {
		reportParseErrors(path, string(source), perrs)
		os.Exit(1)
	}

	lerrs := linker.Link(prog)
	if len(lerrs) > 0 {
		reportLinkErrors(path, string(source), lerrs)
		os.Exit(1)
	}

	restore := setupRawStdin()
	defer restore()

	rt := engine.New(prog, bufio.NewReader(os.Stdin), newStdoutSink(), *seed)
	run(rt, *steps, *verbose)
}

// run steps rt until it stops on its own, a bug-class RuntimeError
// surfaces, or max (if nonzero) instructions have executed. Halt is
// silently resumed, matching spec.md's "the host may call Step again"
// contract.
func run(rt *engine.Runtime, max uint64, trace bool) {
	for n := uint64(0); max == 0 || n < max; n++ {
		info, err := rt.Step()
		if trace && info != nil {
			traceStep(n, info)
		}
		if err == nil {
			continue
		}

		rerr, ok := err.(*engine.RuntimeError)
		if !ok {
			glog.Fatalf("unexpected runtime error: %v", err)
		}
		switch rerr.Kind {
		case engine.Halt:
			continue
		case engine.EndOfProgram:
			return
		default:
			if info != nil {
				glog.Fatalf("%v at %s", rerr, info.Position)
			}
			glog.Fatalf("%v", rerr)
		}
	}
}

func traceStep(n uint64, info *engine.StepInfo) {
	if info.Bit == nil {
		glog.Infof("step %d: %s", n, info.Position)
		return
	}
	glog.Infof("step %d: %s bit=%t", n, info.Position, *info.Bit)
}

// stdoutSink adapts os.Stdout to engine.ByteSink, which has no error
// return of its own — a failing write to stdout isn't something a
// running Metatape program can observe or recover from either way.
type stdoutSink struct {
	w *bufio.Writer
}

func newStdoutSink() *stdoutSink {
	return &stdoutSink{w: bufio.NewWriter(os.Stdout)}
}

func (s *stdoutSink) WriteByte(b byte) {
	_ = s.w.WriteByte(b)
	_ = s.w.Flush()
}

// setupRawStdin puts stdin into raw mode when it's an interactive
// terminal, so Input reads bytes as they're typed rather than waiting
// on a newline-buffered line. Piped or redirected stdin is untouched.
func setupRawStdin() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		glog.Infof("could not set raw terminal mode: %v", err)
		return func() {}
	}
	return func() {
		_ = term.Restore(fd, state)
	}
}

// diagnostic is the common shape of a parser.ParseError and a
// linker.LinkError, enough to drive interr.ErrorReporter.
type diagnostic struct {
	Code     string
	Message  string
	Position ast.Position
}

func reportParseErrors(path, source string, errs []*parser.ParseError) {
	diags := make([]diagnostic, len(errs))
	for i, e := range errs {
		diags[i] = diagnostic{Code: e.Code, Message: e.Message, Position: e.Position}
	}
	reportDiagnostics(path, source, diags)
}

func reportLinkErrors(path, source string, errs []*linker.LinkError) {
	diags := make([]diagnostic, len(errs))
	for i, e := range errs {
		diags[i] = diagnostic{Code: e.Code, Message: e.Message, Position: e.Position}
	}
	reportDiagnostics(path, source, diags)
}

func reportDiagnostics(path, source string, diags []diagnostic) {
	reporter := interr.NewErrorReporter(path, source)
	for _, d := range diags {
		fmt.Fprint(os.Stderr, reporter.FormatError(interr.CompilerError{
			Level:    interr.Error,
			Code:     d.Code,
			Message:  d.Message,
			Position: d.Position,
			Length:   1,
		}))
	}
}
