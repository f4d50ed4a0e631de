// Package runner executes a source snippet with the yaegi interpreter
// while the capture layer records everything the snippet writes to
// stdout and stderr, attributed to snippet line numbers.
//
// Go has no reflective view into interpreted call frames, so writes
// cannot be attributed by stack inspection the way native writes can.
// Instead the runner evaluates the snippet one top-level chunk at a
// time and carries an explicit cursor: before each chunk is evaluated
// the cursor is set to the chunk's first line, and the trackers resolve
// every write against it. A write made from deeper inside a call is
// charged to the top-level line that triggered it.
package runner

import (
	"fmt"
	"io"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"

	"golisting/internal/capture"
)

// SourceName is the synthetic file identifier the interpreter assigns
// to evaluated source. Attributed writes carry it as their File.
const SourceName = "_.go"

// Runner executes snippets and returns their attributed write
// histories. The zero-value configuration echoes captured output to the
// real output channels, the way a terminal session would show it.
type Runner struct {
	logger *zap.Logger
	echo   bool
	source string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for execution diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithEcho controls whether captured output is also forwarded to the
// real output channels. Defaults to true.
func WithEcho(echo bool) Option {
	return func(r *Runner) { r.echo = echo }
}

// WithSourceName overrides the file identifier recorded on attributed
// writes.
func WithSourceName(name string) Option {
	return func(r *Runner) { r.source = name }
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger: zap.NewNop(),
		echo:   true,
		source: SourceName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// cursor is the explicit line context fed to the trackers. The runner
// advances it chunk by chunk; Resolve fails while no chunk is active.
type cursor struct {
	file string
	line int
}

func (c *cursor) Resolve() (string, int, bool) {
	if c.line <= 0 {
		return "", 0, false
	}
	return c.file, c.line, true
}

// Run executes src as a program and returns the stdout and stderr write
// histories, chronologically ordered. Output is captured through a
// scoped redirection of the process output channels; the channels are
// restored before Run returns on every path.
//
// Any failure raised by the snippet itself (parse error, runtime panic,
// explicit os.Exit aside) aborts execution and is returned unmodified.
// Most such failures should abort documentation generation rather than
// be annotated, so there is no recovery here.
//
// A snippet declaring func main has it run, exactly once, when the
// declaration is evaluated: the interpreter treats a main declaration
// in its main package as the program entry point. Its writes attribute
// to the declaration's first line. A bare package clause is tolerated
// and skipped.
func (r *Runner) Run(src string) (stdout, stderr []capture.Write, err error) {
	cur := &cursor{file: r.source}

	var outSink, errSink io.Writer
	if r.echo {
		outSink, errSink = capture.Stdout, capture.Stderr
	}
	outT := capture.NewTracker(cur, outSink)
	errT := capture.NewTracker(cur, errSink)

	i := interp.New(interp.Options{Stdout: outT, Stderr: errT})
	if uerr := i.Use(stdlib.Symbols); uerr != nil {
		return nil, nil, fmt.Errorf("load stdlib symbols: %w", uerr)
	}
	// The options above remap fmt's default-stream printers, but the
	// os.Stdout/os.Stderr symbols still point at the real files.
	// Rebind them so writes addressed through os reach the trackers.
	if uerr := i.Use(interp.Exports{
		"os/os": {
			"Stdout": reflect.ValueOf(outT),
			"Stderr": reflect.ValueOf(errT),
		},
	}); uerr != nil {
		return nil, nil, fmt.Errorf("rebind output symbols: %w", uerr)
	}

	chunks := splitChunks(src)

	err = capture.With(outT, errT, func() error {
		for _, c := range chunks {
			if isPackageClause(c.text) {
				continue
			}
			cur.line = c.line
			r.logger.Debug("evaluating chunk",
				zap.Int("line", c.line),
				zap.Int("bytes", len(c.text)))
			if _, cerr := i.Eval(c.text); cerr != nil {
				return cerr
			}
		}
		return nil
	})
	cur.line = 0

	if err != nil {
		return outT.History(), errT.History(), err
	}
	return outT.History(), errT.History(), nil
}
