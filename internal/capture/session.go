package capture

import (
	"io"
	"os"
)

// Stdout and Stderr are the process output channels this package
// manages. All code that wants its output captured writes through
// these bindings rather than os.Stdout/os.Stderr directly. With swaps
// them for the duration of a capture scope.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// With installs stdout and stderr as the process output channels, runs
// fn, and restores the previous bindings on every exit path: normal
// return, error return, and panic. The saved bindings are restored
// exactly, even if fn reassigned the channels itself. Errors and panics
// from fn propagate unchanged.
//
// The swap is only available in this scoped form. There is no way to
// install a channel without the paired restore.
func With(stdout, stderr io.Writer, fn func() error) error {
	prevOut, prevErr := Stdout, Stderr
	Stdout, Stderr = stdout, stderr
	defer func() {
		Stdout, Stderr = prevOut, prevErr
	}()
	return fn()
}
