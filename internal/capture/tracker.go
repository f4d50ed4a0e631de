// Package capture records everything written to the process output
// channels while a snippet runs, tagging each write with the source line
// that produced it. It is the capture layer underneath the annotator:
// a Tracker wraps an output channel, a Resolver decides which source
// location a write is charged to, and With scopes the channel swap so
// the original bindings always come back.
//
// The package assumes at most one capture scope is active per process.
// Nested or concurrent scopes are not supported.
package capture

import "io"

// Write is one recorded write: the exact value sent to an output
// channel plus the source location it was attributed to. Line is
// 1-based and refers to a line of the executed snippet, never a line of
// this program.
type Write struct {
	Value string
	File  string
	Line  int
}

// Tracker is a write-only sink that records attributed writes. It
// implements io.Writer so it can stand in for an output channel
// directly. Every write is resolved to a source location via the
// configured Resolver; writes that cannot be resolved are forwarded but
// not recorded.
type Tracker struct {
	resolver    Resolver
	passthrough io.Writer
	history     []Write
}

// NewTracker creates a tracker that resolves call sites with r and
// forwards raw bytes to passthrough. A nil resolver defaults to
// FrameDepth(0) (the immediate caller of Write). A nil passthrough
// means writes are recorded only, not forwarded.
func NewTracker(r Resolver, passthrough io.Writer) *Tracker {
	if r == nil {
		r = FrameDepth(0)
	}
	return &Tracker{resolver: r, passthrough: passthrough}
}

// Write records p against the resolved caller location and forwards it
// to the passthrough sink. Resolution failure is not an error: the
// attribution is dropped, the bytes still reach the passthrough, and
// execution continues. The only error Write can return is one raised by
// the passthrough sink itself.
func (t *Tracker) Write(p []byte) (int, error) {
	if file, line, ok := t.resolver.Resolve(); ok {
		t.history = append(t.history, Write{Value: string(p), File: file, Line: line})
	}
	if t.passthrough != nil {
		return t.passthrough.Write(p)
	}
	return len(p), nil
}

// History returns the attributed writes recorded so far, in the order
// they occurred. The returned slice is the tracker's own backing store;
// callers should treat it as read-only.
func (t *Tracker) History() []Write {
	return t.history
}
