package capture

import (
	"runtime"
	"strings"
)

// Resolver locates the logical origin of a write. Implementations
// report the source file and 1-based line a write should be charged to,
// or ok=false when no suitable origin exists. Resolution failure is an
// expected outcome, not an error.
type Resolver interface {
	Resolve() (file string, line int, ok bool)
}

// maxStackDepth bounds the stack walk for both resolver kinds.
const maxStackDepth = 64

// isMachinery reports whether a frame belongs to the tracker/resolver
// call path itself. Only these exact functions are excluded from
// frame-depth resolution; any other function in this package is a
// legitimate caller and must count as a frame.
func isMachinery(fn string) bool {
	switch fn {
	case "golisting/internal/capture.frameDepth.Resolve",
		"golisting/internal/capture.(*Tracker).Write":
		return true
	}
	return false
}

// FrameDepth returns a Resolver that targets the stack frame k levels
// above the immediate caller of Tracker.Write, not counting frames that
// belong to this package. FrameDepth(0) is the caller of Write itself.
// A stack too shallow for k resolves as a failure.
func FrameDepth(k int) Resolver {
	return frameDepth(k)
}

type frameDepth int

func (d frameDepth) Resolve() (string, int, bool) {
	frames := callStack()
	remaining := int(d)
	for {
		f, more := frames.Next()
		if f.File == "" {
			return "", 0, false
		}
		if !isMachinery(f.Function) {
			if remaining == 0 {
				return f.File, f.Line, true
			}
			remaining--
		}
		if !more {
			return "", 0, false
		}
	}
}

// FrameFile returns a Resolver that walks the call stack outward until
// it finds a frame whose source file matches the given identifier,
// either exactly or as a trailing path element. No matching frame
// resolves as a failure.
func FrameFile(file string) Resolver {
	return frameFile(file)
}

type frameFile string

func (ff frameFile) Resolve() (string, int, bool) {
	frames := callStack()
	for {
		f, more := frames.Next()
		if ff.match(f.File) {
			return f.File, f.Line, true
		}
		if !more {
			return "", 0, false
		}
	}
}

func (ff frameFile) match(file string) bool {
	if file == "" {
		return false
	}
	target := string(ff)
	return file == target || strings.HasSuffix(file, "/"+target)
}

func callStack() *runtime.Frames {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	return runtime.CallersFrames(pcs[:n])
}
