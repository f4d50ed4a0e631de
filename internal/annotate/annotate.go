// Package annotate merges a snippet with its captured write histories
// into an annotated listing: each source line followed by the output it
// produced, rendered as an inline comment or a block quote depending on
// size.
package annotate

import (
	"strings"

	"golisting/internal/capture"
)

// Formatting tokens. One captured line renders as a comment, two or
// more render between block delimiters, each delimiter on its own line.
const (
	commentPrefix = "// "
	blockOpen     = "/*\n"
	blockClose    = "*/\n"
)

// Annotate returns src with the captured output of each line inserted
// directly after it, stderr before stdout. Lines that wrote nothing are
// emitted verbatim; a snippet that wrote nothing at all round-trips to
// the source, normalized to one trailing newline per line.
func Annotate(src string, stdout, stderr []capture.Write) string {
	outByLine := groupByLine(stdout)
	errByLine := groupByLine(stderr)

	var b strings.Builder
	for i, line := range splitLines(src) {
		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(formatBlock(errByLine[i+1]))
		b.WriteString(formatBlock(outByLine[i+1]))
	}
	return b.String()
}

// groupByLine collapses a write history into per-line groups, keeping
// the chronological order of writes within each line. Lines with no
// writes are simply absent.
func groupByLine(history []capture.Write) map[int][]string {
	byLine := make(map[int][]string)
	for _, w := range history {
		byLine[w.Line] = append(byLine[w.Line], w.Value)
	}
	return byLine
}

// formatBlock renders the captured fragments of one source line. The
// fragments are concatenated with no separator and split on line
// boundaries: zero lines produce nothing, one line becomes a single
// comment, two or more are wrapped in block delimiters with the text
// preserved verbatim between them.
func formatBlock(parts []string) string {
	full := strings.Join(parts, "")
	lines := splitLines(full)
	switch len(lines) {
	case 0:
		return ""
	case 1:
		return commentPrefix + lines[0] + "\n"
	}
	if !strings.HasSuffix(full, "\n") {
		full += "\n"
	}
	return blockOpen + full + blockClose
}

// splitLines splits on line terminators, tolerating a missing final
// one: "a\nb" and "a\nb\n" both yield two lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
