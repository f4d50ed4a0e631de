// Package cells splits a script into cell segments on delimiter lines,
// the way notebook exports mark cell boundaries with a comment line.
// Segments preserve the input byte-for-byte: concatenating them
// reconstructs the original text exactly.
package cells

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPattern matches the cell markers found in scripts exported
// from notebooks: a full line of the form "// In[7]:".
const DefaultPattern = `^// In\[[0-9]+\]:$`

// Split cuts src into segments on lines matching pattern. A matching
// line starts a new segment and becomes its first line. There is always
// at least one segment; a delimiter on the very first line leaves an
// empty segment 0 before it. An empty pattern selects DefaultPattern;
// an invalid one is a configuration error reported immediately.
func Split(src, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid cell pattern %q: %w", pattern, err)
	}

	segments := []string{""}
	for _, raw := range splitAfterLines(src) {
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if re.MatchString(line) {
			segments = append(segments, "")
		}
		segments[len(segments)-1] += raw
	}
	return segments, nil
}

// splitAfterLines splits s into physical lines with their terminators
// kept, so the caller can reassemble s exactly.
func splitAfterLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
