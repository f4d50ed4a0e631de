package runner

import (
	"regexp"
	"strings"
)

// chunk is one top-level unit of a snippet: a run of source lines that
// forms a complete statement or declaration. Attribution during
// execution is per chunk, charged to the chunk's first code line.
type chunk struct {
	text string // verbatim source, line terminators preserved
	line int    // 1-based line of the first code token
}

// splitChunks cuts a snippet into evaluation chunks the way a REPL
// does: lines accumulate until brackets, strings and comments are
// balanced and the last code token can end a statement. Unbalanced
// trailing input is still emitted as a final chunk so the interpreter
// reports the real parse error.
func splitChunks(src string) []chunk {
	var (
		chunks []chunk
		scan   lineScanner
		text   strings.Builder
		first  int
	)
	flush := func() {
		if scan.sawCode {
			chunks = append(chunks, chunk{text: text.String(), line: first})
		}
		text.Reset()
		first = 0
		scan.sawCode = false
		scan.lastToken, scan.prevToken = 0, 0
	}
	for i, raw := range splitAfterLines(src) {
		hadCode := scan.sawCode
		scan.scanLine(strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r"))
		if scan.sawCode && !hadCode {
			first = i + 1
		}
		text.WriteString(raw)
		if scan.complete() {
			flush()
		}
	}
	flush()
	return chunks
}

// splitAfterLines splits s into physical lines, each retaining its
// terminator. A trailing line without a terminator is kept as-is.
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

// lineScanner tracks just enough lexical state across lines to decide
// where top-level chunks end: bracket depth, raw strings and block
// comments (which span lines), and the last code token (whether it can
// terminate a statement, following Go's semicolon insertion rule).
type lineScanner struct {
	depth     int
	inRaw     bool
	inComment bool
	sawCode   bool
	lastToken byte
	prevToken byte
}

func (s *lineScanner) scanLine(line string) {
	var quote byte
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case s.inComment:
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				s.inComment = false
				i++
			}
		case s.inRaw:
			if c == '`' {
				s.inRaw = false
				s.mark(c)
			}
		case quote != 0:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
				s.mark(c)
			}
		default:
			switch c {
			case '/':
				if i+1 < len(line) && line[i+1] == '/' {
					return
				}
				if i+1 < len(line) && line[i+1] == '*' {
					s.inComment = true
					i++
					continue
				}
				s.mark(c)
			case '"', '\'':
				quote = c
				s.sawCode = true
			case '`':
				s.inRaw = true
				s.sawCode = true
			case '(', '[', '{':
				s.depth++
				s.mark(c)
			case ')', ']', '}':
				s.depth--
				s.mark(c)
			case ' ', '\t':
			default:
				s.mark(c)
			}
		}
	}
}

func (s *lineScanner) mark(c byte) {
	s.prevToken = s.lastToken
	s.lastToken = c
	s.sawCode = true
}

func (s *lineScanner) complete() bool {
	if !s.sawCode || s.depth > 0 || s.inRaw || s.inComment {
		return false
	}
	return terminatesStatement(s.lastToken, s.prevToken)
}

// terminatesStatement mirrors Go's automatic semicolon insertion: a
// line can end a statement after an identifier, literal, closing
// bracket, closing quote, ++/--, or an explicit semicolon.
func terminatesStatement(last, prev byte) bool {
	switch last {
	case ')', ']', '}', '"', '\'', '`', ';':
		return true
	case '+':
		return prev == '+'
	case '-':
		return prev == '-'
	}
	return last == '_' ||
		(last >= 'a' && last <= 'z') ||
		(last >= 'A' && last <= 'Z') ||
		(last >= '0' && last <= '9') ||
		last >= 0x80
}

var packageLine = regexp.MustCompile(`^package[ \t]+\w+$`)

// isPackageClause reports whether a chunk is nothing but a package
// clause (plus blank and comment lines). Snippets pasted from a full
// program carry one; the interpreter evaluates statements in its own
// main package, so the clause is skipped rather than evaluated.
func isPackageClause(text string) bool {
	clause := false
	for _, raw := range splitAfterLines(text) {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\n"))
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}
		if clause || !packageLine.MatchString(line) {
			return false
		}
		clause = true
	}
	return clause
}
