package runner

import (
	"strings"
	"testing"
)

func chunkTexts(chunks []chunk) []string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.text
	}
	return texts
}

func TestSplitChunks_SimpleStatements(t *testing.T) {
	src := "x := 1\ny := 2\n"
	chunks := splitChunks(src)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunkTexts(chunks))
	}
	if chunks[0].text != "x := 1\n" || chunks[0].line != 1 {
		t.Errorf("chunk 0 = %q line %d", chunks[0].text, chunks[0].line)
	}
	if chunks[1].text != "y := 2\n" || chunks[1].line != 2 {
		t.Errorf("chunk 1 = %q line %d", chunks[1].text, chunks[1].line)
	}
}

func TestSplitChunks_MultilineBlock(t *testing.T) {
	src := "for i := 0; i < 3; i++ {\n\tsum += i\n}\n"
	chunks := splitChunks(src)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %q", len(chunks), chunkTexts(chunks))
	}
	if chunks[0].line != 1 {
		t.Errorf("expected chunk line 1, got %d", chunks[0].line)
	}
	if chunks[0].text != src {
		t.Errorf("chunk text mangled: %q", chunks[0].text)
	}
}

func TestSplitChunks_CommentsAttachToFollowingCode(t *testing.T) {
	src := "// setup\n\nx := 1\n"
	chunks := splitChunks(src)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].line != 3 {
		t.Errorf("expected first code line 3, got %d", chunks[0].line)
	}
	if chunks[0].text != src {
		t.Errorf("leading comment lines lost: %q", chunks[0].text)
	}
}

func TestSplitChunks_BracesInStringsIgnored(t *testing.T) {
	src := "s := \"{ not a block (\"\nt := `raw } text\nmore ] here`\n"
	chunks := splitChunks(src)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunkTexts(chunks))
	}
	if chunks[1].line != 2 {
		t.Errorf("expected raw-string chunk at line 2, got %d", chunks[1].line)
	}
}

func TestSplitChunks_ContinuationLines(t *testing.T) {
	src := "x := 1 +\n\t2\n"
	chunks := splitChunks(src)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for continued expression, got %d", len(chunks))
	}
}

func TestSplitChunks_IncrementEndsStatement(t *testing.T) {
	src := "x++\nx--\n"
	chunks := splitChunks(src)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %q", len(chunks), chunkTexts(chunks))
	}
}

func TestSplitChunks_BlockComment(t *testing.T) {
	src := "x := 1 /* spans\nlines */ + 2\n"
	chunks := splitChunks(src)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %q", len(chunks), chunkTexts(chunks))
	}
}

func TestSplitChunks_RoundTrip(t *testing.T) {
	src := "import \"fmt\"\n\nfunc greet(name string) {\n\tfmt.Println(\"hi\", name)\n}\n\ngreet(\"go\")\n"
	chunks := splitChunks(src)
	if got := strings.Join(chunkTexts(chunks), ""); got != src {
		t.Errorf("concatenated chunks differ from source:\n got %q\nwant %q", got, src)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[1].line != 3 || chunks[2].line != 7 {
		t.Errorf("chunk lines = %d, %d", chunks[1].line, chunks[2].line)
	}
}

func TestSplitChunks_TrailingCommentDropped(t *testing.T) {
	chunks := splitChunks("x := 1\n// trailing note\n")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
}

func TestIsPackageClause(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"package main\n", true},
		{"// a program\npackage main\n", true},
		{"package main // entry point\n", true},
		{"package main\nimport \"fmt\"\n", false},
		{"x := 1\n", false},
	}
	for _, tc := range cases {
		if got := isPackageClause(tc.text); got != tc.want {
			t.Errorf("isPackageClause(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
