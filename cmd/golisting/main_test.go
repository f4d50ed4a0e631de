package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir stands in for t.Chdir, which needs Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func execCLI(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCLI_Split(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	src := "// In[1]:\na := 1\n_ = a\n// In[2]:\nb := 2\n_ = b\n"
	path := filepath.Join(dir, "notebook.go")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	outDir := filepath.Join(dir, "cells")
	require.NoError(t, execCLI(t, "split", path, "--dir", outDir))

	cell1, err := os.ReadFile(filepath.Join(outDir, "notebook_cell01.go"))
	require.NoError(t, err)
	assert.Equal(t, "// In[1]:\na := 1\n_ = a\n", string(cell1))

	cell2, err := os.ReadFile(filepath.Join(outDir, "notebook_cell02.go"))
	require.NoError(t, err)
	assert.Equal(t, "// In[2]:\nb := 2\n_ = b\n", string(cell2))
}

func TestCLI_Annotate(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	src := "import \"fmt\"\nfmt.Println(\"hi\")\n"
	path := filepath.Join(dir, "snippet.go")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	out := filepath.Join(dir, "annotated.go")
	require.NoError(t, execCLI(t, "annotate", path, "--no-echo", "-o", out))

	annotated, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(annotated), "fmt.Println(\"hi\")\n// hi\n")
}

func TestCLI_AnnotateFailingSnippet(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "broken.go")
	require.NoError(t, os.WriteFile(path, []byte("notDefined()\n"), 0644))

	err := execCLI(t, "annotate", path, "--no-echo")
	require.Error(t, err)
}

func TestCLI_Run(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	// Echo off via config so captured output stays out of the test log.
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".golisting.yaml"),
		[]byte("run:\n  echo: false\n"), 0644))

	path := filepath.Join(dir, "snippet.go")
	require.NoError(t, os.WriteFile(path, []byte("import \"fmt\"\nfmt.Println(\"ok\")\n"), 0644))

	require.NoError(t, execCLI(t, "run", path))
}

func TestDebouncer_FiresOnTrailingEdge(t *testing.T) {
	d := &debouncer{quiet: 100 * time.Millisecond}
	base := time.Now()

	// A burst of saves: each event re-arms the quiet period.
	d.note(base)
	assert.False(t, d.ready(base.Add(50*time.Millisecond)))
	d.note(base.Add(60 * time.Millisecond))
	assert.False(t, d.ready(base.Add(120*time.Millisecond)),
		"must not fire while the burst is still settling")

	// The last save of the burst is the one that wins.
	assert.True(t, d.ready(base.Add(170*time.Millisecond)))

	// Fires once per burst.
	assert.False(t, d.ready(base.Add(300*time.Millisecond)))

	// A later save re-arms it.
	d.note(base.Add(400 * time.Millisecond))
	assert.False(t, d.ready(base.Add(450*time.Millisecond)))
	assert.True(t, d.ready(base.Add(510*time.Millisecond)))
}

func TestCLI_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	err := execCLI(t, "annotate", "does_not_exist.go")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "does_not_exist.go") ||
		os.IsNotExist(err))
}
