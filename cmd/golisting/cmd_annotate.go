package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"golisting/internal/annotate"
	"golisting/internal/cells"
	"golisting/internal/runner"
)

var (
	annotateOut     string
	annotateNoEcho  bool
	annotateByCells bool
)

// annotateCmd executes a snippet and emits the annotated listing
var annotateCmd = &cobra.Command{
	Use:   "annotate FILE",
	Short: "Execute a snippet and interleave its output into the source",
	Long: `Executes FILE and writes an annotated version of it: each source line
followed by the output it produced, stderr before stdout. With --cells
the file is first split on cell markers and every cell is executed as
an independent program.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateOut, "out", "o", "", "write annotated listing to this file (default stdout)")
	annotateCmd.Flags().BoolVar(&annotateNoEcho, "no-echo", false, "do not echo captured output while running")
	annotateCmd.Flags().BoolVar(&annotateByCells, "cells", false, "annotate each cell segment separately")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	src := string(data)

	var annotated string
	if annotateByCells {
		segments, serr := cells.Split(src, cfg.Cells.Pattern)
		if serr != nil {
			return serr
		}
		var parts []string
		for i, segment := range segments {
			if strings.TrimSpace(segment) == "" {
				parts = append(parts, segment)
				continue
			}
			text, aerr := annotateSource(segment)
			if aerr != nil {
				return fmt.Errorf("cell %d: %w", i, aerr)
			}
			parts = append(parts, text)
		}
		annotated = strings.Join(parts, "")
	} else {
		annotated, err = annotateSource(src)
		if err != nil {
			return err
		}
	}

	if annotateOut == "" {
		fmt.Fprint(os.Stdout, annotated)
		return nil
	}
	if err := os.WriteFile(annotateOut, []byte(annotated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", annotateOut, err)
	}
	logger.Info("annotated listing written",
		zap.String("source", path),
		zap.String("out", annotateOut))
	return nil
}

// annotateSource runs one source text and merges the capture back into
// it. Snippet failures abort annotation; a listing that crashed mid-way
// is not worth embedding.
func annotateSource(src string) (string, error) {
	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithEcho(cfg.Run.Echo && !annotateNoEcho),
	}
	if cfg.Run.SourceName != "" {
		opts = append(opts, runner.WithSourceName(cfg.Run.SourceName))
	}
	r := runner.New(opts...)
	stdout, stderr, err := r.Run(src)
	if err != nil {
		return "", err
	}
	return annotate.Annotate(src, stdout, stderr), nil
}
