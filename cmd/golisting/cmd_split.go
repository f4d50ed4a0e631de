package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"golisting/internal/cells"
)

var (
	splitPattern string
	splitDir     string
)

// splitCmd splits a multi-cell script into one file per cell
var splitCmd = &cobra.Command{
	Use:   "split FILE",
	Short: "Split a multi-cell script into one file per cell",
	Long: `Splits FILE into segments on cell delimiter lines (as written by
notebook exports) and writes each non-empty segment to its own file
next to the original, named <base>_cellNN<ext>.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		pattern := splitPattern
		if pattern == "" {
			pattern = cfg.Cells.Pattern
		}
		segments, err := cells.Split(string(data), pattern)
		if err != nil {
			return err
		}

		dir := splitDir
		if dir == "" {
			dir = filepath.Dir(path)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}

		ext := filepath.Ext(path)
		base := strings.TrimSuffix(filepath.Base(path), ext)
		written := 0
		for i, segment := range segments {
			if segment == "" {
				continue
			}
			out := filepath.Join(dir, fmt.Sprintf("%s_cell%02d%s", base, i, ext))
			if err := os.WriteFile(out, []byte(segment), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			logger.Debug("cell written", zap.String("file", out), zap.Int("bytes", len(segment)))
			written++
		}
		logger.Info("script split",
			zap.String("source", path),
			zap.Int("segments", len(segments)),
			zap.Int("files", written))
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVar(&splitPattern, "pattern", "", "cell delimiter pattern (default notebook-export marker)")
	splitCmd.Flags().StringVarP(&splitDir, "dir", "d", "", "directory for cell files (default alongside FILE)")
}
