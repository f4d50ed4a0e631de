package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"golisting/internal/runner"
)

// runCmd executes a snippet and reports what was captured
var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Execute a snippet, capturing and echoing its output",
	Long: `Executes FILE in the embedded interpreter. Output is echoed as the
snippet writes it; with --verbose every captured write is logged with
the snippet line it was attributed to.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		r := runner.New(runner.WithLogger(logger), runner.WithEcho(cfg.Run.Echo))
		stdout, stderr, err := r.Run(string(data))
		if err != nil {
			return err
		}

		for _, w := range stdout {
			logger.Debug("stdout write", zap.Int("line", w.Line), zap.String("value", w.Value))
		}
		for _, w := range stderr {
			logger.Debug("stderr write", zap.Int("line", w.Line), zap.String("value", w.Value))
		}
		logger.Info("execution complete",
			zap.String("source", path),
			zap.Int("stdout_writes", len(stdout)),
			zap.Int("stderr_writes", len(stderr)))
		return nil
	},
}
