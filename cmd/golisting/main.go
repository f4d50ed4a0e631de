package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"golisting/internal/config"
	"golisting/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Loaded in PersistentPreRunE, shared by all subcommands
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "golisting",
	Short: "golisting - annotated code listings for documentation",
	Long: `golisting executes a Go snippet and produces an annotated transcript:
the original source interleaved with the exact output each line wrote,
ready for embedding in documentation.

The snippet runs in an embedded interpreter while every write to stdout
and stderr is recorded and attributed back to the snippet line that
produced it. Single-line output is rendered as an inline comment,
larger output as a block quote, stderr always ahead of stdout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		logger, err = logging.New(verbose || cfg.Logging.Debug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default .golisting.yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
