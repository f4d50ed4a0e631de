package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchOut string

// watchCmd re-annotates a listing whenever its source changes
var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-annotate a listing whenever its source file changes",
	Long: `Watches FILE and regenerates the annotated listing on every change,
for keeping documentation output current while editing a snippet.
A snippet that fails to execute is logged and skipped; watching
continues. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "annotated output file (default <base>_annotated<ext>)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	out := watchOut
	if out == "" {
		ext := filepath.Ext(path)
		out = strings.TrimSuffix(path, ext) + "_annotated" + ext
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors typically replace the
	// file on save, which drops a direct file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func() {
		if err := annotateToFile(path, out); err != nil {
			logger.Warn("annotation failed, waiting for next change",
				zap.String("source", path), zap.Error(err))
			return
		}
		logger.Info("listing regenerated", zap.String("out", out))
	}

	// Initial generation before the first change.
	regenerate()

	deb := &debouncer{quiet: quietPeriod}
	ticker := time.NewTicker(quietPeriod / 4)
	defer ticker.Stop()

	logger.Info("watching", zap.String("source", path))
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			deb.note(time.Now())
		case now := <-ticker.C:
			if deb.ready(now) {
				regenerate()
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(werr))
		}
	}
}

// quietPeriod is how long the source must stay unchanged before the
// listing is regenerated.
const quietPeriod = 500 * time.Millisecond

// debouncer coalesces a burst of change events into one regeneration
// on the trailing edge: every event re-arms it, and it fires once the
// quiet period has elapsed with no further events. Waiting out the
// burst also avoids reading a file an editor is still replacing.
type debouncer struct {
	quiet   time.Duration
	pending time.Time
}

func (d *debouncer) note(now time.Time) {
	d.pending = now
}

func (d *debouncer) ready(now time.Time) bool {
	if d.pending.IsZero() || now.Sub(d.pending) < d.quiet {
		return false
	}
	d.pending = time.Time{}
	return true
}

// annotateToFile runs the annotate pipeline for one source file and
// writes the result.
func annotateToFile(path, out string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	annotated, err := annotateSource(string(data))
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, []byte(annotated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
