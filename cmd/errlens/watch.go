package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"errlens/internal/logging"
)

// watchCmd re-runs a source file on every write, explaining each fault as
// it appears. Ctrl-C stops the watch.
var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Re-run a source file on change and explain new faults",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		dbg, err := buildDebugger()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the directory, not the file: editors replace files on
		// save and a direct watch is lost after the first write.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
		}

		fmt.Printf("Watching %s (Ctrl-C to stop)\n", path)
		logging.Watch("watching %s", path)

		// Initial run so the user sees the current state immediately.
		dbg.RunFile(ctx, path)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if ev.Name != path {
						continue
					}
					if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
						continue
					}
					logging.Watch("change detected: %s", ev)
					fmt.Printf("\nChange detected, re-running %s\n", path)
					dbg.RunFile(ctx, path)
				case werr, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					logging.WatchError("watcher error: %v", werr)
				}
			}
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
