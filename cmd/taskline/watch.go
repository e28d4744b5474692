package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/taskline/internal/config"
	"github.com/ShayCichocki/taskline/pkg/taskline"
	"github.com/ShayCichocki/taskline/pkg/tasklog"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir> [dir...]",
	Short: "Render filesystem activity as a live task tree",
	Long: `Watches the given directories and renders their activity live: one
task per watched directory, one event line per filesystem change.
Stop with Ctrl-C; the closing frame flushes the watch tasks as
cancelled.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(args)
	},
}

func runWatch(dirs []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	theme, err := config.LoadTheme(cfg.Theme.File)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}
	if !cfg.Color.Enabled {
		color.NoColor = true
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	transport := taskline.NewChannelTransport[string, string](512)
	inst := tasklog.New[string, string](transport)
	// Watcher errors surface in the tree as root-level log lines.
	logger := slog.New(tasklog.NewLogHandler(inst, tasklog.Text))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// One span per watched directory; fs events attach to it by context.
	spans := make(map[string]context.Context)
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirCtx, _ := inst.Begin(ctx, "watching "+dir)
		spans[dir] = dirCtx
	}

	go func() {
		defer transport.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&fsnotify.Chmod != 0 {
					continue
				}
				inst.Event(ownerContext(spans, ev.Name), fmt.Sprintf("%s %s", opString(ev.Op), ev.Name))
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watch error", "error", werr)
			}
		}
	}()

	renderer := taskline.NewTaskRenderer[string, string](newCLIRenderer(theme),
		taskline.WithRetention(taskline.Rolling(cfg.Render.MaxEvents)))
	loop := taskline.NewRenderLoop(renderer, os.Stderr,
		taskline.WithInterval(cfg.Render.Interval))

	err = loop.Run(ctx, transport.Source())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// ownerContext picks the span context of the watched directory containing
// path, falling back to no span (root attribution).
func ownerContext(spans map[string]context.Context, path string) context.Context {
	for dir, ctx := range spans {
		if strings.HasPrefix(path, dir) {
			return ctx
		}
	}
	return context.Background()
}

func opString(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return "created"
	case op&fsnotify.Write != 0:
		return "modified"
	case op&fsnotify.Remove != 0:
		return "removed"
	case op&fsnotify.Rename != 0:
		return "renamed"
	default:
		return op.String()
	}
}
