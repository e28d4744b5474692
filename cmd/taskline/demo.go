package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/taskline/internal/config"
	"github.com/ShayCichocki/taskline/internal/pipeline"
	"github.com/ShayCichocki/taskline/pkg/taskline"
	"github.com/ShayCichocki/taskline/pkg/tasklog"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a simulated build through the live renderer",
	Long: `Runs a cargo-style build pipeline (dependency resolution, parallel
compilation, linking) and renders its progress as a live task tree on
stderr. Interrupt with Ctrl-C to see open tasks flushed as cancelled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulated(pipeline.Build(), false)
	},
}

var ciCmd = &cobra.Command{
	Use:   "ci",
	Short: "Run a simulated CI pipeline with progress bars",
	Long: `Runs a deeper pipeline (checkout, build, parallel test matrix,
deploy) using a renderer that draws a progress bar under each running
stage instead of its event lines.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulated(pipeline.CI(), true)
	},
}

// runSimulated wires a pipeline producer to a render loop on stderr.
func runSimulated(stages []pipeline.Stage, progressBars bool) error {
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

	var r taskline.Renderer[string, string] = newCLIRenderer(theme)
	if progressBars {
		r = &ciRenderer{cliRenderer: newCLIRenderer(theme)}
	}

	transport := taskline.NewChannelTransport[string, string](256)
	renderer := taskline.NewTaskRenderer(r,
		taskline.WithRetention(taskline.Rolling(cfg.Render.MaxEvents)))
	loop := taskline.NewRenderLoop(renderer, os.Stderr,
		taskline.WithInterval(cfg.Render.Interval))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Producer: the simulated pipeline, on its own goroutines.
	inst := tasklog.New[string, string](transport)
	go func() {
		pipeline.Run(ctx, inst, stages, timeScale)
		transport.Close()
	}()

	err = loop.Run(ctx, transport.Source())
	if errors.Is(err, context.Canceled) {
		// Interrupted: the closing frame already showed everything as
		// cancelled, so this is a normal exit.
		return nil
	}
	return err
}
