package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/taskline/internal/config"
	"github.com/ShayCichocki/taskline/internal/pipeline"
	"github.com/ShayCichocki/taskline/internal/tui"
	"github.com/ShayCichocki/taskline/pkg/taskline"
	"github.com/ShayCichocki/taskline/pkg/tasklog"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the simulated build inside a full-screen TUI",
	Long: `Runs the same pipeline as "taskline demo", but displays it inside a
bubbletea alt-screen program instead of writing cursor-control
sequences to stderr directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	theme, err := config.LoadTheme(cfg.Theme.File)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}
	// The bubbletea view carries its own styling; strip renderer colors so
	// the in-memory screen stays plain text.
	color.NoColor = true

	transport := taskline.NewChannelTransport[string, string](256)
	renderer := taskline.NewTaskRenderer[string, string](newCLIRenderer(theme),
		taskline.WithRetention(taskline.Rolling(cfg.Render.MaxEvents)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	inst := tasklog.New[string, string](transport)
	go func() {
		pipeline.Run(ctx, inst, pipeline.Build(), timeScale)
		transport.Close()
	}()

	model := tui.New(renderer, transport.Source(), cfg.Render.Interval, "taskline build")
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	// Leave the finished tree in scrollback after the alt-screen closes.
	if m, ok := final.(tui.Model); ok {
		fmt.Fprintln(os.Stdout, m.Screen())
	}
	return nil
}
