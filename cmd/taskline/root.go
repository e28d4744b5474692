package main

import (
	"os"

	"github.com/spf13/cobra"
)

// timeScale multiplies the simulated work durations in the demo commands.
var timeScale float64

var rootCmd = &cobra.Command{
	Use:   "taskline",
	Short: "Live task-tree progress rendering for the terminal",
	Long: `Taskline renders a live, incrementally-updating tree of in-flight
tasks and their log events, updating in place without scrolling the
terminal. Completed work is flushed to scrollback; everything still
running is redrawn every frame.

The demo commands run simulated pipelines through the renderer:

  taskline demo     a cargo-style build with parallel compilation
  taskline ci       a deeper CI pipeline with progress bars
  taskline watch .  render filesystem activity as it happens
  taskline tui      the same build inside a full-screen TUI`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&timeScale, "scale", 1.0, "Multiplier for simulated work durations (0.2 = 5x faster)")

	// Add subcommands
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(ciCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
