package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/taskline/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration",
	Long: `Displays the configuration after merging defaults, the user config
(~/.config/taskline/config.yaml), the project config (.taskline.yaml),
and TASKLINE_* environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		displayAllConfig(cfg)
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	themeFile := cfg.Theme.File
	if themeFile == "" {
		themeFile = "(built-in)"
	}

	fmt.Printf("render.interval: %s\n", cfg.Render.Interval)
	fmt.Printf("render.max_events: %d\n", cfg.Render.MaxEvents)
	fmt.Printf("color.enabled: %t\n", cfg.Color.Enabled)
	fmt.Printf("theme.file: %s\n", themeFile)
}
