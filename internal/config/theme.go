package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme holds the glyphs and colors the CLI's renderer uses. Loaded from a
// YAML file; any omitted field keeps its built-in default.
type Theme struct {
	// SpinnerFrames are the animation frames for active tasks.
	SpinnerFrames []string `yaml:"spinner_frames"`
	// DoneGlyph marks completed tasks.
	DoneGlyph string `yaml:"done_glyph"`
	// CancelGlyph marks cancelled tasks.
	CancelGlyph string `yaml:"cancel_glyph"`
	// EventGlyph prefixes event lines.
	EventGlyph string `yaml:"event_glyph"`
	// ActiveColor/DoneColor/CancelColor are color names understood by the
	// CLI renderer (green, yellow, cyan, ...).
	ActiveColor string `yaml:"active_color"`
	DoneColor   string `yaml:"done_color"`
	CancelColor string `yaml:"cancel_color"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		SpinnerFrames: nil, // nil selects the widgets package default
		DoneGlyph:     "✓",
		CancelGlyph:   "✗",
		EventGlyph:    "·",
		ActiveColor:   "cyan",
		DoneColor:     "green",
		CancelColor:   "yellow",
	}
}

// LoadTheme reads a theme file, filling missing fields from the defaults.
// An empty path returns the defaults unchanged.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	if path == "" {
		return theme, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return theme, fmt.Errorf("reading theme file: %w", err)
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return theme, fmt.Errorf("parsing theme file: %w", err)
	}

	// Re-fill anything the file explicitly blanked out.
	defaults := DefaultTheme()
	if theme.DoneGlyph == "" {
		theme.DoneGlyph = defaults.DoneGlyph
	}
	if theme.CancelGlyph == "" {
		theme.CancelGlyph = defaults.CancelGlyph
	}
	if theme.EventGlyph == "" {
		theme.EventGlyph = defaults.EventGlyph
	}
	if theme.ActiveColor == "" {
		theme.ActiveColor = defaults.ActiveColor
	}
	if theme.DoneColor == "" {
		theme.DoneColor = defaults.DoneColor
	}
	if theme.CancelColor == "" {
		theme.CancelColor = defaults.CancelColor
	}
	return theme, nil
}
