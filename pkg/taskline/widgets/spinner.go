// Package widgets provides decorative building blocks for Renderer
// implementations: spinners, progress bars, and tree-drawing prefixes.
// None of them write to the terminal themselves; they format strings the
// renderer embeds in its task and event lines.
package widgets

import "github.com/charmbracelet/lipgloss"

// Spinner is a frame-based spinner animation.
//
// Call Tick once per render frame (typically from the renderer's
// OnRenderStart hook) and Frame to get the current character.
type Spinner struct {
	frames []string
	index  int
	style  lipgloss.Style
	styled bool
}

// Dots returns the braille dot spinner, the most common choice.
func Dots() Spinner {
	return Spinner{frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}}
}

// Line returns the classic line spinner.
func Line() Spinner {
	return Spinner{frames: []string{"|", "/", "-", "\\"}}
}

// Arrow returns the rotating arrow spinner.
func Arrow() Spinner {
	return Spinner{frames: []string{"←", "↖", "↑", "↗", "→", "↘", "↓", "↙"}}
}

// Custom returns a spinner cycling through the given frames. An empty
// slice falls back to Dots.
func Custom(frames []string) Spinner {
	if len(frames) == 0 {
		return Dots()
	}
	return Spinner{frames: frames}
}

// WithStyle returns a copy of the spinner whose frames are rendered
// through the given lipgloss style.
func (s Spinner) WithStyle(style lipgloss.Style) Spinner {
	s.style = style
	s.styled = true
	return s
}

// Tick advances to the next frame.
func (s *Spinner) Tick() {
	s.index = (s.index + 1) % len(s.frames)
}

// Frame returns the current frame string.
func (s *Spinner) Frame() string {
	f := s.frames[s.index]
	if s.styled {
		return s.style.Render(f)
	}
	return f
}

// String implements fmt.Stringer; equivalent to Frame.
func (s Spinner) String() string {
	return s.Frame()
}
