package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar formats a fixed-width inline progress bar with percentage,
// like "[██████████░░░░░░░░░░]  50%".
type ProgressBar struct {
	done   uint64
	total  uint64
	width  int
	filled rune
	empty  rune
	style  lipgloss.Style
	styled bool
}

// NewProgressBar creates a bar at done/total with a width of 20 cells.
func NewProgressBar(done, total uint64) ProgressBar {
	return ProgressBar{
		done:   done,
		total:  total,
		width:  20,
		filled: '█',
		empty:  '░',
	}
}

// Width returns a copy of the bar with the given cell width.
func (b ProgressBar) Width(w int) ProgressBar {
	if w > 0 {
		b.width = w
	}
	return b
}

// Chars returns a copy of the bar using the given fill characters.
func (b ProgressBar) Chars(filled, empty rune) ProgressBar {
	b.filled = filled
	b.empty = empty
	return b
}

// WithStyle returns a copy whose filled section is rendered through the
// given lipgloss style.
func (b ProgressBar) WithStyle(style lipgloss.Style) ProgressBar {
	b.style = style
	b.styled = true
	return b
}

// Ratio returns completion in [0, 1]. A zero total counts as 0.
func (b ProgressBar) Ratio() float64 {
	if b.total == 0 {
		return 0
	}
	r := float64(b.done) / float64(b.total)
	return min(max(r, 0), 1)
}

// String renders the bar.
func (b ProgressBar) String() string {
	ratio := b.Ratio()
	filled := int(ratio * float64(b.width))
	fill := strings.Repeat(string(b.filled), filled)
	if b.styled {
		fill = b.style.Render(fill)
	}
	return fmt.Sprintf("[%s%s] %3.0f%%",
		fill,
		strings.Repeat(string(b.empty), b.width-filled),
		ratio*100,
	)
}
