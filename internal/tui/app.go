// Package tui provides a bubbletea-based display for a taskline task
// tree. It is the alternative to the raw render loop: instead of writing
// cursor-control sequences straight to the terminal, frames are diffed
// into an in-memory screen and shown inside a bubbletea view, with the
// usual alt-screen niceties (quit keys, resize handling).
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/taskline/internal/vterm"
	"github.com/ShayCichocki/taskline/pkg/taskline"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// tickMsg drives the drain-and-render cycle.
type tickMsg time.Time

// Model is the bubbletea model. Create it with New and run it with
// tea.NewProgram.
type Model struct {
	renderer *taskline.TaskRenderer[string, string]
	source   taskline.ActionSource[string, string]
	screen   *vterm.Screen
	spin     spinner.Model
	interval time.Duration
	title    string
	closed   bool
	quitting bool
}

// New creates a Model that drains source into renderer every interval.
func New(renderer *taskline.TaskRenderer[string, string], source taskline.ActionSource[string, string], interval time.Duration, title string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return Model{
		renderer: renderer,
		source:   source,
		screen:   vterm.New(),
		spin:     sp,
		interval: interval,
		title:    title,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.tick())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			// Show whatever is still open as cancelled in the last frame.
			m.renderer.Update(taskline.CancelAll[string, string]())
			m.renderer.Render(m.screen)
			return m, tea.Quit
		}

	case tickMsg:
		alive := m.renderer.Drain(m.source)
		// Render errors can't happen against the in-memory screen.
		m.renderer.Render(m.screen)
		if !alive && !m.closed {
			m.closed = true
			return m, tea.Quit
		}
		return m, m.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	header := headerStyle.Render(m.title)
	if !m.closed && !m.quitting {
		header = m.spin.View() + " " + header
	}
	footer := footerStyle.Render("q to quit")
	if m.closed {
		footer = footerStyle.Render("done")
	}
	return header + "\n\n" + m.screen.String() + "\n" + footer + "\n"
}

// Screen returns the current screen contents, for inspection after the
// program exits.
func (m Model) Screen() string {
	return m.screen.String()
}
