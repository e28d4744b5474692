package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/ShayCichocki/taskline/internal/config"
	"github.com/ShayCichocki/taskline/pkg/taskline"
	"github.com/ShayCichocki/taskline/pkg/taskline/widgets"
)

// colorsByName maps theme color names to terminal colors.
var colorsByName = map[string]*color.Color{
	"black":   color.New(color.FgBlack),
	"red":     color.New(color.FgRed),
	"green":   color.New(color.FgGreen),
	"yellow":  color.New(color.FgYellow),
	"blue":    color.New(color.FgBlue),
	"magenta": color.New(color.FgMagenta),
	"cyan":    color.New(color.FgCyan),
	"white":   color.New(color.FgWhite),
}

func colorByName(name string) *color.Color {
	if c, ok := colorsByName[name]; ok {
		return c
	}
	return color.New(color.Reset)
}

// cliRenderer is the taskline.Renderer used by the demo commands: a
// spinner on active tasks, themed glyphs for finished ones, box-drawing
// tree prefixes, and dimmed event lines.
type cliRenderer struct {
	spin   widgets.Spinner
	theme  config.Theme
	active *color.Color
	done   *color.Color
	cancel *color.Color
	event  *color.Color
}

func newCLIRenderer(theme config.Theme) *cliRenderer {
	spin := widgets.Dots()
	if len(theme.SpinnerFrames) > 0 {
		spin = widgets.Custom(theme.SpinnerFrames)
	}
	return &cliRenderer{
		spin:   spin,
		theme:  theme,
		active: colorByName(theme.ActiveColor),
		done:   colorByName(theme.DoneColor),
		cancel: colorByName(theme.CancelColor),
		event:  color.New(color.Faint),
	}
}

// OnRenderStart advances the spinner once per frame so every active task
// shows the same phase.
func (r *cliRenderer) OnRenderStart() {
	r.spin.Tick()
}

func (r *cliRenderer) OnRenderEnd() {}

// RenderTaskLine writes one task header: tree prefix, status glyph, the
// task name, and elapsed time while the task is running.
func (r *cliRenderer) RenderTaskLine(f *taskline.FrameWriter, task taskline.TaskView[string, string]) error {
	glyph := r.active.Sprint(r.spin.Frame())
	switch {
	case task.Cancelled():
		glyph = r.cancel.Sprint(r.theme.CancelGlyph)
	case task.Completed():
		glyph = r.done.Sprint(r.theme.DoneGlyph)
	}

	suffix := ""
	if task.Active() {
		suffix = fmt.Sprintf(" (%s)", task.Elapsed().Round(100*time.Millisecond))
	}

	_, err := fmt.Fprintf(f, "%s%s %s%s\n", widgets.TreeIndent(task), glyph, task.Data(), suffix)
	return err
}

// RenderEventLine writes one buffered event. Root-level events print
// flush-left; task events indent under their owner.
func (r *cliRenderer) RenderEventLine(f *taskline.FrameWriter, event taskline.EventView[string, string]) error {
	if event.IsRoot() {
		_, err := fmt.Fprintf(f, "%s\n", event.Data())
		return err
	}
	indent := strings.Repeat("    ", event.Depth())
	_, err := fmt.Fprintf(f, "%s%s %s\n", indent, r.theme.EventGlyph, r.event.Sprint(event.Data()))
	return err
}

// ciRenderer extends cliRenderer with a progress bar under every active
// stage that has children, and suppresses event lines for those stages so
// the bar isn't drowned out.
type ciRenderer struct {
	*cliRenderer
}

// RenderTask overrides the default traversal for stages with children.
func (r *ciRenderer) RenderTask(f *taskline.FrameWriter, task taskline.TaskView[string, string]) error {
	if task.NumSubtasks() == 0 || !task.Active() {
		return taskline.RenderSubtree[string, string](r, f, task)
	}

	if err := r.RenderTaskLine(f, task); err != nil {
		return err
	}

	children := task.Subtasks()
	finished := 0
	for _, child := range children {
		if !child.Active() {
			finished++
		}
	}
	bar := widgets.NewProgressBar(uint64(finished), uint64(len(children))).
		Width(24).
		Chars('█', '░')
	if _, err := fmt.Fprintf(f, "%s%s\n", strings.Repeat("    ", task.Depth()), bar); err != nil {
		return err
	}

	for _, child := range children {
		if err := taskline.RenderTask[string, string](r, f, child); err != nil {
			return err
		}
	}
	return nil
}
