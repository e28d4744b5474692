// Package taskline renders a live, incrementally-updating tree of in-flight
// tasks and their buffered log events to a terminal.
//
// Producers describe lifecycle changes as [Action] values (a task started, a
// task ended, an event occurred, cancel everything) and deliver them over a
// [Transport]. A single consumer applies actions to a [TaskRenderer] and
// repaints the terminal in place: output for completed or cancelled top-level
// tasks is flushed permanently to scrollback, while everything still live is
// redrawn every frame using cursor-control sequences.
//
// The visual output is fully controlled by a caller-supplied [Renderer]:
//
//	type buildRenderer struct{}
//
//	func (buildRenderer) RenderTaskLine(f *taskline.FrameWriter, task taskline.TaskView[string, string]) error {
//		_, err := fmt.Fprintf(f, "%s%s\n", strings.Repeat("  ", task.Depth()), task.Data())
//		return err
//	}
//
//	func (buildRenderer) RenderEventLine(f *taskline.FrameWriter, event taskline.EventView[string, string]) error {
//		_, err := fmt.Fprintf(f, "%s> %s\n", strings.Repeat("  ", event.Depth()), event.Data())
//		return err
//	}
//
// For channel-based setups, [RenderLoop] drains a [ChannelTransport] and
// repaints on a fixed interval:
//
//	tr := taskline.NewChannelTransport[string, string](256)
//	loop := taskline.NewRenderLoop(taskline.NewTaskRenderer[string, string](buildRenderer{}), os.Stderr)
//	go loop.Run(ctx, tr.Source())
//
// The consumer side (TaskRenderer, views, RenderLoop) is single-owner and
// must never be used from more than one goroutine. Transports are safe for
// any number of producer goroutines.
package taskline
