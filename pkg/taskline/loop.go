package taskline

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// LoopOption configures a [RenderLoop].
type LoopOption func(*loopOptions)

type loopOptions struct {
	interval     time.Duration
	cancelOnStop bool
	logger       *slog.Logger
}

// WithInterval sets the repaint interval. Default 100ms.
func WithInterval(d time.Duration) LoopOption {
	return func(o *loopOptions) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithCancelOnStop controls whether a CancelAll is applied before the
// closing frame, so still-open tasks show as cancelled rather than
// silently truncated. Enabled by default.
func WithCancelOnStop(yes bool) LoopOption {
	return func(o *loopOptions) {
		o.cancelOnStop = yes
	}
}

// WithLogger sets a logger for dropped-frame diagnostics. Render errors
// never stop the loop; without a logger they are discarded.
func WithLogger(l *slog.Logger) LoopOption {
	return func(o *loopOptions) {
		o.logger = l
	}
}

// RenderLoop repeatedly drains an [ActionSource] and repaints on a fixed
// interval, terminating when the source closes or the context is
// cancelled. It is the convenience driver around [TaskRenderer]; use
// [TaskRenderer.Drain] and Render directly when you need custom timing.
type RenderLoop[T, E any] struct {
	renderer     *TaskRenderer[T, E]
	out          io.Writer
	interval     time.Duration
	cancelOnStop bool
	logger       *slog.Logger
}

// NewRenderLoop creates a loop repainting tr to out.
func NewRenderLoop[T, E any](tr *TaskRenderer[T, E], out io.Writer, opts ...LoopOption) *RenderLoop[T, E] {
	o := loopOptions{
		interval:     100 * time.Millisecond,
		cancelOnStop: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &RenderLoop[T, E]{
		renderer:     tr,
		out:          out,
		interval:     o.interval,
		cancelOnStop: o.cancelOnStop,
		logger:       o.logger,
	}
}

// Renderer returns the loop's TaskRenderer, e.g. to inspect state after
// the loop has stopped. Do not touch it from another goroutine while the
// loop is running.
func (l *RenderLoop[T, E]) Renderer() *TaskRenderer[T, E] {
	return l.renderer
}

// Tick runs one drain-then-render cycle and reports whether the source is
// still alive. All actions available at drain time are applied before the
// single repaint; no intermediate frames occur mid-batch.
func (l *RenderLoop[T, E]) Tick(src ActionSource[T, E]) bool {
	alive := src.DrainInto(l.renderer)
	l.render()
	return alive
}

// Run blocks, draining and repainting every interval until the source
// permanently closes or ctx is cancelled. Cancellation preempts the
// interval wait, so shutdown is never delayed by a full sleep.
//
// On shutdown the loop performs one final drain, applies CancelAll (unless
// disabled), and renders exactly one closing frame. Returns ctx.Err() when
// stopped by cancellation, nil when the source closed.
func (l *RenderLoop[T, E]) Run(ctx context.Context, src ActionSource[T, E]) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if !l.Tick(src) {
			l.shutdown(nil)
			return nil
		}
		select {
		case <-ctx.Done():
			l.shutdown(src)
			return ctx.Err()
		case <-ticker.C:
			// Cancellation takes priority over the tick when both are
			// ready at once.
			select {
			case <-ctx.Done():
				l.shutdown(src)
				return ctx.Err()
			default:
			}
		}
	}
}

// shutdown drains once more when stopped externally, optionally cancels
// every open task, and paints the closing frame.
func (l *RenderLoop[T, E]) shutdown(src ActionSource[T, E]) {
	if src != nil {
		src.DrainInto(l.renderer)
	}
	if l.cancelOnStop {
		l.renderer.Update(CancelAll[T, E]())
	}
	l.render()
}

func (l *RenderLoop[T, E]) render() {
	if err := l.renderer.Render(l.out); err != nil && l.logger != nil {
		l.logger.Warn("taskline: dropped frame", "error", err)
	}
}
