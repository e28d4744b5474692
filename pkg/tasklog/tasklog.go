// Package tasklog is the producer-side front-end for taskline: it turns
// "a unit of work started / logged something / finished" call sites into
// taskline actions and delivers them over a transport.
//
// Nesting is carried through context.Context, so instrumented code doesn't
// thread task ids by hand:
//
//	ctx, span := inst.Begin(ctx, "compile")
//	defer span.End()
//	span.Event("parsing sources")
//
// For codebases already logging through log/slog, [NewLogHandler] converts
// log records into events attributed to the span in the record's context.
package tasklog

import (
	"context"
	"sync/atomic"

	"github.com/ShayCichocki/taskline/pkg/taskline"
)

// Instrument produces actions for one task tree. T and E are the payload
// types stored per task and per event; they must match the Renderer on the
// consumer side.
//
// Safe for concurrent use from any number of goroutines; the transport is
// the only cross-goroutine handoff point.
type Instrument[T, E any] struct {
	transport taskline.Transport[T, E]
	ids       *taskline.IDSource
}

// New creates an Instrument delivering over transport.
func New[T, E any](transport taskline.Transport[T, E]) *Instrument[T, E] {
	return &Instrument[T, E]{
		transport: transport,
		ids:       taskline.NewIDSource(),
	}
}

// Span is one in-flight unit of work started by [Instrument.Begin].
type Span[T, E any] struct {
	inst  *Instrument[T, E]
	id    taskline.TaskID
	ended atomic.Bool
}

type spanKey struct{}

// Begin starts a task. The parent is the span carried in ctx, or the root
// when ctx has none. The returned context carries the new span, so nested
// Begin calls build the tree automatically.
func (in *Instrument[T, E]) Begin(ctx context.Context, data T) (context.Context, *Span[T, E]) {
	id := in.ids.Next()
	in.send(taskline.StartTask[T, E](id, in.parentID(ctx), data))
	span := &Span[T, E]{inst: in, id: id}
	return context.WithValue(ctx, spanKey{}, span), span
}

// Event emits an event attributed to the span in ctx, or to the root when
// ctx has none.
func (in *Instrument[T, E]) Event(ctx context.Context, data E) {
	in.send(taskline.AppendEvent[T, E](in.parentID(ctx), data))
}

// CancelAll emits a cancel-everything action.
func (in *Instrument[T, E]) CancelAll() {
	in.send(taskline.CancelAll[T, E]())
}

func (in *Instrument[T, E]) parentID(ctx context.Context) taskline.TaskID {
	if s, ok := SpanFromContext[T, E](ctx); ok {
		return s.id
	}
	return taskline.Root
}

// send delivers a, discarding the error: delivery failures are reported
// through the transport's error callback and must never unwind into
// instrumentation call sites.
func (in *Instrument[T, E]) send(a taskline.Action[T, E]) {
	_ = in.transport.Send(a)
}

// SpanFromContext returns the span carried by ctx, if any.
func SpanFromContext[T, E any](ctx context.Context) (*Span[T, E], bool) {
	s, ok := ctx.Value(spanKey{}).(*Span[T, E])
	return s, ok
}

// ID returns the span's task id.
func (s *Span[T, E]) ID() taskline.TaskID {
	return s.id
}

// Event emits an event attributed to this span.
func (s *Span[T, E]) Event(data E) {
	s.inst.send(taskline.AppendEvent[T, E](s.id, data))
}

// End marks the span's task completed. Idempotent; safe to call from a
// defer even when the task was already closed explicitly.
func (s *Span[T, E]) End() {
	if !s.ended.Swap(true) {
		s.inst.send(taskline.EndTask[T, E](s.id))
	}
}
