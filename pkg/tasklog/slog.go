package tasklog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// RecordFunc converts a log record into event data. The record's attrs
// (including any accumulated via WithAttrs) have already been merged in.
type RecordFunc[E any] func(ctx context.Context, r slog.Record) E

// Text is a RecordFunc for string event data: the message followed by
// space-separated key=value attrs, e.g. "fetching deps pkg=lipgloss n=3".
func Text(_ context.Context, r slog.Record) string {
	var b strings.Builder
	b.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})
	return b.String()
}

// LogOption configures a LogHandler.
type LogOption func(*logOptions)

type logOptions struct {
	level slog.Leveler
}

// WithLevel sets the minimum level forwarded to the task tree. Default
// slog.LevelInfo.
func WithLevel(l slog.Leveler) LogOption {
	return func(o *logOptions) {
		o.level = l
	}
}

// LogHandler is a slog.Handler that forwards records as events, attributed
// to the span carried in the record's context (or the root when there is
// none). It renders nothing itself; pair the handler's Instrument with a
// render loop on the consumer side.
type LogHandler[T, E any] struct {
	inst    *Instrument[T, E]
	convert RecordFunc[E]
	level   slog.Leveler
	// attrs and groups accumulate WithAttrs/WithGroup state; attrs are
	// merged into each record before conversion, keys prefixed by group.
	attrs  []slog.Attr
	groups []string
}

// NewLogHandler creates a handler forwarding through inst, converting each
// record with convert. For string events, pass [Text].
func NewLogHandler[T, E any](inst *Instrument[T, E], convert RecordFunc[E], opts ...LogOption) *LogHandler[T, E] {
	o := logOptions{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(&o)
	}
	return &LogHandler[T, E]{
		inst:    inst,
		convert: convert,
		level:   o.level,
	}
}

// Enabled implements slog.Handler.
func (h *LogHandler[T, E]) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *LogHandler[T, E]) Handle(ctx context.Context, r slog.Record) error {
	if len(h.attrs) > 0 {
		merged := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
		merged.AddAttrs(h.attrs...)
		r.Attrs(func(a slog.Attr) bool {
			merged.AddAttrs(h.qualify(a))
			return true
		})
		r = merged
	}
	h.inst.Event(ctx, h.convert(ctx, r))
	return nil
}

// WithAttrs implements slog.Handler.
func (h *LogHandler[T, E]) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, h.qualify(a))
	}
	return &next
}

// WithGroup implements slog.Handler. Groups flatten into dotted key
// prefixes rather than nesting.
func (h *LogHandler[T, E]) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

func (h *LogHandler[T, E]) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	a.Key = strings.Join(h.groups, ".") + "." + a.Key
	return a
}
