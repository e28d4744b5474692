package taskline

import (
	"errors"
	"sync"
)

// Transport delivers actions from producer goroutines to the consumer.
// Implementations must be safe for concurrent Send calls and must never
// block or panic; delivery failure is reported through the returned error.
type Transport[T, E any] interface {
	Send(a Action[T, E]) error
}

// ActionSource is the consumer side of a transport: a non-blocking drain
// that applies every currently-available action to a [TaskRenderer].
type ActionSource[T, E any] interface {
	// DrainInto applies all immediately-available actions and returns
	// false once the source is permanently closed.
	DrainInto(tr *TaskRenderer[T, E]) bool
}

// ErrTransportFull is returned by [ChannelTransport.Send] when the buffer
// is full. The action is dropped.
var ErrTransportFull = errors.New("taskline: transport buffer full")

// ErrTransportClosed is returned by [ChannelTransport.Send] after Close.
var ErrTransportClosed = errors.New("taskline: transport closed")

// ErrorFunc receives delivery errors from producers that can't usefully
// handle them inline, e.g. instrumentation call sites.
type ErrorFunc func(error)

// TransportOption configures a [ChannelTransport].
type TransportOption func(*transportOptions)

type transportOptions struct {
	onError ErrorFunc
}

// WithErrorFunc registers a callback invoked whenever Send fails. Without
// it, failed sends are only reported through Send's return value.
func WithErrorFunc(f ErrorFunc) TransportOption {
	return func(o *transportOptions) {
		o.onError = f
	}
}

// ChannelTransport delivers actions over a buffered channel to a render
// loop on another goroutine. Safe for any number of concurrent producers.
//
// Send never blocks: when the buffer is full the action is dropped and an
// error reported. Close the transport when production is finished; the
// consumer keeps draining whatever is buffered, then observes closure.
type ChannelTransport[T, E any] struct {
	ch      chan Action[T, E]
	onError ErrorFunc

	mu     sync.RWMutex
	closed bool
}

// NewChannelTransport creates a transport with the given buffer size.
// Sizes below 1 are raised to 1 so Send can stay non-blocking.
func NewChannelTransport[T, E any](buffer int, opts ...TransportOption) *ChannelTransport[T, E] {
	if buffer < 1 {
		buffer = 1
	}
	var o transportOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &ChannelTransport[T, E]{
		ch:      make(chan Action[T, E], buffer),
		onError: o.onError,
	}
}

// Send delivers a without blocking. Returns ErrTransportFull or
// ErrTransportClosed on failure; the error callback, when set, sees the
// same error.
func (t *ChannelTransport[T, E]) Send(a Action[T, E]) error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return t.report(ErrTransportClosed)
	}
	select {
	case t.ch <- a:
		return nil
	default:
		return t.report(ErrTransportFull)
	}
}

func (t *ChannelTransport[T, E]) report(err error) error {
	if t.onError != nil {
		t.onError(err)
	}
	return err
}

// Close marks the transport closed. Sends after Close fail with
// ErrTransportClosed; buffered actions remain drainable. Safe to call
// more than once.
func (t *ChannelTransport[T, E]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	close(t.ch)
}

// Source returns the consumer-side drain for this transport.
func (t *ChannelTransport[T, E]) Source() *ChannelSource[T, E] {
	return &ChannelSource[T, E]{ch: t.ch}
}

// ChannelSource drains a ChannelTransport into a TaskRenderer.
type ChannelSource[T, E any] struct {
	ch <-chan Action[T, E]
}

// DrainInto applies every buffered action without blocking. Returns false
// once the channel is closed and fully drained.
func (s *ChannelSource[T, E]) DrainInto(tr *TaskRenderer[T, E]) bool {
	for {
		select {
		case a, ok := <-s.ch:
			if !ok {
				return false
			}
			tr.Update(a)
		default:
			return true
		}
	}
}
