package taskline

import (
	"io"
	"sync"
)

// InlineTransport renders immediately on every action. No channel, no
// render loop: each Send applies the action and repaints synchronously.
//
// Useful for short-lived tools where a background render goroutine is not
// worth the setup. The mutex makes Send safe from multiple producers, but
// every producer then pays the rendering cost inline.
type InlineTransport[T, E any] struct {
	mu  sync.Mutex
	tr  *TaskRenderer[T, E]
	out io.Writer
}

// NewInlineTransport creates an inline transport repainting to out.
func NewInlineTransport[T, E any](tr *TaskRenderer[T, E], out io.Writer) *InlineTransport[T, E] {
	return &InlineTransport[T, E]{tr: tr, out: out}
}

// Send applies a and repaints. Render errors propagate to the caller;
// the tree mutation has already happened, so the next Send repaints from
// consistent state.
func (t *InlineTransport[T, E]) Send(a Action[T, E]) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tr.Update(a)
	return t.tr.Render(t.out)
}
