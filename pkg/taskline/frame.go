package taskline

import (
	"bytes"
	"fmt"
	"io"
)

// FrameWriter wraps the output sink and counts emitted line breaks, so the
// next render pass can erase exactly the lines this one drew.
//
// Renderer callbacks write through it with fmt.Fprintf and friends. The
// accounting assumes lines never wrap; keeping lines inside the terminal
// width is the renderer's job.
type FrameWriter struct {
	target io.Writer
	lines  int
}

type flusher interface {
	Flush() error
}

func newFrameWriter(target io.Writer, lines int) *FrameWriter {
	return &FrameWriter{target: target, lines: lines}
}

// Write implements io.Writer, counting newlines as they pass through.
func (f *FrameWriter) Write(p []byte) (int, error) {
	f.lines += bytes.Count(p, []byte{'\n'})
	return f.target.Write(p)
}

// Lines returns the number of line breaks written so far, including any
// carried over from the frame being erased.
func (f *FrameWriter) Lines() int {
	return f.lines
}

// clearFrame erases the previously drawn frame: cursor up by the recorded
// line count, clear the current line, then clear to end of screen. Emits
// nothing when no lines were drawn. Resets the counter so the new frame's
// accounting starts at zero.
func (f *FrameWriter) clearFrame() error {
	if f.lines > 0 {
		if _, err := fmt.Fprintf(f.target, "\r\x1b[%dA\x1b[2K\x1b[J", f.lines); err != nil {
			return err
		}
		if err := f.flush(); err != nil {
			return err
		}
	}
	f.lines = 0
	return nil
}

// flush pushes buffered bytes to the real sink, when the sink buffers.
func (f *FrameWriter) flush() error {
	if fl, ok := f.target.(flusher); ok {
		return fl.Flush()
	}
	return nil
}
