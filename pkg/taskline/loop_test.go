package taskline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ShayCichocki/taskline/internal/vterm"
)

func TestRunStopsWhenSourceCloses(t *testing.T) {
	term := vterm.New()
	transport := NewChannelTransport[string, string](8)
	ids := NewIDSource()

	id := ids.Next()
	transport.Send(StartTask[string, string](id, Root, "job"))
	transport.Send(EndTask[string, string](id))
	transport.Close()

	loop := NewRenderLoop(NewTaskRenderer[string, string](testRenderer{}), term)
	if err := loop.Run(context.Background(), transport.Source()); err != nil {
		t.Fatal(err)
	}

	if got, want := term.String(), " *job\n"; got != want {
		t.Errorf("final screen = %q, want %q", got, want)
	}
	if loop.Renderer().Len() != 0 {
		t.Errorf("Len() = %d after shutdown, want 0", loop.Renderer().Len())
	}
}

func TestRunCancelsOpenTasksOnStop(t *testing.T) {
	term := vterm.New()
	transport := NewChannelTransport[string, string](8)
	transport.Send(StartTask[string, string](NewIDSource().Next(), Root, "open"))
	transport.Close()

	loop := NewRenderLoop(NewTaskRenderer[string, string](testRenderer{}), term)
	if err := loop.Run(context.Background(), transport.Source()); err != nil {
		t.Fatal(err)
	}

	// CancelAll on stop turns the still-open task into a flushed "!" line.
	if got, want := term.String(), " !open\n"; got != want {
		t.Errorf("final screen = %q, want %q", got, want)
	}
}

func TestRunWithoutCancelOnStopLeavesTasksOpen(t *testing.T) {
	term := vterm.New()
	transport := NewChannelTransport[string, string](8)
	transport.Send(StartTask[string, string](NewIDSource().Next(), Root, "open"))
	transport.Close()

	loop := NewRenderLoop(NewTaskRenderer[string, string](testRenderer{}), term,
		WithCancelOnStop(false))
	if err := loop.Run(context.Background(), transport.Source()); err != nil {
		t.Fatal(err)
	}

	if got, want := term.String(), " open\n"; got != want {
		t.Errorf("final screen = %q, want %q", got, want)
	}
	if loop.Renderer().Len() != 1 {
		t.Errorf("Len() = %d, want 1 (task never flushed)", loop.Renderer().Len())
	}
}

func TestRunReturnsContextError(t *testing.T) {
	transport := NewChannelTransport[string, string](8)
	defer transport.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := NewRenderLoop(NewTaskRenderer[string, string](testRenderer{}), vterm.New(),
		WithInterval(time.Millisecond))
	err := loop.Run(ctx, transport.Source())

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestTickReportsSourceLiveness(t *testing.T) {
	transport := NewChannelTransport[string, string](8)
	loop := NewRenderLoop(NewTaskRenderer[string, string](testRenderer{}), vterm.New())
	src := transport.Source()

	if !loop.Tick(src) {
		t.Error("Tick() = false on open source")
	}
	transport.Close()
	if loop.Tick(src) {
		t.Error("Tick() = true on closed source")
	}
}

func TestDroppedFramesAreLoggedNotFatal(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	transport := NewChannelTransport[string, string](8)
	transport.Send(AppendEvent[string, string](Root, "event"))
	transport.Close()

	loop := NewRenderLoop(NewTaskRenderer[string, string](testRenderer{}),
		failingWriter{err: errors.New("tty gone")}, WithLogger(logger))
	if err := loop.Run(context.Background(), transport.Source()); err != nil {
		t.Fatalf("Run() = %v, render errors must not stop the loop", err)
	}

	if !strings.Contains(logs.String(), "dropped frame") {
		t.Errorf("log output %q missing dropped-frame warning", logs.String())
	}
}
