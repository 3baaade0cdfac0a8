// Package render writes ASCII frames to the terminal and hands raw frames to
// an optional preview window.
//
// Two sinks run side by side in a capture run:
//
//   - A [Renderer] receives every [ascii.Frame]. [Console] clears the screen
//     and writes the frame, [TUI] drives a bubbletea program in the
//     alternate screen.
//   - A [Display] receives the raw frame. [NoopDisplay] is used for headless
//     runs; package device provides an OpenCV window.
//
// Either sink may ask the loop to stop by implementing [Quitter].
package render

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/muesli/termenv"

	"github.com/matzehuels/asciicam/pkg/ascii"
	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/frame"
)

// Renderer presents ASCII frames.
type Renderer interface {
	Render(ctx context.Context, f ascii.Frame) error
}

// Quitter is implemented by sinks that can observe a user quit request,
// such as a key press in a window.
type Quitter interface {
	QuitRequested() bool
}

// Display shows raw frames in a separate window.
type Display interface {
	Quitter

	// Show presents f. It must not block on console output.
	Show(f *frame.Frame) error

	// Close releases the window.
	Close() error
}

// =============================================================================
// Console
// =============================================================================

// Console clears the terminal and writes each frame in place.
type Console struct {
	mu  sync.Mutex
	buf *bufio.Writer
	out *termenv.Output
}

// NewConsole creates a console renderer writing to w.
func NewConsole(w io.Writer) *Console {
	buf := bufio.NewWriter(w)
	return &Console{
		buf: buf,
		out: termenv.NewOutput(buf),
	}
}

// Render clears the screen and writes the frame text.
// The clear and the frame are flushed in one write to limit flicker.
func (c *Console) Render(ctx context.Context, f ascii.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.out.ClearScreen()
	if _, err := c.buf.WriteString(f.Text); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write frame")
	}
	if err := c.buf.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "flush frame")
	}
	return nil
}

// =============================================================================
// Displays
// =============================================================================

// NoopDisplay discards raw frames and never requests a quit.
type NoopDisplay struct{}

// Show does nothing.
func (NoopDisplay) Show(*frame.Frame) error { return nil }

// QuitRequested always returns false.
func (NoopDisplay) QuitRequested() bool { return false }

// Close does nothing.
func (NoopDisplay) Close() error { return nil }

// Ensure implementations satisfy their interfaces.
var (
	_ Renderer = (*Console)(nil)
	_ Display  = NoopDisplay{}
)
