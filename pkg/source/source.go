// Package source defines where raw frames come from.
//
// A [Source] is opened once, read repeatedly, and closed once. Read returns
// io.EOF when the stream is exhausted; the capture loop treats any read
// error as the end of the stream rather than retrying.
//
// Implementations in this package have no hardware dependencies:
//   - [Slice]: frames held in memory, for tests and demos
//   - [Files]: still images and animated GIFs decoded from disk
//
// The camera-backed source lives in package device.
package source

import (
	"context"
	"io"
	"sync"

	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/frame"
)

// Source produces successive raw frames.
type Source interface {
	// Open acquires the underlying device. It fails fast with a
	// DEVICE_UNAVAILABLE error when nothing can be captured.
	Open(ctx context.Context) error

	// Read returns the next frame, or io.EOF at the end of the stream.
	Read(ctx context.Context) (*frame.Frame, error)

	// Close releases the device. It is safe to call more than once.
	Close() error
}

// Slice serves a fixed list of frames in order.
type Slice struct {
	frames []*frame.Frame

	mu     sync.Mutex
	next   int
	opened bool
	closed bool
}

// NewSlice creates a source that yields frames in order and then io.EOF.
func NewSlice(frames ...*frame.Frame) *Slice {
	return &Slice{frames: frames}
}

// Open marks the source as open. Opening a closed source fails.
func (s *Slice) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New(errors.ErrCodeDeviceUnavailable, "source already closed")
	}
	s.opened = true
	return nil
}

// Read returns the next frame.
func (s *Slice) Read(ctx context.Context) (*frame.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened || s.closed {
		return nil, errors.New(errors.ErrCodeFrameRead, "source not open")
	}
	if s.next >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.next]
	s.next++
	return f, nil
}

// Close marks the source as closed.
func (s *Slice) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Remaining returns how many frames have not been read yet.
func (s *Slice) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames) - s.next
}

// Ensure Slice implements Source.
var _ Source = (*Slice)(nil)
