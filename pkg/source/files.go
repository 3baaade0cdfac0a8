package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/frame"
)

// Files decodes image files into frames. Still images yield one frame each;
// animated GIFs yield every frame composited onto the full canvas.
// Files are decoded lazily, one at a time, as Read is called.
type Files struct {
	paths []string

	pending []*frame.Frame
	next    int
	opened  bool
}

// NewFiles creates a source over the given image paths.
func NewFiles(paths ...string) *Files {
	return &Files{paths: paths}
}

// Open checks that every path exists and is a regular file.
func (s *Files) Open(ctx context.Context) error {
	if len(s.paths) == 0 {
		return errors.New(errors.ErrCodeDeviceUnavailable, "no input files")
	}
	for _, p := range s.paths {
		info, err := os.Stat(p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeDeviceUnavailable, err, "open %s", p)
		}
		if info.IsDir() {
			return errors.New(errors.ErrCodeDeviceUnavailable, "%s is a directory", p)
		}
	}
	s.opened = true
	return nil
}

// Read returns the next decoded frame.
func (s *Files) Read(ctx context.Context) (*frame.Frame, error) {
	if !s.opened {
		return nil, errors.New(errors.ErrCodeFrameRead, "source not open")
	}
	for len(s.pending) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.next >= len(s.paths) {
			return nil, io.EOF
		}
		path := s.paths[s.next]
		s.next++

		frames, err := DecodeFile(path)
		if err != nil {
			return nil, err
		}
		s.pending = frames
	}
	f := s.pending[0]
	s.pending = s.pending[1:]
	return f, nil
}

// Close drops any decoded frames not yet read.
func (s *Files) Close() error {
	s.pending = nil
	s.opened = false
	return nil
}

// DecodeFile decodes path into one or more frames.
func DecodeFile(path string) ([]*frame.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFrameRead, err, "open %s", path)
	}
	return Decode(data, path)
}

// Decode decodes an encoded image. GIF data yields one frame per GIF frame;
// every other format yields exactly one. name is only used in errors.
func Decode(data []byte, name string) ([]*frame.Frame, error) {
	if bytes.HasPrefix(data, []byte("GIF8")) || strings.EqualFold(filepath.Ext(name), ".gif") {
		return decodeGIF(bytes.NewReader(data), name)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFrameRead, err, "decode %s", name)
	}
	return []*frame.Frame{frame.FromImage(img)}, nil
}

// decodeGIF composites every GIF frame onto the logical screen so partial
// frames render as full images.
func decodeGIF(r io.Reader, path string) ([]*frame.Frame, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFrameRead, err, "decode %s", path)
	}
	if len(g.Image) == 0 {
		return nil, errors.New(errors.ErrCodeFrameRead, "%s has no frames", path)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	frames := make([]*frame.Frame, 0, len(g.Image))
	for i, p := range g.Image {
		var restore *image.RGBA
		if i < len(g.Disposal) && g.Disposal[i] == gif.DisposalPrevious {
			restore = image.NewRGBA(bounds)
			copy(restore.Pix, canvas.Pix)
		}

		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)
		frames = append(frames, frame.FromImage(canvas))

		if i < len(g.Disposal) {
			switch g.Disposal[i] {
			case gif.DisposalBackground:
				draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
			case gif.DisposalPrevious:
				canvas = restore
			}
		}
	}
	return frames, nil
}

// String describes the source for log output.
func (s *Files) String() string {
	return fmt.Sprintf("files(%d)", len(s.paths))
}

// Ensure Files implements Source.
var _ Source = (*Files)(nil)
