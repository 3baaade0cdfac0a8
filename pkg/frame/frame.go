// Package frame defines the raw camera frame passed between the capture
// device, the ASCII transform, and the optional preview window.
//
// A Frame is a packed RGB buffer: Height rows of Width pixels, three bytes
// per pixel, no padding between rows. Frames are owned by a single loop
// iteration and are never shared across iterations.
package frame

import (
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of bytes per pixel in a Frame.
const Channels = 3

// Frame is one RGB image captured from a device.
type Frame struct {
	Width  int
	Height int
	Pix    []byte // row-major R, G, B triples
}

// New allocates a black frame of the given size.
func New(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*Channels),
	}
}

// Uniform returns a frame where every pixel has the given color.
func Uniform(width, height int, c color.RGBA) *Frame {
	f := New(width, height)
	for i := 0; i < len(f.Pix); i += Channels {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
	}
	return f
}

// FromImage copies img into a new Frame, dropping alpha.
// *image.RGBA and *image.NRGBA are copied directly; other image types go
// through the generic color model conversion.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := New(b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.RGBA:
		copyRGBA(f, src.Pix, src.Stride, src.Rect.Min, b)
	case *image.NRGBA:
		copyRGBA(f, src.Pix, src.Stride, src.Rect.Min, b)
	default:
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				f.Pix[i] = uint8(r >> 8)
				f.Pix[i+1] = uint8(g >> 8)
				f.Pix[i+2] = uint8(bl >> 8)
				i += Channels
			}
		}
	}
	return f
}

func copyRGBA(f *Frame, pix []byte, stride int, origin image.Point, b image.Rectangle) {
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := (y-origin.Y)*stride + (b.Min.X-origin.X)*4
		for x := 0; x < f.Width; x++ {
			p := row + x*4
			f.Pix[i] = pix[p]
			f.Pix[i+1] = pix[p+1]
			f.Pix[i+2] = pix[p+2]
			i += Channels
		}
	}
}

// Validate reports whether the frame is usable by the transform.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("nil frame")
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("degenerate frame %dx%d", f.Width, f.Height)
	}
	if want := f.Width * f.Height * Channels; len(f.Pix) != want {
		return fmt.Errorf("frame buffer is %d bytes, want %d for %dx%d", len(f.Pix), want, f.Width, f.Height)
	}
	return nil
}

// NRGBA returns an opaque *image.NRGBA copy of the frame.
func (f *Frame) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	j := 0
	for i := 0; i+Channels <= len(f.Pix) && j+4 <= len(img.Pix); i += Channels {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xff
		j += 4
	}
	return img
}

// BGR returns a copy of the pixel buffer with the red and blue channels
// swapped, the layout OpenCV expects.
func (f *Frame) BGR() []byte {
	out := make([]byte, len(f.Pix))
	for i := 0; i+Channels <= len(f.Pix); i += Channels {
		out[i] = f.Pix[i+2]
		out[i+1] = f.Pix[i+1]
		out[i+2] = f.Pix[i]
	}
	return out
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.RGBA{}
	}
	i := (y*f.Width + x) * Channels
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: 0xff}
}

// Ensure Frame implements image.Image.
var _ image.Image = (*Frame)(nil)
