package ascii

import (
	"image"
	"strings"

	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/frame"
)

// Default conversion values.
const (
	// DefaultWidth is the default output width in characters.
	DefaultWidth = 100

	// DefaultSharpness is the default sharpness factor.
	DefaultSharpness = 1.8

	// StrongSharpness is the factor that compensates for detail lost to
	// quantization on typical webcam input.
	StrongSharpness = 20.0
)

// Options configures a conversion.
type Options struct {
	Width     int     // output width in characters
	Sharpness float64 // sharpness factor, 1 is identity
	Ramp      string  // glyph ramp, darkest first
}

// SetDefaults fills zero fields with package defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Sharpness == 0 {
		o.Sharpness = DefaultSharpness
	}
	if o.Ramp == "" {
		o.Ramp = Ramp
	}
}

// Validate applies defaults and checks all fields.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := errors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if err := errors.ValidateSharpness(o.Sharpness); err != nil {
		return err
	}
	return errors.ValidateRamp(o.Ramp)
}

// Frame is one rendered ASCII image.
type Frame struct {
	Width  int    // glyphs per line
	Height int    // number of lines
	Text   string // Height lines of Width glyphs, each ending in '\n'
}

// String returns the frame text.
func (f Frame) String() string { return f.Text }

// Lines returns the frame lines without their line breaks.
func (f Frame) Lines() []string {
	return strings.Split(strings.TrimSuffix(f.Text, "\n"), "\n")
}

// Convert runs the full transform on img.
// Frames from the capture device are accepted directly; their dimensions are
// checked before any processing.
func Convert(img image.Image, opts Options) (Frame, error) {
	if err := opts.Validate(); err != nil {
		return Frame{}, err
	}
	if img == nil {
		return Frame{}, errors.New(errors.ErrCodeTransform, "nil image")
	}
	if f, ok := img.(*frame.Frame); ok {
		if err := f.Validate(); err != nil {
			return Frame{}, errors.Wrap(errors.ErrCodeTransform, err, "invalid frame")
		}
		img = f.NRGBA()
	}

	b := img.Bounds()
	height, err := TargetHeight(b.Dx(), b.Dy(), opts.Width)
	if err != nil {
		return Frame{}, err
	}

	resized := Resize(img, opts.Width, height)
	sharp := Sharpen(resized, opts.Sharpness)
	gray := Grayscale(sharp)

	return Frame{
		Width:  opts.Width,
		Height: height,
		Text:   Wrap(string(Glyphs(gray, opts.Ramp)), opts.Width),
	}, nil
}
