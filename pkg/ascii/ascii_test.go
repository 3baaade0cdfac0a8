package ascii

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/frame"
)

func TestRampOrdering(t *testing.T) {
	if Ramp[0] != '$' {
		t.Errorf("darkest glyph = %q, want '$'", Ramp[0])
	}
	if Ramp[len(Ramp)-1] != ' ' {
		t.Errorf("lightest glyph = %q, want ' '", Ramp[len(Ramp)-1])
	}
	if err := errors.ValidateRamp(Ramp); err != nil {
		t.Errorf("default ramp is invalid: %v", err)
	}
}

func TestQuantizeBounds(t *testing.T) {
	if got := Quantize(0, Ramp); got != Ramp[0] {
		t.Errorf("Quantize(0) = %q, want %q", got, Ramp[0])
	}
	if got := Quantize(255, Ramp); got != Ramp[len(Ramp)-1] {
		t.Errorf("Quantize(255) = %q, want %q", got, Ramp[len(Ramp)-1])
	}
	if got, want := Quantize(128, Ramp), Ramp[128*len(Ramp)/256]; got != want {
		t.Errorf("Quantize(128) = %q, want %q", got, want)
	}
}

func TestQuantizeMonotonic(t *testing.T) {
	index := func(c byte) int { return strings.IndexByte(Ramp, c) }

	prev := -1
	for p := 0; p <= 255; p++ {
		got := Quantize(uint8(p), Ramp)
		if again := Quantize(uint8(p), Ramp); again != got {
			t.Fatalf("Quantize(%d) not deterministic: %q then %q", p, got, again)
		}
		idx := index(got)
		if idx < prev {
			t.Fatalf("Quantize(%d) index %d below previous %d", p, idx, prev)
		}
		prev = idx
	}
}

func TestQuantizeShortRamp(t *testing.T) {
	ramp := "#."
	for p := 0; p < 128; p++ {
		if got := Quantize(uint8(p), ramp); got != '#' {
			t.Fatalf("Quantize(%d) = %q, want '#'", p, got)
		}
	}
	for p := 128; p <= 255; p++ {
		if got := Quantize(uint8(p), ramp); got != '.' {
			t.Fatalf("Quantize(%d) = %q, want '.'", p, got)
		}
	}
}

func TestTargetHeight(t *testing.T) {
	tests := []struct {
		origW, origH, newW int
		want               int
	}{
		{640, 480, 100, 45},
		{1280, 720, 120, 40},
		{800, 600, 80, 36},
		{2, 2, 2, 1},
		{100, 100, 165, 100},
	}

	for _, tt := range tests {
		got, err := TargetHeight(tt.origW, tt.origH, tt.newW)
		if err != nil {
			t.Errorf("TargetHeight(%d, %d, %d) error = %v", tt.origW, tt.origH, tt.newW, err)
			continue
		}
		if got != tt.want {
			t.Errorf("TargetHeight(%d, %d, %d) = %d, want %d", tt.origW, tt.origH, tt.newW, got, tt.want)
		}
	}
}

func TestTargetHeightFormula(t *testing.T) {
	for origW := 1; origW <= 64; origW += 7 {
		for origH := 1; origH <= 64; origH += 5 {
			for newW := 1; newW <= 200; newW += 13 {
				want := int(float64(newW) * (float64(origH) / float64(origW) / CharAspect))
				got, err := TargetHeight(origW, origH, newW)
				if want == 0 {
					if err == nil {
						t.Fatalf("TargetHeight(%d, %d, %d) should reject zero height", origW, origH, newW)
					}
					continue
				}
				if err != nil || got != want {
					t.Fatalf("TargetHeight(%d, %d, %d) = %d, %v; want %d", origW, origH, newW, got, err, want)
				}
			}
		}
	}
}

func TestTargetHeightErrors(t *testing.T) {
	tests := []struct {
		name               string
		origW, origH, newW int
	}{
		{"zero width", 0, 480, 100},
		{"zero height", 640, 0, 100},
		{"negative width", -1, 480, 100},
		{"zero output width", 640, 480, 0},
		{"too wide", 1000, 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TargetHeight(tt.origW, tt.origH, tt.newW)
			if !errors.Is(err, errors.ErrCodeTransform) {
				t.Errorf("error = %v, want TRANSFORM_ERROR", err)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abcdef", 3, "abc\ndef\n"},
		{"abcdefg", 3, "abc\ndef\ng\n"},
		{"abc\ndef\n", 3, "abc\ndef\n"},
		{"ab\ncd\nef\n", 3, "abc\ndef\n"},
		{"", 3, ""},
		{"abc", 0, "abc"},
	}

	for _, tt := range tests {
		if got := Wrap(tt.in, tt.width); got != tt.want {
			t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestWrapIdempotent(t *testing.T) {
	glyphs := strings.Repeat(Ramp, 5)
	for width := 1; width <= 50; width++ {
		once := Wrap(glyphs, width)
		twice := Wrap(once, width)
		if once != twice {
			t.Fatalf("Wrap not idempotent for width %d", width)
		}
	}
}

func TestGrayscale(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{R: 128, G: 128, B: 128, A: 255})

	g := Grayscale(img)
	if got := g.GrayAt(0, 0).Y; got != 76 {
		t.Errorf("red luma = %d, want 76", got)
	}
	if got := g.GrayAt(1, 0).Y; got != 150 {
		t.Errorf("green luma = %d, want 150", got)
	}
	if got := g.GrayAt(2, 0).Y; got != 128 {
		t.Errorf("gray luma = %d, want 128", got)
	}
}

func TestSharpenIdentity(t *testing.T) {
	img := checkerboard(8, 8)
	out := Sharpen(img, 1)
	for i := range img.Pix {
		if out.Pix[i] != img.Pix[i] {
			t.Fatalf("Sharpen(1) changed byte %d: %d -> %d", i, img.Pix[i], out.Pix[i])
		}
	}
}

func TestSharpenIncreasesContrast(t *testing.T) {
	img := checkerboard(8, 8)
	out := Sharpen(img, 3)

	// A dark checker cell surrounded by light ones should not get lighter.
	if out.NRGBAAt(2, 1).R > img.NRGBAAt(2, 1).R {
		t.Errorf("dark pixel got lighter: %d -> %d", img.NRGBAAt(2, 1).R, out.NRGBAAt(2, 1).R)
	}
	if out.NRGBAAt(1, 1).R < img.NRGBAAt(1, 1).R {
		t.Errorf("light pixel got darker: %d -> %d", img.NRGBAAt(1, 1).R, out.NRGBAAt(1, 1).R)
	}
	if out.NRGBAAt(1, 1).A != 255 {
		t.Error("alpha should be preserved")
	}
}

func TestConvertUniformGray(t *testing.T) {
	f := frame.Uniform(2, 2, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	out, err := Convert(f, Options{Width: 2})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if out.Width != 2 || out.Height != 1 {
		t.Fatalf("size = %dx%d, want 2x1", out.Width, out.Height)
	}

	lines := out.Lines()
	first := lines[0][0]
	for i, line := range lines {
		if len(line) != 2 {
			t.Errorf("line %d has %d glyphs, want 2", i, len(line))
		}
		for j := 0; j < len(line); j++ {
			if line[j] != first {
				t.Errorf("glyph (%d,%d) = %q, want uniform %q", i, j, line[j], first)
			}
		}
	}
}

func TestConvertUniformTall(t *testing.T) {
	// Tall enough that the uniform output spans several lines.
	f := frame.Uniform(4, 16, color.RGBA{R: 200, G: 200, B: 200, A: 255})

	out, err := Convert(f, Options{Width: 4, Sharpness: StrongSharpness})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if out.Height < 2 {
		t.Fatalf("Height = %d, want at least 2", out.Height)
	}
	if strings.Count(out.Text, string(out.Text[0])) != out.Width*out.Height {
		t.Errorf("uniform input produced mixed glyphs:\n%s", out.Text)
	}
}

func TestConvertDimensions(t *testing.T) {
	img := checkerboard(64, 48)

	for _, sharpness := range []float64{1, StrongSharpness} {
		out, err := Convert(img, Options{Width: 40, Sharpness: sharpness})
		if err != nil {
			t.Fatalf("Convert(sharpness=%g) error = %v", sharpness, err)
		}
		wantH, _ := TargetHeight(64, 48, 40)
		if out.Height != wantH {
			t.Errorf("sharpness=%g: Height = %d, want %d", sharpness, out.Height, wantH)
		}
		lines := out.Lines()
		if len(lines) != wantH {
			t.Errorf("sharpness=%g: %d lines, want %d", sharpness, len(lines), wantH)
		}
		for i, line := range lines {
			if len(line) != 40 {
				t.Errorf("sharpness=%g: line %d has %d glyphs, want 40", sharpness, i, len(line))
			}
		}
		if Wrap(out.Text, 40) != out.Text {
			t.Errorf("sharpness=%g: frame is not stable under Wrap", sharpness)
		}
	}
}

func TestConvertCustomRamp(t *testing.T) {
	black := frame.Uniform(10, 10, color.RGBA{A: 255})
	out, err := Convert(black, Options{Width: 5, Ramp: "X."})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if strings.Trim(out.Text, "X\n") != "" {
		t.Errorf("black frame with ramp \"X.\" = %q, want only X", out.Text)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		opts Options
		code errors.Code
	}{
		{"nil image", nil, Options{}, errors.ErrCodeTransform},
		{"zero width frame", &frame.Frame{Width: 0, Height: 10}, Options{}, errors.ErrCodeTransform},
		{"short buffer", &frame.Frame{Width: 2, Height: 2, Pix: []byte{1, 2}}, Options{}, errors.ErrCodeTransform},
		{"empty image", image.NewNRGBA(image.Rect(0, 0, 0, 0)), Options{}, errors.ErrCodeTransform},
		{"negative width", checkerboard(4, 4), Options{Width: -1}, errors.ErrCodeInvalidInput},
		{"bad ramp", checkerboard(4, 4), Options{Ramp: "a\nb"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.img, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Convert() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width = %d, want %d", opts.Width, DefaultWidth)
	}
	if opts.Sharpness != DefaultSharpness {
		t.Errorf("Sharpness = %g, want %g", opts.Sharpness, DefaultSharpness)
	}
	if opts.Ramp != Ramp {
		t.Errorf("Ramp = %q, want default", opts.Ramp)
	}
}

// checkerboard returns an image of alternating black and white pixels.
func checkerboard(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}
