package ascii

import (
	"image"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/asciicam/pkg/errors"
)

// CharAspect is the height-to-width ratio of a terminal character cell.
// Derived heights are divided by it so the output is not stretched vertically.
const CharAspect = 1.65

// smoothKernel is the 3x3 smoothing filter the sharpness blend is based on.
var smoothKernel = [9]float64{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// TargetHeight returns the number of text lines for an image of
// origW x origH pixels rendered newW characters wide:
// floor(newW * (origH / origW) / CharAspect).
func TargetHeight(origW, origH, newW int) (int, error) {
	if origW <= 0 || origH <= 0 {
		return 0, errors.New(errors.ErrCodeTransform, "degenerate frame %dx%d", origW, origH)
	}
	if newW <= 0 {
		return 0, errors.New(errors.ErrCodeTransform, "output width must be positive, got %d", newW)
	}
	ratio := float64(origH) / float64(origW) / CharAspect
	h := int(float64(newW) * ratio)
	if h <= 0 {
		return 0, errors.New(errors.ErrCodeTransform,
			"frame %dx%d is too wide to render %d characters across", origW, origH, newW)
	}
	return h, nil
}

// Resize resamples img to width x height with a Lanczos filter.
func Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Sharpen enhances edges by extrapolating away from a smoothed copy:
// out = smooth + factor*(img - smooth). A factor of 1 returns an unchanged
// copy, 0 returns the smoothed image. Alpha is preserved.
func Sharpen(img image.Image, factor float64) *image.NRGBA {
	src := imaging.Clone(img)
	if factor == 1 {
		return src
	}
	smooth := imaging.Convolve3x3(src, smoothKernel, &imaging.ConvolveOptions{Normalize: true})

	out := image.NewNRGBA(src.Rect)
	for i := range src.Pix {
		if i%4 == 3 {
			out.Pix[i] = src.Pix[i]
			continue
		}
		s := float64(smooth.Pix[i])
		out.Pix[i] = clamp8(s + factor*(float64(src.Pix[i])-s))
	}
	return out
}

// Grayscale converts img to 8-bit luma using 0.299R + 0.587G + 0.114B.
func Grayscale(img image.Image) *image.Gray {
	g := imaging.Grayscale(img)
	out := image.NewGray(g.Rect)
	for i, j := 0, 0; i < len(g.Pix); i, j = i+4, j+1 {
		out.Pix[j] = g.Pix[i]
	}
	return out
}

// Wrap formats a glyph string into lines of exactly width glyphs, each
// followed by a newline. Line breaks already present in s are dropped first,
// so wrapping an already wrapped frame with the same width is a no-op.
// A trailing partial line is kept and terminated.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	flat := strings.ReplaceAll(s, "\n", "")
	if flat == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(flat) + len(flat)/width + 1)
	for i := 0; i < len(flat); i += width {
		end := min(i+width, len(flat))
		b.WriteString(flat[i:end])
		b.WriteByte('\n')
	}
	return b.String()
}

func clamp8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
