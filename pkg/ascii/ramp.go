package ascii

import "image"

// Ramp is the default glyph ramp, ordered from darkest to lightest.
const Ramp = "$@B%8&WM#*oahkbdpqwmZ0QLCJUYXzcvunxrjft/|()1{}[]?-_+~<>i!lI;:,\"^`'. "

// Quantize maps a luminance value to a glyph of ramp.
// The index is p*len(ramp)/256, so 0 always selects the first glyph and 255
// the last. ramp must not be empty.
func Quantize(p uint8, ramp string) byte {
	return ramp[int(p)*len(ramp)/256]
}

// Glyphs maps every pixel of gray, row by row, to its glyph.
func Glyphs(gray *image.Gray, ramp string) []byte {
	b := gray.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := gray.Pix[(y-b.Min.Y)*gray.Stride:]
		for x := 0; x < b.Dx(); x++ {
			out = append(out, Quantize(row[x], ramp))
		}
	}
	return out
}
