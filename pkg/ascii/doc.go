// Package ascii converts images into ASCII art frames.
//
// # Overview
//
// A conversion is a short chain of pure steps. Each step takes the output of
// the previous one and none of them keep state between calls, so the same
// image and [Options] always produce the same [Frame]:
//
//  1. [Resize]: Lanczos resample to the target width. The height is derived
//     by [TargetHeight], which divides by [CharAspect] because terminal cells
//     are taller than they are wide.
//  2. [Sharpen]: blend the image away from a smoothed copy of itself by the
//     sharpness factor. Quantization throws away most fine detail, so strong
//     factors (around 20) often read better than the default 1.8.
//  3. [Grayscale]: ITU-R 601 luma, rounded once per pixel.
//  4. [Quantize]: integer table lookup into the glyph ramp.
//  5. [Wrap]: break the glyph string into lines of exactly Width glyphs.
//
// # Ramps
//
// [Ramp] is the default 68-glyph ramp, ordered from visually densest to
// sparsest. Index 0 is used for black, the last glyph for white. Any
// printable ASCII string can be supplied through [Options.Ramp].
//
// # Usage
//
//	f, err := ascii.Convert(img, ascii.Options{Width: 120, Sharpness: 20})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(f.Text)
package ascii
