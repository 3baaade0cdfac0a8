package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// Limits applied to user-supplied run options.
const (
	MaxWidth     = 1000
	MaxFPS       = 240
	MaxSharpness = 100.0
	MaxRampLen   = 256
)

// ValidateRamp validates a glyph ramp used for luminance quantization.
//
// The validation rules:
//   - No empty ramps
//   - Printable single-byte ASCII only, so every glyph is one terminal cell
//   - No line breaks, which would corrupt line formatting
//   - Maximum length of 256 glyphs (one per luminance level)
func ValidateRamp(ramp string) error {
	if ramp == "" {
		return New(ErrCodeInvalidInput, "ramp cannot be empty")
	}

	if len(ramp) > MaxRampLen {
		return New(ErrCodeInvalidInput, "ramp too long (max %d glyphs)", MaxRampLen)
	}

	for i := 0; i < len(ramp); i++ {
		c := ramp[i]
		if c > unicode.MaxASCII || c < ' ' || c == 0x7f {
			return New(ErrCodeInvalidInput, "ramp contains non-printable or non-ASCII byte %q at %d", c, i)
		}
	}

	return nil
}

// ValidateWidth validates an output width in characters.
func ValidateWidth(width int) error {
	if width <= 0 {
		return New(ErrCodeInvalidInput, "width must be positive, got %d", width)
	}
	if width > MaxWidth {
		return New(ErrCodeInvalidInput, "width too large (max %d characters)", MaxWidth)
	}
	return nil
}

// ValidateSharpness validates a sharpness enhancement factor.
// Values below 1 blur, 1 is identity, values above 1 sharpen.
func ValidateSharpness(factor float64) error {
	if factor != factor { // NaN
		return New(ErrCodeInvalidInput, "sharpness must be a number")
	}
	if factor < 0 {
		return New(ErrCodeInvalidInput, "sharpness cannot be negative, got %g", factor)
	}
	if factor > MaxSharpness {
		return New(ErrCodeInvalidInput, "sharpness too large (max %g)", MaxSharpness)
	}
	return nil
}

// ValidateFPS validates a target frame rate.
func ValidateFPS(fps int) error {
	if fps <= 0 {
		return New(ErrCodeInvalidInput, "fps must be positive, got %d", fps)
	}
	if fps > MaxFPS {
		return New(ErrCodeInvalidInput, "fps too large (max %d)", MaxFPS)
	}
	return nil
}

// deviceIndexRegex matches a numeric camera index.
var deviceIndexRegex = regexp.MustCompile(`^[0-9]{1,3}$`)

// ValidateDevice validates a capture device specifier.
// A device is either a camera index ("0", "1", ...) or a path to a video
// file or stream URL understood by the capture backend.
//
// Validation rules:
//   - Device cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateDevice(device string) error {
	if device == "" {
		return New(ErrCodeInvalidInput, "device cannot be empty")
	}

	const maxDeviceLength = 500
	if len(device) > maxDeviceLength {
		return New(ErrCodeInvalidInput, "device too long (max %d characters)", maxDeviceLength)
	}

	for _, r := range device {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "device contains invalid characters")
		}
	}

	return nil
}

// IsDeviceIndex reports whether device names a numeric camera index.
func IsDeviceIndex(device string) bool {
	return deviceIndexRegex.MatchString(strings.TrimSpace(device))
}
