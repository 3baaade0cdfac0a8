// Package pipeline runs the capture loop: read a frame, convert it to ASCII,
// render it, optionally show the raw frame, then wait for the next tick.
//
// # Architecture
//
// A [Runner] wires three collaborators together:
//
//  1. Source: where raw frames come from (camera, video file, images)
//  2. Renderer: where ASCII frames go (console or TUI)
//  3. Display: where raw frames go when the preview window is enabled
//
// The loop has two states. It enters [StateRunning] once the source is open
// and moves to [StateStopped] when the stream ends, the user quits, the
// context is canceled, or a frame cannot be converted or rendered. The source
// and display are released exactly once on every path out of the loop.
//
// A [Converter] covers the still-image path: it converts encoded images and
// caches the result by content hash.
//
// # Usage
//
//	runner := pipeline.NewRunner(device.NewCamera(cfg), render.NewConsole(os.Stdout), nil, logger)
//	result, err := runner.Run(ctx, pipeline.Options{FPS: 30, Sharpness: 20})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Frames, result.Reason)
package pipeline

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/asciicam/pkg/ascii"
	"github.com/matzehuels/asciicam/pkg/cache"
	"github.com/matzehuels/asciicam/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the output width in characters.
	DefaultWidth = ascii.DefaultWidth

	// DefaultSharpness is the sharpness factor applied before quantization.
	DefaultSharpness = ascii.DefaultSharpness

	// DefaultFPS is the target frame rate of the capture loop.
	DefaultFPS = 30

	// DefaultDevice is the first camera.
	DefaultDevice = "0"
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures a capture run. Options can be loaded from a TOML file
// with [LoadConfig]; zero values are replaced by defaults.
type Options struct {
	Width     int     `toml:"width"`
	Sharpness float64 `toml:"sharpness"`
	FPS       int     `toml:"fps"`
	ShowCam   bool    `toml:"show_cam"`
	Device    string  `toml:"device"`
	TUI       bool    `toml:"tui"`
	Ramp      string  `toml:"ramp"`

	// Runtime options (not loaded from config)
	Logger *log.Logger `toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// SetDefaults fills zero fields with defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Sharpness == 0 {
		o.Sharpness = DefaultSharpness
	}
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if o.Device == "" {
		o.Device = DefaultDevice
	}
	if o.Ramp == "" {
		o.Ramp = ascii.Ramp
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every field. Call SetDefaults first if zero values
// should be accepted.
func (o *Options) Validate() error {
	if err := errors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if err := errors.ValidateSharpness(o.Sharpness); err != nil {
		return err
	}
	if err := errors.ValidateFPS(o.FPS); err != nil {
		return err
	}
	if err := errors.ValidateDevice(o.Device); err != nil {
		return err
	}
	return errors.ValidateRamp(o.Ramp)
}

// ValidateAndSetDefaults applies defaults and validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ConvertOptions returns the per-frame transform options.
func (o *Options) ConvertOptions() ascii.Options {
	return ascii.Options{
		Width:     o.Width,
		Sharpness: o.Sharpness,
		Ramp:      o.Ramp,
	}
}

// ConvertKeyOpts returns cache key options for still-image conversion.
func (o *Options) ConvertKeyOpts() cache.ConvertKeyOpts {
	return cache.ConvertKeyOpts{
		Width:     o.Width,
		Sharpness: o.Sharpness,
		Ramp:      o.Ramp,
	}
}

// =============================================================================
// Config File
// =============================================================================

// LoadConfig reads Options from a TOML file. Unknown keys are rejected so
// typos do not silently fall back to defaults. The returned options are not
// validated.
func LoadConfig(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}
	return opts, nil
}
