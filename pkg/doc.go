// Package pkg provides the core libraries for asciicam, a terminal ASCII-art
// camera.
//
// # Overview
//
// asciicam reads frames from a camera, video file, or still images and turns
// each one into a block of ASCII glyphs sized for the terminal. The pkg
// directory is organized into four areas:
//
//  1. Frames and conversion: [frame], [ascii]
//  2. Inputs and outputs: [source], [device], [render]
//  3. Orchestration: [pipeline]
//  4. Support: [cache], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow of one capture run:
//
//	camera / files ([source], [device])
//	       ↓
//	  [frame.Frame] (RGB)
//	       ↓
//	  [ascii.Convert] (resize → sharpen → grayscale → quantize → wrap)
//	       ↓
//	  [render.Renderer] (console or TUI)   +   [render.Display] (raw window)
//
// [pipeline.Runner] drives the loop at a target frame rate until the source
// ends, the user quits, or the context is canceled.
//
// # Quick Start
//
// Convert a single image:
//
//	img, _, _ := image.Decode(f)
//	out, err := ascii.Convert(img, ascii.Options{Width: 80})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(out.Text)
//
// Stream a camera to stdout:
//
//	cam := device.NewCamera(device.CameraConfig{Device: "0"})
//	runner := pipeline.NewRunner(cam, render.NewConsole(os.Stdout), nil, logger)
//	result, err := runner.Run(ctx, pipeline.Options{Width: 100})
//
// # Package Guide
//
// [frame] - The RGB frame type shared by every stage, with conversions to and
// from image.Image.
//
// [ascii] - The frame transform and its building blocks: TargetHeight,
// Sharpen, Grayscale, Quantize, and Wrap. The default glyph ramp runs from
// dark to light.
//
// [source] - The Source interface plus in-memory and image-file sources.
// Animated GIFs decode to one frame per GIF frame.
//
// [device] - OpenCV-backed camera source and raw preview window. Requires
// OpenCV at build time.
//
// [render] - Console and full-screen TUI renderers, and the Display
// interface for raw frames.
//
// [pipeline] - Options, TOML config loading, the capture Runner, and the
// cached still-image Converter.
//
// [cache] - Content-addressed file cache for converted images.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for capture-loop and cache events.
//
// [buildinfo] - Version information set at build time.
//
// [frame]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/frame
// [ascii]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/ascii
// [source]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/source
// [device]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/device
// [render]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/buildinfo
// [frame.Frame]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/frame#Frame
// [ascii.Convert]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/ascii#Convert
// [render.Renderer]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/render#Renderer
// [render.Display]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/render#Display
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/asciicam/pkg/pipeline#Runner
package pkg
