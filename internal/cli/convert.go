package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/asciicam/pkg/ascii"
	"github.com/matzehuels/asciicam/pkg/observability"
	"github.com/matzehuels/asciicam/pkg/pipeline"
	"github.com/matzehuels/asciicam/pkg/render"
	"github.com/matzehuels/asciicam/pkg/source"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		flags   runFlags
		output  string
		noCache bool
		play    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <image>...",
		Short: "Convert images to ASCII art",
		Long: `Convert PNG, JPEG, GIF, BMP, or WebP images to ASCII art.

Animated GIFs produce one frame per GIF frame. Results are cached by image
content and options; use --no-cache to bypass the cache. With --play, frames
are shown in the terminal at --fps instead of printed.`,
		Example: `  asciicam convert photo.jpg
  asciicam convert photo.jpg -w 160 -s 20 -o photo.txt
  asciicam convert --play --fps 12 dance.gif`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions()
			if err != nil {
				return err
			}
			applyRunFlags(cmd, flags, &opts)
			opts.Logger = loggerFromContext(cmd.Context())

			if play {
				return c.playFiles(cmd, args, opts)
			}
			return c.convertFiles(cmd, args, opts, output, noCache)
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&flags.width, "width", "w", pipeline.DefaultWidth, "output width in characters")
	fs.Float64VarP(&flags.sharpness, "sharpness", "s", pipeline.DefaultSharpness, "sharpness factor, 1 is unchanged")
	fs.StringVar(&flags.ramp, "ramp", "", "glyph ramp from darkest to lightest (default built-in)")
	fs.IntVar(&flags.fps, "fps", pipeline.DefaultFPS, "playback rate for --play")
	fs.StringVarP(&output, "output", "o", "", "write the result to a file instead of stdout")
	fs.BoolVar(&noCache, "no-cache", false, "disable the conversion cache")
	fs.BoolVar(&play, "play", false, "show frames in the terminal instead of printing them")

	return cmd
}

func (c *CLI) convertFiles(cmd *cobra.Command, paths []string, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	conv, err := c.newConverter(noCache)
	if err != nil {
		return err
	}
	defer conv.Close()

	hooks := &cacheLogHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.SetCacheHooks(observability.NoopCacheHooks{})

	prog := newProgress(logger)
	var frames []ascii.Frame
	for _, path := range paths {
		result, err := conv.ConvertFile(ctx, path, opts)
		if err != nil {
			return err
		}
		logger.Debug("converted", "image", path, "frames", len(result.Frames), "cached", result.CacheHit)
		frames = append(frames, result.Frames...)
	}
	prog.done(fmt.Sprintf("Converted %d image(s)", len(paths)))

	text := joinFrames(frames)
	if output == "" {
		_, err := fmt.Fprint(c.stdout, text)
		return err
	}

	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Wrote %d frame(s)", len(frames))
	printFile(output)
	printCacheStats(len(frames), hooks.hits, hooks.misses)
	return nil
}

// playFiles animates the decoded frames through the capture loop.
func (c *CLI) playFiles(cmd *cobra.Command, paths []string, opts pipeline.Options) error {
	logger := loggerFromContext(cmd.Context())
	runner := pipeline.NewRunner(source.NewFiles(paths...), render.NewConsole(c.stdout), nil, logger)
	result, err := runner.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	printRunSummary(result)
	return nil
}

// joinFrames separates consecutive frames with a blank line.
func joinFrames(frames []ascii.Frame) string {
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = f.Text
	}
	return strings.Join(parts, "\n")
}
