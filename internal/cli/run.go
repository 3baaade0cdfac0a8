package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/matzehuels/asciicam/pkg/ascii"
	"github.com/matzehuels/asciicam/pkg/device"
	"github.com/matzehuels/asciicam/pkg/observability"
	"github.com/matzehuels/asciicam/pkg/pipeline"
	"github.com/matzehuels/asciicam/pkg/render"
	"github.com/matzehuels/asciicam/pkg/source"
)

// runFlags holds the flag values shared by the root and run commands.
type runFlags struct {
	width     int
	sharpness float64
	fps       int
	showCam   bool
	device    string
	tui       bool
	ramp      string
}

// bindRunFlags registers the capture flags on cmd.
func bindRunFlags(cmd *cobra.Command, f *runFlags) {
	fs := cmd.Flags()
	fs.IntVarP(&f.width, "width", "w", pipeline.DefaultWidth, "output width in characters (0 fits the terminal)")
	fs.Float64VarP(&f.sharpness, "sharpness", "s", pipeline.DefaultSharpness,
		fmt.Sprintf("sharpness factor, 1 is unchanged (%g recovers detail on most webcams)", ascii.StrongSharpness))
	fs.IntVar(&f.fps, "fps", pipeline.DefaultFPS, "target frames per second")
	fs.BoolVar(&f.showCam, "show-cam", false, "also show the raw camera image in a window")
	fs.StringVarP(&f.device, "device", "d", pipeline.DefaultDevice, "camera index, video file, or stream URL")
	fs.BoolVar(&f.tui, "tui", false, "render in a full-screen terminal UI with a status bar")
	fs.StringVar(&f.ramp, "ramp", "", "glyph ramp from darkest to lightest (default built-in)")
}

// runCommand creates the run command.
func (c *CLI) runCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Stream a camera to the terminal as ASCII art",
		Long: `Stream frames from a camera or video file to the terminal as ASCII art.

Press Ctrl+C to stop. With --show-cam or --tui, q and Esc also stop.`,
		Example: `  asciicam run
  asciicam run --width 0 --sharpness 20
  asciicam run --device clip.mp4 --fps 24 --tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCapture(cmd, flags)
		},
	}

	bindRunFlags(cmd, &flags)
	return cmd
}

// runCapture resolves options, wires the capture loop, and runs it.
func (c *CLI) runCapture(cmd *cobra.Command, flags runFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := c.loadOptions()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, flags, &opts)
	if opts.Width == 0 && cmd.Flags().Changed("width") {
		opts.Width = terminalWidth(c.stdout, pipeline.DefaultWidth)
		logger.Debug("fitting terminal", "width", opts.Width)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	if opts.TUI && logger.GetLevel() > log.DebugLevel {
		// Info lines would scroll the alternate screen.
		logger = logger.With()
		logger.SetLevel(log.ErrorLevel)
	}
	opts.Logger = logger

	observability.SetLoopHooks(newLoopLogHooks(logger))

	cam := device.NewCamera(device.CameraConfig{Device: opts.Device})
	src := &spinnerSource{Source: cam, message: fmt.Sprintf("Opening %s...", cam)}

	runner := pipeline.NewRunner(src, c.newRenderer(ctx, opts), c.newDisplay(opts), logger)
	result, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	printRunSummary(result)
	return nil
}

// applyRunFlags copies explicitly set flags over config values.
func applyRunFlags(cmd *cobra.Command, f runFlags, opts *pipeline.Options) {
	changed := cmd.Flags().Changed
	if changed("width") {
		opts.Width = f.width
	}
	if changed("sharpness") {
		opts.Sharpness = f.sharpness
	}
	if changed("fps") {
		opts.FPS = f.fps
	}
	if changed("show-cam") {
		opts.ShowCam = f.showCam
	}
	if changed("device") {
		opts.Device = f.device
	}
	if changed("tui") {
		opts.TUI = f.tui
	}
	if changed("ramp") {
		opts.Ramp = f.ramp
	}
}

func (c *CLI) newRenderer(ctx context.Context, opts pipeline.Options) render.Renderer {
	if opts.TUI {
		return render.NewTUI(ctx, c.stdin, c.stdout)
	}
	return render.NewConsole(c.stdout)
}

func (c *CLI) newDisplay(opts pipeline.Options) render.Display {
	if opts.ShowCam {
		return device.NewWindow(device.DefaultWindowTitle)
	}
	return render.NoopDisplay{}
}

// terminalWidth returns the width of w when it is a terminal, or fallback.
func terminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return fallback
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// =============================================================================
// Spinner Source
// =============================================================================

// spinnerSource shows a spinner while the wrapped source opens. Opening a
// camera can take a second or two while the driver negotiates a format.
type spinnerSource struct {
	source.Source
	message string
}

func (s *spinnerSource) Open(ctx context.Context) error {
	sp := newSpinnerWithContext(ctx, s.message)
	sp.Start()
	err := s.Source.Open(ctx)
	sp.Stop()
	return err
}

func (s *spinnerSource) String() string {
	if str, ok := s.Source.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%T", s.Source)
}
