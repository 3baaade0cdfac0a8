package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/asciicam/pkg/ascii"
	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/observability"
	"github.com/matzehuels/asciicam/pkg/render"
	"github.com/matzehuels/asciicam/pkg/source"
)

// State is the lifecycle state of a [Runner].
type State int32

const (
	// StateStopped is the state before Run and after the loop exits.
	StateStopped State = iota

	// StateRunning is the state while frames are being processed.
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "stopped"
}

// StopReason records why a run ended.
type StopReason string

const (
	// ReasonEndOfStream means the source had no more frames or a read failed.
	ReasonEndOfStream StopReason = "end_of_stream"

	// ReasonQuit means the user pressed a quit key.
	ReasonQuit StopReason = "quit"

	// ReasonCanceled means the context was canceled.
	ReasonCanceled StopReason = "canceled"

	// ReasonFailed means the source could not be opened or a frame could
	// not be converted or rendered.
	ReasonFailed StopReason = "failed"
)

// Result summarizes a capture run.
type Result struct {
	RunID   string
	Frames  int
	Reason  StopReason
	Elapsed time.Duration
}

// FPS returns the average frame rate achieved over the run.
func (r *Result) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// Runner drives the capture loop.
//
// A Runner owns its source and display for the duration of one Run and
// releases both before Run returns. Renderers implementing io.Closer are
// closed as well. It is not safe to call Run concurrently.
type Runner struct {
	Source   source.Source
	Renderer render.Renderer
	Display  render.Display
	Logger   *log.Logger

	state atomic.Int32
}

// NewRunner creates a runner.
// If renderer is nil, frames are written to stdout with a Console.
// If display is nil, a NoopDisplay is used.
func NewRunner(src source.Source, renderer render.Renderer, display render.Display, logger *log.Logger) *Runner {
	if renderer == nil {
		renderer = render.NewConsole(os.Stdout)
	}
	if display == nil {
		display = render.NoopDisplay{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Source:   src,
		Renderer: renderer,
		Display:  display,
		Logger:   logger,
	}
}

// State reports whether the loop is running.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Run opens the source and processes frames until the loop stops.
//
// End of stream and user quit are successful exits. A canceled context
// returns ctx.Err(). Open failures return DEVICE_UNAVAILABLE without
// entering the loop; conversion and render failures return TRANSFORM_ERROR
// and RENDER_ERROR. The returned Result is non-nil whenever options were
// valid, including on error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if r.Source == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no frame source")
	}
	if !r.state.CompareAndSwap(int32(StateStopped), int32(StateRunning)) {
		return nil, errors.New(errors.ErrCodeInternal, "runner is already running")
	}
	defer r.state.Store(int32(StateStopped))

	renderer, display := r.Renderer, r.Display
	if renderer == nil {
		renderer = render.NewConsole(os.Stdout)
	}
	if display == nil {
		display = render.NoopDisplay{}
	}

	logger := opts.Logger
	hooks := observability.Loop()
	result := &Result{RunID: uuid.NewString()}
	name := describe(r.Source)

	openStart := time.Now()
	err := r.Source.Open(ctx)
	hooks.OnOpen(ctx, result.RunID, name, time.Since(openStart), err)
	if err != nil {
		closeLogged(logger, "display", display)
		closeRenderer(logger, renderer)
		result.Reason = ReasonFailed
		if errors.GetCode(err) != errors.ErrCodeDeviceUnavailable {
			err = errors.Wrap(errors.ErrCodeDeviceUnavailable, err, "open %s", name)
		}
		hooks.OnStop(ctx, result.RunID, string(result.Reason), 0, 0, err)
		return result, err
	}

	logger.Info("capture started", "run", result.RunID, "source", name, "fps", opts.FPS, "width", opts.Width)

	start := time.Now()
	reason, err := r.loop(ctx, opts, renderer, display, result)
	result.Reason = reason
	result.Elapsed = time.Since(start)

	closeLogged(logger, "source", r.Source)
	closeLogged(logger, "display", display)
	closeRenderer(logger, renderer)

	hooks.OnStop(ctx, result.RunID, string(reason), result.Frames, result.Elapsed, err)
	logger.Info("capture stopped",
		"reason", reason,
		"frames", result.Frames,
		"fps", fmt.Sprintf("%.1f", result.FPS()),
		"duration", result.Elapsed.Round(time.Millisecond))

	return result, err
}

// loop runs iterations until a stop condition. Cancellation is observed
// between iterations and during the inter-frame wait.
func (r *Runner) loop(ctx context.Context, opts Options, renderer render.Renderer, display render.Display, result *Result) (StopReason, error) {
	logger := opts.Logger
	hooks := observability.Loop()
	interval := time.Second / time.Duration(opts.FPS)
	convert := opts.ConvertOptions()

	for {
		if err := ctx.Err(); err != nil {
			return ReasonCanceled, err
		}
		tick := time.Now()

		raw, err := r.Source.Read(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ReasonCanceled, ctxErr
			}
			if stderrors.Is(err, io.EOF) {
				logger.Debug("end of stream", "frames", result.Frames)
			} else {
				logger.Warn("frame read failed", "err", err)
			}
			return ReasonEndOfStream, nil
		}

		out, err := ascii.Convert(raw, convert)
		if err != nil {
			return ReasonFailed, ensureCode(err, errors.ErrCodeTransform, "convert frame %d", result.Frames)
		}
		if err := renderer.Render(ctx, out); err != nil {
			return ReasonFailed, ensureCode(err, errors.ErrCodeRender, "render frame %d", result.Frames)
		}
		if err := display.Show(raw); err != nil {
			return ReasonFailed, ensureCode(err, errors.ErrCodeRender, "show frame %d", result.Frames)
		}

		hooks.OnFrame(ctx, result.RunID, result.Frames, time.Since(tick))
		result.Frames++

		if quitRequested(renderer, display) {
			logger.Debug("quit requested")
			return ReasonQuit, nil
		}

		if err := wait(ctx, interval-time.Since(tick)); err != nil {
			return ReasonCanceled, err
		}
	}
}

// quitRequested polls every sink that can observe a quit key.
func quitRequested(renderer render.Renderer, display render.Display) bool {
	if display.QuitRequested() {
		return true
	}
	q, ok := renderer.(render.Quitter)
	return ok && q.QuitRequested()
}

// wait sleeps for d or until ctx is done. Non-positive durations return
// immediately.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ensureCode wraps err with code unless it already carries one.
func ensureCode(err error, code errors.Code, format string, args ...any) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(code, err, format, args...)
}

func closeLogged(logger *log.Logger, what string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("release failed", "what", what, "err", err)
	}
}

// closeRenderer releases renderers that hold terminal state, such as the TUI.
func closeRenderer(logger *log.Logger, renderer render.Renderer) {
	if c, ok := renderer.(io.Closer); ok {
		closeLogged(logger, "renderer", c)
	}
}

func describe(src source.Source) string {
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", src)
}
