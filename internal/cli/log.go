package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/asciicam/pkg/observability"
)

// newLogger creates a logger that writes timestamps as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took when it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Converted 3 images (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// frameLogInterval is how often per-frame timings are logged at debug level.
const frameLogInterval = 100

// loopLogHooks reports capture loop events through the logger.
type loopLogHooks struct {
	logger *log.Logger
}

func newLoopLogHooks(l *log.Logger) *loopLogHooks {
	return &loopLogHooks{logger: l}
}

func (h *loopLogHooks) OnOpen(_ context.Context, runID, source string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("open failed", "source", source, "after", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("source opened", "source", source, "after", d.Round(time.Millisecond))
}

func (h *loopLogHooks) OnFrame(_ context.Context, _ string, index int, d time.Duration) {
	if index%frameLogInterval == 0 {
		h.logger.Debug("frame", "index", index, "took", d.Round(time.Microsecond))
	}
}

func (h *loopLogHooks) OnStop(_ context.Context, runID, reason string, frames int, _ time.Duration, err error) {
	h.logger.Debug("run finished", "run", runID, "reason", reason, "frames", frames, "err", err)
}

// cacheLogHooks counts cache traffic for the convert summary.
type cacheLogHooks struct {
	hits, misses int
}

func (h *cacheLogHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *cacheLogHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *cacheLogHooks) OnCacheSet(context.Context, string, int) {}

var (
	_ observability.LoopHooks  = (*loopLogHooks)(nil)
	_ observability.CacheHooks = (*cacheLogHooks)(nil)
)
