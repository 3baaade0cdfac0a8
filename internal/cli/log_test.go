package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	// Test that it can log
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	prog := newProgress(logger)
	if prog == nil {
		t.Fatal("newProgress() returned nil")
	}

	// Small delay to ensure measurable duration
	time.Sleep(10 * time.Millisecond)

	prog.done("test completed")

	output := buf.String()
	if output == "" {
		t.Error("progress.done() should produce output")
	}

	// Should contain the message
	if !bytes.Contains(buf.Bytes(), []byte("test completed")) {
		t.Error("progress.done() output should contain message")
	}
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	ctxWithLogger := withLogger(ctx, logger)

	// Should be able to retrieve the logger
	retrieved := loggerFromContext(ctxWithLogger)
	if retrieved != logger {
		t.Error("loggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	ctx := context.Background()

	// Without logger in context, should return default
	logger := loggerFromContext(ctx)
	if logger == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

func TestLoggerFromContextWithValue(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	customLogger := newLogger(&buf, log.InfoLevel)

	ctx = withLogger(ctx, customLogger)
	retrieved := loggerFromContext(ctx)

	if retrieved != customLogger {
		t.Error("loggerFromContext should return the custom logger")
	}

	// Verify it works by logging
	retrieved.Info("test")
	if buf.Len() == 0 {
		t.Error("custom logger should write to buffer")
	}
}

func TestLoopLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := newLoopLogHooks(newLogger(&buf, log.DebugLevel))
	ctx := context.Background()

	h.OnOpen(ctx, "run-1", "camera(0)", 5*time.Millisecond, nil)
	h.OnFrame(ctx, "run-1", 0, time.Millisecond)
	h.OnFrame(ctx, "run-1", 1, time.Millisecond)
	h.OnStop(ctx, "run-1", "quit", 2, time.Second, nil)

	out := buf.String()
	for _, want := range []string{"source opened", "camera(0)", "run finished", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "index="); n != 1 {
		t.Errorf("logged %d frame lines, want 1 (only every %d frames)", n, frameLogInterval)
	}
}

func TestLoopLogHooksOpenError(t *testing.T) {
	var buf bytes.Buffer
	h := newLoopLogHooks(newLogger(&buf, log.DebugLevel))
	h.OnOpen(context.Background(), "run-1", "camera(7)", time.Millisecond, errors.New("busy"))

	if !strings.Contains(buf.String(), "open failed") {
		t.Errorf("log output %q should report the failed open", buf.String())
	}
}

func TestCacheLogHooks(t *testing.T) {
	h := &cacheLogHooks{}
	ctx := context.Background()
	h.OnCacheHit(ctx, "convert")
	h.OnCacheMiss(ctx, "convert")
	h.OnCacheMiss(ctx, "convert")
	h.OnCacheSet(ctx, "convert", 10)

	if h.hits != 1 || h.misses != 2 {
		t.Errorf("hits %d misses %d, want 1 and 2", h.hits, h.misses)
	}
}
