// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks; binaries decide what
// to do with them. Nothing in this package depends on a metrics backend.
//
// # Usage
//
// Register hooks at startup:
//
//	func main() {
//	    observability.SetLoopHooks(&myLoopHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// The capture loop reports each step:
//
//	observability.Loop().OnOpen(ctx, runID, "camera(0)", duration, err)
//	observability.Loop().OnFrame(ctx, runID, index, duration)
//	observability.Loop().OnStop(ctx, runID, reason, frames, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Loop Hooks
// =============================================================================

// LoopHooks receives events from the capture loop.
type LoopHooks interface {
	// OnOpen records the attempt to acquire a frame source.
	OnOpen(ctx context.Context, runID, source string, duration time.Duration, err error)

	// OnFrame records one frame that was converted and rendered.
	OnFrame(ctx context.Context, runID string, index int, duration time.Duration)

	// OnStop records the end of a run and why it ended.
	OnStop(ctx context.Context, runID, reason string, frames int, elapsed time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLoopHooks is a no-op implementation of LoopHooks.
type NoopLoopHooks struct{}

func (NoopLoopHooks) OnOpen(context.Context, string, string, time.Duration, error) {}
func (NoopLoopHooks) OnFrame(context.Context, string, int, time.Duration)          {}
func (NoopLoopHooks) OnStop(context.Context, string, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	loopHooks  LoopHooks  = NoopLoopHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetLoopHooks registers custom capture loop hooks.
// Call it once at startup, before any run begins.
func SetLoopHooks(h LoopHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loopHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Loop returns the registered capture loop hooks.
func Loop() LoopHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loopHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	loopHooks = NoopLoopHooks{}
	cacheHooks = NoopCacheHooks{}
}
