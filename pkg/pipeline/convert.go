package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/asciicam/pkg/ascii"
	"github.com/matzehuels/asciicam/pkg/cache"
	"github.com/matzehuels/asciicam/pkg/errors"
	"github.com/matzehuels/asciicam/pkg/observability"
	"github.com/matzehuels/asciicam/pkg/source"
)

// Converter converts encoded still images with caching.
//
// The Converter is stateless except for the cache and logger, so one
// Converter can serve many files.
type Converter struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewConverter creates a converter with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewConverter(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Converter {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Converter{Cache: c, Keyer: keyer, Logger: logger}
}

// Conversion is the output of converting one encoded image.
type Conversion struct {
	Name     string
	Frames   []ascii.Frame
	CacheHit bool
	Duration time.Duration
}

// ConvertFile reads and converts the image at path.
func (c *Converter) ConvertFile(ctx context.Context, path string, opts Options) (*Conversion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return c.Convert(ctx, path, data, opts)
}

// Convert converts encoded image data. Animated GIFs produce one ASCII
// frame per GIF frame. Results are cached by content hash and options.
func (c *Converter) Convert(ctx context.Context, name string, data []byte, opts Options) (*Conversion, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	key := c.Keyer.ConvertKey(cache.Hash(data), opts.ConvertKeyOpts())
	hooks := observability.Cache()

	if cached, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
		var frames []ascii.Frame
		if err := json.Unmarshal(cached, &frames); err == nil {
			hooks.OnCacheHit(ctx, "convert")
			c.Logger.Debug("cache hit", "image", name, "frames", len(frames))
			return &Conversion{Name: name, Frames: frames, CacheHit: true, Duration: time.Since(start)}, nil
		}
		// Unreadable entry: fall through and recompute.
	} else if err != nil {
		c.Logger.Warn("cache read failed", "err", err)
	}
	hooks.OnCacheMiss(ctx, "convert")

	raw, err := source.Decode(data, name)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", name)
	}

	convert := opts.ConvertOptions()
	frames := make([]ascii.Frame, 0, len(raw))
	for _, f := range raw {
		out, err := ascii.Convert(f, convert)
		if err != nil {
			return nil, err
		}
		frames = append(frames, out)
	}

	if encoded, err := json.Marshal(frames); err == nil {
		if err := c.Cache.Set(ctx, key, encoded, cache.TTLConvert); err != nil {
			c.Logger.Warn("cache write failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, "convert", len(encoded))
		}
	}

	c.Logger.Debug("converted image", "image", name, "frames", len(frames), "width", opts.Width)
	return &Conversion{Name: name, Frames: frames, Duration: time.Since(start)}, nil
}

// Close releases the cache.
func (c *Converter) Close() error {
	if c.Cache != nil {
		return c.Cache.Close()
	}
	return nil
}
