package cli

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matzehuels/asciicam/pkg/cache"
)

func TestCacheDirHonorsXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only consulted on Linux")
	}
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(base, "asciicam"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestClearCache(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := clearCache(dir)
	if err != nil {
		t.Fatalf("clearCache() error: %v", err)
	}
	if n != 2 {
		t.Errorf("clearCache() = %d, want 2", n)
	}
	if left, _ := fc.Len(); left != 0 {
		t.Errorf("%d entries left after clear", left)
	}
}
