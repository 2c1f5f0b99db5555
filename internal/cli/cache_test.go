package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/collage/pkg/cache"
)

func TestCachePathCommand(t *testing.T) {
	isolate(t)
	out := captureStdout(t)

	if err := execute(t, "cache", "path"); err != nil {
		t.Fatal(err)
	}
	dir, _ := cacheDir()
	if got := strings.TrimSpace(out.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	isolate(t)
	out := captureStdout(t)

	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cache is empty") {
		t.Errorf("output = %q, want empty notice", out.String())
	}

	dir, _ := cacheDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cleared 3 cached entries") {
		t.Errorf("output = %q", out.String())
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if !e.IsDir() {
			t.Errorf("left behind %s", filepath.Join(dir, e.Name()))
		}
	}
}

func TestNewCache(t *testing.T) {
	isolate(t)
	c := New(os.Stderr, LogInfo)
	ctx := context.Background()

	nc, err := c.newCache(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := nc.(cache.NullCache); !ok {
		t.Errorf("--no-cache gave %T, want NullCache", nc)
	}

	fc, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fc.(*cache.FileCache); !ok {
		t.Errorf("default cache is %T, want *FileCache", fc)
	}

	t.Setenv(redisEnv, "not a url")
	fallback, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fallback.(*cache.FileCache); !ok {
		t.Errorf("bad redis url gave %T, want file cache fallback", fallback)
	}
}
