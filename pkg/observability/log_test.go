package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	UseLogger(l)
	t.Cleanup(Reset)

	Scene().OnSwap(ctx, 2, 5)
	Scene().OnImageLoadFailed(ctx, "/photos/gone.jpg", errors.New("missing"))
	Export().OnExportComplete(ctx, "out.png", 2048, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "render")
	HTTP().OnError(ctx, "GET", "/collage.png", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{
		"swap", "from=2", "to=5",
		"photo not loaded", "/photos/gone.jpg",
		"exported", "bytes=2048",
		"cache hit", "type=render",
		"request error", "boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel}))

	h.OnRebuildStart(ctx, "grid:3x3", 9)
	h.OnCacheMiss(ctx, "layout")
	if buf.Len() != 0 {
		t.Errorf("debug events logged at warn level: %s", buf.String())
	}

	h.OnRebuildComplete(ctx, "grid:3x3", 9, time.Second, errors.New("no photos"))
	if !strings.Contains(buf.String(), "rebuild failed") {
		t.Errorf("failure not logged: %s", buf.String())
	}
}

func TestNewLogHooksNilLogger(t *testing.T) {
	if h := NewLogHooks(nil); h.Logger == nil {
		t.Fatal("expected default logger")
	}
}
