package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log
// records. Failures are logged at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l, or to the default logger when l
// is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l.WithPrefix("events")}
}

// UseLogger registers LogHooks for all event categories.
func UseLogger(l *log.Logger) {
	h := NewLogHooks(l)
	SetSceneHooks(h)
	SetExportHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnRebuildStart(_ context.Context, layout string, frames int) {
	h.Logger.Debug("rebuild", "layout", layout, "frames", frames)
}

func (h *LogHooks) OnRebuildComplete(_ context.Context, layout string, frames int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("rebuild failed", "layout", layout, "err", err)
		return
	}
	h.Logger.Debug("rebuilt", "layout", layout, "frames", frames, "duration", d)
}

func (h *LogHooks) OnImageLoadFailed(_ context.Context, path string, err error) {
	h.Logger.Warn("photo not loaded", "path", path, "err", err)
}

func (h *LogHooks) OnSwap(_ context.Context, from, to int) {
	h.Logger.Debug("swap", "from", from, "to", to)
}

func (h *LogHooks) OnDropIgnored(_ context.Context, reason string) {
	h.Logger.Debug("drop ignored", "reason", reason)
}

func (h *LogHooks) OnExportStart(_ context.Context, width, height int) {
	h.Logger.Debug("export", "width", width, "height", height)
}

func (h *LogHooks) OnExportComplete(_ context.Context, path string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("export failed", "path", path, "err", err)
		return
	}
	h.Logger.Debug("exported", "path", path, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.Logger.Warn("request error", "method", method, "path", path, "err", err)
}
