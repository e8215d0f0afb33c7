package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries
// to a logger. The CLI registers it when --verbose is set.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{Logger: l}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetRenderHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnRenderStart(_ context.Context, fingerprint string, formats []string) {
	h.Logger.Debug("render start", "avatar", short(fingerprint), "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, fingerprint string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "avatar", short(fingerprint), "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render done", "avatar", short(fingerprint), "formats", formats, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnFrameDropped(context.Context) {
	h.Logger.Debug("frame dropped, render in flight")
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

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("served", "method", method, "route", route, "status", status, "took", d.Round(time.Microsecond))
}

func short(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
