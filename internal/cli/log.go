package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathmaker/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Rendered lab.map (12ms)"
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

// logHooks reports store, cache and edit events at debug level.
type logHooks struct {
	logger *log.Logger
}

func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetStoreHooks(h)
	observability.SetCacheHooks(h)
	observability.SetEditHooks(h)
}

func (h logHooks) OnLoad(_ context.Context, backend, name string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "map", name, "backend", backend, "err", err)
		return
	}
	h.logger.Debug("loaded", "map", name, "backend", backend, "bytes", size, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnSave(_ context.Context, backend, name string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("save failed", "map", name, "backend", backend, "err", err)
		return
	}
	h.logger.Debug("saved", "map", name, "backend", backend, "bytes", size, "took", d.Round(time.Microsecond))
}

func (h logHooks) OnDelete(_ context.Context, backend, name string, err error) {
	h.logger.Debug("delete", "map", name, "backend", backend, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, name string) {
	h.logger.Debug("cache hit", "map", name)
}

func (h logHooks) OnCacheMiss(_ context.Context, name string) {
	h.logger.Debug("cache miss", "map", name)
}

func (h logHooks) OnCacheSet(_ context.Context, name string, size int) {
	h.logger.Debug("cache set", "map", name, "bytes", size)
}

func (h logHooks) OnPathCreated(_ context.Context, paths, x, y int) {
	h.logger.Debug("path created", "paths", paths, "x", x, "y", y)
}

func (h logHooks) OnConnect(_ context.Context, merged bool, added int) {
	if merged {
		h.logger.Debug("paths merged", "edges", added)
	}
}
