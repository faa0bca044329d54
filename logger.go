package plasma

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the package logger used by renderers created
// without WithLogger. By default, plasma produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent
// default. Renderers pick up the logger when they are created.
//
// Log levels used by plasma:
//   - [slog.LevelDebug]: per-frame diagnostics (slot index, skipped frames)
//   - [slog.LevelInfo]: lifecycle events (ring allocated, pipeline created)
//   - [slog.LevelWarn]: non-fatal issues (frames still pending on the GPU)
//
// Example:
//
//	plasma.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by GPUs that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to gpu if it implements loggerSetter.
func propagateLogger(gpu GPU, l *slog.Logger) {
	if ls, ok := gpu.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
