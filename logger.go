package shx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every log record. Enabled reports false, so callers
// skip message formatting and disabled logging stays near zero cost.
// Decoders log per record, which makes that the hot path.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger returns a logger that drops all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger. Swapped atomically, so SetLogger
// may race freely with logging from decode goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for shx and its sub-packages.
// By default, shx produces no log output. Call SetLogger to enable logging.
//
// SetLogger stores the new logger atomically and is safe to call
// concurrently with decoding. Passing nil restores the silent default.
//
// Log levels used by shx:
//   - [slog.LevelDebug]: per-record decode diagnostics (skipped glyph
//     entries, truncated payloads, unresolved sub-shape references)
//   - [slog.LevelWarn]: recovered oddities (content table decode failure,
//     unknown opcode, scale divide by zero)
//
// Example:
//
//	// Enable warn-level logging to stderr:
//	shx.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full decode diagnostics:
//	shx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by shx.
// Sub-packages (export/) call this to share the same logger
// configuration without introducing import cycles.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
