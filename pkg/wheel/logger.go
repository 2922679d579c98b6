package wheel

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger for wheel diagnostics. By default the
// package logs nothing. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: ignored calls (Play while spinning, Stop while idle)
//     and phase transitions
//   - [slog.LevelWarn]: an undefined phase observed by a tick
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current wheel logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
