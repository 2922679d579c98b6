package errors

import (
	"context"
	"log/slog"
)

// LogHandler is an ErrorHandler that writes errors through log/slog.
type LogHandler struct {
	// Logger receives the records. Nil uses slog.Default().
	Logger *slog.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs a WheelError. Asset failures are logged at warn level
// since painting continues without the asset.
func (h *LogHandler) HandleError(err *WheelError) {
	if err == nil {
		return
	}
	level := slog.LevelError
	if err.Kind == KindAsset {
		level = slog.LevelWarn
	}
	attrs := []any{"op", err.Op, "err", err.Err}
	if h.Verbose {
		attrs = append(attrs, "kind", err.Kind.String())
		if err.Wheel != "" {
			attrs = append(attrs, "wheel", err.Wheel)
		}
		if err.StackTrace != "" {
			attrs = append(attrs, "stack", err.StackTrace)
		}
	}
	h.logger().Log(context.Background(), level, "[wheel error]", attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"value", err.Value}
	if err.Op != "" {
		attrs = append([]any{"op", err.Op}, attrs...)
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger().Error("[wheel panic]", attrs...)
}
