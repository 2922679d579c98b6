// Package errors provides structured error handling for the lucky wheel.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindSetup indicates the wheel or its painter could not be built,
	// for example because the target surface was not found.
	KindSetup
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
	// KindAsset indicates a segment image failed to load.
	KindAsset
	// KindRender indicates a painter failed to paint a frame.
	KindRender
	// KindPhase indicates the state machine observed an undefined phase.
	KindPhase
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindConfig:
		return "config"
	case KindAsset:
		return "asset"
	case KindRender:
		return "render"
	case KindPhase:
		return "phase"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// WheelError represents a structured error raised by a wheel or one of
// its painters.
type WheelError struct {
	// Op is the operation that failed (e.g., "canvas.Canvas.Mount").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Wheel is the ID of the wheel instance, if known.
	Wheel string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WheelError) Error() string {
	if e.Wheel != "" {
		return fmt.Sprintf("%s [%s] wheel=%s: %v", e.Op, e.Kind, e.Wheel, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WheelError) Unwrap() error {
	return e.Err
}

// New builds a WheelError for op without reporting it.
func New(op string, kind ErrorKind, err error) *WheelError {
	return &WheelError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "wheel.Wheel.tick").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by wheels, painters and the
// frame loop.
type ErrorHandler interface {
	// HandleError is called when a non-fatal error occurs.
	HandleError(err *WheelError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
