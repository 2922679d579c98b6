package animation

import (
	"context"
	"sync"
	"time"

	"github.com/go-drift/luckywheel/pkg/errors"
)

// DefaultFrameInterval is the frame cadence used by Run when no interval
// is given (~60fps).
const DefaultFrameInterval = 16 * time.Millisecond

// FrameHandle identifies a pending frame request. The zero handle is
// never issued and is safe to pass to CancelFrame.
type FrameHandle uint64

// FrameScheduler is the host's per-frame callback mechanism: a callback
// requested now runs once, after the next frame is ready.
type FrameScheduler interface {
	// RequestFrame schedules fn to run on the next frame.
	RequestFrame(fn func()) FrameHandle
	// CancelFrame removes a pending request. Cancelling a request that
	// already ran, or the zero handle, is a no-op.
	CancelFrame(h FrameHandle)
}

type frameRequest struct {
	handle FrameHandle
	fn     func()
}

// FrameLoop is a FrameScheduler driven by explicit pumps.
//
// Each call to Pump runs the callbacks that were pending when the pump
// started, in request order. Callbacks requested while a pump is running
// land on the following pump, so a callback that re-requests itself runs
// exactly once per frame. RequestFrame and CancelFrame are safe for
// concurrent use; Pump must only be called from one goroutine at a time.
type FrameLoop struct {
	mu      sync.Mutex
	next    FrameHandle
	pending []frameRequest
	running []frameRequest
	frames  uint64
	panics  uint64
}

// NewFrameLoop creates an empty frame loop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// RequestFrame schedules fn for the next pump.
func (l *FrameLoop) RequestFrame(fn func()) FrameHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.pending = append(l.pending, frameRequest{handle: l.next, fn: fn})
	return l.next
}

// CancelFrame removes a pending request. A request belonging to the
// frame currently being pumped is skipped if it has not run yet.
func (l *FrameLoop) CancelFrame(h FrameHandle) {
	if h == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, req := range l.pending {
		if req.handle == h {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
	for i := range l.running {
		if l.running[i].handle == h {
			l.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next pump.
func (l *FrameLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Frames returns the number of pumps run so far.
func (l *FrameLoop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Panics returns the number of callbacks that panicked so far.
func (l *FrameLoop) Panics() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.panics
}

// Pump advances one frame and returns the number of callbacks it ran.
// A panicking callback is reported and does not prevent the remaining
// callbacks of the frame from running.
func (l *FrameLoop) Pump() int {
	l.mu.Lock()
	l.running = l.pending
	l.pending = nil
	l.frames++
	n := len(l.running)
	l.mu.Unlock()

	ran := 0
	for i := 0; i < n; i++ {
		l.mu.Lock()
		fn := l.running[i].fn
		l.running[i].fn = nil
		l.mu.Unlock()
		if fn == nil {
			continue
		}
		l.runFrameCallback(fn)
		ran++
	}

	l.mu.Lock()
	l.running = nil
	l.mu.Unlock()
	return ran
}

func (l *FrameLoop) runFrameCallback(fn func()) {
	defer errors.RecoverWithCallback("animation.FrameLoop.Pump", func(any) {
		l.mu.Lock()
		l.panics++
		l.mu.Unlock()
	})
	fn()
}

// Run pumps the loop every interval until ctx is done. It returns
// ctx.Err(). An interval <= 0 uses DefaultFrameInterval.
func (l *FrameLoop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Pump()
		}
	}
}
