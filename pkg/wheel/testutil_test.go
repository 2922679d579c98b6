package wheel

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/go-drift/luckywheel/pkg/errors"
)

// recordingPainter records every call made by a wheel.
type recordingPainter struct {
	mu       sync.Mutex
	mounted  []Segment
	mounts   int
	angles   []float64
	err      error
	panicAt  int
	mountErr error
}

func (p *recordingPainter) Mount(segments []Segment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounts++
	p.mounted = segments
	return p.mountErr
}

func (p *recordingPainter) Paint(angle float64) error {
	p.mu.Lock()
	p.angles = append(p.angles, angle)
	n := len(p.angles)
	err := p.err
	p.mu.Unlock()
	if p.panicAt > 0 && n == p.panicAt {
		panic("paint exploded")
	}
	return err
}

func (p *recordingPainter) paints() []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]float64(nil), p.angles...)
}

// orientedPainter reports a canvas-style origin.
type orientedPainter struct {
	*recordingPainter
	origin float64
}

func (p orientedPainter) OriginAngle() float64 { return p.origin }

// preloadPainter hands its done callback to the test.
type preloadPainter struct {
	*recordingPainter
	ctx  context.Context
	done func()
}

func (p *preloadPainter) Preload(ctx context.Context, done func()) {
	p.ctx = ctx
	p.done = done
}

type capturedErrors struct {
	mu     sync.Mutex
	errs   []*errors.WheelError
	panics []*errors.PanicError
}

func (c *capturedErrors) HandleError(err *errors.WheelError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

func (c *capturedErrors) HandlePanic(err *errors.PanicError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panics = append(c.panics, err)
}

// captureErrors installs a recording error handler for the test.
func captureErrors(t *testing.T) *capturedErrors {
	t.Helper()
	c := &capturedErrors{}
	prev := errors.DefaultHandler
	errors.SetHandler(c)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return c
}

// captureLogs routes wheel logs into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

type finish struct {
	index   int
	stopped bool
}

// finishRecorder collects OnFinished calls.
type finishRecorder struct {
	mu    sync.Mutex
	calls []finish
}

func (r *finishRecorder) onFinished(index int, stopped bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, finish{index, stopped})
}

func (r *finishRecorder) all() []finish {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]finish(nil), r.calls...)
}

func eightSegments() []Segment {
	return DemoSegments()
}
