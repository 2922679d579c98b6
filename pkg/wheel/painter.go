package wheel

import (
	"context"
	stderrors "errors"
	"sync"
)

// Painter draws the wheel. A wheel mounts its painter once and then calls
// Paint with the current rotation after every tick. Painters read the
// angle; they never change wheel state.
type Painter interface {
	// Mount prepares the painter for segments. Surface lookup and layout
	// happen here; an error aborts wheel construction.
	Mount(segments []Segment) error
	// Paint draws the wheel rotated clockwise by angle degrees.
	Paint(angle float64) error
}

// Oriented is implemented by painters whose pointer does not sit at zero
// degrees in their own frame. A canvas measuring angles from 3 o'clock
// with the pointer at 12 o'clock reports -90.
type Oriented interface {
	OriginAngle() float64
}

// Preloader is implemented by painters that load assets in the
// background. Preload must return promptly and call done exactly once,
// from any goroutine, when every asset has either loaded or failed.
type Preloader interface {
	Preload(ctx context.Context, done func())
}

// OriginOf returns the pointer direction of p, or 0 when p does not
// implement Oriented.
func OriginOf(p Painter) float64 {
	if o, ok := p.(Oriented); ok {
		return o.OriginAngle()
	}
	return 0
}

// MultiPainter fans every call out to several painters so that, for
// example, a canvas, a GIF recorder and a click track can follow one
// wheel. Its origin is that of the first Oriented painter.
type MultiPainter []Painter

// Mount mounts every painter and stops at the first failure.
func (m MultiPainter) Mount(segments []Segment) error {
	for _, p := range m {
		if err := p.Mount(segments); err != nil {
			return err
		}
	}
	return nil
}

// Paint paints every painter, even after a failure, and joins the errors.
func (m MultiPainter) Paint(angle float64) error {
	var errs []error
	for _, p := range m {
		if err := p.Paint(angle); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// OriginAngle implements Oriented.
func (m MultiPainter) OriginAngle() float64 {
	for _, p := range m {
		if o, ok := p.(Oriented); ok {
			return o.OriginAngle()
		}
	}
	return 0
}

// Preload starts every Preloader and calls done once all of them have
// settled. done runs on its own goroutine even when no painter preloads.
func (m MultiPainter) Preload(ctx context.Context, done func()) {
	var wg sync.WaitGroup
	for _, p := range m {
		if pl, ok := p.(Preloader); ok {
			wg.Add(1)
			var once sync.Once
			pl.Preload(ctx, func() { once.Do(wg.Done) })
		}
	}
	go func() {
		wg.Wait()
		done()
	}()
}
