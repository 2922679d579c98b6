package canvas

import (
	"bytes"
	stderrors "errors"
	"image/gif"
	"testing"
	"time"

	wheeltest "github.com/go-drift/luckywheel/pkg/testing"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

func TestRecorder_RecordsSpin(t *testing.T) {
	d := wheeltest.NewDriverWithT(t)
	r := NewRecorder(New(Options{Width: 80, Height: 80, Padding: 6, FontSize: 6}))

	w, err := wheel.New(wheel.Config{
		Segments:             wheel.DemoSegments(),
		AccelerationDuration: 100 * time.Millisecond,
		DecelerationDuration: 100 * time.Millisecond,
	}, r, wheel.WithScheduler(d.Loop()))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()

	w.Play()
	d.PumpFor(160 * time.Millisecond)
	w.Stop(0)
	if err := d.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}
	frames := r.Frames()
	if frames < 10 {
		t.Fatalf("recorded %d frames, want one per paint", frames)
	}
	r.Hold(time.Second)
	delays := r.Delays()
	if delays[1] != 2 {
		t.Errorf("delay of a 16ms frame = %d, want 2", delays[1])
	}
	if last := delays[len(delays)-1]; last != 102 {
		t.Errorf("held delay = %d, want 102", last)
	}

	var buf bytes.Buffer
	if err := r.WriteGIF(&buf); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != frames {
		t.Errorf("gif frames = %d, want %d", len(g.Image), frames)
	}
	if len(g.Image[0].Palette) > 256 {
		t.Errorf("palette too large: %d", len(g.Image[0].Palette))
	}
}

func TestRecorder_MaxFramesAndEmpty(t *testing.T) {
	r := NewRecorder(New(Options{Width: 40, Height: 40, Padding: 4}))
	if err := r.WriteGIF(&bytes.Buffer{}); !stderrors.Is(err, ErrNoFrames) {
		t.Errorf("WriteGIF with no frames = %v", err)
	}
	r.MaxFrames = 3
	if err := r.Mount(wheel.DemoSegments()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := r.Paint(float64(i * 10)); err != nil {
			t.Fatal(err)
		}
	}
	if r.Frames() != 3 {
		t.Errorf("frames = %d, want 3", r.Frames())
	}
}

func TestBuildPalette(t *testing.T) {
	c := New(Options{})
	if err := c.Mount(wheel.DemoSegments()); err != nil {
		t.Fatal(err)
	}
	pal := buildPalette(c.fills, c.inks)
	if len(pal) != 256 {
		t.Errorf("palette size = %d, want 256", len(pal))
	}
	// transparent, then the four distinct demo colors
	if pal.Index(blue) != 1 {
		t.Errorf("segment blue at index %d, want 1", pal.Index(blue))
	}
}
