package animation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-drift/luckywheel/pkg/errors"
)

func TestFrameLoopRunsOncePerPump(t *testing.T) {
	loop := NewFrameLoop()
	calls := 0
	var step func()
	step = func() {
		calls++
		loop.RequestFrame(step)
	}
	loop.RequestFrame(step)

	for i := 1; i <= 5; i++ {
		if ran := loop.Pump(); ran != 1 {
			t.Fatalf("pump %d ran %d callbacks, want 1", i, ran)
		}
		if calls != i {
			t.Fatalf("after pump %d calls = %d", i, calls)
		}
	}
	if loop.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", loop.Frames())
	}
	if loop.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", loop.Pending())
	}
}

func TestFrameLoopOrder(t *testing.T) {
	loop := NewFrameLoop()
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		loop.RequestFrame(func() { got = append(got, i) })
	}
	loop.Pump()
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 2 {
		t.Errorf("callbacks ran in order %v, want [0 1 2]", got)
	}
}

func TestFrameLoopCancel(t *testing.T) {
	loop := NewFrameLoop()
	ran := false
	h := loop.RequestFrame(func() { ran = true })
	loop.CancelFrame(h)
	loop.CancelFrame(h) // second cancel is a no-op
	loop.CancelFrame(0)

	if n := loop.Pump(); n != 0 || ran {
		t.Errorf("cancelled callback ran (n=%d, ran=%v)", n, ran)
	}
}

func TestFrameLoopCancelWithinFrame(t *testing.T) {
	loop := NewFrameLoop()
	secondRan := false
	var second FrameHandle
	loop.RequestFrame(func() { loop.CancelFrame(second) })
	second = loop.RequestFrame(func() { secondRan = true })

	if n := loop.Pump(); n != 1 {
		t.Errorf("Pump ran %d callbacks, want 1", n)
	}
	if secondRan {
		t.Error("callback cancelled earlier in the same frame still ran")
	}
}

func TestFrameLoopRecoversPanics(t *testing.T) {
	var panics []*errors.PanicError
	errors.SetHandler(&recordingHandler{onPanic: func(p *errors.PanicError) { panics = append(panics, p) }})
	t.Cleanup(func() { errors.SetHandler(nil) })

	loop := NewFrameLoop()
	after := false
	loop.RequestFrame(func() { panic("paint exploded") })
	loop.RequestFrame(func() { after = true })

	if n := loop.Pump(); n != 2 {
		t.Errorf("Pump ran %d callbacks, want 2", n)
	}
	if !after {
		t.Error("callback after the panicking one did not run")
	}
	if len(panics) != 1 || panics[0].Value != "paint exploded" {
		t.Errorf("reported panics = %v", panics)
	}
	if got := loop.Panics(); got != 1 {
		t.Errorf("Panics() = %d, want 1", got)
	}

	loop.RequestFrame(func() {})
	loop.Pump()
	if got := loop.Panics(); got != 1 {
		t.Errorf("Panics() after a clean frame = %d, want 1", got)
	}
}

func TestFrameLoopRun(t *testing.T) {
	loop := NewFrameLoop()
	var mu sync.Mutex
	frames := 0
	ctx, cancel := context.WithCancel(context.Background())
	var step func()
	step = func() {
		mu.Lock()
		frames++
		n := frames
		mu.Unlock()
		if n == 3 {
			cancel()
			return
		}
		loop.RequestFrame(step)
	}
	loop.RequestFrame(step)

	err := loop.Run(ctx, time.Millisecond)
	if err != context.Canceled {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if frames != 3 {
		t.Errorf("frames = %d, want 3", frames)
	}
}

func TestSetClock(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := SetClock(fixedClock(fixed))
	defer SetClock(prev)

	if !Now().Equal(fixed) {
		t.Errorf("Now() = %v, want %v", Now(), fixed)
	}
	if Since(fixed) != 0 {
		t.Errorf("Since(now) = %v, want 0", Since(fixed))
	}

	SetClock(nil)
	if _, ok := clock.(realClock); !ok {
		t.Errorf("SetClock(nil) installed %T, want realClock", clock)
	}
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type recordingHandler struct {
	onPanic func(*errors.PanicError)
}

func (h *recordingHandler) HandleError(*errors.WheelError) {}

func (h *recordingHandler) HandlePanic(p *errors.PanicError) {
	if h.onPanic != nil {
		h.onPanic(p)
	}
}
