package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	wheeltest "github.com/go-drift/luckywheel/pkg/testing"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

type nopPainter struct{}

func (nopPainter) Mount([]wheel.Segment) error { return nil }
func (nopPainter) Paint(float64) error         { return nil }

func demoConfig() wheel.Config {
	cfg := wheel.DefaultConfig()
	cfg.Segments = wheel.DemoSegments()
	return cfg
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestSpinKey(t *testing.T) {
	d := wheeltest.NewDriverWithT(t)
	var got []int
	cfg := demoConfig()
	cfg.OnFinished = func(index int, stopped bool) { got = append(got, index) }
	w, err := wheel.New(cfg, nopPainter{}, wheel.WithScheduler(d.Loop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Dispose()

	if spinKey(w, runeKey(' ')) {
		t.Fatal("space should not quit")
	}
	d.PumpFor(cfg.AccelerationDuration + 100*time.Millisecond)
	if w.Phase() != wheel.PhaseConstant {
		t.Fatalf("phase = %v, want constant", w.Phase())
	}

	spinKey(w, runeKey('9'))
	spinKey(w, runeKey('x'))
	d.PumpFor(100 * time.Millisecond)
	if w.Phase() != wheel.PhaseConstant {
		t.Fatalf("out of range digit changed phase to %v", w.Phase())
	}

	spinKey(w, runeKey('3'))
	if err := d.PumpAndSettle(10 * time.Second); err != nil {
		t.Fatalf("PumpAndSettle: %v", err)
	}
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("finished = %v, want [3]", got)
	}
}

func TestSpinKeyQuit(t *testing.T) {
	d := wheeltest.NewDriverWithT(t)
	w, err := wheel.New(demoConfig(), nopPainter{}, wheel.WithScheduler(d.Loop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Dispose()

	for _, ev := range []*tcell.EventKey{
		runeKey('q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		if !spinKey(w, ev) {
			t.Errorf("%v should quit", ev.Name())
		}
	}
	if spinKey(w, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Error("enter should not quit")
	}
	if w.Phase() != wheel.PhaseIdle {
		t.Errorf("phase = %v, want idle", w.Phase())
	}
}

func TestParseTermArgs(t *testing.T) {
	opts, err := parseTermArgs([]string{"--config", "w.yaml", "--radius=6", "--log", "spin.log", "--verbose"})
	if err != nil {
		t.Fatalf("parseTermArgs: %v", err)
	}
	if opts.config != "w.yaml" || opts.radius != 6 || opts.log != "spin.log" || !opts.verbose {
		t.Errorf("opts = %+v", opts)
	}

	for _, args := range [][]string{
		{"--radius", "1"},
		{"--radius", "x"},
		{"--bogus"},
		{"--config"},
	} {
		if _, err := parseTermArgs(args); err == nil {
			t.Errorf("parseTermArgs(%q) should fail", args)
		}
	}
}

func TestForwardEvents_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tcell.Event, 1)
	polled := make(chan struct{}, 3)
	poll := func() tcell.Event {
		polled <- struct{}{}
		return runeKey('x')
	}

	done := make(chan struct{})
	go func() {
		forwardEvents(ctx, poll, events)
		close(done)
	}()

	// the first event fills the channel; the second blocks on send
	<-polled
	<-polled
	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("forwardEvents did not return after cancel with a full channel")
	}
	if len(events) != 1 {
		t.Errorf("events buffered = %d, want 1", len(events))
	}
}

func TestForwardEvents_StopsOnNil(t *testing.T) {
	events := make(chan tcell.Event, 4)
	queue := []tcell.Event{runeKey('a'), runeKey('b'), nil}
	forwardEvents(context.Background(), func() tcell.Event {
		ev := queue[0]
		queue = queue[1:]
		return ev
	}, events)
	if len(events) != 2 {
		t.Errorf("forwarded %d events, want 2", len(events))
	}
}
