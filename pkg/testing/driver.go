package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/luckywheel/pkg/animation"
)

// DefaultFrameDuration is the fake time that passes per pumped frame.
const DefaultFrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when a pump loop exceeds its timeout.
var ErrSettleTimeout = errors.New("pump timed out: frame loop did not settle")

// Driver runs a FrameLoop against a FakeClock so wheels advance
// deterministically. Creating a Driver installs its clock as the
// animation clock; Cleanup restores the previous one.
type Driver struct {
	loop      *animation.FrameLoop
	clock     *FakeClock
	prevClock animation.Clock
	frame     time.Duration
}

// NewDriver creates a driver with a fresh loop and fake clock.
// Call Cleanup() when done, or use NewDriverWithT() instead.
func NewDriver() *Driver {
	d := &Driver{
		loop:  animation.NewFrameLoop(),
		clock: NewFakeClock(),
		frame: DefaultFrameDuration,
	}
	d.prevClock = animation.SetClock(d.clock)
	return d
}

// NewDriverWithT creates a driver that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewDriverWithT(t testing.TB) *Driver {
	d := NewDriver()
	t.Cleanup(d.Cleanup)
	return d
}

// Cleanup restores the animation clock that was active before NewDriver.
func (d *Driver) Cleanup() {
	animation.SetClock(d.prevClock)
}

// Loop returns the frame loop to hand to wheel.WithScheduler.
func (d *Driver) Loop() *animation.FrameLoop {
	return d.loop
}

// Clock returns the fake clock for advancing time in tests.
func (d *Driver) Clock() *FakeClock {
	return d.clock
}

// SetFrameDuration changes the fake time advanced per frame.
func (d *Driver) SetFrameDuration(frame time.Duration) {
	if frame > 0 {
		d.frame = frame
	}
}

// Pump advances the clock by one frame and then runs that frame's
// callbacks. It returns the number of callbacks run.
func (d *Driver) Pump() int {
	d.clock.Advance(d.frame)
	return d.loop.Pump()
}

// PumpFor pumps frames until at least elapsed fake time has passed and
// returns the number of frames pumped.
func (d *Driver) PumpFor(elapsed time.Duration) int {
	frames := 0
	for start := d.clock.Elapsed(); d.clock.Elapsed()-start < elapsed; frames++ {
		d.Pump()
	}
	return frames
}

// PumpUntil pumps frames until cond reports true. cond is checked before
// every frame. Returns ErrSettleTimeout if cond is still false once
// timeout of fake time has passed.
func (d *Driver) PumpUntil(cond func() bool, timeout time.Duration) error {
	var elapsed time.Duration
	for elapsed < timeout {
		if cond() {
			return nil
		}
		d.Pump()
		elapsed += d.frame
	}
	if cond() {
		return nil
	}
	return ErrSettleTimeout
}

// PumpAndSettle pumps frames until no callbacks are pending.
// Returns ErrSettleTimeout if the loop does not settle within timeout.
func (d *Driver) PumpAndSettle(timeout time.Duration) error {
	return d.PumpUntil(func() bool { return d.loop.Pending() == 0 }, timeout)
}
