package animation_test

import (
	"fmt"

	"github.com/go-drift/luckywheel/pkg/animation"
)

// This example shows a self-scheduling per-frame task, the shape every
// wheel tick loop takes.
func ExampleFrameLoop() {
	loop := animation.NewFrameLoop()

	angle := 0.0
	var tick func()
	tick = func() {
		angle += 20
		if angle < 60 {
			loop.RequestFrame(tick)
		}
	}
	loop.RequestFrame(tick)

	for loop.Pending() > 0 {
		loop.Pump()
	}
	fmt.Printf("angle=%.0f frames=%d\n", angle, loop.Frames())

	// Output:
	// angle=60 frames=3
}

// This example shows the quadratic easing used to ramp speed up and to
// settle onto the prize.
func ExampleEaseOut() {
	const duration = 2500.0
	for _, ms := range []float64{0, 1250, 2500} {
		fmt.Printf("t=%4.0f in=%5.1f out=%5.1f\n", ms,
			animation.EaseIn(ms, 0, 100, duration),
			animation.EaseOut(ms, 0, 100, duration))
	}

	// Output:
	// t=   0 in=  0.0 out=  0.0
	// t=1250 in= 25.0 out= 75.0
	// t=2500 in=100.0 out=100.0
}
