// Package animation provides the timing primitives the wheel is built on.
//
// # Core Components
//
//   - [FrameLoop]: the per-frame callback mechanism. A callback requested
//     with RequestFrame runs once on the next Pump; Run pumps on a real
//     ticker. Tests pump it by hand.
//
//   - [Clock]: the time source used for phase timing. Tests swap it with
//     SetClock to advance time deterministically.
//
//   - [EaseIn] and [EaseOut]: quadratic easing in (t, b, c, d) form, used
//     to ramp spin speed up and to settle onto the prize angle.
//
// # Basic Usage
//
//	loop := animation.NewFrameLoop()
//	var step func()
//	step = func() {
//	    // update and paint...
//	    loop.RequestFrame(step)
//	}
//	loop.RequestFrame(step)
//	go loop.Run(ctx, animation.DefaultFrameInterval)
package animation
