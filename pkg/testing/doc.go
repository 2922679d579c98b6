// Package testing provides deterministic frame and clock control for
// lucky wheel tests.
//
// # Quick Start
//
// Create a driver, build a wheel on its loop, and pump frames:
//
//	func TestSpin(t *testing.T) {
//	    d := wheeltest.NewDriverWithT(t)
//	    w, err := wheel.New(cfg, painter, wheel.WithScheduler(d.Loop()))
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    w.Play()
//	    d.PumpFor(2500 * time.Millisecond)
//	    w.Stop(3)
//
//	    if err := d.PumpAndSettle(5 * time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	}
//
// # Time
//
// Each Pump advances the fake clock by 16ms before running the frame, so
// the first tick after Play observes one frame of elapsed time. Advance
// the clock directly to simulate dropped frames:
//
//	d.Clock().Advance(time.Second)
//	d.Pump()
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import wheeltest "github.com/go-drift/luckywheel/pkg/testing"
package testing
