// Package wheel implements the lucky wheel spin state machine.
//
// A Wheel owns the rotation angle and advances it once per frame through
// four phases: it accelerates on an ease-in curve to a cruising speed,
// holds that speed until Stop names a prize segment, and then eases out
// onto that segment. Painting is delegated to a Painter, so the same
// motion can drive a styled-markup pie, a raster canvas, a terminal, or
// several at once through MultiPainter.
//
// Frames come from an animation.FrameScheduler. Without WithScheduler the
// wheel creates its own *animation.FrameLoop, which the host must pump
// (typically via FrameLoop.Run):
//
//	w, err := wheel.New(wheel.Config{
//	    Segments:   wheel.DemoSegments(),
//	    OnFinished: func(index int, stopped bool) { fmt.Println("won", index) },
//	}, painter)
//	if err != nil {
//	    return err
//	}
//	go w.Scheduler().(*animation.FrameLoop).Run(ctx, 0)
//	w.Play()
//	// later, once the prize has been decided elsewhere
//	w.Stop(3)
package wheel
