// Package canvas paints a lucky wheel into a raster image.
//
// Canvas redraws every wedge, label and segment image on each frame with
// github.com/fogleman/gg. Angles follow the 2D canvas convention: zero
// points at 3 o'clock and grows clockwise, while the pointer sits at
// 12 o'clock, so the canvas reports an origin of -90 degrees to the wheel.
//
// Segment images load in the background from an ImageSource. Recorder
// wraps a Canvas and keeps every painted frame for animated GIF export.
package canvas
