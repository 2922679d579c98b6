package canvas

import (
	stderrors "errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"io"
	"math"
	"time"

	"golang.org/x/image/draw"

	"github.com/go-drift/luckywheel/pkg/animation"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

// ErrNoFrames is returned by WriteGIF before anything was painted.
var ErrNoFrames = stderrors.New("canvas: no frames recorded")

// minDelay is the shortest GIF frame delay, in 100ths of a second, that
// browsers honor.
const minDelay = 2

// Recorder is a Canvas that keeps a paletted copy of every painted frame.
// Frame delays follow the animation clock, so a recording made under a
// fake clock plays back at the simulated speed.
type Recorder struct {
	*Canvas

	// MaxFrames caps the recording; later paints are drawn but not kept.
	// Zero means no limit.
	MaxFrames int

	pal    color.Palette
	frames []*image.Paletted
	delays []int
	last   time.Time
}

// NewRecorder wraps c.
func NewRecorder(c *Canvas) *Recorder {
	return &Recorder{Canvas: c}
}

// Mount mounts the canvas and builds the GIF palette from the segment
// colors.
func (r *Recorder) Mount(segments []wheel.Segment) error {
	if err := r.Canvas.Mount(segments); err != nil {
		return err
	}
	r.pal = buildPalette(r.Canvas.fills, r.Canvas.inks)
	r.frames, r.delays = nil, nil
	return nil
}

// Paint paints the canvas and records the result.
func (r *Recorder) Paint(angle float64) error {
	if err := r.Canvas.Paint(angle); err != nil {
		return err
	}
	if r.MaxFrames > 0 && len(r.frames) >= r.MaxFrames {
		return nil
	}
	if n := len(r.delays); n > 0 {
		r.delays[n-1] = delayOf(animation.Since(r.last))
	}
	r.last = animation.Now()

	src := r.Canvas.Image()
	frame := image.NewPaletted(src.Bounds(), r.pal)
	draw.FloydSteinberg.Draw(frame, frame.Bounds(), src, src.Bounds().Min)
	r.frames = append(r.frames, frame)
	r.delays = append(r.delays, minDelay)
	if len(r.frames) == r.MaxFrames {
		Logger().Debug("recorder full", "frames", r.MaxFrames)
	}
	return nil
}

// Hold extends the display time of the last recorded frame by d, so the
// animation lingers on the result before looping.
func (r *Recorder) Hold(d time.Duration) {
	if n := len(r.delays); n > 0 {
		r.delays[n-1] += delayOf(d)
	}
}

// Frames returns the number of recorded frames.
func (r *Recorder) Frames() int { return len(r.frames) }

// Delays returns the frame delays in 100ths of a second.
func (r *Recorder) Delays() []int { return append([]int(nil), r.delays...) }

// WriteGIF encodes the recording as a looping animated GIF.
func (r *Recorder) WriteGIF(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &gif.GIF{
		Image:     r.frames,
		Delay:     r.delays,
		LoopCount: 0,
	})
}

func delayOf(d time.Duration) int {
	return max(minDelay, int(math.Round(d.Seconds()*100)))
}

// buildPalette puts the transparent background and the exact segment
// colors first, then fills the remaining slots from Plan 9's palette.
func buildPalette(groups ...[]color.Color) color.Palette {
	pal := color.Palette{color.Transparent}
	seen := map[color.RGBA]bool{{}: true}
	add := func(c color.Color) {
		if len(pal) >= 256 {
			return
		}
		key := color.RGBAModel.Convert(c).(color.RGBA)
		if seen[key] {
			return
		}
		seen[key] = true
		pal = append(pal, c)
	}
	for _, g := range groups {
		for _, c := range g {
			add(c)
		}
	}
	for _, c := range palette.Plan9 {
		add(c)
	}
	return pal
}

var _ wheel.Painter = (*Recorder)(nil)
