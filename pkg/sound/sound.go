// Package sound renders the peg clicks of a spinning wheel as audio.
//
// A ClickTrack follows a wheel like any other painter, noting the time of
// every segment boundary that passes the pointer. The clicks can then be
// rendered to a beep stream or a WAV file that lines up with a recording
// of the same spin.
package sound

import (
	stderrors "errors"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"

	"github.com/go-drift/luckywheel/pkg/animation"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

// DefaultSampleRate is used by WriteWAV when no rate is given.
const DefaultSampleRate = beep.SampleRate(44100)

// Click tone parameters.
const (
	ClickDuration  = 12 * time.Millisecond
	ClickFrequency = 1760.0
	clickGain      = 0.6
)

// ErrNoClicks is returned when rendering a track that recorded nothing.
var ErrNoClicks = stderrors.New("sound: no clicks recorded")

// ClickTrack is a wheel.Painter that records boundary crossings instead of
// drawing. Origin must match the painter that defines the wheel's
// orientation (0 for markup, -90 for canvas and terminal).
type ClickTrack struct {
	origin float64
	geom   wheel.Geometry

	started bool
	start   time.Time
	last    float64
	clicks  []time.Duration
}

// NewClickTrack creates a track for a wheel whose pointer sits at origin.
func NewClickTrack(origin float64) *ClickTrack {
	return &ClickTrack{origin: origin}
}

// Mount resets the track for segments.
func (c *ClickTrack) Mount(segments []wheel.Segment) error {
	c.geom = wheel.Geometry{N: len(segments), Origin: c.origin}
	c.Reset()
	return nil
}

// Reset forgets every recorded click. The next Paint starts a new track.
func (c *ClickTrack) Reset() {
	c.started = false
	c.clicks = nil
}

// Paint records one click per boundary crossed since the previous paint.
// The first paint only sets the reference time and angle.
func (c *ClickTrack) Paint(angle float64) error {
	now := animation.Now()
	if !c.started {
		c.started = true
		c.start = now
		c.last = angle
		return nil
	}
	n := c.crossings(c.last, angle)
	c.last = angle
	at := now.Sub(c.start)
	for i := 0; i < n; i++ {
		c.clicks = append(c.clicks, at)
	}
	return nil
}

// crossings counts the boundaries between from and to. A boundary is under
// the pointer whenever the rotation is congruent to the origin modulo one
// sector.
func (c *ClickTrack) crossings(from, to float64) int {
	if c.geom.N == 0 {
		return 0
	}
	s := c.geom.Sector()
	a := math.Floor((from - c.origin) / s)
	b := math.Floor((to - c.origin) / s)
	return int(math.Abs(b - a))
}

// Clicks returns the offsets of recorded clicks from the first paint.
func (c *ClickTrack) Clicks() []time.Duration {
	return append([]time.Duration(nil), c.clicks...)
}

// Duration is the length of the rendered track.
func (c *ClickTrack) Duration() time.Duration {
	if len(c.clicks) == 0 {
		return 0
	}
	return c.clicks[len(c.clicks)-1] + ClickDuration
}

// Streamer renders the clicks at sample rate sr. Clicks closer together
// than ClickDuration are cut short by the next one.
func (c *ClickTrack) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	if len(c.clicks) == 0 {
		return nil, ErrNoClicks
	}
	clickN := sr.N(ClickDuration)
	var parts []beep.Streamer
	cursor := 0
	for i, at := range c.clicks {
		pos := sr.N(at)
		if pos < cursor {
			pos = cursor
		}
		if pos > cursor {
			parts = append(parts, beep.Silence(pos-cursor))
		}
		n := clickN
		if i+1 < len(c.clicks) {
			if next := sr.N(c.clicks[i+1]); next-pos < n {
				n = next - pos
			}
		}
		if n <= 0 {
			continue
		}
		tone, err := generators.SineTone(sr, ClickFrequency)
		if err != nil {
			return nil, err
		}
		parts = append(parts, decay(beep.Take(n, tone), n))
		cursor = pos + n
	}
	return beep.Seq(parts...), nil
}

// decay applies a linear fade-out over n samples.
func decay(s beep.Streamer, n int) beep.Streamer {
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		m, ok := s.Stream(samples)
		for j := 0; j < m; j++ {
			g := clickGain * (1 - float64(i)/float64(n))
			samples[j][0] *= g
			samples[j][1] *= g
			i++
		}
		return m, ok
	})
}

// WriteWAV encodes the track as 16-bit stereo WAV at sr, or at
// DefaultSampleRate when sr is zero.
func (c *ClickTrack) WriteWAV(w io.WriteSeeker, sr beep.SampleRate) error {
	if sr == 0 {
		sr = DefaultSampleRate
	}
	s, err := c.Streamer(sr)
	if err != nil {
		return err
	}
	return wav.Encode(w, s, beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
}

var _ wheel.Painter = (*ClickTrack)(nil)
