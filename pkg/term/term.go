// Package term paints a lucky wheel as colored terminal cells.
package term

import (
	stderrors "errors"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/go-drift/luckywheel/pkg/graphics"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

// Origin is the pointer direction in screen angles (12 o'clock). Rows grow
// downward, so angles run clockwise from 3 o'clock as on a canvas.
const Origin = -90.0

// CellAspect is the height of a terminal cell divided by its width.
const CellAspect = 2.0

// ErrScreenTooSmall is returned by Paint when the screen cannot fit a
// wheel with at least MinRadius rows.
var ErrScreenTooSmall = stderrors.New("term: screen too small")

// MinRadius is the smallest wheel radius, in rows, that Paint will draw.
const MinRadius = 2

// Screen is the part of tcell.Screen the painter draws with.
type Screen interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Options configures a Painter.
type Options struct {
	// Radius is the wheel radius in rows. Zero fits the screen.
	Radius int
	// HideLabel suppresses the label of the segment under the pointer.
	HideLabel bool
}

// Painter is a wheel.Painter drawing onto a terminal screen.
type Painter struct {
	screen Screen
	opts   Options

	geom     wheel.Geometry
	segments []wheel.Segment
	fills    []tcell.Style
	labels   []tcell.Style
}

// New creates a painter for screen.
func New(screen Screen, opts Options) *Painter {
	return &Painter{screen: screen, opts: opts}
}

// OriginAngle implements wheel.Oriented.
func (p *Painter) OriginAngle() float64 { return Origin }

// Mount resolves segment colors to terminal styles.
func (p *Painter) Mount(segments []wheel.Segment) error {
	if p.screen == nil {
		return stderrors.New("term: nil screen")
	}
	fills := make([]tcell.Style, len(segments))
	labels := make([]tcell.Style, len(segments))
	for i, seg := range segments {
		bg, err := graphics.ParseHex(seg.Background)
		if err != nil {
			return fmt.Errorf("term: segment %d background: %w", i, err)
		}
		fg, err := graphics.ParseHex(seg.Foreground)
		if err != nil {
			return fmt.Errorf("term: segment %d foreground: %w", i, err)
		}
		fills[i] = tcell.StyleDefault.Background(tcell.FromImageColor(bg))
		labels[i] = tcell.StyleDefault.Background(tcell.FromImageColor(bg)).Foreground(tcell.FromImageColor(fg)).Bold(true)
	}
	p.geom = wheel.Geometry{N: len(segments), Origin: Origin}
	p.segments = segments
	p.fills, p.labels = fills, labels
	return nil
}

// Layout returns the wheel center cell and radius in rows for a screen of
// the given size.
func (p *Painter) Layout(width, height int) (cx, cy, radius int) {
	radius = p.opts.Radius
	if radius <= 0 {
		// leave a row for the pointer and two for the label
		radius = min((height-4)/2, int(float64(width-2)/(2*CellAspect)))
	}
	return width / 2, 1 + radius, radius
}

// Paint redraws the whole screen with the wheel rotated by angle degrees.
func (p *Painter) Paint(angle float64) error {
	if p.fills == nil {
		return stderrors.New("term: painter not mounted")
	}
	w, h := p.screen.Size()
	cx, cy, r := p.Layout(w, h)
	if r < MinRadius {
		return fmt.Errorf("%w: %dx%d", ErrScreenTooSmall, w, h)
	}
	sector := p.geom.Sector()
	rr := float64(r) * float64(r)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x-cx) / CellAspect
			dy := float64(y - cy)
			if dx*dx+dy*dy > rr {
				p.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			theta := math.Atan2(dy, dx) * 180 / math.Pi
			rel := math.Mod(theta-angle, 360)
			if rel < 0 {
				rel += 360
			}
			i := int(rel/sector) % p.geom.N
			p.screen.SetContent(x, y, ' ', nil, p.fills[i])
		}
	}

	p.screen.SetContent(cx, cy-r-1, '▼', nil, tcell.StyleDefault.Bold(true))
	if !p.opts.HideLabel {
		i := p.geom.SegmentAt(angle)
		p.drawText(cx, cy+r+2, " "+p.segments[i].Text+" ", p.labels[i], w, h)
	}
	p.screen.Show()
	return nil
}

func (p *Painter) drawText(cx, y int, s string, style tcell.Style, w, h int) {
	if y < 0 || y >= h {
		return
	}
	runes := []rune(s)
	x := cx - len(runes)/2
	for _, r := range runes {
		if x >= 0 && x < w {
			p.screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

var (
	_ wheel.Painter  = (*Painter)(nil)
	_ wheel.Oriented = (*Painter)(nil)
)
