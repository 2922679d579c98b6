package canvas

import (
	stderrors "errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/go-drift/luckywheel/pkg/graphics"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

// Default option values.
const (
	DefaultSize      = 320.0
	DefaultPadding   = 24.0
	DefaultFontSize  = 16.0
	DefaultImageSize = 24.0
)

// Origin is the pointer direction in canvas angles (12 o'clock).
const Origin = -90.0

var (
	// ErrInvalidSize is returned by Mount for a non-positive surface size
	// or pixel ratio.
	ErrInvalidSize = stderrors.New("canvas: width, height and pixel ratio must be positive")
	// ErrSurfaceNotFound is returned by Paint before Mount.
	ErrSurfaceNotFound = stderrors.New("canvas: surface not mounted")
)

// Options configures a Canvas. Zero fields take their defaults.
type Options struct {
	// Width and Height are the logical surface size. Default 320.
	Width, Height float64
	// Padding is the gap between the rim and the label and image.
	// Default 24.
	Padding float64
	// PixelRatio scales the backing image; a 320x320 canvas at ratio 2
	// is backed by a 640x640 image. Default 1.
	PixelRatio float64
	// FontSize is the logical label size. Default 16.
	FontSize float64
	// ImageSize is the logical box segment images are scaled down to fit.
	// Default 24.
	ImageSize float64
	// Images provides segment images. Nil disables images.
	Images ImageSource
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = DefaultSize
	}
	if o.Height == 0 {
		o.Height = DefaultSize
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.PixelRatio == 0 {
		o.PixelRatio = 1
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.ImageSize == 0 {
		o.ImageSize = DefaultImageSize
	}
	return o
}

var (
	boldOnce sync.Once
	boldFont *truetype.Font
	boldErr  error
)

func labelFace(size float64) (font.Face, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = truetype.Parse(gobold.TTF)
	})
	if boldErr != nil {
		return nil, boldErr
	}
	return truetype.NewFace(boldFont, &truetype.Options{
		Size:    size,
		Hinting: font.HintingFull,
	}), nil
}

// Canvas is a wheel.Painter drawing into an in-memory raster surface.
type Canvas struct {
	opts Options

	dc       *gg.Context
	segments []wheel.Segment
	fills    []color.Color
	inks     []color.Color
	angle    float64

	mu     sync.RWMutex
	images map[string]image.Image
}

// New creates a canvas. The surface is allocated at Mount.
func New(opts Options) *Canvas {
	return &Canvas{opts: opts.withDefaults(), images: make(map[string]image.Image)}
}

// OriginAngle implements wheel.Oriented.
func (c *Canvas) OriginAngle() float64 { return Origin }

// Mount allocates the surface and resolves segment colors.
func (c *Canvas) Mount(segments []wheel.Segment) error {
	o := c.opts
	if !(o.Width > 0 && o.Height > 0 && o.PixelRatio > 0) {
		return fmt.Errorf("%w: %vx%v@%v", ErrInvalidSize, o.Width, o.Height, o.PixelRatio)
	}
	fills := make([]color.Color, len(segments))
	inks := make([]color.Color, len(segments))
	for i, seg := range segments {
		bg, err := graphics.ParseHex(seg.Background)
		if err != nil {
			return fmt.Errorf("canvas: segment %d background: %w", i, err)
		}
		fg, err := graphics.ParseHex(seg.Foreground)
		if err != nil {
			return fmt.Errorf("canvas: segment %d foreground: %w", i, err)
		}
		fills[i], inks[i] = bg, fg
	}
	face, err := labelFace(o.FontSize)
	if err != nil {
		return fmt.Errorf("canvas: label font: %w", err)
	}

	w := int(math.Round(o.Width * o.PixelRatio))
	h := int(math.Round(o.Height * o.PixelRatio))
	c.dc = gg.NewContext(w, h)
	c.dc.SetFontFace(face)
	c.segments = segments
	c.fills, c.inks = fills, inks
	Logger().Debug("surface ready", "width", w, "height", h, "ratio", o.PixelRatio, "segments", len(segments))
	return nil
}

// Paint clears the surface and draws the wheel rotated by angle degrees.
func (c *Canvas) Paint(angle float64) error {
	if c.dc == nil {
		return ErrSurfaceNotFound
	}
	c.angle = angle
	dc := c.dc
	o := c.opts

	dc.Identity()
	dc.SetColor(color.Transparent)
	dc.Clear()
	dc.Scale(o.PixelRatio, o.PixelRatio)

	cx, cy := o.Width/2, o.Height/2
	radius := o.Width / 2
	sector := 360 / float64(len(c.segments))

	c.mu.RLock()
	defer c.mu.RUnlock()
	for i, seg := range c.segments {
		start := angle + float64(i)*sector
		end := start + sector

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, gg.Radians(start), gg.Radians(end))
		dc.ClosePath()
		dc.SetColor(c.fills[i])
		dc.Fill()

		// Label and image sit just inside the wedge's trailing edge,
		// right-aligned against the rim padding.
		dc.Push()
		dc.Translate(cx, cy)
		dc.Rotate(gg.Radians(end))
		dc.SetColor(c.inks[i])
		tw, _ := dc.MeasureString(seg.Text)
		dc.DrawString(seg.Text, radius-tw-o.Padding, -10)
		if img := c.images[seg.ImageID]; img != nil {
			dc.DrawImage(img, int(radius-o.ImageSize-o.Padding), -50)
		}
		dc.Pop()
	}
	return nil
}

// Angle returns the angle of the last Paint.
func (c *Canvas) Angle() float64 { return c.angle }

// Image returns the surface. It is nil before Mount and is redrawn in
// place by every Paint.
func (c *Canvas) Image() image.Image {
	if c.dc == nil {
		return nil
	}
	return c.dc.Image()
}

// Snapshot returns a copy of the surface that later paints leave intact.
func (c *Canvas) Snapshot() *image.RGBA {
	src := c.Image()
	if src == nil {
		return nil
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	if rgba, ok := src.(*image.RGBA); ok {
		copy(dst.Pix, rgba.Pix)
		return dst
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}

// PointerPoint returns the surface pixel just inside the rim under the
// pointer, where the winning segment's fill is visible.
func (c *Canvas) PointerPoint() image.Point {
	o := c.opts
	x := o.Width / 2
	y := o.Height/2 - o.Width/2 + o.Padding/2
	return image.Pt(int(x*o.PixelRatio), int(y*o.PixelRatio))
}

// WritePNG encodes the current surface as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	if c.dc == nil {
		return ErrSurfaceNotFound
	}
	return c.dc.EncodePNG(w)
}

var (
	_ wheel.Painter  = (*Canvas)(nil)
	_ wheel.Oriented = (*Canvas)(nil)
)
