package markup

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-drift/luckywheel/pkg/wheel"
)

// DefaultSelector locates the container in documents built by NewDocument.
const DefaultSelector = ".pie"

// MinSegments is the fewest segments the skewed-slice layout can draw:
// a slice is a square corner skewed by sector-90 degrees, which only
// works for sectors of at most 90 degrees.
const MinSegments = 4

var (
	// ErrSurfaceNotFound is returned by Mount when the selector matches
	// no element.
	ErrSurfaceNotFound = stderrors.New("markup: container not found")
	// ErrTooFewSegments is returned by Mount for fewer than MinSegments.
	ErrTooFewSegments = stderrors.New("markup: at least 4 segments are required")
)

// Options configures a Pie.
type Options struct {
	// Selector locates the rotating container. Default ".pie".
	Selector string
	// ImageURL maps a segment image id to an img src. Default "<id>.svg".
	// Segments without an image id get no img element.
	ImageURL func(id string) string
}

// Pie is a wheel.Painter that renders segments as skewed list items.
type Pie struct {
	doc       *html.Node
	opts      Options
	container *html.Node
	slices    []*html.Node
	angle     float64
}

// New creates a pie painting into doc. Nothing is resolved until Mount.
func New(doc *html.Node, opts Options) *Pie {
	if opts.Selector == "" {
		opts.Selector = DefaultSelector
	}
	if opts.ImageURL == nil {
		opts.ImageURL = func(id string) string { return id + ".svg" }
	}
	return &Pie{doc: doc, opts: opts}
}

// Mount resolves the container and replaces its children with one slice
// per segment.
func (p *Pie) Mount(segments []wheel.Segment) error {
	container := Query(p.doc, p.opts.Selector)
	if container == nil {
		return fmt.Errorf("%w: %q", ErrSurfaceNotFound, p.opts.Selector)
	}
	if len(segments) < MinSegments {
		return fmt.Errorf("%w: got %d", ErrTooFewSegments, len(segments))
	}
	for c := container.FirstChild; c != nil; {
		next := c.NextSibling
		container.RemoveChild(c)
		c = next
	}

	sector := 360 / float64(len(segments))
	p.slices = p.slices[:0]
	for i, seg := range segments {
		li := p.slice(i, sector, seg)
		container.AppendChild(li)
		p.slices = append(p.slices, li)
	}
	p.container = container
	return nil
}

func (p *Pie) slice(i int, sector float64, seg wheel.Segment) *html.Node {
	li := element(atom.Li, "slice")
	setStyle(li, "background-color", seg.Background)
	setStyle(li, "color", seg.Foreground)
	setStyle(li, "transform", fmt.Sprintf("rotate(%sdeg) skewY(%sdeg)",
		formatDeg(float64(i)*sector), formatDeg(sector-90)))

	// undo the skew and center the content on the slice's bisector
	content := element(atom.Div, "content")
	setStyle(content, "transform", fmt.Sprintf("skewY(%sdeg) rotate(%sdeg)",
		formatDeg(90-sector), formatDeg(sector/2)))
	if seg.ImageID != "" {
		pic := element(atom.Div, "")
		img := element(atom.Img, "")
		setAttr(img, "src", p.opts.ImageURL(seg.ImageID))
		setAttr(img, "alt", "")
		pic.AppendChild(img)
		content.AppendChild(pic)
	}
	label := element(atom.Div, "label")
	label.AppendChild(&html.Node{Type: html.TextNode, Data: seg.Text})
	content.AppendChild(label)
	li.AppendChild(content)
	return li
}

// Paint rewrites the container's rotation.
func (p *Pie) Paint(angle float64) error {
	if p.container == nil {
		return fmt.Errorf("%w: not mounted", ErrSurfaceNotFound)
	}
	p.angle = angle
	setStyle(p.container, "transform", "rotate("+formatDeg(angle)+"deg)")
	return nil
}

// Container returns the mounted container, or nil before Mount.
func (p *Pie) Container() *html.Node { return p.container }

// Slices returns the mounted slice elements in segment order.
func (p *Pie) Slices() []*html.Node { return p.slices }

// Transform returns the container's current transform value.
func (p *Pie) Transform() string {
	if p.container == nil {
		return ""
	}
	return StyleValue(p.container, "transform")
}

// Render writes the whole document.
func (p *Pie) Render(w io.Writer) error {
	return html.Render(w, p.doc)
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		setAttr(n, "class", class)
	}
	return n
}

func formatDeg(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// document is the standalone page used when the host has none.
const document = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Lucky wheel</title>
<style>
.lucky-div-wrap { position: relative; width: 300px; height: 300px; margin: 40px auto; }
.pie { position: relative; width: 100%; height: 100%; margin: 0; padding: 0; overflow: hidden; border-radius: 50%; list-style: none; }
.slice { position: absolute; top: 0; right: 0; width: 50%; height: 50%; overflow: hidden; transform-origin: 0% 100%; }
.slice .content { position: absolute; left: -100%; width: 200%; height: 200%; text-align: center; padding-top: 20px; }
.slice img { width: 24px; height: 24px; }
.arrow { position: absolute; top: -12px; left: 50%; transform: translateX(-50%); }
</style>
</head>
<body>
<div class="lucky-div-wrap">
<ul class="pie"></ul>
<div class="arrow">&#9660;</div>
</div>
</body>
</html>
`

// NewDocument returns a standalone page containing an empty ".pie"
// container and its stylesheet.
func NewDocument() *html.Node {
	doc, err := html.Parse(strings.NewReader(document))
	if err != nil {
		panic("markup: invalid built-in document: " + err.Error())
	}
	return doc
}

var _ wheel.Painter = (*Pie)(nil)
