package markup

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	wheeltest "github.com/go-drift/luckywheel/pkg/testing"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

func TestPie_MountLayout(t *testing.T) {
	p := New(NewDocument(), Options{})
	if err := p.Mount(wheel.DemoSegments()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	slices := p.Slices()
	if len(slices) != 8 {
		t.Fatalf("slices = %d, want 8", len(slices))
	}
	tests := []struct {
		i         int
		transform string
		bg        string
	}{
		{0, "rotate(0deg) skewY(-45deg)", "#00A5EB"},
		{1, "rotate(45deg) skewY(-45deg)", "#fff"},
		{7, "rotate(315deg) skewY(-45deg)", "#fff"},
	}
	for _, tt := range tests {
		li := slices[tt.i]
		if got := StyleValue(li, "transform"); got != tt.transform {
			t.Errorf("slice %d transform = %q, want %q", tt.i, got, tt.transform)
		}
		if got := StyleValue(li, "background-color"); got != tt.bg {
			t.Errorf("slice %d background = %q, want %q", tt.i, got, tt.bg)
		}
		if attr(li, "class") != "slice" {
			t.Errorf("slice %d class = %q", tt.i, attr(li, "class"))
		}
	}
	if got := StyleValue(Query(slices[0], ".content"), "transform"); got != "skewY(45deg) rotate(22.5deg)" {
		t.Errorf("content transform = %q", got)
	}
	if img := Query(slices[0], "img"); img == nil || attr(img, "src") != "lucky.svg" {
		t.Errorf("expected the segment image, got %v", img)
	}
	if label := Query(slices[2], ".label"); label == nil || label.FirstChild.Data != "2 coins" {
		t.Errorf("unexpected label node %v", label)
	}
}

func TestPie_RemountReplacesSlices(t *testing.T) {
	p := New(NewDocument(), Options{ImageURL: func(id string) string { return "/img/" + id + ".png" }})
	if err := p.Mount(wheel.DemoSegments()); err != nil {
		t.Fatal(err)
	}
	segs := []wheel.Segment{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}, {Text: "e"}, {Text: "f"}}
	if err := p.Mount(segs); err != nil {
		t.Fatal(err)
	}
	n := 0
	for c := p.Container().FirstChild; c != nil; c = c.NextSibling {
		n++
	}
	if n != 6 {
		t.Errorf("container children = %d, want 6", n)
	}
	if got := StyleValue(p.Slices()[1], "transform"); got != "rotate(60deg) skewY(-30deg)" {
		t.Errorf("six-segment transform = %q", got)
	}
	content := Query(p.Slices()[1], ".content")
	if got := StyleValue(content, "transform"); got != "skewY(30deg) rotate(30deg)" {
		t.Errorf("six-segment content transform = %q", got)
	}
	if Query(p.Container(), "img") != nil {
		t.Error("segments without an image id should not get an img")
	}
}

func TestPie_MountErrors(t *testing.T) {
	p := New(NewDocument(), Options{Selector: "#nope"})
	if err := p.Mount(wheel.DemoSegments()); !stderrors.Is(err, ErrSurfaceNotFound) {
		t.Errorf("Mount with a bad selector = %v, want ErrSurfaceNotFound", err)
	}

	p = New(NewDocument(), Options{})
	if err := p.Mount(wheel.DemoSegments()[:3]); !stderrors.Is(err, ErrTooFewSegments) {
		t.Errorf("Mount with 3 segments = %v, want ErrTooFewSegments", err)
	}
	if err := p.Paint(10); !stderrors.Is(err, ErrSurfaceNotFound) {
		t.Errorf("Paint before Mount = %v, want ErrSurfaceNotFound", err)
	}
}

func TestPie_PaintAndRender(t *testing.T) {
	p := New(NewDocument(), Options{})
	if err := p.Mount(wheel.DemoSegments()); err != nil {
		t.Fatal(err)
	}
	if err := p.Paint(-22.5); err != nil {
		t.Fatal(err)
	}
	if got := p.Transform(); got != "rotate(-22.5deg)" {
		t.Errorf("transform = %q", got)
	}
	if err := p.Paint(1080); err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := p.Render(&b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		`<ul class="pie" style="transform: rotate(1080deg)">`,
		`<li class="slice" style="background-color: #00A5EB; color: #FFF; transform: rotate(0deg) skewY(-45deg)">`,
		"Try again",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestPie_DrivenByWheel(t *testing.T) {
	d := wheeltest.NewDriverWithT(t)
	p := New(NewDocument(), Options{})

	var finished []int
	w, err := wheel.New(wheel.Config{
		Segments:             wheel.DemoSegments(),
		AccelerationDuration: 500 * time.Millisecond,
		DecelerationDuration: 500 * time.Millisecond,
		OnFinished:           func(index int, _ bool) { finished = append(finished, index) },
	}, p, wheel.WithScheduler(d.Loop()))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Dispose()
	if got := p.Transform(); got != "rotate(-22.5deg)" {
		t.Fatalf("initial transform = %q", got)
	}

	w.Play()
	d.PumpFor(600 * time.Millisecond)
	w.Stop(5)
	if err := d.PumpAndSettle(5 * time.Second); err != nil {
		t.Fatal(err)
	}
	if len(finished) != 1 || finished[0] != 5 {
		t.Fatalf("finished = %v, want [5]", finished)
	}
	want := "rotate(" + formatDeg(w.Angle()) + "deg)"
	if got := p.Transform(); got != want {
		t.Errorf("transform = %q, want %q", got, want)
	}
	if w.Segment().Text != "Try again" {
		t.Errorf("pointer over %q", w.Segment().Text)
	}
}
