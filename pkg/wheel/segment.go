package wheel

// Segment is one prize slot on the wheel. Segments are laid out in order
// clockwise: segment i spans [i*360/N, (i+1)*360/N) degrees in the
// painter's frame before rotation.
type Segment struct {
	// Text is the label painted on the slot.
	Text string `yaml:"text"`
	// Background is the slot fill as a CSS color (e.g. "#00A5EB").
	Background string `yaml:"background"`
	// Foreground is the label color as a CSS color.
	Foreground string `yaml:"foreground"`
	// ImageID names the illustrative image painted on the slot, if any.
	ImageID string `yaml:"image_id,omitempty"`
}

// DemoSegments returns the eight alternating prize slots used by the demo
// CLI and examples.
func DemoSegments() []Segment {
	labels := []string{
		"1 coin", "Try again", "2 coins", "Try again",
		"3 coins", "Try again", "4 coins", "Try again",
	}
	segs := make([]Segment, len(labels))
	for i, label := range labels {
		seg := Segment{Text: label, ImageID: "lucky"}
		if i%2 == 0 {
			seg.Background, seg.Foreground = "#00A5EB", "#FFF"
		} else {
			seg.Background, seg.Foreground = "#fff", "#1D6BE1"
		}
		segs[i] = seg
	}
	return segs
}
