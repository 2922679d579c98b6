// Package graphics holds the color parsing shared by the painters.
package graphics

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses CSS hex notation: #RGB, #RRGGBB, #RGBA or #RRGGBBAA.
// The leading '#' is optional.
func ParseHex(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3, 6:
		c, err := colorful.Hex("#" + hex)
		if err != nil || !isHex(hex) {
			return color.NRGBA{}, fmt.Errorf("graphics: invalid hex color %q", s)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, nil
	case 4, 8:
		return parseAlphaHex(s, hex)
	}
	return color.NRGBA{}, fmt.Errorf("graphics: invalid hex color %q", s)
}

// parseAlphaHex handles the forms with an alpha digit pair, which
// colorful.Hex does not accept.
func parseAlphaHex(s, hex string) (color.NRGBA, error) {
	if len(hex) == 4 {
		var b strings.Builder
		for _, ch := range hex {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		hex = b.String()
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("graphics: invalid hex color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// isHex rejects input that fmt.Sscanf would accept as a prefix match.
func isHex(s string) bool {
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}
