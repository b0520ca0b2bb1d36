package render

import (
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// ParseColor accepts any CSS colour: hex forms, rgb(), hsl(), hwb() and the
// named colours, plus "none" for no paint. The result is alpha-premultiplied.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.RGBA{}, false
	}
	if s == "none" {
		return color.RGBA{}, true
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.RGBA{}, false
	}
	r, g, b, a := c.RGBA255()
	return color.RGBAModel.Convert(color.NRGBA{R: r, G: g, B: b, A: a}).(color.RGBA), true
}

// ColorOr parses s and falls back to def when s is not a colour.
func ColorOr(s string, def color.RGBA) color.RGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return def
}
