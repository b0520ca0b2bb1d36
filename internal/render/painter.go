package render

import (
	"image/color"

	"sketchpad/internal/geom"
)

// Painter is a write-only drawing sink. Coordinates are logical pixels; the
// ratio passed to Begin maps them onto the backing buffer.
type Painter interface {
	// Begin sizes the backing buffer to width*ratio x height*ratio and scales
	// every later call by ratio.
	Begin(width, height, ratio float64)
	Clear(c color.RGBA)
	FillRect(r geom.Rect, c color.RGBA)
	StrokeRect(r geom.Rect, width float64, c color.RGBA)
	FillEllipse(r geom.Rect, c color.RGBA)
	StrokeEllipse(r geom.Rect, width float64, c color.RGBA)
	Line(a, b geom.Point, width float64, c color.RGBA)
	Polyline(points []geom.Point, width float64, c color.RGBA)
	// Text draws s with its baseline starting at at.
	Text(at geom.Point, s string, size float64, c color.RGBA)
	// TextBold is Text in the bold face, for panel headings.
	TextBold(at geom.Point, s string, size float64, c color.RGBA)
	MeasureText(s string, size float64) float64
}
