package render

import (
	"image/color"

	"github.com/samber/lo"

	"sketchpad/internal/geom"
	"sketchpad/pkg/scene"
)

// Call is one recorded Painter invocation.
type Call struct {
	Op     string
	Rect   geom.Rect
	Points []geom.Point
	Text   string
	Size   float64
	Width  float64
	Color  color.RGBA
}

// Recorder is a Painter that keeps every call instead of drawing.
type Recorder struct {
	Width  float64
	Height float64
	Ratio  float64
	Calls  []Call
}

func (r *Recorder) Begin(width, height, ratio float64) {
	r.Width, r.Height, r.Ratio = width, height, ratio
	r.Calls = r.Calls[:0]
}

func (r *Recorder) Clear(c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: "clear", Color: c})
}

func (r *Recorder) FillRect(rc geom.Rect, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: "fillRect", Rect: rc, Color: c})
}

func (r *Recorder) StrokeRect(rc geom.Rect, width float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: "strokeRect", Rect: rc, Width: width, Color: c})
}

func (r *Recorder) FillEllipse(rc geom.Rect, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: "fillEllipse", Rect: rc, Color: c})
}

func (r *Recorder) StrokeEllipse(rc geom.Rect, width float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: "strokeEllipse", Rect: rc, Width: width, Color: c})
}

func (r *Recorder) Line(a, b geom.Point, width float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: "line", Points: []geom.Point{a, b}, Width: width, Color: c})
}

func (r *Recorder) Polyline(points []geom.Point, width float64, c color.RGBA) {
	pts := append([]geom.Point(nil), points...)
	r.Calls = append(r.Calls, Call{Op: "polyline", Points: pts, Width: width, Color: c})
}

func (r *Recorder) Text(at geom.Point, s string, size float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: "text", Points: []geom.Point{at}, Text: s, Size: size, Color: c})
}

func (r *Recorder) TextBold(at geom.Point, s string, size float64, c color.RGBA) {
	r.Calls = append(r.Calls, Call{Op: "textBold", Points: []geom.Point{at}, Text: s, Size: size, Color: c})
}

func (r *Recorder) MeasureText(s string, size float64) float64 {
	return scene.EstimateTextWidth(s, size)
}

// Ops lists the recorded operation names in call order.
func (r *Recorder) Ops() []string {
	return lo.Map(r.Calls, func(c Call, _ int) string { return c.Op })
}

// Filter returns the calls named op.
func (r *Recorder) Filter(op string) []Call {
	return lo.Filter(r.Calls, func(c Call, _ int) bool { return c.Op == op })
}
