package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"sketchpad/internal/geom"
	"sketchpad/pkg/scene"
)

// Raster paints anti-aliased paths and text into a FrameBuffer.
type Raster struct {
	fb    *FrameBuffer
	ratio float64
	z     *vector.Rasterizer
	fonts *Fonts
}

func NewRaster(fb *FrameBuffer, fonts *Fonts) *Raster {
	if fb == nil {
		fb = NewFrameBuffer(1, 1)
	}
	if fonts == nil {
		fonts = NewFonts()
	}
	return &Raster{fb: fb, ratio: 1, z: vector.NewRasterizer(1, 1), fonts: fonts}
}

func (r *Raster) Buffer() *FrameBuffer { return r.fb }

func (r *Raster) Begin(width, height, ratio float64) {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 0 {
		ratio = 1
	}
	r.ratio = ratio
	r.fb.Resize(int(math.Ceil(width*ratio)), int(math.Ceil(height*ratio)))
}

func (r *Raster) Clear(c color.RGBA) { r.fb.Clear(c) }

// FillRect writes opaque pixel-aligned rectangles straight into the buffer.
func (r *Raster) FillRect(rc geom.Rect, c color.RGBA) {
	rc = rc.Normalize()
	if x, y, w, h, ok := r.pixelRect(rc); ok && c.A == 0xff {
		r.fb.FillRect(x, y, w, h, c)
		return
	}
	r.fill(c, geom.RectPath(rc))
}

// pixelRect maps rc to whole device pixels when every edge lands on one.
func (r *Raster) pixelRect(rc geom.Rect) (x, y, w, h int, ok bool) {
	edges := [4]float64{rc.X * r.ratio, rc.Y * r.ratio, rc.W * r.ratio, rc.H * r.ratio}
	for _, v := range edges {
		if v != math.Trunc(v) || math.Abs(v) > 1<<30 {
			return 0, 0, 0, 0, false
		}
	}
	return int(edges[0]), int(edges[1]), int(edges[2]), int(edges[3]), true
}

// StrokeRect centres a band of the given width on the rectangle edge.
func (r *Raster) StrokeRect(rc geom.Rect, width float64, c color.RGBA) {
	if !(width > 0) {
		return
	}
	rc = rc.Normalize()
	outer := geom.RectPath(rc.Inset(-width / 2))
	inner := rc.Inset(width / 2)
	if inner.W <= 0 || inner.H <= 0 {
		r.fill(c, outer)
		return
	}
	r.fill(c, outer, reversed(geom.RectPath(inner)))
}

func (r *Raster) FillEllipse(rc geom.Rect, c color.RGBA) {
	r.fill(c, r.ellipse(rc.Normalize()))
}

func (r *Raster) StrokeEllipse(rc geom.Rect, width float64, c color.RGBA) {
	if !(width > 0) {
		return
	}
	rc = rc.Normalize()
	outer := r.ellipse(rc.Inset(-width / 2))
	inner := rc.Inset(width / 2)
	if inner.W <= 0 || inner.H <= 0 {
		r.fill(c, outer)
		return
	}
	r.fill(c, outer, reversed(r.ellipse(inner)))
}

func (r *Raster) Line(a, b geom.Point, width float64, c color.RGBA) {
	r.Polyline([]geom.Point{a, b}, width, c)
}

// Polyline strokes every segment as a quad. Interior ends are extended by
// half the width so joints have no notch.
func (r *Raster) Polyline(points []geom.Point, width float64, c color.RGBA) {
	if len(points) < 2 || !(width > 0) || math.IsInf(width, 1) {
		return
	}
	half := width / 2
	quads := make([][]geom.Point, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if !a.Finite() || !b.Finite() {
			return
		}
		dx, dy := b.X-a.X, b.Y-a.Y
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		ux, uy := dx/length, dy/length
		if i > 1 {
			a = geom.Point{X: a.X - ux*half, Y: a.Y - uy*half}
		}
		if i < len(points)-1 {
			b = geom.Point{X: b.X + ux*half, Y: b.Y + uy*half}
		}
		nx, ny := -uy*half, ux*half
		quads = append(quads, []geom.Point{
			{X: a.X + nx, Y: a.Y + ny},
			{X: b.X + nx, Y: b.Y + ny},
			{X: b.X - nx, Y: b.Y - ny},
			{X: a.X - nx, Y: a.Y - ny},
		})
	}
	r.fill(c, quads...)
}

func (r *Raster) Text(at geom.Point, s string, size float64, c color.RGBA) {
	r.text(at, s, size, c, false)
}

func (r *Raster) TextBold(at geom.Point, s string, size float64, c color.RGBA) {
	r.text(at, s, size, c, true)
}

func (r *Raster) text(at geom.Point, s string, size float64, c color.RGBA, bold bool) {
	if s == "" || !at.Finite() {
		return
	}
	face := r.fonts.Face(size*r.ratio, bold)
	if face == nil {
		return
	}
	x, y := at.X*r.ratio, at.Y*r.ratio
	if x > float64(r.fb.W) || y < 0 || y-size*r.ratio > float64(r.fb.H) {
		return
	}
	d := font.Drawer{
		Dst:  r.fb.Image(),
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(s)
}

func (r *Raster) MeasureText(s string, size float64) float64 {
	face := r.fonts.Face(size*r.ratio, false)
	if face == nil {
		return scene.EstimateTextWidth(s, size)
	}
	return advance(face, s) / r.ratio
}

// fill rasterizes the given closed subpaths (logical coordinates) with the
// nonzero rule, restricted to their device-space bounding box.
func (r *Raster) fill(c color.RGBA, paths ...[]geom.Point) {
	if c.A == 0 || len(paths) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, path := range paths {
		for _, p := range path {
			if !p.Finite() {
				return
			}
			minX = math.Min(minX, p.X*r.ratio)
			minY = math.Min(minY, p.Y*r.ratio)
			maxX = math.Max(maxX, p.X*r.ratio)
			maxY = math.Max(maxY, p.Y*r.ratio)
		}
	}
	if minX > maxX {
		return
	}
	if maxX < 0 || maxY < 0 || minX > float64(r.fb.W) || minY > float64(r.fb.H) {
		return
	}
	box := image.Rect(
		int(math.Floor(math.Max(minX, 0))), int(math.Floor(math.Max(minY, 0))),
		int(math.Ceil(math.Min(maxX, float64(r.fb.W)))), int(math.Ceil(math.Min(maxY, float64(r.fb.H)))),
	)
	if box.Empty() {
		return
	}

	clip := geom.Rect{X: float64(box.Min.X) - 1, Y: float64(box.Min.Y) - 1, W: float64(box.Dx()) + 2, H: float64(box.Dy()) + 2}
	r.z.Reset(box.Dx(), box.Dy())
	r.z.DrawOp = draw.Over
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	for _, path := range paths {
		dev := make([]geom.Point, len(path))
		for i, p := range path {
			dev[i] = geom.Point{X: p.X * r.ratio, Y: p.Y * r.ratio}
		}
		dev = clipPolygon(dev, clip)
		if len(dev) < 3 {
			continue
		}
		r.z.MoveTo(float32(dev[0].X-ox), float32(dev[0].Y-oy))
		for _, p := range dev[1:] {
			r.z.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		r.z.ClosePath()
	}
	r.z.Draw(r.fb.Image(), box, image.NewUniform(c), image.Point{})
}

// ellipse flattens rc into a polygon fine enough for its device size.
func (r *Raster) ellipse(rc geom.Rect) []geom.Point {
	rx, ry := rc.W/2, rc.H/2
	cx, cy := rc.X+rx, rc.Y+ry
	radius := math.Max(rx, ry) * r.ratio
	n := int(math.Ceil(math.Pi * radius / 2))
	if n < 16 {
		n = 16
	}
	if n > 512 {
		n = 512
	}
	pts := make([]geom.Point, n)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Point{X: cx + rx*math.Cos(t), Y: cy + ry*math.Sin(t)}
	}
	return pts
}

func reversed(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// clipPolygon is Sutherland-Hodgman against an axis-aligned box. Winding is
// preserved, which keeps ring holes intact.
func clipPolygon(pts []geom.Point, box geom.Rect) []geom.Point {
	edges := []struct {
		inside func(geom.Point) bool
		cross  func(a, b geom.Point) geom.Point
	}{
		{
			func(p geom.Point) bool { return p.X >= box.X },
			func(a, b geom.Point) geom.Point { return atX(a, b, box.X) },
		},
		{
			func(p geom.Point) bool { return p.X <= box.X+box.W },
			func(a, b geom.Point) geom.Point { return atX(a, b, box.X+box.W) },
		},
		{
			func(p geom.Point) bool { return p.Y >= box.Y },
			func(a, b geom.Point) geom.Point { return atY(a, b, box.Y) },
		},
		{
			func(p geom.Point) bool { return p.Y <= box.Y+box.H },
			func(a, b geom.Point) geom.Point { return atY(a, b, box.Y+box.H) },
		},
	}
	out := pts
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make([]geom.Point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.cross(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func atX(a, b geom.Point, x float64) geom.Point {
	t := (x - a.X) / (b.X - a.X)
	return geom.Point{X: x, Y: a.Y + (b.Y-a.Y)*t}
}

func atY(a, b geom.Point, y float64) geom.Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return geom.Point{X: a.X + (b.X-a.X)*t, Y: y}
}
