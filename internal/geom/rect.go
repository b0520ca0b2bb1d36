package geom

import "math"

// Rect is an axis-aligned rectangle. W and H may be negative while a shape is
// being dragged out; Normalize folds the sign into X and Y.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// NormalizeDrag returns the non-negative rectangle spanned by a drag from
// start to end.
func NormalizeDrag(start, end Point) Rect {
	return Rect{X: start.X, Y: start.Y, W: end.X - start.X, H: end.Y - start.Y}.Normalize()
}

func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	return p.X >= n.X && p.Y >= n.Y && p.X <= n.X+n.W && p.Y <= n.Y+n.H
}

func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

func (r Rect) Finite() bool {
	return finite(r.X) && finite(r.Y) && finite(r.W) && finite(r.H)
}

// Clip returns the part of r inside bounds, both normalized. ok is false when
// they do not overlap.
func (r Rect) Clip(bounds Rect) (Rect, bool) {
	r, bounds = r.Normalize(), bounds.Normalize()
	x0 := math.Max(r.X, bounds.X)
	y0 := math.Max(r.Y, bounds.Y)
	x1 := math.Min(r.X+r.W, bounds.X+bounds.W)
	y1 := math.Min(r.Y+r.H, bounds.Y+bounds.H)
	if !(x0 <= x1 && y0 <= y1) {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// ScreenRect projects a world rectangle through the viewport.
func ScreenRect(r Rect, vp Viewport) Rect {
	tl := vp.ToScreen(Point{X: r.X, Y: r.Y})
	return Rect{X: tl.X, Y: tl.Y, W: r.W * vp.Scale, H: r.H * vp.Scale}
}

// BoundsOf returns the smallest rectangle containing every point.
func BoundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// RectPath returns the corners of r clockwise from the top-left.
func RectPath(r Rect) []Point {
	return []Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}
