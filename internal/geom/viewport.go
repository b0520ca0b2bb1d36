package geom

import "math"

const (
	MinScale = 0.2
	MaxScale = 8.0

	// ZoomStep is the scale multiplier applied per zoom tick.
	ZoomStep = 1.1
)

type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) Finite() bool {
	return finite(p.X) && finite(p.Y)
}

// Viewport maps world coordinates to screen pixels: screen = world*Scale + Offset.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

func DefaultViewport() Viewport {
	return Viewport{Scale: 1, OffsetX: 0, OffsetY: 0}
}

func WorldToScreen(x, y float64, vp Viewport) Point {
	return Point{X: x*vp.Scale + vp.OffsetX, Y: y*vp.Scale + vp.OffsetY}
}

func ScreenToWorld(x, y float64, vp Viewport) Point {
	return Point{X: (x - vp.OffsetX) / vp.Scale, Y: (y - vp.OffsetY) / vp.Scale}
}

func (vp Viewport) ToScreen(p Point) Point { return WorldToScreen(p.X, p.Y, vp) }
func (vp Viewport) ToWorld(p Point) Point  { return ScreenToWorld(p.X, p.Y, vp) }

// ClampScale keeps s inside [MinScale, MaxScale]. NaN falls back to 1.
func ClampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

func (vp Viewport) Clamped() Viewport {
	vp.Scale = ClampScale(vp.Scale)
	return vp
}

func (vp Viewport) Pan(dx, dy float64) Viewport {
	vp.OffsetX += dx
	vp.OffsetY += dy
	return vp
}

// ZoomAt multiplies the scale by factor and moves the offset so the world
// point under anchor (screen space) stays under anchor.
func (vp Viewport) ZoomAt(anchor Point, factor float64) Viewport {
	world := vp.ToWorld(anchor)
	next := Viewport{Scale: ClampScale(vp.Scale * factor)}
	next.OffsetX = anchor.X - world.X*next.Scale
	next.OffsetY = anchor.Y - world.Y*next.Scale
	return next
}

// WheelFactor converts a wheel delta into a zoom multiplier. Positive deltas
// zoom in.
func WheelFactor(deltaY float64) float64 {
	switch {
	case deltaY > 0:
		return ZoomStep
	case deltaY < 0:
		return 1 / ZoomStep
	default:
		return 1
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
