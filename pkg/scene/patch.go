package scene

import "sketchpad/internal/geom"

// Patch is a partial change to a node. Nil fields are left untouched and
// fields that do not exist on the target kind are ignored. The id is not
// patchable.
type Patch struct {
	Name     *string
	X        *float64
	Y        *float64
	Rotation *float64
	ZIndex   *int
	Hidden   *bool
	Locked   *bool

	Width       *float64
	Height      *float64
	Fill        *string
	Stroke      *string
	StrokeWidth *float64

	Points []geom.Point

	Text     *string
	FontSize *float64
	Color    *string
}

func String(v string) *string  { return &v }
func Float(v float64) *float64 { return &v }
func Int(v int) *int           { return &v }
func Bool(v bool) *bool        { return &v }

func (p Patch) Empty() bool {
	return p.Name == nil && p.X == nil && p.Y == nil && p.Rotation == nil && p.ZIndex == nil &&
		p.Hidden == nil && p.Locked == nil && p.Width == nil && p.Height == nil && p.Fill == nil &&
		p.Stroke == nil && p.StrokeWidth == nil && p.Points == nil && p.Text == nil &&
		p.FontSize == nil && p.Color == nil
}

// Apply shallow-merges p into a copy of n.
func Apply(n Node, p Patch) Node {
	switch v := n.(type) {
	case RectNode:
		applyBase(&v.Base, p)
		applyBox(&v.Width, &v.Height, &v.Fill, &v.Stroke, &v.StrokeWidth, p)
		return v
	case EllipseNode:
		applyBase(&v.Base, p)
		applyBox(&v.Width, &v.Height, &v.Fill, &v.Stroke, &v.StrokeWidth, p)
		return v
	case LineNode:
		applyBase(&v.Base, p)
		if p.Points != nil {
			v.Points = clonePoints(p.Points)
		} else {
			v.Points = clonePoints(v.Points)
		}
		setString(&v.Stroke, p.Stroke)
		setFloat(&v.StrokeWidth, p.StrokeWidth)
		return v
	case TextNode:
		applyBase(&v.Base, p)
		setString(&v.Text, p.Text)
		setFloat(&v.FontSize, p.FontSize)
		setString(&v.Color, p.Color)
		return v
	}
	return n
}

// Capture records the current values of n for every field p would change, so
// that Apply(Apply(n, p), Capture(n, p)) restores n.
func Capture(n Node, p Patch) Patch {
	var prior Patch
	b := n.Attrs()
	if p.Name != nil {
		prior.Name = String(b.Name)
	}
	if p.X != nil {
		prior.X = Float(b.X)
	}
	if p.Y != nil {
		prior.Y = Float(b.Y)
	}
	if p.Rotation != nil {
		prior.Rotation = Float(b.Rotation)
	}
	if p.ZIndex != nil {
		prior.ZIndex = Int(b.ZIndex)
	}
	if p.Hidden != nil {
		prior.Hidden = Bool(b.Hidden)
	}
	if p.Locked != nil {
		prior.Locked = Bool(b.Locked)
	}

	switch v := n.(type) {
	case RectNode:
		captureBox(&prior, p, v.Width, v.Height, v.Fill, v.Stroke, v.StrokeWidth)
	case EllipseNode:
		captureBox(&prior, p, v.Width, v.Height, v.Fill, v.Stroke, v.StrokeWidth)
	case LineNode:
		if p.Points != nil {
			prior.Points = clonePoints(v.Points)
		}
		if p.Stroke != nil {
			prior.Stroke = String(v.Stroke)
		}
		if p.StrokeWidth != nil {
			prior.StrokeWidth = Float(v.StrokeWidth)
		}
	case TextNode:
		if p.Text != nil {
			prior.Text = String(v.Text)
		}
		if p.FontSize != nil {
			prior.FontSize = Float(v.FontSize)
		}
		if p.Color != nil {
			prior.Color = String(v.Color)
		}
	}
	return prior
}

func applyBase(b *Base, p Patch) {
	setString(&b.Name, p.Name)
	setFloat(&b.X, p.X)
	setFloat(&b.Y, p.Y)
	setFloat(&b.Rotation, p.Rotation)
	if p.ZIndex != nil {
		b.ZIndex = *p.ZIndex
	}
	if p.Hidden != nil {
		b.Hidden = *p.Hidden
	}
	if p.Locked != nil {
		b.Locked = *p.Locked
	}
}

func applyBox(w, h *float64, fill, stroke *string, strokeWidth *float64, p Patch) {
	setFloat(w, p.Width)
	setFloat(h, p.Height)
	setString(fill, p.Fill)
	setString(stroke, p.Stroke)
	setFloat(strokeWidth, p.StrokeWidth)
}

func captureBox(prior *Patch, p Patch, w, h float64, fill, stroke string, strokeWidth float64) {
	if p.Width != nil {
		prior.Width = Float(w)
	}
	if p.Height != nil {
		prior.Height = Float(h)
	}
	if p.Fill != nil {
		prior.Fill = String(fill)
	}
	if p.Stroke != nil {
		prior.Stroke = String(stroke)
	}
	if p.StrokeWidth != nil {
		prior.StrokeWidth = Float(strokeWidth)
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
