package render

import (
	"image/color"

	"sketchpad/internal/geom"
	"sketchpad/pkg/scene"
)

// SelectionPad is the screen-space gap between a node and its selection box.
const SelectionPad = 4.0

// Style carries the colours the scene routine needs. Node colours that fail
// to parse fall back to the defaults here.
type Style struct {
	Background    color.RGBA
	Grid          color.RGBA
	Selection     color.RGBA
	GridSpacing   float64
	DefaultFill   color.RGBA
	DefaultStroke color.RGBA
	DefaultText   color.RGBA
}

func DefaultStyle() Style {
	return Style{
		Background:    color.RGBA{0xFA, 0xFB, 0xFD, 0xFF},
		Grid:          color.RGBA{0xE3, 0xE8, 0xEF, 0xFF},
		Selection:     color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		GridSpacing:   geom.GridSpacing,
		DefaultFill:   color.RGBA{0x00, 0x00, 0x00, 0xFF},
		DefaultStroke: color.RGBA{0x00, 0x00, 0x00, 0xFF},
		DefaultText:   color.RGBA{0x00, 0x00, 0x00, 0xFF},
	}
}

// Frame is everything one pass of Scene draws. Width and Height are logical
// pixels; PixelRatio is the device density.
type Frame struct {
	Width      float64
	Height     float64
	PixelRatio float64
	Viewport   geom.Viewport
	Nodes      []scene.Node
	Pending    scene.Node
	SelectedID string
	Style      Style
}

// Scene paints the background, the grid, every committed node in order, the
// pending node, and finally the selection outline.
func Scene(p Painter, f Frame) {
	p.Begin(f.Width, f.Height, f.PixelRatio)
	p.Clear(f.Style.Background)

	grid := geom.GridLines(f.Viewport, f.Width, f.Height, f.Style.GridSpacing)
	for _, x := range grid.Xs {
		p.Line(geom.Point{X: x, Y: 0}, geom.Point{X: x, Y: f.Height}, 1, f.Style.Grid)
	}
	for _, y := range grid.Ys {
		p.Line(geom.Point{X: 0, Y: y}, geom.Point{X: f.Width, Y: y}, 1, f.Style.Grid)
	}

	var selected scene.Node
	for _, n := range f.Nodes {
		if n.Attrs().ID == f.SelectedID && f.SelectedID != "" {
			selected = n
		}
		if n.Attrs().Hidden {
			continue
		}
		Node(p, n, f.Viewport, f.Style)
	}
	if f.Pending != nil {
		Node(p, f.Pending, f.Viewport, f.Style)
	}
	if selected != nil && !selected.Attrs().Hidden && scene.Drawable(selected) {
		box := ScreenBounds(p, selected, f.Viewport).Inset(-SelectionPad)
		// Edges beyond the frame are pulled in to just outside it, so the
		// dash walk is bounded by the frame size rather than the node size.
		frame := geom.Rect{W: f.Width, H: f.Height}.Inset(-2 * SelectionPad)
		if box, ok := box.Clip(frame); ok {
			for _, seg := range geom.Dash(geom.RectPath(box), geom.SelectionDash, true) {
				p.Line(seg.A, seg.B, 1, f.Style.Selection)
			}
		}
	}
}

// Node paints a single node in screen space. Nodes with non-finite geometry
// are skipped.
func Node(p Painter, n scene.Node, vp geom.Viewport, st Style) {
	if !scene.Drawable(n) {
		return
	}
	switch v := n.(type) {
	case scene.RectNode:
		sr := geom.ScreenRect(scene.Bounds(v), vp)
		p.FillRect(sr, ColorOr(v.Fill, st.DefaultFill))
		if v.StrokeWidth > 0 {
			p.StrokeRect(sr, v.StrokeWidth*vp.Scale, ColorOr(v.Stroke, st.DefaultStroke))
		}
	case scene.EllipseNode:
		sr := geom.ScreenRect(scene.Bounds(v), vp)
		p.FillEllipse(sr, ColorOr(v.Fill, st.DefaultFill))
		if v.StrokeWidth > 0 {
			p.StrokeEllipse(sr, v.StrokeWidth*vp.Scale, ColorOr(v.Stroke, st.DefaultStroke))
		}
	case scene.LineNode:
		pts := make([]geom.Point, len(v.Points))
		for i, pt := range v.Points {
			pts[i] = vp.ToScreen(pt)
		}
		p.Polyline(pts, v.StrokeWidth*vp.Scale, ColorOr(v.Stroke, st.DefaultStroke))
	case scene.TextNode:
		at := geom.WorldToScreen(v.X, v.Y, vp)
		p.Text(at, v.Text, v.FontSize*vp.Scale, ColorOr(v.Color, st.DefaultText))
	}
}

// ScreenBounds is the screen rectangle n covers. Text width comes from the
// painter's metrics rather than the rune estimate.
func ScreenBounds(p Painter, n scene.Node, vp geom.Viewport) geom.Rect {
	if t, ok := n.(scene.TextNode); ok {
		size := t.FontSize * vp.Scale
		at := geom.WorldToScreen(t.X, t.Y, vp)
		return geom.Rect{X: at.X, Y: at.Y - size, W: p.MeasureText(t.Text, size), H: size * 1.2}
	}
	return geom.ScreenRect(scene.Bounds(n), vp)
}
