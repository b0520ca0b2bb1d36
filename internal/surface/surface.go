// Package surface turns pointer and wheel input over the canvas into viewport
// changes, selections and new nodes, depending on the active tool.
package surface

import (
	"math"

	"sketchpad/internal/editor"
	"sketchpad/internal/geom"
	"sketchpad/internal/platform"
	"sketchpad/pkg/scene"
)

// ClickSlop is how far, in screen pixels, the pointer may travel between
// down and up and still count as a click.
const ClickSlop = 3.0

// Handlers receive the surface's outputs. Nil handlers are skipped.
type Handlers struct {
	OnCreateNode     func(n scene.Node)
	OnSelectNode     func(id string)
	OnViewportChange func(vp geom.Viewport)
}

// Props is the store state the surface reads.
type Props struct {
	Nodes      []scene.Node
	SelectedID string
	Tool       editor.Tool
	Viewport   geom.Viewport
}

// TextPrompter asks the user for a text label placed at a world point. A host
// that cannot answer synchronously returns ok=false and calls CommitText later.
type TextPrompter interface {
	PromptText(at geom.Point) (text string, ok bool)
}

// Defaults are the styles given to newly drawn nodes.
type Defaults struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	TextColor   string
	FontSize    float64
}

func DefaultDefaults() Defaults {
	return Defaults{
		Fill:        "#ffffff",
		Stroke:      "#1f2937",
		StrokeWidth: 2,
		TextColor:   "#111827",
		FontSize:    16,
	}
}

type dragMode int

const (
	dragNone dragMode = iota
	dragSelect
	dragPan
	dragShape
)

type Surface struct {
	handlers Handlers
	props    Props
	prompter TextPrompter
	defaults Defaults
	measure  scene.MeasureFunc

	mode    dragMode
	button  platform.Button
	origin  geom.Point
	last    geom.Point
	start   geom.Point
	pending scene.Node
}

func New(h Handlers, prompter TextPrompter) *Surface {
	return &Surface{
		handlers: h,
		prompter: prompter,
		defaults: DefaultDefaults(),
		props:    Props{Tool: editor.ToolSelect, Viewport: geom.DefaultViewport()},
	}
}

func (s *Surface) SetProps(p Props)       { s.props = p }
func (s *Surface) Props() Props           { return s.props }
func (s *Surface) SetDefaults(d Defaults) { s.defaults = d }
func (s *Surface) Defaults() Defaults     { return s.defaults }

// SetMeasure sets the text measurement used for hit testing. It takes screen
// font sizes, like the painter the canvas is drawn with. nil falls back to
// scene.EstimateTextWidth.
func (s *Surface) SetMeasure(m scene.MeasureFunc) { s.measure = m }

// worldMeasure measures text at world size through the screen-space measure
// so hits agree with the drawn selection box.
func (s *Surface) worldMeasure() scene.MeasureFunc {
	m, scale := s.measure, s.props.Viewport.Scale
	if m == nil || !(scale > 0) {
		return scene.EstimateTextWidth
	}
	return func(text string, size float64) float64 {
		return m(text, size*scale) / scale
	}
}

// Dragging reports whether a pointer drag is in progress.
func (s *Surface) Dragging() bool { return s.mode != dragNone }

// Pending returns the uncommitted node being drawn, or nil.
func (s *Surface) Pending() scene.Node {
	if s.pending == nil {
		return nil
	}
	return scene.Clone(s.pending)
}

// PointerDown starts a drag at pt (screen space). Only one drag runs at a
// time; a second button is ignored until the first is released.
func (s *Surface) PointerDown(pt geom.Point, button platform.Button) {
	if s.mode != dragNone || !pt.Finite() {
		return
	}
	s.button = button
	s.origin, s.last = pt, pt

	if button == platform.ButtonMiddle {
		s.mode = dragPan
		return
	}
	if button != platform.ButtonLeft {
		return
	}

	vp := s.props.Viewport
	world := vp.ToWorld(pt)
	s.start = world
	d := s.defaults

	switch s.props.Tool {
	case editor.ToolSelect:
		s.mode = dragSelect
	case editor.ToolPan:
		s.mode = dragPan
	case editor.ToolRect:
		s.mode = dragShape
		s.pending = scene.RectNode{
			Base: scene.Base{X: world.X, Y: world.Y},
			Fill: d.Fill, Stroke: d.Stroke, StrokeWidth: d.StrokeWidth,
		}
	case editor.ToolEllipse:
		s.mode = dragShape
		s.pending = scene.EllipseNode{
			Base: scene.Base{X: world.X, Y: world.Y},
			Fill: d.Fill, Stroke: d.Stroke, StrokeWidth: d.StrokeWidth,
		}
	case editor.ToolLine:
		s.mode = dragShape
		s.pending = scene.LineNode{
			Base:   scene.Base{X: world.X, Y: world.Y},
			Points: []geom.Point{world, world},
			Stroke: d.Stroke, StrokeWidth: d.StrokeWidth,
		}
	case editor.ToolText:
		// Text commits on the press itself; there is no drag.
		if s.prompter == nil {
			return
		}
		if text, ok := s.prompter.PromptText(world); ok {
			s.CommitText(world, text)
		}
	}
}

func (s *Surface) PointerMove(pt geom.Point) {
	if s.mode == dragNone || !pt.Finite() {
		return
	}
	prev := s.last
	s.last = pt

	switch s.mode {
	case dragPan:
		if s.handlers.OnViewportChange != nil {
			s.handlers.OnViewportChange(s.props.Viewport.Pan(pt.X-prev.X, pt.Y-prev.Y))
		}
	case dragShape:
		s.pending = s.stretch(s.pending, s.props.Viewport.ToWorld(pt))
	}
}

// PointerUp ends the drag started by button and commits any pending node.
func (s *Surface) PointerUp(pt geom.Point, button platform.Button) {
	if s.mode == dragNone || button != s.button {
		return
	}
	if pt.Finite() && pt != s.last {
		s.PointerMove(pt)
	}
	mode := s.mode
	s.mode = dragNone

	switch mode {
	case dragSelect:
		if math.Hypot(s.last.X-s.origin.X, s.last.Y-s.origin.Y) < ClickSlop && s.handlers.OnSelectNode != nil {
			s.handlers.OnSelectNode(HitTest(s.props.Nodes, s.props.Viewport.ToWorld(s.origin), s.worldMeasure()))
		}
	case dragShape:
		n := scene.Normalize(s.pending)
		s.pending = nil
		if n != nil && s.handlers.OnCreateNode != nil {
			s.handlers.OnCreateNode(n)
		}
	}
}

// Cancel abandons the current drag without committing anything.
func (s *Surface) Cancel() {
	s.mode = dragNone
	s.pending = nil
}

// Wheel zooms by one step per event, keeping the world point under pt fixed.
func (s *Surface) Wheel(pt geom.Point, deltaY float64) {
	factor := geom.WheelFactor(deltaY)
	if factor == 1 || !pt.Finite() {
		return
	}
	if s.handlers.OnViewportChange != nil {
		s.handlers.OnViewportChange(s.props.Viewport.ZoomAt(pt, factor))
	}
}

// CommitText creates a text node at the world point at. Empty text is
// dropped.
func (s *Surface) CommitText(at geom.Point, text string) {
	if text == "" || s.handlers.OnCreateNode == nil {
		return
	}
	s.handlers.OnCreateNode(scene.TextNode{
		Base:     scene.Base{X: at.X, Y: at.Y},
		Text:     text,
		FontSize: s.defaults.FontSize,
		Color:    s.defaults.TextColor,
	})
}

func (s *Surface) stretch(n scene.Node, world geom.Point) scene.Node {
	switch v := n.(type) {
	case scene.RectNode:
		v.Width, v.Height = world.X-s.start.X, world.Y-s.start.Y
		return v
	case scene.EllipseNode:
		v.Width, v.Height = world.X-s.start.X, world.Y-s.start.Y
		return v
	case scene.LineNode:
		pts := append([]geom.Point(nil), v.Points...)
		pts[len(pts)-1] = world
		v.Points = pts
		return v
	}
	return n
}

// HitTest returns the id of the topmost visible, unlocked node whose bounds
// contain the world point, or "". Text bounds use measure.
func HitTest(nodes []scene.Node, world geom.Point, measure scene.MeasureFunc) string {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		b := n.Attrs()
		if b.Hidden || b.Locked || !scene.Drawable(n) {
			continue
		}
		if scene.BoundsWith(n, measure).Contains(world) {
			return b.ID
		}
	}
	return ""
}
