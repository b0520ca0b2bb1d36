package surface

import (
	"testing"

	"sketchpad/internal/editor"
	"sketchpad/internal/geom"
	"sketchpad/internal/platform"
	"sketchpad/pkg/scene"
)

type harness struct {
	s        *Surface
	created  []scene.Node
	selected []string
	props    Props
}

func newHarness(tool editor.Tool, prompter TextPrompter) *harness {
	h := &harness{props: Props{Tool: tool, Viewport: geom.DefaultViewport()}}
	h.s = New(Handlers{
		OnCreateNode: func(n scene.Node) { h.created = append(h.created, n) },
		OnSelectNode: func(id string) { h.selected = append(h.selected, id) },
		OnViewportChange: func(vp geom.Viewport) {
			h.props.Viewport = vp.Clamped()
			h.s.SetProps(h.props)
		},
	}, prompter)
	h.s.SetProps(h.props)
	return h
}

func (h *harness) drag(from, to geom.Point) {
	h.s.PointerDown(from, platform.ButtonLeft)
	h.s.PointerMove(to)
	h.s.PointerUp(to, platform.ButtonLeft)
}

type fixedPrompter struct {
	text string
	ok   bool
	at   []geom.Point
}

func (p *fixedPrompter) PromptText(at geom.Point) (string, bool) {
	p.at = append(p.at, at)
	return p.text, p.ok
}

func TestRectDragIsNormalized(t *testing.T) {
	h := newHarness(editor.ToolRect, nil)
	h.drag(geom.Point{X: 100, Y: 100}, geom.Point{X: 40, Y: 30})
	if len(h.created) != 1 {
		t.Fatalf("expected one committed node, got %d", len(h.created))
	}
	r, ok := h.created[0].(scene.RectNode)
	if !ok {
		t.Fatalf("unexpected node type %T", h.created[0])
	}
	if r.X != 40 || r.Y != 30 || r.Width != 60 || r.Height != 70 {
		t.Fatalf("unexpected rect: x=%v y=%v w=%v h=%v", r.X, r.Y, r.Width, r.Height)
	}
	if h.s.Pending() != nil || h.s.Dragging() {
		t.Fatalf("drag state should be cleared after commit")
	}
}

func TestPendingShapeTracksPointer(t *testing.T) {
	h := newHarness(editor.ToolEllipse, nil)
	h.props.Viewport = geom.Viewport{Scale: 2, OffsetX: 10, OffsetY: 10}
	h.s.SetProps(h.props)

	h.s.PointerDown(geom.Point{X: 10, Y: 10}, platform.ButtonLeft)
	h.s.PointerMove(geom.Point{X: 50, Y: 30})
	e, ok := h.s.Pending().(scene.EllipseNode)
	if !ok || e.X != 0 || e.Y != 0 || e.Width != 20 || e.Height != 10 {
		t.Fatalf("unexpected pending ellipse: %+v", h.s.Pending())
	}
	if len(h.created) != 0 {
		t.Fatalf("nothing should commit before pointer up")
	}
	h.s.PointerUp(geom.Point{X: 50, Y: 30}, platform.ButtonLeft)
	if len(h.created) != 1 {
		t.Fatalf("expected commit on pointer up")
	}
}

func TestLineCommitsAsDrawn(t *testing.T) {
	h := newHarness(editor.ToolLine, nil)
	h.drag(geom.Point{X: 50, Y: 50}, geom.Point{X: 10, Y: 20})
	l := h.created[0].(scene.LineNode)
	if len(l.Points) != 2 || l.Points[0] != (geom.Point{X: 50, Y: 50}) || l.Points[1] != (geom.Point{X: 10, Y: 20}) {
		t.Fatalf("unexpected line points: %v", l.Points)
	}
	if l.StrokeWidth != h.s.Defaults().StrokeWidth {
		t.Fatalf("line should carry the default stroke width")
	}
}

func TestPanMovesOffsetByPointerDelta(t *testing.T) {
	h := newHarness(editor.ToolPan, nil)
	h.s.PointerDown(geom.Point{X: 10, Y: 10}, platform.ButtonLeft)
	h.s.PointerMove(geom.Point{X: 15, Y: 30})
	h.s.PointerMove(geom.Point{X: 20, Y: 35})
	h.s.PointerUp(geom.Point{X: 20, Y: 35}, platform.ButtonLeft)
	if vp := h.props.Viewport; vp.OffsetX != 10 || vp.OffsetY != 25 || vp.Scale != 1 {
		t.Fatalf("unexpected viewport after pan: %+v", vp)
	}
	if len(h.created) != 0 {
		t.Fatalf("panning must not create nodes")
	}
}

func TestMiddleButtonPansWithAnyTool(t *testing.T) {
	h := newHarness(editor.ToolRect, nil)
	h.s.PointerDown(geom.Point{X: 0, Y: 0}, platform.ButtonMiddle)
	h.s.PointerMove(geom.Point{X: -8, Y: 4})
	h.s.PointerUp(geom.Point{X: -8, Y: 4}, platform.ButtonMiddle)
	if vp := h.props.Viewport; vp.OffsetX != -8 || vp.OffsetY != 4 {
		t.Fatalf("unexpected viewport: %+v", vp)
	}
	if len(h.created) != 0 || h.s.Pending() != nil {
		t.Fatalf("middle drag must not draw")
	}
}

func TestWheelZoomKeepsAnchor(t *testing.T) {
	h := newHarness(editor.ToolSelect, nil)
	anchor := geom.Point{X: 200, Y: 120}
	before := h.props.Viewport.ToWorld(anchor)
	h.s.Wheel(anchor, 1)
	if got := h.props.Viewport.Scale; got != geom.ZoomStep {
		t.Fatalf("unexpected scale after wheel: %v", got)
	}
	after := h.props.Viewport.ToWorld(anchor)
	if diff := after.Sub(before); diff.X*diff.X+diff.Y*diff.Y > 1e-18 {
		t.Fatalf("anchor moved: %v -> %v", before, after)
	}
	for i := 0; i < 100; i++ {
		h.s.Wheel(anchor, -1)
	}
	if h.props.Viewport.Scale != geom.MinScale {
		t.Fatalf("wheel zoom must clamp, got %v", h.props.Viewport.Scale)
	}
}

func TestTextToolPrompts(t *testing.T) {
	p := &fixedPrompter{text: "hello", ok: true}
	h := newHarness(editor.ToolText, p)
	h.s.PointerDown(geom.Point{X: 30, Y: 40}, platform.ButtonLeft)
	h.s.PointerUp(geom.Point{X: 30, Y: 40}, platform.ButtonLeft)
	if len(p.at) != 1 || p.at[0] != (geom.Point{X: 30, Y: 40}) {
		t.Fatalf("unexpected prompt positions: %v", p.at)
	}
	if len(h.created) != 1 {
		t.Fatalf("expected a text node")
	}
	txt := h.created[0].(scene.TextNode)
	if txt.Text != "hello" || txt.X != 30 || txt.Y != 40 || txt.FontSize != h.s.Defaults().FontSize {
		t.Fatalf("unexpected text node: %+v", txt)
	}
}

func TestTextPromptCancelAndEmpty(t *testing.T) {
	for _, p := range []*fixedPrompter{{text: "x", ok: false}, {text: "", ok: true}} {
		h := newHarness(editor.ToolText, p)
		h.s.PointerDown(geom.Point{X: 1, Y: 1}, platform.ButtonLeft)
		if len(h.created) != 0 {
			t.Fatalf("prompt %+v must not commit", p)
		}
	}
}

func TestClickSelectsTopmost(t *testing.T) {
	h := newHarness(editor.ToolSelect, nil)
	h.props.Nodes = []scene.Node{
		scene.RectNode{Base: scene.Base{ID: "below"}, Width: 100, Height: 100},
		scene.RectNode{Base: scene.Base{ID: "above", X: 10, Y: 10}, Width: 20, Height: 20},
		scene.RectNode{Base: scene.Base{ID: "locked", X: 10, Y: 10, Locked: true}, Width: 20, Height: 20},
	}
	h.s.SetProps(h.props)

	h.drag(geom.Point{X: 15, Y: 15}, geom.Point{X: 16, Y: 15})
	h.drag(geom.Point{X: 80, Y: 80}, geom.Point{X: 80, Y: 80})
	h.drag(geom.Point{X: 500, Y: 500}, geom.Point{X: 500, Y: 500})
	h.drag(geom.Point{X: 15, Y: 15}, geom.Point{X: 60, Y: 60})

	want := []string{"above", "below", ""}
	if len(h.selected) != len(want) {
		t.Fatalf("unexpected selections: %q", h.selected)
	}
	for i := range want {
		if h.selected[i] != want[i] {
			t.Fatalf("selection %d: got %q want %q", i, h.selected[i], want[i])
		}
	}
}

func TestSecondButtonIgnoredDuringDrag(t *testing.T) {
	h := newHarness(editor.ToolRect, nil)
	h.s.PointerDown(geom.Point{X: 0, Y: 0}, platform.ButtonLeft)
	h.s.PointerDown(geom.Point{X: 5, Y: 5}, platform.ButtonMiddle)
	h.s.PointerUp(geom.Point{X: 5, Y: 5}, platform.ButtonMiddle)
	if !h.s.Dragging() {
		t.Fatalf("middle release must not end the left drag")
	}
	h.s.PointerUp(geom.Point{X: 10, Y: 10}, platform.ButtonLeft)
	if len(h.created) != 1 {
		t.Fatalf("expected the rect to commit")
	}
	h.s.PointerDown(geom.Point{X: 0, Y: 0}, platform.ButtonLeft)
	h.s.Cancel()
	h.s.PointerUp(geom.Point{X: 10, Y: 10}, platform.ButtonLeft)
	if len(h.created) != 1 {
		t.Fatalf("cancelled drag must not commit")
	}
}

func TestTextHitUsesMeasure(t *testing.T) {
	h := newHarness(editor.ToolSelect, nil)
	h.props.Viewport = geom.Viewport{Scale: 2}
	h.props.Nodes = []scene.Node{scene.TextNode{Base: scene.Base{ID: "t", X: 10, Y: 30}, Text: "abcd", FontSize: 10}}
	h.s.SetProps(h.props)

	// Estimated width is 24, so x=50 is past the end of the label.
	at := h.props.Viewport.ToScreen(geom.Point{X: 50, Y: 28})
	click := func() {
		h.s.PointerDown(at, platform.ButtonLeft)
		h.s.PointerUp(at, platform.ButtonLeft)
	}
	click()
	if len(h.selected) != 1 || h.selected[0] != "" {
		t.Fatalf("estimated bounds should miss, got %v", h.selected)
	}

	var sizes []float64
	h.s.SetMeasure(func(s string, size float64) float64 {
		sizes = append(sizes, size)
		return float64(len(s)) * size * 1.5
	})
	click()
	if len(h.selected) != 2 || h.selected[1] != "t" {
		t.Fatalf("measured bounds should hit the label, got %v", h.selected)
	}
	if len(sizes) == 0 || sizes[0] != 20 {
		t.Fatalf("measure should get the screen font size, got %v", sizes)
	}
}
