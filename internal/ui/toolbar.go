package ui

import (
	"strings"

	"sketchpad/internal/editor"
	"sketchpad/internal/geom"
	"sketchpad/internal/render"
)

type ToolbarHandlers struct {
	OnTool    func(editor.Tool)
	OnZoomIn  func()
	OnZoomOut func()
	OnUndo    func()
	OnRedo    func()
	OnClear   func()
}

// ToolbarState is what the toolbar reflects.
type ToolbarState struct {
	Tool    editor.Tool
	CanUndo bool
	CanRedo bool
}

type actionButton struct {
	id      string
	label   string
	rect    Rect
	tool    editor.Tool
	active  bool
	enabled bool
}

const (
	actionZoomIn  = "zoom-in"
	actionZoomOut = "zoom-out"
	actionUndo    = "undo"
	actionRedo    = "redo"
	actionClear   = "clear"
)

type Toolbar struct {
	handlers ToolbarHandlers
	buttons  []actionButton
}

func NewToolbar(h ToolbarHandlers) *Toolbar {
	return &Toolbar{handlers: h, buttons: make([]actionButton, 0, 12)}
}

// Layout places one button per tool followed by the command buttons.
func (t *Toolbar) Layout(area Rect, scale float64, theme Theme, st ToolbarState) {
	t.buttons = t.buttons[:0]
	pad := int(6 * scale)
	bw := int(float64(theme.ButtonWidthDp) * scale)
	bh := area.H - pad*2
	x := area.X + pad
	add := func(b actionButton) {
		b.rect = Rect{X: x, Y: area.Y + pad, W: bw, H: bh}
		t.buttons = append(t.buttons, b)
		x += bw + pad/2
	}
	for _, tool := range editor.Tools() {
		add(actionButton{id: "tool-" + string(tool), label: toolLabel(tool), tool: tool, active: st.Tool == tool, enabled: true})
	}
	x += pad * 2
	add(actionButton{id: actionZoomIn, label: "Zoom +", enabled: true})
	add(actionButton{id: actionZoomOut, label: "Zoom -", enabled: true})
	add(actionButton{id: actionUndo, label: "Undo", enabled: st.CanUndo})
	add(actionButton{id: actionRedo, label: "Redo", enabled: st.CanRedo})
	add(actionButton{id: actionClear, label: "Clear", enabled: true})
}

// Click activates the button under (x, y). It reports whether a button was hit.
func (t *Toolbar) Click(x, y float64) bool {
	for _, b := range t.buttons {
		if !b.rect.Contains(x, y) {
			continue
		}
		if b.enabled {
			t.invoke(b)
		}
		return true
	}
	return false
}

func (t *Toolbar) invoke(b actionButton) {
	call := func(fn func()) {
		if fn != nil {
			fn()
		}
	}
	switch b.id {
	case actionZoomIn:
		call(t.handlers.OnZoomIn)
	case actionZoomOut:
		call(t.handlers.OnZoomOut)
	case actionUndo:
		call(t.handlers.OnUndo)
	case actionRedo:
		call(t.handlers.OnRedo)
	case actionClear:
		call(t.handlers.OnClear)
	default:
		if b.tool != "" && t.handlers.OnTool != nil {
			t.handlers.OnTool(b.tool)
		}
	}
}

func (t *Toolbar) Draw(p render.Painter, theme Theme, fontPx float64) {
	for _, b := range t.buttons {
		bg := theme.Button
		if b.active {
			bg = theme.ButtonActive
		}
		p.FillRect(b.rect.Geom(), bg)
		border := theme.Border
		if b.active {
			border = theme.Accent
		}
		p.StrokeRect(b.rect.Geom(), 1, border)
		fg := theme.PanelText
		if !b.enabled {
			fg = theme.ButtonDisabled
		}
		w := p.MeasureText(b.label, fontPx)
		at := geom.Point{
			X: float64(b.rect.X) + (float64(b.rect.W)-w)/2,
			Y: baseline(b.rect, fontPx),
		}
		p.Text(at, b.label, fontPx, fg)
	}
}

// Labels lists the button labels in order, marking the active tool with '*'.
func (t *Toolbar) Labels() []string {
	out := make([]string, len(t.buttons))
	for i, b := range t.buttons {
		out[i] = b.label
		if b.active {
			out[i] = "*" + b.label
		}
	}
	return out
}

func toolLabel(tool editor.Tool) string {
	s := string(tool)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
