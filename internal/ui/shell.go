package ui

import (
	"sketchpad/internal/geom"
	"sketchpad/internal/render"
)

// Rect is a screen region in device pixels.
type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && y >= float64(r.Y) && x < float64(r.X+r.W) && y < float64(r.Y+r.H)
}

func (r Rect) Geom() geom.Rect {
	return geom.Rect{X: float64(r.X), Y: float64(r.Y), W: float64(r.W), H: float64(r.H)}
}

type Layout struct {
	Scale    float64
	MenuH    int
	ToolbarH int
	StatusH  int
	RowH     int
	FontPx   float64
	Menu     Rect
	Toolbar  Rect
	Tree     Rect
	Canvas   Rect
	Panel    Rect
	Status   Rect
}

func ComputeLayout(w, h int, theme Theme, scale float64) Layout {
	if scale <= 0 {
		scale = 1
	}

	dp := func(v int) int { return int(float64(v) * scale) }

	menuH := dp(theme.MenuHeightDp)
	toolbarH := dp(theme.ToolbarHeightDp)
	statusH := dp(theme.StatusHeightDp)
	treeW := dp(theme.TreeWidthDp)
	panelW := dp(theme.PanelWidthDp)

	bodyY := menuH + toolbarH
	bodyH := h - bodyY - statusH
	if bodyH < 0 {
		bodyH = 0
	}
	canvasW := w - treeW - panelW
	if canvasW < dp(160) {
		// Narrow windows give the side panels' width back to the canvas first.
		spare := dp(160) - canvasW
		shrink := spare / 2
		treeW -= shrink
		panelW -= spare - shrink
		if treeW < 0 {
			treeW = 0
		}
		if panelW < 0 {
			panelW = 0
		}
		canvasW = w - treeW - panelW
	}
	if canvasW < 0 {
		canvasW = 0
	}

	return Layout{
		Scale:    scale,
		MenuH:    menuH,
		ToolbarH: toolbarH,
		StatusH:  statusH,
		RowH:     dp(theme.RowHeightDp),
		FontPx:   float64(theme.FontSizeDp) * scale,
		Menu:     Rect{X: 0, Y: 0, W: w, H: menuH},
		Toolbar:  Rect{X: 0, Y: menuH, W: w, H: toolbarH},
		Tree:     Rect{X: 0, Y: bodyY, W: treeW, H: bodyH},
		Canvas:   Rect{X: treeW, Y: bodyY, W: canvasW, H: bodyH},
		Panel:    Rect{X: treeW + canvasW, Y: bodyY, W: panelW, H: bodyH},
		Status:   Rect{X: 0, Y: h - statusH, W: w, H: statusH},
	}
}

// DrawShell paints the window chrome around the canvas: title bar, toolbar
// strip, side panel backgrounds and the status bar.
func DrawShell(p render.Painter, layout Layout, theme Theme, title string) {
	p.FillRect(layout.Menu.Geom(), theme.TopBar)
	p.Text(geom.Point{X: float64(layout.Menu.X) + 10*layout.Scale, Y: baseline(layout.Menu, layout.FontPx)}, title, layout.FontPx, theme.TopBarText)

	p.FillRect(layout.Toolbar.Geom(), theme.Toolbar)
	p.StrokeRect(layout.Toolbar.Geom(), 1, theme.Border)

	p.FillRect(layout.Tree.Geom(), theme.Panel)
	p.FillRect(layout.Panel.Geom(), theme.Panel)
	edge := float64(layout.Tree.X + layout.Tree.W)
	p.Line(geom.Point{X: edge, Y: float64(layout.Tree.Y)}, geom.Point{X: edge, Y: float64(layout.Tree.Y + layout.Tree.H)}, 1, theme.Border)
	edge = float64(layout.Panel.X)
	p.Line(geom.Point{X: edge, Y: float64(layout.Panel.Y)}, geom.Point{X: edge, Y: float64(layout.Panel.Y + layout.Panel.H)}, 1, theme.Border)

	p.FillRect(layout.Status.Geom(), theme.StatusBar)
	p.StrokeRect(layout.Status.Geom(), 1, theme.Border)
}

// DrawStatus writes the status line text.
func DrawStatus(p render.Painter, layout Layout, theme Theme, left, right string) {
	y := baseline(layout.Status, layout.FontPx)
	p.Text(geom.Point{X: float64(layout.Status.X) + 10*layout.Scale, Y: y}, left, layout.FontPx, theme.PanelText)
	if right == "" {
		return
	}
	w := p.MeasureText(right, layout.FontPx)
	p.Text(geom.Point{X: float64(layout.Status.X+layout.Status.W) - w - 10*layout.Scale, Y: y}, right, layout.FontPx, theme.MutedText)
}

// baseline vertically centres a line of text of size px inside r.
func baseline(r Rect, px float64) float64 {
	return float64(r.Y) + (float64(r.H)+px*0.7)/2
}
