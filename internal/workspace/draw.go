package workspace

import (
	"fmt"
	"math"

	"sketchpad/internal/geom"
	"sketchpad/internal/platform"
	"sketchpad/internal/render"
	"sketchpad/internal/ui"
)

const promptHint = "Enter to place, Esc to cancel"

// NeedsRedraw reports whether the last frame is stale.
func (w *Workspace) NeedsRedraw() bool {
	return w.dirty || w.drawnRev != w.state.Revision()
}

// Draw composes a full frame in device pixels: chrome, presenters, the canvas
// and any open overlay. The returned buffer is reused by the next call.
func (w *Workspace) Draw() *render.FrameBuffer {
	w.sync()
	l := w.layout

	w.chrome.Begin(float64(w.width), float64(w.height), 1)
	w.chrome.Clear(w.theme.AppBackground)
	ui.DrawShell(w.chrome, l, w.theme, w.title)
	w.toolbar.Draw(w.chrome, w.theme, l.FontPx)
	w.tree.Draw(w.chrome, w.theme, l.FontPx)
	w.panel.Draw(w.chrome, w.theme, l.FontPx)

	if l.Canvas.W > 0 && l.Canvas.H > 0 {
		render.Scene(w.canvas, render.Frame{
			Width:      float64(l.Canvas.W) / w.scale,
			Height:     float64(l.Canvas.H) / w.scale,
			PixelRatio: w.scale,
			Viewport:   w.view.Viewport,
			Nodes:      w.view.Nodes,
			Pending:    w.surface.Pending(),
			SelectedID: w.view.SelectedID,
			Style:      w.style,
		})
		w.chrome.Buffer().Blit(w.canvas.Buffer(), l.Canvas.X, l.Canvas.Y)
		// The canvas raster is not clipped to the canvas region.
		w.chrome.StrokeRect(l.Canvas.Geom(), 1, w.theme.Border)
	}
	if w.prompt != nil {
		w.drawPrompt()
	}

	ui.DrawStatus(w.chrome, l, w.theme, w.statusLeft(), w.status)
	w.drawnRev = w.view.Revision
	w.dirty = false
	return w.chrome.Buffer()
}

func (w *Workspace) statusLeft() string {
	s := w.view
	return fmt.Sprintf("[ %s ]  [ %d nodes ]  [ Zoom %d%% ]", s.Tool, len(s.Nodes), int(math.Round(s.Viewport.Scale*100)))
}

// drawPrompt paints the text overlay at the placement point.
func (w *Workspace) drawPrompt() {
	l := w.layout
	at := w.view.Viewport.ToScreen(w.prompt.at)
	x := float64(l.Canvas.X) + at.X*w.scale
	y := float64(l.Canvas.Y) + at.Y*w.scale

	px := l.FontPx
	text := w.prompt.text + "|"
	width := math.Max(w.chrome.MeasureText(text, px), w.chrome.MeasureText(promptHint, px)) + 16*l.Scale
	box := geom.Rect{X: x, Y: y, W: width, H: 2*float64(l.RowH) + 4*l.Scale}
	// Keep the overlay on screen.
	if box.X+box.W > float64(w.width) {
		box.X = float64(w.width) - box.W
	}
	if box.Y+box.H > float64(l.Status.Y) {
		box.Y = float64(l.Status.Y) - box.H
	}
	box.X = math.Max(box.X, 0)
	box.Y = math.Max(box.Y, 0)

	shadow := box
	shadow.X += 2 * l.Scale
	shadow.Y += 2 * l.Scale
	w.chrome.FillRect(shadow, w.theme.Shadow)
	w.chrome.FillRect(box, w.theme.FieldFocus)
	w.chrome.StrokeRect(box, 1, w.theme.Accent)

	row := float64(l.RowH)
	tx := box.X + 8*l.Scale
	w.chrome.Text(geom.Point{X: tx, Y: box.Y + (row+px*0.7)/2}, text, px, w.theme.PanelText)
	w.chrome.Text(geom.Point{X: tx, Y: box.Y + row + (row+px*0.7)/2}, promptHint, px, w.theme.MutedText)
}

// Pump drains the window's events, applies them, and presents a new frame
// when anything changed. It returns false once the window asked to close.
func (w *Workspace) Pump(win platform.Window) (bool, error) {
	if width, height := win.SizePx(); width > 0 && height > 0 && (width != w.width || height != w.height) {
		w.width, w.height = width, height
		w.dirty = true
	}
	if s := win.Scale(); s > 0 && s != w.scale {
		w.scale = s
		w.dirty = true
	}
	title := w.title
	for _, ev := range win.PollEvents() {
		w.HandleEvent(ev)
	}
	if w.closed {
		return false, nil
	}
	if w.title != title {
		win.SetTitle(w.title)
	}
	if !w.NeedsRedraw() {
		return true, nil
	}
	if err := win.Present(w.Draw()); err != nil {
		return true, fmt.Errorf("present: %w", err)
	}
	return true, nil
}
