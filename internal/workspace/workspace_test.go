package workspace

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sketchpad/internal/config"
	"sketchpad/internal/editor"
	"sketchpad/internal/geom"
	"sketchpad/internal/platform"
	"sketchpad/internal/platform/headless"
	"sketchpad/pkg/scene"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadText() (string, error) { return c.text, c.err }
func (c *fakeClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

type fakeDialogs struct {
	confirm  bool
	asked    int
	savePath string
}

func (d *fakeDialogs) Confirm(title, message string) bool {
	d.asked++
	return d.confirm
}

func (d *fakeDialogs) SaveFile(title, defaultName string) (string, error) {
	return d.savePath, nil
}

type fixedPrompter string

func (p fixedPrompter) PromptText(geom.Point) (string, bool) { return string(p), p != "" }

func newTestWorkspace(t *testing.T, mutate func(*Options)) *Workspace {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	w := New(opts)
	w.HandleEvent(platform.Event{Type: platform.EventResize, Width: 1280, Height: 800})
	return w
}

// canvasAt converts a canvas-relative device point to a window position.
func canvasAt(w *Workspace, x, y float64) (float64, float64) {
	c := w.Layout().Canvas
	return float64(c.X) + x, float64(c.Y) + y
}

func drag(w *Workspace, x0, y0, x1, y1 float64) {
	ax, ay := canvasAt(w, x0, y0)
	bx, by := canvasAt(w, x1, y1)
	w.HandleEvent(platform.Event{Type: platform.EventMouseDown, X: ax, Y: ay, Button: platform.ButtonLeft})
	w.HandleEvent(platform.Event{Type: platform.EventMouseMove, X: bx, Y: by})
	w.HandleEvent(platform.Event{Type: platform.EventMouseUp, X: bx, Y: by, Button: platform.ButtonLeft})
}

func key(w *Workspace, k string, mods platform.Mods) {
	w.HandleEvent(platform.Event{Type: platform.EventKeyDown, Key: k, Mods: mods})
}

func typeText(w *Workspace, s string) {
	for _, r := range s {
		w.HandleEvent(platform.Event{Type: platform.EventTextInput, Rune: r})
	}
}

func TestRectDragCreatesSelectedNode(t *testing.T) {
	w := newTestWorkspace(t, nil)
	key(w, "r", platform.Mods{})
	if w.State().Tool != editor.ToolRect {
		t.Fatalf("r should pick the rect tool, got %s", w.State().Tool)
	}
	drag(w, 100, 100, 40, 30)

	nodes := w.State().Nodes
	if len(nodes) != 1 {
		t.Fatalf("expected one node, got %d", len(nodes))
	}
	r, ok := nodes[0].(scene.RectNode)
	if !ok {
		t.Fatalf("expected a rect, got %T", nodes[0])
	}
	if r.X != 40 || r.Y != 30 || r.Width != 60 || r.Height != 70 {
		t.Fatalf("unexpected rect geometry: %+v", r)
	}
	if w.State().SelectedID != r.ID {
		t.Fatalf("new node should be selected")
	}
	if r.Fill != DefaultOptions().Defaults.Fill {
		t.Fatalf("new node should use the default fill, got %q", r.Fill)
	}
}

func TestMouseOutsideCanvasDoesNotDraw(t *testing.T) {
	w := newTestWorkspace(t, nil)
	key(w, "r", platform.Mods{})
	tree := w.Layout().Tree
	w.HandleEvent(platform.Event{Type: platform.EventMouseDown, X: float64(tree.X + 5), Y: float64(tree.Y + 5), Button: platform.ButtonLeft})
	w.HandleEvent(platform.Event{Type: platform.EventMouseUp, X: float64(tree.X + 50), Y: float64(tree.Y + 50), Button: platform.ButtonLeft})
	if len(w.State().Nodes) != 0 {
		t.Fatalf("a drag starting outside the canvas must not create nodes")
	}
}

func TestShortcutsUndoRedoAndDelete(t *testing.T) {
	w := newTestWorkspace(t, nil)
	key(w, "e", platform.Mods{})
	drag(w, 10, 10, 60, 60)
	if len(w.State().Nodes) != 1 {
		t.Fatalf("expected an ellipse")
	}

	key(w, "z", platform.Mods{Ctrl: true})
	if len(w.State().Nodes) != 0 || w.Status() != "Undo" {
		t.Fatalf("ctrl+z should undo the create: %d nodes, status %q", len(w.State().Nodes), w.Status())
	}
	key(w, "z", platform.Mods{Ctrl: true, Shift: true})
	if len(w.State().Nodes) != 1 {
		t.Fatalf("ctrl+shift+z should redo")
	}

	id := w.State().Nodes[0].Attrs().ID
	w.State().SelectNode(id)
	key(w, "delete", platform.Mods{})
	if len(w.State().Nodes) != 0 {
		t.Fatalf("delete should remove the selected node")
	}
	key(w, "y", platform.Mods{Ctrl: true})
	if len(w.State().Nodes) != 0 {
		t.Fatalf("nothing to redo after a fresh delete")
	}

	key(w, "=", platform.Mods{})
	if w.State().Viewport.Scale <= 1 {
		t.Fatalf("= should zoom in, scale %v", w.State().Viewport.Scale)
	}
}

func TestReorderShortcuts(t *testing.T) {
	w := newTestWorkspace(t, nil)
	s := w.State()
	a := s.AddNode(scene.RectNode{Base: scene.Base{ID: "a"}, Width: 1, Height: 1})
	b := s.AddNode(scene.RectNode{Base: scene.Base{ID: "b"}, Width: 1, Height: 1})
	s.SelectNode(a)
	key(w, "]", platform.Mods{})
	if s.Nodes[1].Attrs().ID != a || s.Nodes[0].Attrs().ID != b {
		t.Fatalf("] should bring the selection forward")
	}
	key(w, "[", platform.Mods{})
	if s.Nodes[0].Attrs().ID != a {
		t.Fatalf("[ should send the selection back")
	}
}

func TestClearAsksForConfirmation(t *testing.T) {
	dialogs := &fakeDialogs{}
	w := newTestWorkspace(t, func(o *Options) { o.Dialogs = dialogs })
	w.State().AddNode(scene.RectNode{Width: 5, Height: 5})

	w.clear()
	if dialogs.asked != 1 || len(w.State().Nodes) != 1 || w.Status() != "Clear cancelled" {
		t.Fatalf("declined confirmation must keep the scene")
	}

	dialogs.confirm = true
	w.clear()
	if len(w.State().Nodes) != 0 || w.State().CanUndo() {
		t.Fatalf("confirmed clear should empty the scene and history")
	}
	w.clear()
	if dialogs.asked != 2 {
		t.Fatalf("clearing an empty scene should not ask")
	}
}

func TestPanelEditsReachTheStore(t *testing.T) {
	w := newTestWorkspace(t, nil)
	id := w.State().AddNode(scene.RectNode{Base: scene.Base{X: 100, Y: 20}, Width: 10, Height: 10})
	w.State().SelectNode(id)
	w.HandleEvent(platform.Event{Type: platform.EventUnknown})

	l := w.Layout()
	x := float64(l.Panel.X + l.Panel.W*2/5 + 10)
	y := float64(l.Panel.Y + l.RowH*2 + l.RowH/2)
	w.HandleEvent(platform.Event{Type: platform.EventMouseDown, X: x, Y: y, Button: platform.ButtonLeft})
	if w.panel.FocusedKey() != "x" {
		t.Fatalf("click should focus the x field, got %q", w.panel.FocusedKey())
	}

	typeText(w, "5")
	n, _ := w.State().Node(id)
	if n.Attrs().X != 1005 {
		t.Fatalf("typing should update the node, x=%v", n.Attrs().X)
	}
	// Shortcut letters go to the field, not the tool switcher.
	key(w, "r", platform.Mods{})
	if w.State().Tool != editor.ToolSelect {
		t.Fatalf("keys typed into a field must not change tools")
	}
	key(w, "backspace", platform.Mods{})
	n, _ = w.State().Node(id)
	if n.Attrs().X != 100 {
		t.Fatalf("backspace should update the node, x=%v", n.Attrs().X)
	}

	key(w, "z", platform.Mods{Ctrl: true})
	if w.panel.Focused() {
		t.Fatalf("undo should drop field focus")
	}
	n, _ = w.State().Node(id)
	if n.Attrs().X != 1005 {
		t.Fatalf("undo should revert the last edit, x=%v", n.Attrs().X)
	}
}

func TestTextOverlay(t *testing.T) {
	w := newTestWorkspace(t, nil)
	key(w, "t", platform.Mods{})
	px, py := canvasAt(w, 100, 100)
	w.HandleEvent(platform.Event{Type: platform.EventMouseDown, X: px, Y: py, Button: platform.ButtonLeft})
	w.HandleEvent(platform.Event{Type: platform.EventMouseUp, X: px, Y: py, Button: platform.ButtonLeft})
	if w.prompt == nil {
		t.Fatalf("text tool should open the overlay")
	}
	typeText(w, "hiz")
	key(w, "backspace", platform.Mods{})
	// Tool keys are text while the overlay is open.
	key(w, "r", platform.Mods{})
	key(w, "enter", platform.Mods{})

	if w.prompt != nil || len(w.State().Nodes) != 1 {
		t.Fatalf("enter should place the text")
	}
	txt := w.State().Nodes[0].(scene.TextNode)
	if txt.Text != "hi" || txt.X != 100 || txt.Y != 100 || txt.FontSize != 16 {
		t.Fatalf("unexpected text node: %+v", txt)
	}
	if w.State().Tool != editor.ToolText {
		t.Fatalf("overlay keys must not switch tools")
	}

	w.HandleEvent(platform.Event{Type: platform.EventMouseDown, X: px, Y: py, Button: platform.ButtonLeft})
	typeText(w, "discard")
	key(w, "escape", platform.Mods{})
	if w.prompt != nil || len(w.State().Nodes) != 1 {
		t.Fatalf("escape should close the overlay without placing text")
	}

	w.HandleEvent(platform.Event{Type: platform.EventMouseDown, X: px, Y: py, Button: platform.ButtonLeft})
	key(w, "enter", platform.Mods{})
	if len(w.State().Nodes) != 1 {
		t.Fatalf("empty text must not create a node")
	}
}

func TestSynchronousPrompter(t *testing.T) {
	w := newTestWorkspace(t, func(o *Options) { o.Prompter = fixedPrompter("hello") })
	key(w, "t", platform.Mods{})
	px, py := canvasAt(w, 20, 30)
	w.HandleEvent(platform.Event{Type: platform.EventMouseDown, X: px, Y: py, Button: platform.ButtonLeft})
	if len(w.State().Nodes) != 1 || w.prompt != nil {
		t.Fatalf("a synchronous prompter should place text immediately")
	}
	if txt := w.State().Nodes[0].(scene.TextNode); txt.Text != "hello" || txt.X != 20 || txt.Y != 30 {
		t.Fatalf("unexpected text node: %+v", txt)
	}
}

func TestCopyAndPaste(t *testing.T) {
	clip := &fakeClipboard{text: "first\r\nsecond"}
	w := newTestWorkspace(t, func(o *Options) { o.Clipboard = clip })

	key(w, "v", platform.Mods{Ctrl: true})
	if len(w.State().Nodes) != 1 {
		t.Fatalf("paste should create a text node")
	}
	txt := w.State().Nodes[0].(scene.TextNode)
	c := w.Layout().Canvas
	if txt.Text != "first second" || txt.X != float64(c.W)/2 || txt.Y != float64(c.H)/2 {
		t.Fatalf("unexpected pasted node: %+v", txt)
	}

	clip.text = ""
	w.State().SelectNode(txt.ID)
	key(w, "c", platform.Mods{Ctrl: true})
	if clip.text != "first second" {
		t.Fatalf("copy should put the text on the clipboard, got %q", clip.text)
	}

	id := w.State().AddNode(scene.RectNode{Width: 1, Height: 1})
	w.State().SelectNode(id)
	key(w, "c", platform.Mods{Ctrl: true})
	if clip.text != "first second" || !strings.Contains(w.Status(), "Only text") {
		t.Fatalf("copying a shape should be refused: %q", w.Status())
	}

	clip.err = errors.New("boom")
	key(w, "v", platform.Mods{Ctrl: true})
	if !strings.Contains(w.Status(), "boom") || len(w.State().Nodes) != 2 {
		t.Fatalf("clipboard errors should surface in the status line: %q", w.Status())
	}
}

func TestExportPNG(t *testing.T) {
	w := newTestWorkspace(t, nil)
	w.State().AddNode(scene.RectNode{Base: scene.Base{X: 10, Y: 10}, Width: 60, Height: 60, Fill: "#ff0000"})
	w.State().SelectNode(w.State().Nodes[0].Attrs().ID)

	var buf bytes.Buffer
	if err := w.ExportPNG(&buf); err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	c := w.Layout().Canvas
	if b := img.Bounds(); b.Dx() != c.W || b.Dy() != c.H {
		t.Fatalf("export should match the canvas size, got %v", b)
	}
	r, g, bl, _ := img.At(40, 40).RGBA()
	if r>>8 < 0xf0 || g>>8 > 0x10 || bl>>8 > 0x10 {
		t.Fatalf("expected red inside the rect, got %d %d %d", r>>8, g>>8, bl>>8)
	}
	// Grid lines are left out of exports.
	r, g, bl, _ = img.At(200, 300).RGBA()
	bg := w.style.Background
	if !near(r>>8, bg.R) || !near(g>>8, bg.G) || !near(bl>>8, bg.B) {
		t.Fatalf("expected plain background on a grid line, got %d %d %d", r>>8, g>>8, bl>>8)
	}
}

func near(v uint32, want uint8) bool {
	d := int(v) - int(want)
	return d >= -2 && d <= 2
}

func TestExportToFile(t *testing.T) {
	dialogs := &fakeDialogs{}
	w := newTestWorkspace(t, func(o *Options) { o.Dialogs = dialogs })

	key(w, "e", platform.Mods{Ctrl: true})
	if w.Status() != "Export cancelled" {
		t.Fatalf("empty path should cancel, got %q", w.Status())
	}

	dialogs.savePath = filepath.Join(t.TempDir(), "out")
	key(w, "e", platform.Mods{Ctrl: true})
	info, err := os.Stat(dialogs.savePath + ".png")
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if info.Size() == 0 || !strings.HasPrefix(w.Status(), "Exported out.png (") {
		t.Fatalf("unexpected export status %q", w.Status())
	}
}

func TestPumpPresentsOnlyWhenDirty(t *testing.T) {
	win := headless.New(platform.WindowConfig{Title: "test", WidthPx: 1024, HeightPx: 700})
	w := New(DefaultOptions())

	alive, err := w.Pump(win)
	if err != nil || !alive {
		t.Fatalf("Pump: %v %v", alive, err)
	}
	if win.Frames() != 1 || win.Last().W != 1024 || win.Last().H != 700 {
		t.Fatalf("first pump should present a full frame")
	}
	if _, err := w.Pump(win); err != nil || win.Frames() != 1 {
		t.Fatalf("idle pump should not redraw, frames=%d", win.Frames())
	}

	win.Push(platform.Event{Type: platform.EventKeyDown, Key: "r"})
	if _, err := w.Pump(win); err != nil || win.Frames() != 2 {
		t.Fatalf("input should trigger a redraw, frames=%d", win.Frames())
	}

	w.State().AddNode(scene.RectNode{Width: 5, Height: 5})
	if _, err := w.Pump(win); err != nil || win.Frames() != 3 {
		t.Fatalf("store changes should trigger a redraw, frames=%d", win.Frames())
	}

	win.Push(platform.Event{Type: platform.EventResize, Width: 800, Height: 600})
	if _, err := w.Pump(win); err != nil || win.Last().W != 800 {
		t.Fatalf("resize should reflow the frame")
	}

	win.Close()
	if alive, _ := w.Pump(win); alive {
		t.Fatalf("closed window should stop the loop")
	}
}

func TestDrawPaintsCanvasBackground(t *testing.T) {
	w := newTestWorkspace(t, nil)
	fb := w.Draw()
	c := w.Layout().Canvas
	if got := fb.At(c.X+410, c.Y+410); got != w.style.Background {
		t.Fatalf("expected canvas background, got %v", got)
	}
	if got := fb.At(5, 5); got != w.theme.TopBar {
		t.Fatalf("expected title bar colour, got %v", got)
	}
	if w.NeedsRedraw() {
		t.Fatalf("a fresh frame should not need a redraw")
	}
}

func TestApplyConfig(t *testing.T) {
	w := newTestWorkspace(t, nil)
	cfg := config.Default()
	cfg.Shapes.Fill = "#00ff00"
	cfg.History.Max = 3
	cfg.Window.Title = "Reloaded"
	w.ApplyConfig(cfg)

	key(w, "r", platform.Mods{})
	drag(w, 0, 0, 20, 20)
	if r := w.State().Nodes[0].(scene.RectNode); r.Fill != "#00ff00" {
		t.Fatalf("reloaded defaults should apply to new shapes, got %q", r.Fill)
	}
	if w.State().MaxHistory != 3 || w.title != "Reloaded" {
		t.Fatalf("reloaded settings not applied")
	}
}

func TestPresentersReadSnapshot(t *testing.T) {
	w := newTestWorkspace(t, nil)
	key(w, "r", platform.Mods{})
	drag(w, 10, 10, 60, 60)
	w.Draw()

	if w.view.Revision != w.State().Revision() || len(w.view.Nodes) != 1 {
		t.Fatalf("snapshot is stale: rev %d vs %d, %d nodes", w.view.Revision, w.State().Revision(), len(w.view.Nodes))
	}
	if &w.view.Nodes[0] == &w.State().Nodes[0] {
		t.Fatalf("snapshot must not share the store's node slice")
	}
	if props := w.surface.Props(); &props.Nodes[0] != &w.view.Nodes[0] {
		t.Fatalf("surface should hit-test against the snapshot")
	}
	if rows := w.tree.Rows(); len(rows) != 1 || !rows[0].Selected {
		t.Fatalf("tree should list the selected node: %+v", rows)
	}

	w.view.Nodes[0] = scene.RectNode{Base: scene.Base{ID: "other"}}
	if w.State().Nodes[0].Attrs().ID == "other" {
		t.Fatalf("writes to the snapshot leaked into the store")
	}
}
