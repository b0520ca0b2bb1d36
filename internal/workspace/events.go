package workspace

import (
	"strings"

	"sketchpad/internal/editor"
	"sketchpad/internal/platform"
	"sketchpad/pkg/scene"
)

var toolKeys = map[string]editor.Tool{
	"v": editor.ToolSelect,
	"h": editor.ToolPan,
	"r": editor.ToolRect,
	"e": editor.ToolEllipse,
	"l": editor.ToolLine,
	"t": editor.ToolText,
}

// HandleEvent routes one host event and refreshes everything derived from
// the store.
func (w *Workspace) HandleEvent(ev platform.Event) {
	switch ev.Type {
	case platform.EventClose:
		w.closed = true
	case platform.EventResize:
		if ev.Width > 0 && ev.Height > 0 {
			w.width, w.height = ev.Width, ev.Height
			w.dirty = true
		}
	case platform.EventDPIChanged:
		if ev.Scale > 0 {
			w.scale = ev.Scale
			w.dirty = true
		}
	case platform.EventMouseDown:
		w.mouseDown(ev)
	case platform.EventMouseMove:
		if w.capture != platform.ButtonNone {
			w.surface.PointerMove(w.canvasPoint(ev.X, ev.Y))
			w.dirty = true
		}
	case platform.EventMouseUp:
		if w.capture == ev.Button {
			w.surface.PointerUp(w.canvasPoint(ev.X, ev.Y), ev.Button)
			w.capture = platform.ButtonNone
			w.dirty = true
		}
	case platform.EventMouseWheel:
		switch {
		case w.layout.Canvas.Contains(ev.X, ev.Y):
			w.surface.Wheel(w.canvasPoint(ev.X, ev.Y), ev.DeltaY)
		case w.layout.Tree.Contains(ev.X, ev.Y):
			w.tree.Scroll(ev.DeltaY)
			w.dirty = true
		}
	case platform.EventKeyDown:
		w.keyDown(ev)
	case platform.EventTextInput:
		w.textInput(ev.Rune)
	}
	w.sync()
}

func (w *Workspace) mouseDown(ev platform.Event) {
	if w.prompt != nil || w.capture != platform.ButtonNone {
		return
	}
	x, y := ev.X, ev.Y
	if w.layout.Canvas.Contains(x, y) {
		if ev.Button != platform.ButtonLeft && ev.Button != platform.ButtonMiddle {
			return
		}
		w.panel.Blur()
		w.capture = ev.Button
		w.surface.PointerDown(w.canvasPoint(x, y), ev.Button)
		if !w.surface.Dragging() {
			// Text placement has no drag to capture.
			w.capture = platform.ButtonNone
		}
		w.dirty = true
		return
	}
	if ev.Button != platform.ButtonLeft {
		return
	}
	if !w.layout.Panel.Contains(x, y) {
		w.panel.Blur()
	}
	switch {
	case w.toolbar.Click(x, y):
	case w.tree.Click(x, y):
	case w.panel.Click(x, y):
	}
	w.dirty = true
}

func (w *Workspace) textInput(r rune) {
	if r < 0x20 || r == 0x7f {
		return
	}
	switch {
	case w.prompt != nil:
		w.prompt.text += string(r)
		w.dirty = true
	case w.panel.Focused():
		w.panel.TypeText(string(r))
	}
}

func (w *Workspace) keyDown(ev platform.Event) {
	key := strings.ToLower(ev.Key)
	mods := ev.Mods
	w.dirty = true

	if w.prompt != nil {
		w.promptKey(key, mods)
		return
	}
	if w.panel.Focused() {
		if mods.Ctrl && key == "v" {
			w.pasteInto(w.panel.TypeText)
			return
		}
		if !mods.Ctrl {
			w.panel.Key(key)
			return
		}
	}

	if mods.Ctrl {
		switch {
		case key == "z" && mods.Shift, key == "y":
			w.redo()
		case key == "z":
			w.undo()
		case key == "c":
			w.copySelection()
		case key == "v":
			w.pasteText()
		case key == "e":
			w.exportToFile()
		case key == "=" || key == "+":
			w.state.ZoomIn()
		case key == "-":
			w.state.ZoomOut()
		}
		return
	}

	if tool, ok := toolKeys[key]; ok {
		w.state.SetTool(tool)
		return
	}
	switch key {
	case "=", "+":
		w.state.ZoomIn()
	case "-":
		w.state.ZoomOut()
	case "delete", "backspace":
		if id := w.state.SelectedID; id != "" {
			w.state.DeleteNode(id)
			w.setStatus("Deleted %s", id)
		}
	case "]", "[":
		w.reorderSelection(key == "]")
	case "escape":
		if w.surface.Dragging() {
			w.surface.Cancel()
			w.capture = platform.ButtonNone
			return
		}
		w.state.SelectNode("")
	}
}

func (w *Workspace) promptKey(key string, mods platform.Mods) {
	p := w.prompt
	switch {
	case key == "enter":
		w.prompt = nil
		w.surface.CommitText(p.at, p.text)
	case key == "escape":
		w.prompt = nil
	case key == "backspace":
		if r := []rune(p.text); len(r) > 0 {
			p.text = string(r[:len(r)-1])
		}
	case mods.Ctrl && key == "v":
		w.pasteInto(func(s string) { p.text += s })
	}
}

// reorderSelection moves the selected node one step towards the front or
// back of the paint order.
func (w *Workspace) reorderSelection(forward bool) {
	id := w.state.SelectedID
	idx := scene.IndexOf(w.state.Nodes, id)
	if idx < 0 {
		return
	}
	to := idx - 1
	if forward {
		to = idx + 1
	}
	if w.state.ReorderNode(id, to) {
		w.setStatus("Moved %s to position %d", id, to+1)
	}
}
