package app

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sketchpad/internal/platform"
)

// Held editing keys repeat after repeatDelay ticks, every repeatInterval.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

var mouseButtons = []struct {
	eb ebiten.MouseButton
	pb platform.Button
}{
	{ebiten.MouseButtonLeft, platform.ButtonLeft},
	{ebiten.MouseButtonMiddle, platform.ButtonMiddle},
	{ebiten.MouseButtonRight, platform.ButtonRight},
}

var namedKeys = map[ebiten.Key]string{
	ebiten.KeyBackspace:      "backspace",
	ebiten.KeyDelete:         "delete",
	ebiten.KeyEnter:          "enter",
	ebiten.KeyNumpadEnter:    "enter",
	ebiten.KeyEscape:         "escape",
	ebiten.KeyTab:            "tab",
	ebiten.KeyEqual:          "=",
	ebiten.KeyNumpadAdd:      "+",
	ebiten.KeyMinus:          "-",
	ebiten.KeyNumpadSubtract: "-",
	ebiten.KeyBracketLeft:    "[",
	ebiten.KeyBracketRight:   "]",
}

var repeatable = []ebiten.Key{ebiten.KeyBackspace, ebiten.KeyDelete}

func (a *App) collectInput() {
	mods := platform.Mods{
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),
		Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
		Alt:   ebiten.IsKeyPressed(ebiten.KeyAlt),
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	if x != a.cursorX || y != a.cursorY {
		a.cursorX, a.cursorY = x, y
		a.push(platform.Event{Type: platform.EventMouseMove, X: x, Y: y, Mods: mods})
	}
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			a.push(platform.Event{Type: platform.EventMouseDown, X: x, Y: y, Button: b.pb, Mods: mods})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			a.push(platform.Event{Type: platform.EventMouseUp, X: x, Y: y, Button: b.pb, Mods: mods})
		}
	}
	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		a.push(platform.Event{Type: platform.EventMouseWheel, X: x, Y: y, DeltaX: dx, DeltaY: dy, Mods: mods})
	}

	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if name := keyName(k); name != "" {
			a.push(platform.Event{Type: platform.EventKeyDown, Key: name, Mods: mods})
		}
	}
	for _, k := range repeatable {
		d := inpututil.KeyPressDuration(k)
		if d > repeatDelay && (d-repeatDelay)%repeatInterval == 0 {
			a.push(platform.Event{Type: platform.EventKeyDown, Key: keyName(k), Mods: mods})
		}
	}
	if mods.Ctrl {
		return
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		a.push(platform.Event{Type: platform.EventTextInput, Rune: r})
	}
}

func (a *App) push(ev platform.Event) {
	a.queue = append(a.queue, ev)
}

// keyName maps an ebiten key to the workspace's key names: letters and
// digits as themselves, editing keys by name.
func keyName(k ebiten.Key) string {
	if name, ok := namedKeys[k]; ok {
		return name
	}
	s := k.String()
	switch {
	case len(s) == 1:
		return strings.ToLower(s)
	case strings.HasPrefix(s, "Digit") && len(s) == 6:
		return s[5:]
	}
	return ""
}
