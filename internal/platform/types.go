package platform

import "sketchpad/internal/render"

type WindowConfig struct {
	Title       string
	WidthPx     int
	HeightPx    int
	MinWidthPx  int
	MinHeightPx int
}

type EventType int

const (
	EventUnknown EventType = iota
	EventClose
	EventResize
	EventDPIChanged
	EventKeyDown
	EventKeyUp
	EventTextInput
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Mods is the modifier state at the time of an event. Ctrl also covers the
// macOS command key.
type Mods struct {
	Ctrl  bool
	Shift bool
	Alt   bool
}

// Event is a host-neutral input event. Positions are device pixels; Key is a
// lower-case key name such as "z", "delete" or "enter".
type Event struct {
	Type   EventType
	Width  int
	Height int
	Scale  float64
	Rune   rune
	DeltaX float64
	DeltaY float64
	X      float64
	Y      float64
	Button Button
	Key    string
	Mods   Mods
}

// Window is what the workspace needs from a host: queued input, the surface
// size and density, and somewhere to put finished frames.
type Window interface {
	PollEvents() []Event
	SizePx() (int, int)
	Scale() float64
	Present(fb *render.FrameBuffer) error
	SetTitle(title string)
	Close()
}
