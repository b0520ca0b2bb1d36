// Package headless is an offscreen platform.Window. Events are queued by the
// caller and presented frames are kept for inspection.
package headless

import (
	"sketchpad/internal/platform"
	"sketchpad/internal/render"
)

type Window struct {
	title  string
	w      int
	h      int
	scale  float64
	queue  []platform.Event
	frames int
	last   *render.FrameBuffer
	closed bool
}

func New(cfg platform.WindowConfig) *Window {
	w, h := cfg.WidthPx, cfg.HeightPx
	if w < cfg.MinWidthPx {
		w = cfg.MinWidthPx
	}
	if h < cfg.MinHeightPx {
		h = cfg.MinHeightPx
	}
	return &Window{title: cfg.Title, w: w, h: h, scale: 1.0}
}

// Push queues events for the next PollEvents call. Resize and DPI events
// update the reported size and scale as they are queued.
func (w *Window) Push(events ...platform.Event) {
	for _, ev := range events {
		switch ev.Type {
		case platform.EventResize:
			w.w, w.h = ev.Width, ev.Height
		case platform.EventDPIChanged:
			if ev.Scale > 0 {
				w.scale = ev.Scale
			}
		}
	}
	w.queue = append(w.queue, events...)
}

func (w *Window) PollEvents() []platform.Event {
	if w.closed {
		return []platform.Event{{Type: platform.EventClose}}
	}
	out := w.queue
	w.queue = nil
	return out
}

func (w *Window) SizePx() (int, int) { return w.w, w.h }
func (w *Window) Scale() float64     { return w.scale }
func (w *Window) Title() string      { return w.title }
func (w *Window) SetTitle(title string) {
	w.title = title
}

// Present keeps a private copy of fb.
func (w *Window) Present(fb *render.FrameBuffer) error {
	if fb == nil {
		return nil
	}
	if w.last == nil {
		w.last = render.NewFrameBuffer(fb.W, fb.H)
	}
	w.last.Resize(fb.W, fb.H)
	copy(w.last.Pixels, fb.Pixels)
	w.frames++
	return nil
}

// Frames reports how many frames were presented.
func (w *Window) Frames() int { return w.frames }

// Last returns the most recently presented frame, or nil.
func (w *Window) Last() *render.FrameBuffer { return w.last }

func (w *Window) Close() { w.closed = true }
