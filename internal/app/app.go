// Package app hosts the workspace in an ebiten window. It translates ebiten
// input into platform events once per tick and shows the frames the
// workspace presents.
package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"sketchpad/internal/config"
	"sketchpad/internal/platform"
	"sketchpad/internal/render"
	"sketchpad/internal/workspace"
)

const (
	minWidth  = 640
	minHeight = 420

	reloadDelay = 250 * time.Millisecond
)

type App struct {
	cfg     *config.Config
	ws      *workspace.Workspace
	watcher *config.Watcher

	canvas *ebiten.Image
	queue  []platform.Event

	screenW int
	screenH int
	scale   float64
	cursorX float64
	cursorY float64
	closing bool
}

// New builds the application for cfg. When path names a config file it is
// watched and edits are applied while the window is open.
func New(cfg *config.Config, path string) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	opts := workspace.OptionsFromConfig(cfg)
	opts.Clipboard = systemClipboard{}
	opts.Dialogs = nativeDialogs{}
	a := &App{
		cfg:     cfg,
		ws:      workspace.New(opts),
		screenW: cfg.Window.Width,
		screenH: cfg.Window.Height,
		scale:   1,
	}
	if path == "" {
		path = config.DefaultPath()
	}
	w, err := config.Watch(path, reloadDelay)
	if err != nil {
		log.Printf("[app] config reload disabled: %v", err)
	} else {
		a.watcher = w
	}
	return a
}

func (a *App) Run() error {
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWidth, minHeight, -1, -1)
	ebiten.SetWindowClosingHandled(true)
	defer a.shutdown()
	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (a *App) shutdown() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("[app] close config watcher: %v", err)
		}
	}
	a.ws.Close()
}

func (a *App) Update() error {
	a.scale = ebiten.Monitor().DeviceScaleFactor()
	if a.cfg.Window.UIScale > 0 {
		a.scale = a.cfg.Window.UIScale
	}
	if ebiten.IsWindowBeingClosed() {
		a.queue = append(a.queue, platform.Event{Type: platform.EventClose})
	}
	a.collectInput()
	a.drainReloads()

	alive, err := a.ws.Pump(a)
	if err != nil {
		return err
	}
	if !alive || a.closing {
		return ebiten.Termination
	}
	return nil
}

func (a *App) drainReloads() {
	if a.watcher == nil {
		return
	}
	select {
	case r := <-a.watcher.Changes():
		if r.Err != nil {
			log.Printf("[app] reload config: %v", r.Err)
			return
		}
		a.cfg = r.Config
		a.ws.ApplyConfig(r.Config)
	default:
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.canvas == nil {
		return
	}
	screen.DrawImage(a.canvas, nil)
}

// Layout works in device pixels so the workspace can draw crisp chrome on
// high density displays.
func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	s := ebiten.Monitor().DeviceScaleFactor()
	w := int(float64(max(outsideWidth, minWidth)) * s)
	h := int(float64(max(outsideHeight, minHeight)) * s)
	a.screenW, a.screenH = w, h
	return w, h
}

// platform.Window

func (a *App) PollEvents() []platform.Event {
	out := a.queue
	a.queue = nil
	return out
}

func (a *App) SizePx() (int, int) { return a.screenW, a.screenH }

func (a *App) Scale() float64 { return a.scale }

func (a *App) Present(fb *render.FrameBuffer) error {
	if fb == nil || fb.W <= 0 || fb.H <= 0 {
		return nil
	}
	if a.canvas == nil || a.canvas.Bounds().Dx() != fb.W || a.canvas.Bounds().Dy() != fb.H {
		if a.canvas != nil {
			a.canvas.Deallocate()
		}
		a.canvas = ebiten.NewImage(fb.W, fb.H)
	}
	a.canvas.WritePixels(fb.Pixels)
	return nil
}

func (a *App) SetTitle(title string) { ebiten.SetWindowTitle(title) }

func (a *App) Close() { a.closing = true }
