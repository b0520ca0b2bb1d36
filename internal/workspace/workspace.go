// Package workspace is the panel container: it owns the editor state and
// wires the drawing surface, toolbar, node tree and property panel to it.
package workspace

import (
	"fmt"

	"sketchpad/internal/config"
	"sketchpad/internal/editor"
	"sketchpad/internal/geom"
	"sketchpad/internal/platform"
	"sketchpad/internal/render"
	"sketchpad/internal/surface"
	"sketchpad/internal/ui"
	"sketchpad/pkg/scene"
)

// Clipboard is the system clipboard, text only.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// Dialogs are native modal dialogs.
type Dialogs interface {
	Confirm(title, message string) bool
	// SaveFile asks for a destination path. An empty path means cancelled.
	SaveFile(title, defaultName string) (string, error)
}

type Options struct {
	Title      string
	Theme      ui.Theme
	Style      render.Style
	Defaults   surface.Defaults
	MaxHistory int
	Scale      float64
	Clipboard  Clipboard
	Dialogs    Dialogs
	// Prompter overrides the in-window text overlay.
	Prompter surface.TextPrompter
}

func DefaultOptions() Options {
	return Options{
		Title:      "Sketchpad",
		Theme:      ui.DefaultTheme(),
		Style:      render.DefaultStyle(),
		Defaults:   surface.DefaultDefaults(),
		MaxHistory: editor.DefaultMaxHistory,
		Scale:      1,
	}
}

// OptionsFromConfig builds options from a loaded configuration. Colours that
// do not parse keep their defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	opts.Title = cfg.Window.Title
	if cfg.Window.UIScale > 0 {
		opts.Scale = cfg.Window.UIScale
	}
	opts.Style = styleFromConfig(opts.Style, cfg)
	opts.Defaults = surface.Defaults{
		Fill:        cfg.Shapes.Fill,
		Stroke:      cfg.Shapes.Stroke,
		StrokeWidth: cfg.Shapes.StrokeWidth,
		TextColor:   cfg.Shapes.TextColor,
		FontSize:    cfg.Shapes.FontSize,
	}
	opts.MaxHistory = cfg.History.Max
	return opts
}

func styleFromConfig(st render.Style, cfg *config.Config) render.Style {
	st.Background = render.ColorOr(cfg.Canvas.Background, st.Background)
	st.Grid = render.ColorOr(cfg.Canvas.Grid, st.Grid)
	st.Selection = render.ColorOr(cfg.Canvas.Selection, st.Selection)
	if cfg.Canvas.GridSpacing > 0 {
		st.GridSpacing = cfg.Canvas.GridSpacing
	}
	return st
}

// textPrompt is the open in-window text overlay.
type textPrompt struct {
	at   geom.Point
	text string
}

type Workspace struct {
	state   *editor.State
	view    editor.Snapshot
	surface *surface.Surface
	toolbar *ui.Toolbar
	tree    *ui.Tree
	panel   *ui.Panel

	title     string
	theme     ui.Theme
	style     render.Style
	clipboard Clipboard
	dialogs   Dialogs

	width  int
	height int
	scale  float64
	layout ui.Layout

	fonts  *render.Fonts
	chrome *render.Raster
	canvas *render.Raster

	capture  platform.Button
	prompt   *textPrompt
	status   string
	dirty    bool
	drawnRev uint64
	closed   bool
}

func New(opts Options) *Workspace {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	state := editor.NewState()
	if opts.MaxHistory > 0 {
		state.MaxHistory = opts.MaxHistory
	}
	fonts := render.NewFonts()
	w := &Workspace{
		state:     state,
		title:     opts.Title,
		theme:     opts.Theme,
		style:     opts.Style,
		clipboard: opts.Clipboard,
		dialogs:   opts.Dialogs,
		width:     1280,
		height:    800,
		scale:     opts.Scale,
		fonts:     fonts,
		chrome:    render.NewRaster(render.NewFrameBuffer(1280, 800), fonts),
		canvas:    render.NewRaster(render.NewFrameBuffer(1, 1), fonts),
		status:    "Ready",
		dirty:     true,
	}

	prompter := opts.Prompter
	if prompter == nil {
		prompter = w
	}
	w.surface = surface.New(surface.Handlers{
		OnCreateNode: w.createNode,
		OnSelectNode: w.state.SelectNode,
		OnViewportChange: func(vp geom.Viewport) {
			w.state.SetViewport(editor.ViewportOf(vp))
			w.sync()
		},
	}, prompter)
	w.surface.SetDefaults(opts.Defaults)
	w.surface.SetMeasure(w.canvas.MeasureText)

	w.toolbar = ui.NewToolbar(ui.ToolbarHandlers{
		OnTool:    w.state.SetTool,
		OnZoomIn:  w.state.ZoomIn,
		OnZoomOut: w.state.ZoomOut,
		OnUndo:    w.undo,
		OnRedo:    w.redo,
		OnClear:   w.clear,
	})
	w.tree = ui.NewTree(w.state.SelectNode)
	w.panel = ui.NewPanel(func(p scene.Patch) {
		if w.state.SelectedID != "" {
			w.state.UpdateNode(w.state.SelectedID, p)
		}
	})
	w.sync()
	return w
}

// State exposes the store for hosts and tests. Mutations made through it are
// picked up on the next event or draw.
func (w *Workspace) State() *editor.State { return w.state }

func (w *Workspace) Status() string { return w.status }

func (w *Workspace) Layout() ui.Layout { return w.layout }

func (w *Workspace) Closed() bool { return w.closed }

// Close releases cached font faces.
func (w *Workspace) Close() { w.fonts.Close() }

// ApplyConfig swaps in reloaded settings without touching the scene.
func (w *Workspace) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	opts := OptionsFromConfig(cfg)
	w.style = opts.Style
	w.surface.SetDefaults(opts.Defaults)
	w.state.MaxHistory = opts.MaxHistory
	w.title = opts.Title
	w.status = "Configuration reloaded"
	w.dirty = true
}

func (w *Workspace) setStatus(format string, args ...any) {
	w.status = fmt.Sprintf(format, args...)
	w.dirty = true
}

func (w *Workspace) createNode(n scene.Node) {
	id := w.state.AddNode(n)
	if id == "" {
		w.setStatus("Could not add %s", n.Kind())
		return
	}
	w.state.SelectNode(id)
	w.setStatus("Added %s", n.Kind())
}

func (w *Workspace) undo() {
	w.panel.Blur()
	if w.state.Undo() {
		w.setStatus("Undo")
	}
}

func (w *Workspace) redo() {
	w.panel.Blur()
	if w.state.Redo() {
		w.setStatus("Redo")
	}
}

// clear empties the scene after confirmation. Without a dialog host it
// clears straight away.
func (w *Workspace) clear() {
	if len(w.state.Nodes) == 0 {
		return
	}
	if w.dialogs != nil && !w.dialogs.Confirm("Clear canvas", "Remove every shape? This cannot be undone.") {
		w.setStatus("Clear cancelled")
		return
	}
	w.surface.Cancel()
	w.panel.Blur()
	w.state.Clear()
	w.setStatus("Canvas cleared")
}

// PromptText opens the in-window text overlay. The node is created later,
// when the overlay is confirmed.
func (w *Workspace) PromptText(at geom.Point) (string, bool) {
	w.panel.Blur()
	w.prompt = &textPrompt{at: at}
	w.dirty = true
	return "", false
}

// sync takes a fresh snapshot of the store, pushes it into the surface and
// re-lays out the panels. Presenters only ever see w.view.
func (w *Workspace) sync() {
	w.view = w.state.Snapshot()
	s := w.view
	w.surface.SetProps(surface.Props{
		Nodes:      s.Nodes,
		SelectedID: s.SelectedID,
		Tool:       s.Tool,
		Viewport:   s.Viewport,
	})
	w.layout = ui.ComputeLayout(w.width, w.height, w.theme, w.scale)
	w.toolbar.Layout(w.layout.Toolbar, w.scale, w.theme, ui.ToolbarState{
		Tool:    s.Tool,
		CanUndo: s.CanUndo,
		CanRedo: s.CanRedo,
	})
	w.tree.Layout(w.layout.Tree, w.layout.RowH, s.Nodes, s.SelectedID)
	w.panel.Layout(w.layout.Panel, w.layout.RowH, s.Selected())
}

// canvasPoint converts device pixels to logical canvas coordinates.
func (w *Workspace) canvasPoint(x, y float64) geom.Point {
	c := w.layout.Canvas
	return geom.Point{X: (x - float64(c.X)) / w.scale, Y: (y - float64(c.Y)) / w.scale}
}

// canvasCenter is the world point at the middle of the visible canvas.
func (w *Workspace) canvasCenter() geom.Point {
	c := w.layout.Canvas
	mid := geom.Point{X: float64(c.W) / 2 / w.scale, Y: float64(c.H) / 2 / w.scale}
	return w.state.Viewport.ToWorld(mid)
}
