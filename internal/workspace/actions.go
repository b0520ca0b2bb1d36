package workspace

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	xdraw "golang.org/x/image/draw"

	"sketchpad/internal/render"
	"sketchpad/pkg/scene"
)

// ExportSupersample is the oversampling factor used when exporting.
const ExportSupersample = 2

var errNoClipboard = errors.New("clipboard unavailable")

func (w *Workspace) copySelection() {
	sel, ok := w.state.Selected()
	if !ok {
		w.setStatus("Nothing selected")
		return
	}
	t, ok := sel.(scene.TextNode)
	if !ok {
		w.setStatus("Only text can be copied")
		return
	}
	if err := w.writeClipboard(t.Text); err != nil {
		w.setStatus("Copy failed: %v", err)
		return
	}
	w.setStatus("Copied %q", t.Text)
}

// pasteText drops the clipboard text onto the middle of the visible canvas.
func (w *Workspace) pasteText() {
	s, err := w.readClipboard()
	if err != nil {
		w.setStatus("Paste failed: %v", err)
		return
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		w.setStatus("Clipboard is empty")
		return
	}
	// Text nodes are single-line.
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
	w.surface.CommitText(w.canvasCenter(), s)
}

// pasteInto hands the first line of the clipboard to sink.
func (w *Workspace) pasteInto(sink func(string)) {
	s, err := w.readClipboard()
	if err != nil {
		w.setStatus("Paste failed: %v", err)
		return
	}
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	if s != "" {
		sink(s)
	}
}

func (w *Workspace) readClipboard() (string, error) {
	if w.clipboard == nil {
		return "", errNoClipboard
	}
	s, err := w.clipboard.ReadText()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return s, nil
}

func (w *Workspace) writeClipboard(s string) error {
	if w.clipboard == nil {
		return errNoClipboard
	}
	if err := w.clipboard.WriteText(s); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

func (w *Workspace) exportToFile() {
	if w.dialogs == nil {
		w.setStatus("Export needs a file dialog")
		return
	}
	path, err := w.dialogs.SaveFile("Export PNG", "sketch.png")
	if err != nil {
		w.setStatus("Export failed: %v", err)
		return
	}
	if path == "" {
		w.setStatus("Export cancelled")
		return
	}
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	n, err := w.ExportFile(path)
	if err != nil {
		w.setStatus("Export failed: %v", err)
		return
	}
	w.setStatus("Exported %s (%s)", filepath.Base(path), humanize.Bytes(uint64(n)))
}

// ExportFile writes the visible canvas to path as PNG and returns the file
// size.
func (w *Workspace) ExportFile(path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	cw := &countingWriter{w: f}
	if err := w.ExportPNG(cw); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", path, err)
	}
	return cw.n, nil
}

// ExportPNG encodes the visible canvas, without grid, selection or pending
// shape, at one image pixel per logical pixel. The scene is rendered at
// ExportSupersample times that size and filtered down.
func (w *Workspace) ExportPNG(out io.Writer) error {
	c := w.layout.Canvas
	width := math.Max(1, math.Round(float64(c.W)/w.scale))
	height := math.Max(1, math.Round(float64(c.H)/w.scale))

	style := w.style
	style.Grid = color.RGBA{}
	big := render.NewRaster(render.NewFrameBuffer(1, 1), w.fonts)
	render.Scene(big, render.Frame{
		Width:      width,
		Height:     height,
		PixelRatio: ExportSupersample,
		Viewport:   w.state.Viewport,
		Nodes:      w.state.Nodes,
		Style:      style,
	})

	dst := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	src := big.Buffer().Image()
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	if err := png.Encode(out, dst); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
