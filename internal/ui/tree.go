package ui

import (
	"fmt"

	"github.com/samber/lo"

	"sketchpad/internal/geom"
	"sketchpad/internal/render"
	"sketchpad/pkg/scene"
)

// TreeRow is one line of the node tree.
type TreeRow struct {
	ID       string
	Label    string
	Selected bool
	Hidden   bool
	rect     Rect
}

// RowLabel formats a node as "{type} ({name|id})".
func RowLabel(n scene.Node) string {
	return fmt.Sprintf("%s (%s)", n.Kind(), scene.Label(n))
}

// Tree lists the nodes in paint order and reports clicks through OnSelect.
type Tree struct {
	OnSelect func(id string)

	area    Rect
	rows    []TreeRow
	scroll  int
	rowH    int
	headerH int
}

func NewTree(onSelect func(id string)) *Tree {
	return &Tree{OnSelect: onSelect}
}

func (t *Tree) Layout(area Rect, rowH int, nodes []scene.Node, selectedID string) {
	t.area = area
	t.rowH = rowH
	t.headerH = rowH
	t.rows = lo.Map(nodes, func(n scene.Node, _ int) TreeRow {
		b := n.Attrs()
		return TreeRow{ID: b.ID, Label: RowLabel(n), Selected: b.ID == selectedID, Hidden: b.Hidden}
	})
	t.clampScroll()
	y := area.Y + t.headerH - t.scroll
	for i := range t.rows {
		t.rows[i].rect = Rect{X: area.X, Y: y, W: area.W, H: rowH}
		y += rowH
	}
}

func (t *Tree) Rows() []TreeRow { return t.rows }

// Click selects the row under (x, y). It reports whether the tree area was hit.
func (t *Tree) Click(x, y float64) bool {
	if !t.area.Contains(x, y) {
		return false
	}
	if y < float64(t.area.Y+t.headerH) {
		return true
	}
	row, ok := lo.Find(t.rows, func(r TreeRow) bool { return r.rect.Contains(x, y) })
	if ok && t.OnSelect != nil {
		t.OnSelect(row.ID)
	}
	return true
}

// Scroll moves the list by dy device pixels.
func (t *Tree) Scroll(dy float64) {
	t.scroll -= int(dy * float64(t.rowH))
	t.clampScroll()
}

func (t *Tree) clampScroll() {
	content := len(t.rows)*t.rowH + t.headerH
	maxScroll := content - t.area.H
	if maxScroll < 0 {
		maxScroll = 0
	}
	if t.scroll > maxScroll {
		t.scroll = maxScroll
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

func (t *Tree) Draw(p render.Painter, theme Theme, fontPx float64) {
	pad := float64(t.rowH) / 3
	p.TextBold(geom.Point{X: float64(t.area.X) + pad, Y: baseline(Rect{Y: t.area.Y, H: t.headerH}, fontPx)}, "Layers", fontPx, theme.MutedText)
	for _, row := range t.rows {
		if row.rect.Y+row.rect.H <= t.area.Y+t.headerH || row.rect.Y >= t.area.Y+t.area.H {
			continue
		}
		if row.Selected {
			p.FillRect(row.rect.Geom(), theme.RowSelected)
		}
		fg := theme.PanelText
		if row.Hidden {
			fg = theme.MutedText
		}
		p.Text(geom.Point{X: float64(row.rect.X) + pad, Y: baseline(row.rect, fontPx)}, row.Label, fontPx, fg)
	}
}
