package ui

import (
	"unicode/utf8"

	"sketchpad/internal/geom"
	"sketchpad/internal/render"
	"sketchpad/pkg/scene"
)

const (
	LineUnsupportedMessage = "Line editing is not supported"
	NoSelectionMessage     = "Nothing selected"
)

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
)

type Field struct {
	Key   string
	Label string
	Kind  FieldKind
	Value string
	rect  Rect
}

// FieldsFor lists the editable fields for n with their current values.
func FieldsFor(n scene.Node) []Field {
	if n == nil {
		return nil
	}
	b := n.Attrs()
	fields := []Field{
		{Key: "name", Label: "Name", Kind: FieldText, Value: b.Name},
		{Key: "x", Label: "X", Kind: FieldNumber, Value: FormatNumber(b.X)},
		{Key: "y", Label: "Y", Kind: FieldNumber, Value: FormatNumber(b.Y)},
	}
	box := func(w, h float64, fill, stroke string, sw float64) []Field {
		return []Field{
			{Key: "width", Label: "Width", Kind: FieldNumber, Value: FormatNumber(w)},
			{Key: "height", Label: "Height", Kind: FieldNumber, Value: FormatNumber(h)},
			{Key: "fill", Label: "Fill", Kind: FieldText, Value: fill},
			{Key: "stroke", Label: "Stroke", Kind: FieldText, Value: stroke},
			{Key: "strokeWidth", Label: "Stroke width", Kind: FieldNumber, Value: FormatNumber(sw)},
		}
	}
	switch v := n.(type) {
	case scene.RectNode:
		fields = append(fields, box(v.Width, v.Height, v.Fill, v.Stroke, v.StrokeWidth)...)
	case scene.EllipseNode:
		fields = append(fields, box(v.Width, v.Height, v.Fill, v.Stroke, v.StrokeWidth)...)
	case scene.TextNode:
		fields = append(fields,
			Field{Key: "text", Label: "Text", Kind: FieldText, Value: v.Text},
			Field{Key: "fontSize", Label: "Font size", Kind: FieldNumber, Value: FormatNumber(v.FontSize)},
			Field{Key: "color", Label: "Color", Kind: FieldText, Value: v.Color},
		)
	}
	return fields
}

// FieldPatch turns raw field text into the change for key. Numeric fields go
// through Number, so bad input becomes NaN rather than an error.
func FieldPatch(key, raw string) scene.Patch {
	num := func() *float64 { return scene.Float(Number(raw)) }
	switch key {
	case "name":
		return scene.Patch{Name: scene.String(raw)}
	case "x":
		return scene.Patch{X: num()}
	case "y":
		return scene.Patch{Y: num()}
	case "width":
		return scene.Patch{Width: num()}
	case "height":
		return scene.Patch{Height: num()}
	case "fill":
		return scene.Patch{Fill: scene.String(raw)}
	case "stroke":
		return scene.Patch{Stroke: scene.String(raw)}
	case "strokeWidth":
		return scene.Patch{StrokeWidth: num()}
	case "text":
		return scene.Patch{Text: scene.String(raw)}
	case "fontSize":
		return scene.Patch{FontSize: num()}
	case "color":
		return scene.Patch{Color: scene.String(raw)}
	}
	return scene.Patch{}
}

// Panel is the property inspector for the selected node. Every keystroke in
// a focused field is sent to OnChange straight away.
type Panel struct {
	OnChange func(scene.Patch)

	area    Rect
	rowH    int
	nodeID  string
	message string
	fields  []Field
	focus   int
	buffer  string
}

func NewPanel(onChange func(scene.Patch)) *Panel {
	return &Panel{OnChange: onChange, focus: -1}
}

func (p *Panel) Layout(area Rect, rowH int, n scene.Node) {
	p.area = area
	p.rowH = rowH
	id := scene.ID(n)
	if id != p.nodeID {
		p.focus = -1
		p.buffer = ""
	}
	p.nodeID = id
	p.fields = FieldsFor(n)
	switch n.(type) {
	case nil:
		p.message = NoSelectionMessage
	case scene.LineNode:
		p.message = LineUnsupportedMessage
	default:
		p.message = ""
	}
	if p.focus >= len(p.fields) {
		p.focus = -1
	}
	if p.focus >= 0 {
		p.fields[p.focus].Value = p.buffer
	}

	y := area.Y + rowH
	for i := range p.fields {
		p.fields[i].rect = Rect{X: area.X + area.W*2/5, Y: y + rowH/8, W: area.W*3/5 - rowH/3, H: rowH - rowH/4}
		y += rowH
	}
}

func (p *Panel) Fields() []Field { return p.fields }
func (p *Panel) Message() string { return p.message }
func (p *Panel) Focused() bool   { return p.focus >= 0 }

func (p *Panel) FocusedKey() string {
	if p.focus < 0 {
		return ""
	}
	return p.fields[p.focus].Key
}

// Click focuses the field under (x, y), or drops focus when the click lands
// elsewhere in the panel. It reports whether the panel area was hit.
func (p *Panel) Click(x, y float64) bool {
	if !p.area.Contains(x, y) {
		return false
	}
	p.Blur()
	for i, f := range p.fields {
		if f.rect.Contains(x, y) {
			p.Focus(i)
			break
		}
	}
	return true
}

// Focus moves the caret into field i, starting from its current value.
func (p *Panel) Focus(i int) {
	if i < 0 || i >= len(p.fields) {
		p.Blur()
		return
	}
	p.focus = i
	p.buffer = p.fields[i].Value
}

func (p *Panel) Blur() {
	p.focus = -1
	p.buffer = ""
}

// TypeText appends s to the focused field.
func (p *Panel) TypeText(s string) {
	if p.focus < 0 || s == "" {
		return
	}
	p.buffer += s
	p.emit()
}

// Key handles editing keys for the focused field and reports whether it
// consumed the key.
func (p *Panel) Key(key string) bool {
	if p.focus < 0 {
		return false
	}
	switch key {
	case "backspace":
		if p.buffer != "" {
			_, size := utf8.DecodeLastRuneInString(p.buffer)
			p.buffer = p.buffer[:len(p.buffer)-size]
			p.emit()
		}
	case "enter", "tab":
		next := p.focus + 1
		if next >= len(p.fields) {
			p.Blur()
		} else {
			p.Focus(next)
		}
	case "escape":
		p.Blur()
	default:
		return false
	}
	return true
}

func (p *Panel) emit() {
	p.fields[p.focus].Value = p.buffer
	if p.OnChange != nil {
		p.OnChange(FieldPatch(p.fields[p.focus].Key, p.buffer))
	}
}

func (p *Panel) Draw(pt render.Painter, theme Theme, fontPx float64) {
	pad := float64(p.rowH) / 3
	pt.TextBold(geom.Point{X: float64(p.area.X) + pad, Y: baseline(Rect{Y: p.area.Y, H: p.rowH}, fontPx)}, "Properties", fontPx, theme.MutedText)
	for i, f := range p.fields {
		row := Rect{X: p.area.X, Y: f.rect.Y, W: p.area.W, H: f.rect.H}
		pt.Text(geom.Point{X: float64(p.area.X) + pad, Y: baseline(row, fontPx)}, f.Label, fontPx, theme.PanelText)
		pt.FillRect(f.rect.Geom(), theme.Field)
		border := theme.Border
		value := f.Value
		if i == p.focus {
			border = theme.FieldFocus
			value += "|"
		}
		pt.StrokeRect(f.rect.Geom(), 1, border)
		pt.Text(geom.Point{X: float64(f.rect.X) + pad/2, Y: baseline(f.rect, fontPx)}, value, fontPx, theme.PanelText)
	}
	if p.message != "" {
		y := float64(p.area.Y + p.rowH*(len(p.fields)+1))
		pt.Text(geom.Point{X: float64(p.area.X) + pad, Y: y + float64(p.rowH)/2}, p.message, fontPx, theme.MutedText)
	}
}
