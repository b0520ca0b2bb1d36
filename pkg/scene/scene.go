package scene

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"sketchpad/internal/geom"
)

type Kind string

const (
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindLine    Kind = "line"
	KindText    Kind = "text"
)

var (
	ErrDuplicateID = errors.New("scene: duplicate node id")
	ErrMissingID   = errors.New("scene: node has no id")
	ErrShortLine   = errors.New("scene: line needs at least two points")
)

// Base holds the attributes every node kind shares. Rotation is carried but
// not yet honoured by rendering or hit testing.
type Base struct {
	ID       string
	Name     string
	X        float64
	Y        float64
	Rotation float64
	ZIndex   int
	Hidden   bool
	Locked   bool
}

// Node is the closed set of shapes a canvas holds: RectNode, EllipseNode,
// LineNode and TextNode. Callers dispatch with a type switch.
type Node interface {
	Kind() Kind
	Attrs() Base
	isNode()
}

type RectNode struct {
	Base
	Width       float64
	Height      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

type EllipseNode struct {
	Base
	Width       float64
	Height      float64
	Fill        string
	Stroke      string
	StrokeWidth float64
}

type LineNode struct {
	Base
	Points      []geom.Point
	Stroke      string
	StrokeWidth float64
}

type TextNode struct {
	Base
	Text     string
	FontSize float64
	Color    string
}

func (RectNode) Kind() Kind    { return KindRect }
func (EllipseNode) Kind() Kind { return KindEllipse }
func (LineNode) Kind() Kind    { return KindLine }
func (TextNode) Kind() Kind    { return KindText }

func (n RectNode) Attrs() Base    { return n.Base }
func (n EllipseNode) Attrs() Base { return n.Base }
func (n LineNode) Attrs() Base    { return n.Base }
func (n TextNode) Attrs() Base    { return n.Base }

func (RectNode) isNode()    {}
func (EllipseNode) isNode() {}
func (LineNode) isNode()    {}
func (TextNode) isNode()    {}

func ID(n Node) string {
	if n == nil {
		return ""
	}
	return n.Attrs().ID
}

// Label is the display name used by the node tree: the name when set,
// otherwise the id.
func Label(n Node) string {
	b := n.Attrs()
	if b.Name != "" {
		return b.Name
	}
	return b.ID
}

// WithID returns a copy of n carrying id.
func WithID(n Node, id string) Node {
	switch v := n.(type) {
	case RectNode:
		v.ID = id
		return v
	case EllipseNode:
		v.ID = id
		return v
	case LineNode:
		v.ID = id
		v.Points = clonePoints(v.Points)
		return v
	case TextNode:
		v.ID = id
		return v
	}
	return n
}

// Clone returns a deep copy; only lines own shared memory.
func Clone(n Node) Node {
	if l, ok := n.(LineNode); ok {
		l.Points = clonePoints(l.Points)
		return l
	}
	return n
}

func CloneAll(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}

// Normalize folds a negative drag size into the node position. Only rects and
// ellipses carry a signed size.
func Normalize(n Node) Node {
	switch v := n.(type) {
	case RectNode:
		r := geom.Rect{X: v.X, Y: v.Y, W: v.Width, H: v.Height}.Normalize()
		v.X, v.Y, v.Width, v.Height = r.X, r.Y, r.W, r.H
		return v
	case EllipseNode:
		r := geom.Rect{X: v.X, Y: v.Y, W: v.Width, H: v.Height}.Normalize()
		v.X, v.Y, v.Width, v.Height = r.X, r.Y, r.W, r.H
		return v
	}
	return n
}

// Bounds returns the axis-aligned world bounds of n. Text width is estimated
// from the rune count since no font metrics are available here.
func Bounds(n Node) geom.Rect {
	return BoundsWith(n, EstimateTextWidth)
}

// MeasureFunc returns the advance width of s set at size.
type MeasureFunc func(s string, size float64) float64

// BoundsWith is Bounds with text widths taken from measure.
func BoundsWith(n Node, measure MeasureFunc) geom.Rect {
	if measure == nil {
		measure = EstimateTextWidth
	}
	switch v := n.(type) {
	case RectNode:
		return geom.Rect{X: v.X, Y: v.Y, W: v.Width, H: v.Height}.Normalize()
	case EllipseNode:
		return geom.Rect{X: v.X, Y: v.Y, W: v.Width, H: v.Height}.Normalize()
	case LineNode:
		return geom.BoundsOf(v.Points)
	case TextNode:
		w := measure(v.Text, v.FontSize)
		return geom.Rect{X: v.X, Y: v.Y - v.FontSize, W: w, H: v.FontSize * 1.2}
	}
	return geom.Rect{}
}

func EstimateTextWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.6
}

// Drawable reports whether every coordinate the renderer needs is finite.
func Drawable(n Node) bool {
	switch v := n.(type) {
	case RectNode, EllipseNode:
		return Bounds(v).Finite()
	case LineNode:
		if len(v.Points) < 2 {
			return false
		}
		for _, p := range v.Points {
			if !p.Finite() {
				return false
			}
		}
		return true
	case TextNode:
		return geom.Point{X: v.X, Y: v.Y}.Finite() && v.FontSize > 0 && !math.IsInf(v.FontSize, 1)
	}
	return false
}

func ValidateNode(n Node) error {
	if n == nil {
		return errors.New("scene: nil node")
	}
	if n.Attrs().ID == "" {
		return ErrMissingID
	}
	if l, ok := n.(LineNode); ok && len(l.Points) < 2 {
		return fmt.Errorf("node %s: %w", l.ID, ErrShortLine)
	}
	return nil
}

// Validate checks every node and the uniqueness of ids.
func Validate(nodes []Node) error {
	seen := make(map[string]struct{}, len(nodes))
	for i, n := range nodes {
		if err := ValidateNode(n); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		id := n.Attrs().ID
		if _, dup := seen[id]; dup {
			return fmt.Errorf("node %d (%s): %w", i, id, ErrDuplicateID)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func IndexOf(nodes []Node, id string) int {
	if id == "" {
		return -1
	}
	for i, n := range nodes {
		if n.Attrs().ID == id {
			return i
		}
	}
	return -1
}

func clonePoints(pts []geom.Point) []geom.Point {
	if pts == nil {
		return nil
	}
	return append([]geom.Point(nil), pts...)
}
