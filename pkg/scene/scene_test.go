package scene

import (
	"errors"
	"math"
	"testing"

	"sketchpad/internal/geom"
)

func TestApplyAndCaptureRestore(t *testing.T) {
	orig := RectNode{Base: Base{ID: "r1", Name: "box", X: 1, Y: 2}, Width: 10, Height: 20, Fill: "#fff"}
	p := Patch{Name: String("renamed"), X: Float(50), Width: Float(99), Text: String("ignored")}

	prior := Capture(orig, p)
	changed := Apply(orig, p).(RectNode)
	if changed.Name != "renamed" || changed.X != 50 || changed.Width != 99 {
		t.Fatalf("unexpected merge result: %+v", changed)
	}
	if changed.Y != 2 || changed.Height != 20 || changed.Fill != "#fff" {
		t.Fatalf("untouched fields changed: %+v", changed)
	}
	if prior.Text != nil {
		t.Fatalf("captured a field the rect does not have")
	}

	restored := Apply(changed, prior).(RectNode)
	if restored != orig {
		t.Fatalf("restore mismatch: got %+v want %+v", restored, orig)
	}
}

func TestApplyDoesNotAliasLinePoints(t *testing.T) {
	line := LineNode{Base: Base{ID: "l1"}, Points: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 5}}}
	moved := Apply(line, Patch{Name: String("edge")}).(LineNode)
	moved.Points[0].X = 42
	if line.Points[0].X != 0 {
		t.Fatalf("patched copy shares points with the original")
	}

	pts := []geom.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	replaced := Apply(line, Patch{Points: pts}).(LineNode)
	pts[0].X = -1
	if replaced.Points[0].X != 1 || len(replaced.Points) != 3 {
		t.Fatalf("unexpected points after replace: %+v", replaced.Points)
	}
	prior := Capture(line, Patch{Points: pts})
	back := Apply(replaced, prior).(LineNode)
	if len(back.Points) != 2 || back.Points[1] != (geom.Point{X: 5, Y: 5}) {
		t.Fatalf("line restore mismatch: %+v", back.Points)
	}
}

func TestNormalize(t *testing.T) {
	n := Normalize(EllipseNode{Base: Base{ID: "e1", X: 100, Y: 100}, Width: -60, Height: -70}).(EllipseNode)
	if n.X != 40 || n.Y != 30 || n.Width != 60 || n.Height != 70 {
		t.Fatalf("unexpected normalized ellipse: %+v", n)
	}
	text := TextNode{Base: Base{ID: "t1", X: 3, Y: 4}, Text: "hi", FontSize: 12}
	if Normalize(text) != Node(text) {
		t.Fatalf("normalize changed a text node")
	}
}

func TestLabel(t *testing.T) {
	if got := Label(RectNode{Base: Base{ID: "rect-1"}}); got != "rect-1" {
		t.Fatalf("unexpected fallback label: %q", got)
	}
	if got := Label(TextNode{Base: Base{ID: "t", Name: "Title"}}); got != "Title" {
		t.Fatalf("unexpected named label: %q", got)
	}
}

func TestDrawable(t *testing.T) {
	if !Drawable(RectNode{Width: 10, Height: 10}) {
		t.Fatalf("finite rect should be drawable")
	}
	if Drawable(RectNode{Width: math.NaN(), Height: 10}) {
		t.Fatalf("NaN rect should not be drawable")
	}
	if Drawable(LineNode{Points: []geom.Point{{X: 1, Y: 1}}}) {
		t.Fatalf("single point line should not be drawable")
	}
	if Drawable(TextNode{Text: "a", FontSize: math.NaN()}) {
		t.Fatalf("NaN font size should not be drawable")
	}
}

func TestValidate(t *testing.T) {
	nodes := []Node{
		RectNode{Base: Base{ID: "a"}},
		TextNode{Base: Base{ID: "a"}},
	}
	if err := Validate(nodes); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err := Validate([]Node{LineNode{Base: Base{ID: "l"}}}); !errors.Is(err, ErrShortLine) {
		t.Fatalf("expected ErrShortLine, got %v", err)
	}
	if err := Validate([]Node{RectNode{}}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}
