package geom

import "math"

// Segment is a single straight stroke from A to B.
type Segment struct {
	A Point
	B Point
}

// SelectionDash is the on/off pattern used for selection outlines.
var SelectionDash = []float64{6, 4}

// MaxDashSegments caps the output of Dash; longer paths are cut short.
const MaxDashSegments = 1 << 16

// Dash splits the polyline through points into the "on" pieces of pattern.
// The pattern phase carries over corners. A closed path also dashes the edge
// from the last point back to the first.
func Dash(points []Point, pattern []float64, closed bool) []Segment {
	if len(points) < 2 {
		return nil
	}
	path := points
	if closed {
		path = append(append([]Point(nil), points...), points[0])
	}
	if !validPattern(pattern) {
		out := make([]Segment, 0, len(path)-1)
		for i := 1; i < len(path); i++ {
			out = append(out, Segment{A: path[i-1], B: path[i]})
		}
		return out
	}

	var out []Segment
	idx := 0
	remaining := pattern[0]
	on := true
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		length := math.Hypot(b.X-a.X, b.Y-a.Y)
		if length == 0 {
			continue
		}
		pos := 0.0
		for pos < length {
			step := math.Min(remaining, length-pos)
			if pos+step <= pos || len(out) >= MaxDashSegments {
				// No float progress left at this magnitude, or too many dashes.
				return out
			}
			if on {
				out = append(out, Segment{A: lerp(a, b, pos/length), B: lerp(a, b, (pos+step)/length)})
			}
			pos += step
			remaining -= step
			if remaining <= 0 {
				idx = (idx + 1) % len(pattern)
				remaining = pattern[idx]
				on = !on
			}
		}
	}
	return out
}

func validPattern(pattern []float64) bool {
	if len(pattern) == 0 || len(pattern)%2 != 0 {
		return false
	}
	total := 0.0
	for _, v := range pattern {
		if !finite(v) || v < 0 {
			return false
		}
		total += v
	}
	return total > 0
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
