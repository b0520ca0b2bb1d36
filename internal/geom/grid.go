package geom

import "math"

const GridSpacing = 40.0

// Grid holds the screen positions of the vertical (Xs) and horizontal (Ys)
// grid lines covering a width x height surface.
type Grid struct {
	Spacing float64
	Xs      []float64
	Ys      []float64
}

// GridLines lays out a grid whose lines sit on world multiples of base, so
// panning by a whole number of cells leaves the lines in place.
func GridLines(vp Viewport, width, height, base float64) Grid {
	if base <= 0 {
		base = GridSpacing
	}
	spacing := base * vp.Scale
	g := Grid{Spacing: spacing}
	if !finite(spacing) || spacing <= 0 || width <= 0 || height <= 0 {
		return g
	}
	g.Xs = gridAxis(vp.OffsetX, spacing, width)
	g.Ys = gridAxis(vp.OffsetY, spacing, height)
	return g
}

func gridAxis(offset, spacing, extent float64) []float64 {
	if !finite(offset) {
		return nil
	}
	start := math.Mod(offset, spacing)
	if start < 0 {
		start += spacing
	}
	out := make([]float64, 0, int(extent/spacing)+1)
	for v := start; v < extent; v += spacing {
		out = append(out, v)
	}
	return out
}
