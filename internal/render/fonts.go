package render

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	maxFaceSize   = 1024.0
	maxCachedFace = 64
)

type faceKey struct {
	quarterPx int
	bold      bool
}

// Fonts caches opentype faces by pixel size. When the Go fonts cannot be
// parsed every face falls back to basicfont.
type Fonts struct {
	regular *opentype.Font
	bold    *opentype.Font
	cache   map[faceKey]font.Face
}

func NewFonts() *Fonts {
	f := &Fonts{cache: map[faceKey]font.Face{}}
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return f
	}
	bol, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return f
	}
	f.regular = reg
	f.bold = bol
	return f
}

// Face returns a face for size device pixels, or nil when size is unusable.
func (f *Fonts) Face(size float64, bold bool) font.Face {
	if math.IsNaN(size) || size <= 0 || size > maxFaceSize {
		return nil
	}
	key := faceKey{quarterPx: int(math.Round(size * 4)), bold: bold}
	if key.quarterPx == 0 {
		return nil
	}
	if face, ok := f.cache[key]; ok {
		return face
	}
	base := f.regular
	if bold {
		base = f.bold
	}
	if base == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{
		Size:    float64(key.quarterPx) / 4,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	if len(f.cache) >= maxCachedFace {
		f.Close()
	}
	f.cache[key] = face
	return face
}

// Close releases every cached face.
func (f *Fonts) Close() {
	for k, face := range f.cache {
		_ = face.Close()
		delete(f.cache, k)
	}
}

// advance converts a 26.6 advance into float pixels.
func advance(face font.Face, s string) float64 {
	if face == nil || s == "" {
		return 0
	}
	return float64(font.MeasureString(face, s)) / 64
}
