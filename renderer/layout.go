// Package renderer draws the apparatus, the particles in flight and the
// detector pattern with raylib.
package renderer

import (
	"math"

	"github.com/pthm-cable/doubleslit/components"
)

// Viewport maps apparatus coordinates onto the window.
// World +y points up the screen.
type Viewport struct {
	Scale   float32 // pixels per world unit
	OriginX float32 // window x of the source plane
	OriginY float32 // window y of CenterY
	CenterY float64

	// PatternX is where the histogram starts, right of the screen plane.
	PatternX     float32
	PatternWidth float32
}

// NewViewport fits the geometry into a window of the given size, leaving
// patternWidth pixels to the right of the screen for the histogram.
func NewViewport(g components.Geometry, width, height int32, margin, patternWidth float32) Viewport {
	availW := float32(width) - 2*margin - patternWidth
	availH := float32(height) - 2*margin

	scale := float32(1)
	if sx := g.ScreenX(); sx > 0 && g.HalfExtent > 0 {
		scale = float32(math.Min(float64(availW)/sx, float64(availH)/(2*g.HalfExtent)))
	}
	if scale <= 0 {
		scale = 1
	}

	v := Viewport{
		Scale:        scale,
		OriginX:      margin,
		OriginY:      float32(height) / 2,
		CenterY:      g.CenterY,
		PatternWidth: patternWidth,
	}
	v.PatternX = v.X(g.ScreenX()) + 4
	return v
}

// X maps a longitudinal world position to a window x.
func (v Viewport) X(x float64) float32 {
	return v.OriginX + float32(x)*v.Scale
}

// Y maps a transverse world position to a window y.
func (v Viewport) Y(y float64) float32 {
	return v.OriginY - float32(y-v.CenterY)*v.Scale
}

// Point maps a world position to window coordinates.
func (v Viewport) Point(x, y float64) (float32, float32) {
	return v.X(x), v.Y(y)
}

// Length scales a world length to pixels.
func (v Viewport) Length(l float64) float32 {
	return float32(l) * v.Scale
}

// WorldY maps a window y back to a transverse world position.
func (v Viewport) WorldY(py float32) float64 {
	return v.CenterY + float64((v.OriginY-py)/v.Scale)
}
