package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/doubleslit/systems"
)

// PatternRenderer draws the accumulated detector pattern and the model
// curve it should converge to.
type PatternRenderer struct {
	BarColor   rl.Color
	CurveColor rl.Color
	Samples    int // points used to trace the model curve
}

// NewPatternRenderer creates a pattern renderer with default colors.
func NewPatternRenderer() *PatternRenderer {
	return &PatternRenderer{
		BarColor:   rl.Color{R: 100, G: 150, B: 200, A: 220},
		CurveColor: rl.Color{R: 255, G: 220, B: 80, A: 255},
		Samples:    400,
	}
}

// DrawHistogram draws one horizontal bar per bin, growing right from the
// screen plane. values are expected in [0, 1].
func (p *PatternRenderer) DrawHistogram(v Viewport, centers, values []float64, binWidth float64) {
	h := v.Length(binWidth)
	if h < 1 {
		h = 1
	}
	for i, c := range centers {
		if i >= len(values) || values[i] <= 0 {
			continue
		}
		w := float32(values[i]) * v.PatternWidth
		y := v.Y(c) - h/2
		rl.DrawRectangleRec(rl.Rectangle{X: v.PatternX, Y: y, Width: w, Height: h}, p.BarColor)
	}
}

// DrawHeatStrip paints the screen plane itself, brighter where more hits
// landed.
func (p *PatternRenderer) DrawHeatStrip(v Viewport, screenX float64, centers, values []float64, binWidth float64) {
	h := v.Length(binWidth)
	if h < 1 {
		h = 1
	}
	x := v.X(screenX) - 3
	for i, c := range centers {
		if i >= len(values) {
			break
		}
		color := rl.ColorAlpha(p.BarColor, float32(values[i]))
		rl.DrawRectangleRec(rl.Rectangle{X: x, Y: v.Y(c) - h/2, Width: 6, Height: h}, color)
	}
}

// DrawModelCurve traces the regime's intensity over the screen, scaled to
// its own peak so it overlays the normalized histogram.
func (p *PatternRenderer) DrawModelCurve(v Viewport, m systems.Model) {
	g := m.Geometry()
	curve := systems.ModelProfile(m, ScreenSamples(g.ScreenMin(), g.ScreenMax(), p.Samples))
	peak := 0.0
	for _, c := range curve {
		peak = max(peak, c)
	}
	if peak <= 0 {
		return
	}

	ys := ScreenSamples(g.ScreenMin(), g.ScreenMax(), p.Samples)
	prev := rl.Vector2{}
	for i, c := range curve {
		pt := rl.Vector2{X: v.PatternX + float32(c/peak)*v.PatternWidth, Y: v.Y(ys[i])}
		if i > 0 {
			rl.DrawLineV(prev, pt, p.CurveColor)
		}
		prev = pt
	}
}

// ScreenSamples returns n evenly spaced coordinates spanning [lo, hi].
// n is raised to 2 when smaller.
func ScreenSamples(lo, hi float64, n int) []float64 {
	n = max(n, 2)
	return floats.Span(make([]float64, n), lo, hi)
}
