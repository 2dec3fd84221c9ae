package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/doubleslit/components"
)

// ApparatusRenderer draws the source, the barrier with its openings and the
// detector screen.
type ApparatusRenderer struct {
	BarrierColor rl.Color
	ScreenColor  rl.Color
	SourceColor  rl.Color
	Thickness    float32
}

// NewApparatusRenderer creates an apparatus renderer with default colors.
func NewApparatusRenderer() *ApparatusRenderer {
	return &ApparatusRenderer{
		BarrierColor: rl.Color{R: 150, G: 150, B: 160, A: 255},
		ScreenColor:  rl.Color{R: 220, G: 220, B: 220, A: 255},
		SourceColor:  rl.Yellow,
		Thickness:    4,
	}
}

// Openings returns the open intervals of the barrier, lowest first. Each
// slit admits |y - center| < SlitWidth.
func Openings(g components.Geometry, slits components.SlitCount) [][2]float64 {
	var out [][2]float64
	ids := []components.Slit{components.SlitA}
	if slits == components.TwoSlits {
		ids = append(ids, components.SlitB)
	}
	for _, s := range ids {
		c := g.SlitCenter(slits, s)
		out = append(out, [2]float64{c - g.SlitWidth, c + g.SlitWidth})
	}
	return out
}

// Draw renders the apparatus for the given geometry and slit count.
func (a *ApparatusRenderer) Draw(v Viewport, g components.Geometry, slits components.SlitCount) {
	// Source
	sx, sy := v.Point(0, g.CenterY)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, 6, a.SourceColor)

	// Barrier, drawn as the solid segments between openings
	bx := v.X(g.BarrierX())
	lo := g.ScreenMin()
	for _, o := range Openings(g, slits) {
		if o[0] > lo {
			a.segment(bx, v.Y(lo), v.Y(o[0]), a.BarrierColor)
		}
		lo = o[1]
	}
	if hi := g.ScreenMax(); hi > lo {
		a.segment(bx, v.Y(lo), v.Y(hi), a.BarrierColor)
	}

	// Screen
	a.segment(v.X(g.ScreenX()), v.Y(g.ScreenMin()), v.Y(g.ScreenMax()), a.ScreenColor)
}

func (a *ApparatusRenderer) segment(x, y0, y1 float32, color rl.Color) {
	rl.DrawLineEx(rl.Vector2{X: x, Y: y0}, rl.Vector2{X: x, Y: y1}, a.Thickness, color)
}
