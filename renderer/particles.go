package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/engine"
)

// CategoryColor returns the display color for a particle category.
func CategoryColor(c components.Category) rl.Color {
	switch c {
	case components.CategoryClassical:
		// Orange
		return rl.Color{R: 255, G: 150, B: 50, A: 230}
	case components.CategoryWave:
		// Cyan
		return rl.Color{R: 80, G: 200, B: 255, A: 200}
	case components.CategoryObserved:
		// Red
		return rl.Color{R: 230, G: 70, B: 70, A: 230}
	default:
		// Green
		return rl.Color{R: 120, G: 230, B: 120, A: 230}
	}
}

// ParticleRenderer renders particles in flight.
type ParticleRenderer struct {
	Radius float32
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{Radius: 2.5}
}

// Draw renders all live particles. Finished particles are skipped; they
// are retired at the end of the tick that finished them.
func (r *ParticleRenderer) Draw(v Viewport, particles []engine.ParticleView) {
	for i := range particles {
		p := &particles[i]
		if p.State.Terminal() {
			continue
		}

		color := CategoryColor(p.Category)
		if p.State == components.StateSpawned {
			color.A /= 2
		}

		x, y := v.Point(p.X, p.Y)
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r.Radius, color)
	}
}
