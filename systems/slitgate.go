package systems

import (
	"math"

	"github.com/pthm-cable/doubleslit/components"
)

// Passage is the barrier's verdict on a particle.
type Passage struct {
	Passed   bool
	SnappedY float64         // center of the slit passed, valid when Passed
	Slit     components.Slit // SlitNone when blocked
}

// Gate decides whether a particle at transverse y on the barrier plane gets
// through. A particle within a (the slit width) of a slit center passes and is
// snapped to that center. When both windows accept, the nearer slit wins.
func Gate(y float64, g components.Geometry, slits components.SlitCount) Passage {
	if slits == components.OneSlit {
		if math.Abs(y-g.CenterY) < g.SlitWidth {
			return Passage{Passed: true, SnappedY: g.CenterY, Slit: components.SlitA}
		}
		return Passage{Slit: components.SlitNone}
	}

	centerA := g.SlitCenter(slits, components.SlitA)
	centerB := g.SlitCenter(slits, components.SlitB)
	distA := math.Abs(y - centerA)
	distB := math.Abs(y - centerB)

	switch {
	case distA < g.SlitWidth && distA <= distB:
		return Passage{Passed: true, SnappedY: centerA, Slit: components.SlitA}
	case distB < g.SlitWidth:
		return Passage{Passed: true, SnappedY: centerB, Slit: components.SlitB}
	case distA < g.SlitWidth:
		return Passage{Passed: true, SnappedY: centerA, Slit: components.SlitA}
	}
	return Passage{Slit: components.SlitNone}
}
