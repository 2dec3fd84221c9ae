package systems

import (
	"math/rand/v2"

	"github.com/pthm-cable/doubleslit/components"
)

// scenarioGeometry is the reference apparatus: λ=20, a=15, d=120, L=750.
func scenarioGeometry() components.Geometry {
	return components.Geometry{
		Wavelength:      20,
		SlitWidth:       15,
		SlitSeparation:  120,
		ScreenDistance:  750,
		HalfExtent:      400,
		BarrierDistance: 300,
	}
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// drawN returns n sample coordinates.
func drawN(s *Sampler, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Sample().Y
	}
	return out
}

// countIn counts values in [lo, hi).
func countIn(values []float64, lo, hi float64) int {
	n := 0
	for _, v := range values {
		if v >= lo && v < hi {
			n++
		}
	}
	return n
}
