package systems

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/doubleslit/components"
)

// Sample is one drawn landing coordinate.
type Sample struct {
	Y         float64 // absolute transverse coordinate on the screen
	Attempts  int     // candidates evaluated
	Exhausted bool    // no candidate accepted within the retry budget; Y is uniform
}

// Sampler draws landing coordinates by rejection sampling a Model over the
// screen extent. The number of candidates per draw is bounded; when the bound
// is reached the sampler falls back to a uniform draw.
type Sampler struct {
	model      Model
	maxRetries int
	candidate  distuv.Uniform // offset from CenterY over [-H, H]
	accept     distuv.Uniform // [0, 1)
}

// NewSampler creates a sampler for model. maxRetries below 1 is treated as 1.
func NewSampler(model Model, maxRetries int, rng *rand.Rand) *Sampler {
	if maxRetries < 1 {
		maxRetries = 1
	}
	h := model.Geometry().HalfExtent
	return &Sampler{
		model:      model,
		maxRetries: maxRetries,
		candidate:  distuv.Uniform{Min: -h, Max: h, Src: rng},
		accept:     distuv.Uniform{Min: 0, Max: 1, Src: rng},
	}
}

// Model returns the model the sampler draws from.
func (s *Sampler) Model() Model { return s.model }

// Sample draws a landing coordinate from the model's regime distribution.
func (s *Sampler) Sample() Sample {
	return s.draw(s.model.Intensity)
}

// SampleSlit draws from the classical pile behind one slit. Used once the path
// of a particle is known.
func (s *Sampler) SampleSlit(slit components.Slit) Sample {
	return s.draw(func(y float64) float64 {
		return s.model.PileIntensity(y, slit)
	})
}

func (s *Sampler) draw(weight func(float64) float64) Sample {
	center := s.model.Geometry().CenterY
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		y := s.candidate.Rand()
		if s.accept.Rand() < clamp01(weight(y)) {
			return Sample{Y: center + y, Attempts: attempt}
		}
	}
	return Sample{
		Y:         center + s.candidate.Rand(),
		Attempts:  s.maxRetries,
		Exhausted: true,
	}
}
