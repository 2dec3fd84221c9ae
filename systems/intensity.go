package systems

import (
	"math"

	"github.com/pthm-cable/doubleslit/components"
)

// Branch is the probability law that governs where a particle lands.
type Branch uint8

const (
	// BranchWave is Fraunhofer diffraction, with interference for two slits.
	BranchWave Branch = iota
	// BranchClassical is one Gaussian pile per open slit, no interference.
	BranchClassical
)

// String returns the branch name.
func (b Branch) String() string {
	if b == BranchClassical {
		return "classical"
	}
	return "wave"
}

// branchTable maps [particle kind][observed] to the governing branch.
var branchTable = [...][2]Branch{
	components.KindClassical: {BranchClassical, BranchClassical},
	components.KindWave:      {BranchWave, BranchWave},
	components.KindQuantum:   {BranchWave, BranchClassical},
}

// BranchFor returns the branch that governs regime r.
func BranchFor(r components.Regime) Branch {
	observed := 0
	if r.Observed {
		observed = 1
	}
	return branchTable[r.Kind][observed]
}

// Model is the landing probability model for one geometry and regime.
// Intensities are relative weights in [0, 1] over the transverse offset from
// the apparatus axis.
type Model struct {
	geom   components.Geometry
	regime components.Regime
	spread float64
	branch Branch
}

// NewModel creates a model. spread is the σ of each classical pile.
func NewModel(g components.Geometry, r components.Regime, spread float64) Model {
	return Model{
		geom:   g,
		regime: r,
		spread: spread,
		branch: BranchFor(r),
	}
}

// Geometry returns the model's geometry.
func (m Model) Geometry() components.Geometry { return m.geom }

// Regime returns the model's regime.
func (m Model) Regime() components.Regime { return m.regime }

// Branch returns the branch selected by the regime.
func (m Model) Branch() Branch { return m.branch }

// Spread returns the classical pile σ.
func (m Model) Spread() float64 { return m.spread }

// Intensity returns the landing weight at yOffset from the axis.
func (m Model) Intensity(yOffset float64) float64 {
	if m.branch == BranchClassical {
		return ClassicalIntensity(yOffset, m.geom, m.regime.Slits, m.spread)
	}
	return WaveIntensity(yOffset, m.geom, m.regime.Slits)
}

// PileIntensity returns the classical weight of the pile behind slit s alone.
// This is the distribution of a particle whose path is known.
func (m Model) PileIntensity(yOffset float64, s components.Slit) float64 {
	if degenerate(m.geom) {
		return 0
	}
	center := m.geom.SlitCenter(m.regime.Slits, s) - m.geom.CenterY
	return gaussian(yOffset, center, m.spread)
}

// degenerate reports geometries for which the model is defined as zero.
func degenerate(g components.Geometry) bool {
	return !(g.ScreenDistance > 0) || !(g.Wavelength > 0)
}

// WaveIntensity is the Fraunhofer intensity at yOffset on a screen at
// distance L: the single-slit envelope (sin β/β)², times cos²α for two slits.
// It returns 0 for a degenerate geometry rather than failing.
func WaveIntensity(yOffset float64, g components.Geometry, slits components.SlitCount) float64 {
	if degenerate(g) {
		return 0
	}
	theta := math.Atan(yOffset / g.ScreenDistance)
	k := 2 * math.Pi / g.Wavelength
	sinTheta := math.Sin(theta)

	beta := k * g.SlitWidth * sinTheta / 2
	s := sinc(beta)
	envelope := s * s

	if slits == components.OneSlit {
		return envelope
	}

	alpha := k * g.SlitSeparation * sinTheta / 2
	c := math.Cos(alpha)
	return clamp01(envelope * c * c)
}

// ClassicalIntensity is a Gaussian pile under each open slit. With two slits
// the piles are centered at ±d/2 and averaged, so the weight never exceeds 1
// for any spread.
func ClassicalIntensity(yOffset float64, g components.Geometry, slits components.SlitCount, spread float64) float64 {
	if degenerate(g) || !(spread > 0) {
		return 0
	}
	if slits == components.OneSlit {
		return gaussian(yOffset, 0, spread)
	}
	half := g.SlitSeparation / 2
	return 0.5 * (gaussian(yOffset, -half, spread) + gaussian(yOffset, half, spread))
}
