package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/doubleslit/components"
)

// ---------- Branch dispatch ----------

func TestBranchFor(t *testing.T) {
	tests := []struct {
		kind     components.ParticleKind
		observed bool
		want     Branch
	}{
		{components.KindClassical, false, BranchClassical},
		{components.KindClassical, true, BranchClassical},
		{components.KindWave, false, BranchWave},
		{components.KindWave, true, BranchWave},
		{components.KindQuantum, false, BranchWave},
		{components.KindQuantum, true, BranchClassical},
	}
	for _, tt := range tests {
		r := components.Regime{Slits: components.TwoSlits, Kind: tt.kind, Observed: tt.observed}
		if got := BranchFor(r); got != tt.want {
			t.Errorf("BranchFor(%s) = %s, want %s", r, got, tt.want)
		}
	}
}

// ---------- Wave branch ----------

func TestWaveIntensity_BoresightIsExactlyOne(t *testing.T) {
	g := scenarioGeometry()
	for _, slits := range []components.SlitCount{components.OneSlit, components.TwoSlits} {
		if got := WaveIntensity(0, g, slits); got != 1 {
			t.Errorf("%s slit(s): intensity(0) = %v, want exactly 1", slits, got)
		}
	}
}

func TestWaveIntensity_DegenerateGeometryIsZero(t *testing.T) {
	g := scenarioGeometry()
	g.ScreenDistance = 0
	for _, y := range []float64{-100, 0, 37} {
		if got := WaveIntensity(y, g, components.TwoSlits); got != 0 {
			t.Errorf("L=0: intensity(%v) = %v, want 0", y, got)
		}
	}
}

func TestWaveIntensity_Range(t *testing.T) {
	g := scenarioGeometry()
	for y := -400.0; y <= 400; y += 0.5 {
		v := WaveIntensity(y, g, components.TwoSlits)
		if v < 0 || v > 1 {
			t.Fatalf("intensity(%v) = %v, outside [0,1]", y, v)
		}
	}
}

func TestWaveIntensity_FirstMinimum(t *testing.T) {
	g := scenarioGeometry()
	y := FirstMinimum(g)
	if math.Abs(y-62.7) > 0.2 {
		t.Errorf("first minimum at %.2f, expected ≈62.7", y)
	}
	if v := WaveIntensity(y, g, components.TwoSlits); v > 1e-9 {
		t.Errorf("intensity at first minimum = %v, expected ~0", v)
	}
}

func TestWaveIntensity_TwoSlitsHasFringes(t *testing.T) {
	g := scenarioGeometry()
	m := NewModel(g, components.Regime{Slits: components.TwoSlits, Kind: components.KindWave}, 40)
	centers := make([]float64, 801)
	for i := range centers {
		centers[i] = float64(i) - 400
	}

	two := LocalMaxima(ModelProfile(m, centers), 0.05)
	if len(two) < 5 {
		t.Errorf("two slits: expected several fringes, got %d peaks", len(two))
	}

	m = NewModel(g, components.Regime{Slits: components.OneSlit, Kind: components.KindWave}, 40)
	one := LocalMaxima(ModelProfile(m, centers), 0.05)
	if len(one) != 1 {
		t.Errorf("one slit: expected a single peak, got %d", len(one))
	}
}

func TestWaveIntensity_Symmetric(t *testing.T) {
	g := scenarioGeometry()
	for _, y := range []float64{3, 62.7, 125, 391} {
		a := WaveIntensity(y, g, components.TwoSlits)
		b := WaveIntensity(-y, g, components.TwoSlits)
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("intensity(%v)=%v, intensity(%v)=%v", y, a, -y, b)
		}
	}
}

// ---------- Classical branch ----------

func TestClassicalIntensity_BoundedForAnySpread(t *testing.T) {
	g := scenarioGeometry()
	for _, spread := range []float64{5, 40, 200, 5000} {
		for y := -400.0; y <= 400; y += 1 {
			v := ClassicalIntensity(y, g, components.TwoSlits, spread)
			if v < 0 || v > 1 {
				t.Fatalf("spread %v: intensity(%v) = %v, outside [0,1]", spread, y, v)
			}
		}
	}
}

func TestClassicalIntensity_PilesAtSlits(t *testing.T) {
	g := scenarioGeometry()
	atSlit := ClassicalIntensity(60, g, components.TwoSlits, 40)
	between := ClassicalIntensity(0, g, components.TwoSlits, 40)
	if atSlit <= between {
		t.Errorf("expected pile at +d/2 (%v) above the midpoint (%v)", atSlit, between)
	}
	if got := ClassicalIntensity(0, g, components.OneSlit, 40); got != 1 {
		t.Errorf("one slit: intensity(0) = %v, want 1", got)
	}
}

func TestModel_PileIntensity(t *testing.T) {
	g := scenarioGeometry()
	g.CenterY = 10
	m := NewModel(g, components.Regime{Slits: components.TwoSlits, Kind: components.KindClassical}, 40)

	// Offsets are relative to CenterY, so slit B's pile peaks at +d/2.
	if got := m.PileIntensity(60, components.SlitB); math.Abs(got-1) > 1e-12 {
		t.Errorf("slit B pile at +60 = %v, want 1", got)
	}
	if got := m.PileIntensity(60, components.SlitA); got > 0.02 {
		t.Errorf("slit A pile at +60 = %v, expected near 0", got)
	}
}
