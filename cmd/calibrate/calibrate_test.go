package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/doubleslit/config"
)

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := SpreadParams()
	raw := []float64{120}
	back := pv.Denormalize(pv.Normalize(raw))
	if math.Abs(back[0]-raw[0]) > 1e-9 {
		t.Errorf("round trip = %v, want %v", back[0], raw[0])
	}

	// Out-of-range simplex points are clamped
	if got := pv.Denormalize([]float64{-0.5})[0]; got != pv.Specs[0].Min {
		t.Errorf("below range = %v, want %v", got, pv.Specs[0].Min)
	}
	if got := pv.Denormalize([]float64{1.5})[0]; got != pv.Specs[0].Max {
		t.Errorf("above range = %v, want %v", got, pv.Specs[0].Max)
	}
}

func TestParamVector_ApplyExtract(t *testing.T) {
	cfg := config.Default()
	pv := DetectorParams()

	pv.Apply(cfg, []float64{0.25})
	if got := pv.Extract(cfg)[0]; got != 0.25 {
		t.Errorf("neighbor_fraction = %v, want 0.25", got)
	}

	pv.Apply(cfg, []float64{3})
	if cfg.Detector.NeighborFraction != 1 {
		t.Errorf("apply should clamp to 1, got %v", cfg.Detector.NeighborFraction)
	}
}

func TestSpreadEvaluator_PrefersEnvelopeWidth(t *testing.T) {
	cfg := config.Default()
	se := NewSpreadEvaluator(SpreadParams(), cfg, 400)

	narrow := se.Evaluate([]float64{1})
	wide := se.Evaluate([]float64{200})
	if !(wide < narrow) {
		t.Errorf("distance at sigma=200 (%v) should beat sigma=1 (%v)", wide, narrow)
	}

	// The evaluator works on its own copy
	if cfg.Sampler.ClassicalSpread != config.Default().Sampler.ClassicalSpread {
		t.Error("Evaluate modified the base config")
	}
}

func TestDetectorEvaluator_ShortRun(t *testing.T) {
	cfg := config.Default()
	de := NewDetectorEvaluator(DetectorParams(), cfg, []uint64{1, 2}, 600)

	d := de.Evaluate([]float64{0.5})
	if math.IsNaN(d) || d < 0 || d > 1 {
		t.Errorf("distance = %v, want within [0, 1]", d)
	}
	if de.LastSpread() < 0 {
		t.Errorf("seed spread = %v", de.LastSpread())
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(0); got != "0m00s" {
		t.Errorf("zero = %q", got)
	}
}
