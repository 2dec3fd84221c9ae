package systems

import (
	"testing"

	"github.com/pthm-cable/doubleslit/components"
)

func TestGate_TwoSlits(t *testing.T) {
	g := scenarioGeometry()
	g.CenterY = 100 // slits at 40 and 160

	tests := []struct {
		name   string
		y      float64
		passed bool
		slit   components.Slit
		snap   float64
	}{
		{"slit A center", 40, true, components.SlitA, 40},
		{"slit A edge inside", 54.9, true, components.SlitA, 40},
		{"slit A edge", 55, false, components.SlitNone, 0},
		{"slit B below", 146, true, components.SlitB, 160},
		{"slit B above", 174, true, components.SlitB, 160},
		{"between slits", 100, false, components.SlitNone, 0},
		{"far above", 400, false, components.SlitNone, 0},
		{"far below", -300, false, components.SlitNone, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Gate(tt.y, g, components.TwoSlits)
			if p.Passed != tt.passed || p.Slit != tt.slit {
				t.Fatalf("Gate(%v) = %+v, want passed=%v slit=%s", tt.y, p, tt.passed, tt.slit)
			}
			if p.Passed && p.SnappedY != tt.snap {
				t.Errorf("snapped to %v, want %v", p.SnappedY, tt.snap)
			}
		})
	}
}

func TestGate_OneSlit(t *testing.T) {
	g := scenarioGeometry()
	if p := Gate(14, g, components.OneSlit); !p.Passed || p.SnappedY != 0 || p.Slit != components.SlitA {
		t.Errorf("Gate(14) = %+v, expected pass snapped to 0", p)
	}
	if p := Gate(-15, g, components.OneSlit); p.Passed {
		t.Errorf("Gate(-15) passed, expected blocked at exactly a")
	}
}

func TestGate_OverlappingWindowsPickNearest(t *testing.T) {
	// a < d but 2a > d, so the acceptance windows overlap near the middle.
	g := scenarioGeometry()
	g.SlitWidth = 100
	if p := Gate(-5, g, components.TwoSlits); p.Slit != components.SlitA {
		t.Errorf("Gate(-5) chose %s, want A", p.Slit)
	}
	if p := Gate(5, g, components.TwoSlits); p.Slit != components.SlitB {
		t.Errorf("Gate(5) chose %s, want B", p.Slit)
	}
}

// Monotonic acceptance: pass iff within a of some slit center.
func TestGate_MonotonicInDistance(t *testing.T) {
	g := scenarioGeometry()
	for y := -200.0; y <= 200; y += 0.25 {
		dA := y + 60
		dB := y - 60
		within := (dA > -15 && dA < 15) || (dB > -15 && dB < 15)
		if p := Gate(y, g, components.TwoSlits); p.Passed != within {
			t.Fatalf("Gate(%v).Passed = %v, want %v", y, p.Passed, within)
		}
	}
}
