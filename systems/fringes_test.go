package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/doubleslit/components"
)

func TestFringeSpacing(t *testing.T) {
	if got := FringeSpacing(scenarioGeometry()); math.Abs(got-125) > 1e-9 {
		t.Errorf("spacing = %v, want 125", got)
	}
}

func TestFirstMinimum_NoMinimumWhenWavelengthTooLong(t *testing.T) {
	g := scenarioGeometry()
	g.Wavelength = 2 * g.SlitSeparation
	if got := FirstMinimum(g); !math.IsInf(got, 1) {
		t.Errorf("FirstMinimum = %v, want +Inf", got)
	}
}

func TestLocalMaxima(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		prom   float64
		want   []int
	}{
		{"single peak", []float64{0, 1, 3, 1, 0}, 0.1, []int{2}},
		{"two peaks", []float64{0, 4, 1, 4, 0}, 0.1, []int{1, 3}},
		{"small bump filtered", []float64{0, 10, 9.8, 9.9, 5, 0}, 0.1, []int{1}},
		{"plateau reports first bin", []float64{0, 2, 2, 2, 0}, 0.1, []int{1}},
		{"monotonic", []float64{1, 2, 3, 4}, 0.1, nil},
		{"too short", []float64{1, 2}, 0.1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocalMaxima(tt.values, tt.prom)
			if len(got) != len(tt.want) {
				t.Fatalf("LocalMaxima = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("LocalMaxima = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestVisibility(t *testing.T) {
	values := []float64{0, 10, 2, 8, 0}
	peaks := LocalMaxima(values, 0.1)
	if got := Visibility(values, peaks); math.Abs(got-8.0/12) > 1e-12 {
		t.Errorf("visibility = %v, want %v", got, 8.0/12)
	}
	if got := Visibility(values, peaks[:1]); got != 0 {
		t.Errorf("single peak visibility = %v, want 0", got)
	}
}

// Fringe contrast separates the wave pattern from the collapsed piles.
func TestVisibility_WaveVersusCollapsed(t *testing.T) {
	g := scenarioGeometry()
	b := NewBuffer(160, g.ScreenMin(), g.ScreenMax(), 1, 0)

	wave := ModelProfile(NewModel(g, waveTwoSlits, 40), b.Centers())
	if v := Visibility(wave, LocalMaxima(wave, 0.1)); v < 0.9 {
		t.Errorf("wave visibility = %v, expected near 1", v)
	}

	observed := components.Regime{Slits: components.TwoSlits, Kind: components.KindQuantum, Observed: true}
	piles := ModelProfile(NewModel(g, observed, 40), b.Centers())
	if v := Visibility(piles, LocalMaxima(piles, 0.1)); v > 0.3 {
		t.Errorf("collapsed visibility = %v, expected below 0.3", v)
	}
}

func TestProfileDistance(t *testing.T) {
	a := []float64{1, 2, 3}
	if d := ProfileDistance(a, []float64{2, 4, 6}); d > 1e-7 {
		t.Errorf("scaled copy distance = %v, want 0", d)
	}
	if d := ProfileDistance(a, []float64{0, 0, 0}); d != 1 {
		t.Errorf("empty profile distance = %v, want 1", d)
	}
	if d := ProfileDistance([]float64{1, 0}, []float64{0, 1}); math.Abs(d-1) > 1e-12 {
		t.Errorf("disjoint distance = %v, want 1", d)
	}
}
