package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/doubleslit/components"
)

func keys(down ...int32) func(int32) bool {
	return func(k int32) bool {
		for _, d := range down {
			if d == k {
				return true
			}
		}
		return false
	}
}

func TestExperimentInput_ApplyKeys(t *testing.T) {
	base := components.Regime{Slits: components.TwoSlits, Kind: components.KindQuantum}

	tests := []struct {
		name        string
		down        []int32
		wantFire    bool
		wantReset   bool
		wantChanged bool
		want        components.Regime
		wantStage   int
	}{
		{"nothing", nil, false, false, false, base, 0},
		{"fire", []int32{rl.KeySpace}, true, false, false, base, 0},
		{"reset", []int32{rl.KeyR}, false, true, false, base, 0},
		{"toggle slits", []int32{rl.KeyS}, false, false, true,
			components.Regime{Slits: components.OneSlit, Kind: components.KindQuantum}, 0},
		{"same kind", []int32{rl.KeyQ}, false, false, false, base, 0},
		{"classical", []int32{rl.KeyC}, false, false, true,
			components.Regime{Slits: components.TwoSlits, Kind: components.KindClassical}, 0},
		{"observer", []int32{rl.KeyO}, false, false, true,
			components.Regime{Slits: components.TwoSlits, Kind: components.KindQuantum, Observed: true}, 0},
		{"stage one", []int32{rl.KeyOne}, false, false, false, base, 1},
		{"stage three", []int32{rl.KeyThree}, false, false, false, base, 3},
		{"stage five", []int32{rl.KeyFive}, false, false, false, base, 5},
		{"stage with fire", []int32{rl.KeyFour, rl.KeySpace}, true, false, false, base, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ExperimentInput{Regime: base}.ApplyKeys(keys(tt.down...))
			if in.ToggleFire != tt.wantFire {
				t.Errorf("ToggleFire = %v, want %v", in.ToggleFire, tt.wantFire)
			}
			if in.Reset != tt.wantReset {
				t.Errorf("Reset = %v, want %v", in.Reset, tt.wantReset)
			}
			if in.RegimeChanged != tt.wantChanged {
				t.Errorf("RegimeChanged = %v, want %v", in.RegimeChanged, tt.wantChanged)
			}
			if in.Regime != tt.want {
				t.Errorf("Regime = %v, want %v", in.Regime, tt.want)
			}
			if in.Stage != tt.wantStage {
				t.Errorf("Stage = %d, want %d", in.Stage, tt.wantStage)
			}
		})
	}
}

func TestIndexOf(t *testing.T) {
	kinds := []components.ParticleKind{components.KindClassical, components.KindWave, components.KindQuantum}
	if got := indexOf(kinds, components.KindWave); got != 1 {
		t.Errorf("indexOf(wave) = %d, want 1", got)
	}
	if got := indexOf([]int{1, 2}, 3); got != -1 {
		t.Errorf("missing value index = %d, want -1", got)
	}
}
