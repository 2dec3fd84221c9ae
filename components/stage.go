package components

import (
	"errors"
	"fmt"
)

// ErrUnknownStage is returned for a stage number outside 1..len(Stages).
var ErrUnknownStage = errors.New("unknown stage")

// Stage is a named experiment preset: a slit count, a particle kind and the
// observer setting chosen together.
type Stage struct {
	Number int
	Name   string
	Regime Regime
}

// Stages is the guided sequence of experiments, numbered from 1.
var Stages = [...]Stage{
	{1, "Marbles (single slit)", Regime{Slits: OneSlit, Kind: KindClassical}},
	{2, "Marbles (double slit)", Regime{Slits: TwoSlits, Kind: KindClassical}},
	{3, "Waves (interference)", Regime{Slits: TwoSlits, Kind: KindWave}},
	{4, "Electrons (quantum mystery)", Regime{Slits: TwoSlits, Kind: KindQuantum}},
	{5, "Observer (wave collapse)", Regime{Slits: TwoSlits, Kind: KindQuantum, Observed: true}},
}

// StageByNumber returns stage n.
func StageByNumber(n int) (Stage, error) {
	if n < 1 || n > len(Stages) {
		return Stage{}, fmt.Errorf("stage %d: %w", n, ErrUnknownStage)
	}
	return Stages[n-1], nil
}

// StageOf returns the stage whose regime is r, if any.
func StageOf(r Regime) (Stage, bool) {
	for _, s := range Stages {
		if s.Regime.Slits == r.Slits && s.Regime.Kind == r.Kind && s.Regime.Watched() == r.Watched() {
			return s, true
		}
	}
	return Stage{}, false
}
