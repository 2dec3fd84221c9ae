package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/config"
	"github.com/pthm-cable/doubleslit/engine"
	"github.com/pthm-cable/doubleslit/systems"
)

// Evaluator scores a raw parameter vector; lower is better.
type Evaluator interface {
	Evaluate(raw []float64) float64
}

// SpreadEvaluator compares the single-slit classical pile against the
// single-slit diffraction envelope. It needs no simulation.
type SpreadEvaluator struct {
	params  *ParamVector
	base    config.Config
	samples []float64
}

// NewSpreadEvaluator samples the screen at n points.
func NewSpreadEvaluator(params *ParamVector, base *config.Config, n int) *SpreadEvaluator {
	g := base.Geometry
	return &SpreadEvaluator{
		params:  params,
		base:    *base,
		samples: floats.Span(make([]float64, max(n, 2)), g.ScreenMin(), g.ScreenMax()),
	}
}

// Evaluate returns the Hellinger distance between the two profiles.
func (se *SpreadEvaluator) Evaluate(raw []float64) float64 {
	cfg := se.base
	se.params.Apply(&cfg, raw)

	oneSlit := components.Regime{Slits: components.OneSlit}
	oneSlit.Kind = components.KindWave
	wave := systems.NewModel(cfg.Geometry, oneSlit, cfg.Sampler.ClassicalSpread)
	oneSlit.Kind = components.KindClassical
	classical := systems.NewModel(cfg.Geometry, oneSlit, cfg.Sampler.ClassicalSpread)

	return systems.ProfileDistance(
		systems.ModelProfile(classical, se.samples),
		systems.ModelProfile(wave, se.samples),
	)
}

// DetectorEvaluator runs headless simulations and scores how far the
// accumulated pattern is from the model.
type DetectorEvaluator struct {
	params   *ParamVector
	base     config.Config
	seeds    []uint64
	maxTicks int32

	mu         sync.Mutex
	lastSpread float64 // std of per-seed distances from the most recent Evaluate
}

// NewDetectorEvaluator creates an evaluator that averages over seeds.
func NewDetectorEvaluator(params *ParamVector, base *config.Config, seeds []uint64, maxTicks int32) *DetectorEvaluator {
	return &DetectorEvaluator{
		params:   params,
		base:     *base,
		seeds:    seeds,
		maxTicks: maxTicks,
	}
}

// LastSpread returns the per-seed standard deviation of the last evaluation.
func (de *DetectorEvaluator) LastSpread() float64 {
	de.mu.Lock()
	defer de.mu.Unlock()
	return de.lastSpread
}

// Evaluate returns the mean distance across seeds. Runs that fail to start
// score +Inf.
func (de *DetectorEvaluator) Evaluate(raw []float64) float64 {
	distances := make([]float64, len(de.seeds))
	var wg sync.WaitGroup

	for i, seed := range de.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			distances[idx] = de.run(raw, s)
		}(i, seed)
	}
	wg.Wait()

	for _, d := range distances {
		if math.IsInf(d, 1) {
			return d
		}
	}
	mean, std := stat.MeanStdDev(distances, nil)

	de.mu.Lock()
	de.lastSpread = std
	de.mu.Unlock()

	return mean
}

// run fires one engine for maxTicks and measures its final pattern.
func (de *DetectorEvaluator) run(raw []float64, seed uint64) float64 {
	cfg := de.base
	de.params.Apply(&cfg, raw)

	e, err := engine.New(&cfg, engine.Options{Seed: seed, StepsPerUpdate: 1})
	if err != nil {
		return math.Inf(1)
	}
	defer e.Close()

	e.SetFiring(true)
	for e.TickCount() < de.maxTicks {
		e.Update()
	}
	return PatternDistance(e)
}

// PatternDistance measures the engine's detector against its model.
func PatternDistance(e *engine.Engine) float64 {
	rows := e.Profile()
	values := make([]float64, len(rows))
	model := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Value
		model[i] = r.Model
	}
	return systems.ProfileDistance(values, model)
}
