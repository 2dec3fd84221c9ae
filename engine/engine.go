// Package engine runs the double-slit simulation: it owns the particles, the
// detector buffer and the active configuration, and exposes the commands and
// queries a front-end needs.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/config"
	"github.com/pthm-cable/doubleslit/systems"
	"github.com/pthm-cable/doubleslit/telemetry"
)

// ErrInvalidConfig is returned when a configuration is rejected. The engine
// keeps its previous configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// Options holds run options that are not part of the YAML configuration.
type Options struct {
	Seed           uint64  // RNG seed
	LogStats       bool    // log each stats window via slog
	StatsWindowSec float64 // 0 = use config
	SnapshotDir    string  // save a snapshot on every pattern event ("" = off)
	OutputDir      string  // CSV output directory ("" = off)
	StepsPerUpdate int     // ticks per Update call
}

// ParticleView is a read-only copy of one live particle for rendering.
type ParticleView struct {
	ID       uint32
	X, Y     float64
	State    components.State
	Category components.Category
	Slit     components.Slit
}

// Engine is the simulation. It is single-threaded: callers must not query it
// while a Tick is running.
type Engine struct {
	cfg  config.Config
	seed uint64
	rng  *rand.Rand

	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Flight]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Flight]

	model   systems.Model
	sampler *systems.Sampler
	emitter *systems.Emitter
	flight  *systems.FlightSystem
	buffer  *systems.Buffer

	registry *systems.SystemRegistry

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	events        *telemetry.EventDetector
	output        *telemetry.OutputManager
	lastStats     telemetry.WindowStats
	logStats      bool
	snapshotDir   string
	exhaustWarned bool

	// State
	firing         bool
	tick           int32
	live           int
	totalHits      int
	exhaustedTotal int
	stepsPerUpdate int
}

// New creates an engine from cfg, which is copied. The engine starts idle.
func New(cfg *config.Config, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5851f42d4c957f2d))
	world := ecs.NewWorld()

	e := &Engine{
		cfg:            *cfg,
		seed:           opts.Seed,
		rng:            rng,
		world:          world,
		mapper:         ecs.NewMap3[components.Position, components.Velocity, components.Flight](world),
		filter:         ecs.NewFilter3[components.Position, components.Velocity, components.Flight](world),
		emitter:        systems.NewEmitter(world, cfg.Emitter, rng),
		registry:       systems.NewSystemRegistry(),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		events:         telemetry.NewEventDetector(cfg.Events, cfg.Telemetry.EventHistorySize),
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
	}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	e.collector = telemetry.NewCollector(statsWindow, cfg.Physics.DT, cfg.Geometry.CenterY)

	e.rebuildModel()
	e.flight = systems.NewFlightSystem(world, e.sampler)
	e.rebuildBuffer()

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		e.output = om
		if err := om.WriteConfig(&e.cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
	}

	return e, nil
}

func (e *Engine) rebuildModel() {
	e.model = systems.NewModel(e.cfg.Geometry, e.cfg.Derived.Regime, e.cfg.Sampler.ClassicalSpread)
	e.sampler = systems.NewSampler(e.model, e.cfg.Sampler.MaxRetries, e.rng)
	if e.flight != nil {
		e.flight.SetSampler(e.sampler)
	}
}

func (e *Engine) rebuildBuffer() {
	d := e.cfg.Detector
	g := e.cfg.Geometry
	inc := d.HitIncrement.For(e.cfg.Derived.Regime.Kind)
	e.buffer = systems.NewBuffer(d.Bins, g.ScreenMin(), g.ScreenMax(), inc, d.NeighborFraction)
}

// Configure switches geometry and regime. An invalid combination is rejected
// with ErrInvalidConfig and the previous configuration stays active. Changing
// the slit count, the particle kind or any geometry also resets the run;
// toggling the observer alone does not.
func (e *Engine) Configure(g components.Geometry, r components.Regime) error {
	return e.configure(g, r, false)
}

// ApplyStage switches to the numbered experiment stage on the current
// geometry. Selecting a stage always starts a fresh run.
func (e *Engine) ApplyStage(n int) error {
	stage, err := components.StageByNumber(n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := e.configure(e.cfg.Geometry, stage.Regime, true); err != nil {
		return err
	}
	slog.Info("stage", "number", stage.Number, "name", stage.Name)
	return nil
}

// Stage returns the experiment stage matching the active regime, if any.
func (e *Engine) Stage() (components.Stage, bool) {
	return components.StageOf(e.cfg.Derived.Regime)
}

func (e *Engine) configure(g components.Geometry, r components.Regime, forceReset bool) error {
	next := e.cfg
	next.SetGeometry(g)
	next.SetRegime(r)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	prev := e.cfg
	e.cfg = next
	e.rebuildModel()

	geometryChanged := g != prev.Geometry
	if geometryChanged {
		e.rebuildBuffer()
		e.collector.SetCenterY(g.CenterY)
	} else {
		e.buffer.SetIncrement(e.cfg.Detector.HitIncrement.For(r.Kind))
	}

	old := prev.Derived.Regime
	reset := forceReset || geometryChanged || r.Slits != old.Slits || r.Kind != old.Kind

	slog.Info("configured",
		"regime", r.String(),
		"branch", e.model.Branch().String(),
		"wavelength", g.Wavelength,
		"slit_width", g.SlitWidth,
		"slit_separation", g.SlitSeparation,
		"screen_distance", g.ScreenDistance,
		"reset", reset,
	)

	if reset {
		e.Reset()
	}
	return nil
}

// SetFiring enables or disables spawning. Particles already in flight are
// unaffected.
func (e *Engine) SetFiring(on bool) {
	if on == e.firing {
		return
	}
	e.firing = on
	slog.Info("firing", "on", on, "tick", e.tick)
}

// Tick advances the simulation by dt seconds: spawn while firing, move every
// particle, record and retire finished ones, then relax the buffer in the
// wave regime.
func (e *Engine) Tick(dt float64) {
	regime := e.cfg.Derived.Regime
	wave := regime.Kind == components.KindWave

	e.perf.StartTick()

	e.perf.StartPhase(telemetry.PhaseSpawn)
	if e.firing {
		n := e.emitter.Emit(e.live, regime, e.cfg.Geometry.CenterY)
		e.live += n
		e.collector.RecordSpawn(n)
	}

	e.perf.StartPhase(telemetry.PhaseAdvance)
	step := e.flight.Update(dt)
	e.collector.RecordStep(step)

	e.perf.StartPhase(telemetry.PhaseRetire)
	// Wave packets are visual only; the buffer follows the relaxation.
	if !wave {
		for _, h := range step.Hits {
			e.buffer.RecordHit(h.Y)
		}
		e.totalHits += len(step.Hits)
	}
	e.live -= e.flight.Retire()
	if step.Exhausted > 0 {
		e.exhaustedTotal += step.Exhausted
		if !e.exhaustWarned {
			e.exhaustWarned = true
			slog.Warn("sampler exhausted retry budget, using uniform fallback",
				"tick", e.tick,
				"max_retries", e.cfg.Sampler.MaxRetries,
				"regime", regime.String(),
			)
		}
	}

	e.perf.StartPhase(telemetry.PhaseRelax)
	if wave && e.firing {
		d := e.cfg.Detector
		e.buffer.Relax(e.model.Intensity, e.cfg.Geometry.CenterY, d.DisplayScale, d.RelaxDamping)
	}

	e.tick++

	e.perf.StartPhase(telemetry.PhaseTelemetry)
	e.flushTelemetry()

	e.perf.EndTick()
}

// Update runs the configured number of ticks at the configured dt.
func (e *Engine) Update() {
	for i := 0; i < e.stepsPerUpdate; i++ {
		e.Tick(e.cfg.Physics.DT)
	}
}

// StepsPerUpdate returns the number of ticks each Update runs.
func (e *Engine) StepsPerUpdate() int { return e.stepsPerUpdate }

// SetStepsPerUpdate sets the ticks per Update, clamped to at least 1.
func (e *Engine) SetStepsPerUpdate(n int) { e.stepsPerUpdate = max(n, 1) }

// Reset removes every particle and zeroes the buffer. Configuration persists.
func (e *Engine) Reset() {
	e.clearParticles()
	e.buffer.Clear()
	e.totalHits = 0
	e.events.Reset()
	e.collector.Reset(e.tick)
	slog.Info("reset", "tick", e.tick, "regime", e.cfg.Derived.Regime.String())
}

// Close writes the final detector profile and closes output files.
func (e *Engine) Close() error {
	if err := e.WriteProfile(); err != nil {
		slog.Error("failed to write profile", "error", err)
	}
	if dir := e.output.Dir(); dir != "" {
		slog.Info("output written", "dir", dir, "ticks", e.tick, "hits", e.totalHits)
	}
	return e.output.Close()
}

// Firing reports whether spawning is enabled.
func (e *Engine) Firing() bool { return e.firing }

// TickCount returns the number of ticks run since creation.
func (e *Engine) TickCount() int32 { return e.tick }

// Live returns the number of particles in flight.
func (e *Engine) Live() int { return e.live }

// TotalHits returns the hits recorded since the last reset.
func (e *Engine) TotalHits() int { return e.totalHits }

// Exhausted returns the total number of sampler fallbacks.
func (e *Engine) Exhausted() int { return e.exhaustedTotal }

// Geometry returns the active geometry.
func (e *Engine) Geometry() components.Geometry { return e.cfg.Geometry }

// Regime returns the active regime.
func (e *Engine) Regime() components.Regime { return e.cfg.Derived.Regime }

// Model returns the active probability model.
func (e *Engine) Model() systems.Model { return e.model }

// Config returns a copy of the active configuration.
func (e *Engine) Config() config.Config { return e.cfg }

// Seed returns the RNG seed.
func (e *Engine) Seed() uint64 { return e.seed }

// Registry returns the phase registry.
func (e *Engine) Registry() *systems.SystemRegistry { return e.registry }

// Bins returns a copy of the detector values.
func (e *Engine) Bins() []float64 { return e.buffer.Values() }

// NormalizedBins returns the detector values scaled to a peak of 1.
func (e *Engine) NormalizedBins() []float64 { return e.buffer.Normalized() }

// BinCenters returns the transverse coordinate of each bin.
func (e *Engine) BinCenters() []float64 {
	return append([]float64(nil), e.buffer.Centers()...)
}

// BinWidth returns the width of one detector bin.
func (e *Engine) BinWidth() float64 { return e.buffer.BinWidth() }

// LastStats returns the most recently flushed stats window.
func (e *Engine) LastStats() telemetry.WindowStats { return e.lastStats }

// PerfStats returns timing over the perf window.
func (e *Engine) PerfStats() telemetry.PerfStats { return e.perf.Stats() }

// RecordFrame records frame timing in graphics mode.
func (e *Engine) RecordFrame() { e.perf.RecordFrame() }

// Particles returns a snapshot of every live particle.
func (e *Engine) Particles() []ParticleView {
	out := make([]ParticleView, 0, e.live)
	query := e.filter.Query()
	for query.Next() {
		pos, _, fl := query.Get()
		out = append(out, ParticleView{
			ID:       fl.ID,
			X:        pos.X,
			Y:        pos.Y,
			State:    fl.State,
			Category: fl.Category,
			Slit:     fl.Slit,
		})
	}
	return out
}
