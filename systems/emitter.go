package systems

import (
	"math/rand/v2"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/config"
)

// Emitter spawns particles at the source plane while firing. Each particle
// kind has its own rate and transverse spread; the wave regime emits nothing.
type Emitter struct {
	mapper *ecs.Map3[components.Position, components.Velocity, components.Flight]

	policy  string
	speed   float64
	maxLive int
	sources [3]source // by ParticleKind

	nextID uint32
}

// source is the spawn profile of one particle kind.
type source struct {
	enabled bool
	count   int
	chance  distuv.Bernoulli
	spread  distuv.Uniform
}

// NewEmitter creates an emitter that adds entities to world.
func NewEmitter(world *ecs.World, cfg config.EmitterConfig, rng *rand.Rand) *Emitter {
	e := &Emitter{
		mapper:  ecs.NewMap3[components.Position, components.Velocity, components.Flight](world),
		policy:  cfg.Policy,
		speed:   cfg.Speed,
		maxLive: cfg.MaxParticles,
	}
	for _, kind := range []components.ParticleKind{components.KindClassical, components.KindWave, components.KindQuantum} {
		p, ok := cfg.Profile(kind)
		if !ok {
			continue
		}
		e.sources[kind] = source{
			enabled: true,
			count:   p.SpawnCount,
			chance:  distuv.Bernoulli{P: p.SpawnChance, Src: rng},
			spread:  distuv.Uniform{Min: -p.VelocitySpread, Max: p.VelocitySpread, Src: rng},
		}
	}
	return e
}

// Due returns how many particles of kind the spawn policy asks for this
// tick, before the live cap is applied.
func (e *Emitter) Due(kind components.ParticleKind) int {
	src := &e.sources[kind]
	if !src.enabled {
		return 0
	}
	if e.policy == config.PolicyCount {
		return src.count
	}
	return int(src.chance.Rand())
}

// Emit spawns this tick's particles given the current live count and returns
// how many were created. Particles start at (0, centerY) heading for the
// barrier.
func (e *Emitter) Emit(live int, regime components.Regime, centerY float64) int {
	n := e.Due(regime.Kind)
	if e.maxLive > 0 && live+n > e.maxLive {
		n = max(e.maxLive-live, 0)
	}
	src := &e.sources[regime.Kind]
	for i := 0; i < n; i++ {
		e.Launch(centerY, src.spread.Rand(), regime.Category())
	}
	return n
}

// Launch creates one particle at the source with transverse velocity vy.
func (e *Emitter) Launch(centerY, vy float64, cat components.Category) ecs.Entity {
	e.nextID++
	pos := components.Position{X: 0, Y: centerY}
	vel := components.Velocity{X: e.speed, Y: vy}
	flight := components.Flight{
		ID:       e.nextID,
		State:    components.StateSpawned,
		Category: cat,
		Slit:     components.SlitNone,
	}
	return e.mapper.NewEntity(&pos, &vel, &flight)
}

// Spawned returns the number of particles launched since creation.
func (e *Emitter) Spawned() uint32 { return e.nextID }

// SkipTo makes the next launched particle's ID greater than id.
func (e *Emitter) SkipTo(id uint32) {
	e.nextID = max(e.nextID, id)
}
