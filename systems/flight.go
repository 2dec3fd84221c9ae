package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/doubleslit/components"
)

// Hit is a particle that reached the screen plane.
type Hit struct {
	ID       uint32
	Y        float64 // clamped to the screen extent
	Slit     components.Slit
	Category components.Category
}

// Step summarizes one FlightSystem update.
type Step struct {
	Absorbed  int
	Detected  int
	Passed    [2]int // by slit
	Exhausted int    // landing draws that fell back to uniform
	Hits      []Hit  // valid until the next Update
}

// FlightSystem advances particles through the barrier and on to the screen.
//
// Each particle moves linearly. When a step carries it across the barrier
// plane the gate is consulted at the interpolated crossing point: a blocked
// particle is absorbed, a passing one is snapped to its slit center and
// re-aimed so it lands on a sampled target exactly at the screen plane.
type FlightSystem struct {
	world  *ecs.World
	filter *ecs.Filter3[components.Position, components.Velocity, components.Flight]

	geom    components.Geometry
	regime  components.Regime
	sampler *Sampler

	step    Step
	retired []ecs.Entity
}

// NewFlightSystem creates a flight system over world's particles.
func NewFlightSystem(world *ecs.World, sampler *Sampler) *FlightSystem {
	s := &FlightSystem{
		world:  world,
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Flight](world),
	}
	s.SetSampler(sampler)
	return s
}

// SetSampler switches the landing distribution. The sampler's model also
// supplies the geometry and regime.
func (s *FlightSystem) SetSampler(sampler *Sampler) {
	s.sampler = sampler
	s.geom = sampler.Model().Geometry()
	s.regime = sampler.Model().Regime()
}

// Update advances every live particle by dt seconds. Particles that reach a
// terminal state are queued for Retire.
func (s *FlightSystem) Update(dt float64) Step {
	s.step = Step{Hits: s.step.Hits[:0]}

	query := s.filter.Query()
	for query.Next() {
		pos, vel, fl := query.Get()
		s.advance(pos, vel, fl, dt)
		if fl.State.Terminal() {
			s.retired = append(s.retired, query.Entity())
		}
	}
	return s.step
}

// Retire removes the particles that finished during the last Update and
// returns how many were removed.
func (s *FlightSystem) Retire() int {
	n := len(s.retired)
	for _, e := range s.retired {
		s.world.RemoveEntity(e)
	}
	s.retired = s.retired[:0]
	return n
}

// Pending returns the number of particles waiting for Retire.
func (s *FlightSystem) Pending() int { return len(s.retired) }

// Drop forgets queued retirements. Used when the world is cleared.
func (s *FlightSystem) Drop() {
	s.retired = s.retired[:0]
	s.step = Step{Hits: s.step.Hits[:0]}
}

func (s *FlightSystem) advance(pos *components.Position, vel *components.Velocity, fl *components.Flight, dt float64) {
	switch fl.State {
	case components.StateSpawned:
		fl.State = components.StateTravelingToBarrier
		s.toBarrier(pos, vel, fl, dt)
	case components.StateTravelingToBarrier:
		s.toBarrier(pos, vel, fl, dt)
	case components.StateTravelingToScreen:
		s.toScreen(pos, vel, fl, dt)
	}
}

func (s *FlightSystem) toBarrier(pos *components.Position, vel *components.Velocity, fl *components.Flight, dt float64) {
	barrier := s.geom.BarrierX()
	nx := pos.X + vel.X*dt
	ny := pos.Y + vel.Y*dt

	f, crossed := crossing(pos.X, nx, barrier)
	if !crossed {
		pos.X, pos.Y = nx, ny
		return
	}

	y := pos.Y + f*(ny-pos.Y)
	passage := Gate(y, s.geom, s.regime.Slits)
	if !passage.Passed {
		pos.X, pos.Y = barrier, y
		fl.State = components.StateAbsorbed
		s.step.Absorbed++
		return
	}

	pos.X, pos.Y = barrier, passage.SnappedY
	fl.Slit = passage.Slit
	s.step.Passed[passage.Slit]++
	if s.regime.Watched() {
		fl.Category = components.CategoryObserved
	}

	var sample Sample
	if s.sampler.Model().Branch() == BranchClassical && s.regime.Slits == components.TwoSlits {
		sample = s.sampler.SampleSlit(passage.Slit)
	} else {
		sample = s.sampler.Sample()
	}
	if sample.Exhausted {
		s.step.Exhausted++
	}
	fl.Target = sample.Y
	fl.HasTarget = true

	// Aim so the particle arrives at Target on the screen plane.
	vel.Y = (fl.Target - pos.Y) * vel.X / s.geom.ScreenDistance
	fl.State = components.StateTravelingToScreen

	s.toScreen(pos, vel, fl, (1-f)*dt)
}

func (s *FlightSystem) toScreen(pos *components.Position, vel *components.Velocity, fl *components.Flight, dt float64) {
	screen := s.geom.ScreenX()
	nx := pos.X + vel.X*dt
	ny := pos.Y + vel.Y*dt

	f, crossed := crossing(pos.X, nx, screen)
	if !crossed {
		pos.X, pos.Y = nx, ny
		return
	}

	y := clamp(pos.Y+f*(ny-pos.Y), s.geom.ScreenMin(), s.geom.ScreenMax())
	pos.X, pos.Y = screen, y
	fl.State = components.StateDetected
	s.step.Detected++
	s.step.Hits = append(s.step.Hits, Hit{ID: fl.ID, Y: y, Slit: fl.Slit, Category: fl.Category})
}
