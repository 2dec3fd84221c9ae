package engine

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/telemetry"
)

// clearParticles removes every particle from the world.
func (e *Engine) clearParticles() {
	// First pass: collect (the world is locked while a query is open)
	var toRemove []ecs.Entity
	query := e.filter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}

	// Second pass: remove
	for _, entity := range toRemove {
		e.world.RemoveEntity(entity)
	}
	e.flight.Drop()
	e.live = 0
}

// Snapshot captures the full engine state. event may be nil.
func (e *Engine) Snapshot(event *telemetry.PatternEvent) *telemetry.Snapshot {
	s := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		Seed:      e.seed,
		Tick:      e.tick,
		Geometry:  e.cfg.Geometry,
		Regime:    telemetry.NewRegimeState(e.cfg.Derived.Regime),
		Firing:    e.firing,
		Bins:      e.buffer.Values(),
		TotalHits: e.totalHits,
		Event:     event,
	}

	query := e.filter.Query()
	for query.Next() {
		pos, vel, fl := query.Get()
		p := telemetry.ParticleState{
			ID:       fl.ID,
			X:        pos.X,
			Y:        pos.Y,
			VelX:     vel.X,
			VelY:     vel.Y,
			State:    fl.State,
			Category: fl.Category,
			Slit:     fl.Slit,
		}
		if fl.HasTarget {
			target := fl.Target
			p.Target = &target
		}
		s.Particles = append(s.Particles, p)
	}
	return s
}

// Restore replaces the engine state with a snapshot. Every particle is
// checked and the snapshot's geometry and regime are applied through
// Configure, so an invalid snapshot leaves the engine untouched.
func (e *Engine) Restore(s *telemetry.Snapshot) error {
	regime, err := s.Regime.Regime()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(s.Bins) != e.cfg.Detector.Bins {
		return fmt.Errorf("%w: snapshot has %d bins, detector has %d", ErrInvalidConfig, len(s.Bins), e.cfg.Detector.Bins)
	}
	if err := s.Geometry.Validate(regime.Slits); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if regime.Kind == components.KindWave && len(s.Particles) > 0 {
		return fmt.Errorf("%w: wave regime snapshot holds %d particles", ErrInvalidConfig, len(s.Particles))
	}
	for _, p := range s.Particles {
		if err := checkParticle(p, s.Geometry); err != nil {
			return fmt.Errorf("%w: particle %d: %w", ErrInvalidConfig, p.ID, err)
		}
	}
	if err := e.Configure(s.Geometry, regime); err != nil {
		return err
	}

	e.clearParticles()
	e.buffer.Clear()
	e.events.Reset()

	var maxID uint32
	for _, p := range s.Particles {
		pos := components.Position{X: p.X, Y: p.Y}
		vel := components.Velocity{X: p.VelX, Y: p.VelY}
		fl := components.Flight{
			ID:       p.ID,
			State:    p.State,
			Category: p.Category,
			Slit:     p.Slit,
		}
		if p.Target != nil {
			fl.Target = *p.Target
			fl.HasTarget = true
		}
		e.mapper.NewEntity(&pos, &vel, &fl)
		maxID = max(maxID, p.ID)
	}
	e.emitter.SkipTo(maxID)
	e.live = len(s.Particles)

	e.buffer.Load(s.Bins)
	e.totalHits = s.TotalHits
	e.tick = s.Tick
	e.firing = s.Firing
	e.collector.Reset(e.tick)
	return nil
}

// checkParticle reports whether a stored particle can still finish its
// flight under g: it must be in flight, finite, moving toward the screen and
// short of the next plane it has to cross.
func checkParticle(p telemetry.ParticleState, g components.Geometry) error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	if p.State >= components.StateAbsorbed {
		return fmt.Errorf("state %d is not in flight", p.State)
	}
	if !finite(p.X) || !finite(p.Y) || !finite(p.VelX) || !finite(p.VelY) {
		return fmt.Errorf("non-finite position or velocity (%v, %v) (%v, %v)", p.X, p.Y, p.VelX, p.VelY)
	}
	if p.Target != nil && !finite(*p.Target) {
		return fmt.Errorf("non-finite target %v", *p.Target)
	}
	if p.VelX <= 0 {
		return fmt.Errorf("longitudinal velocity %v does not reach the screen", p.VelX)
	}
	if int(p.Category) >= len(components.CategoryNames()) {
		return fmt.Errorf("unknown category %d", p.Category)
	}
	if p.Slit < components.SlitNone || p.Slit > components.SlitB {
		return fmt.Errorf("unknown slit %d", p.Slit)
	}

	next := g.BarrierX()
	if p.State == components.StateTravelingToScreen {
		next = g.ScreenX()
	}
	if p.X >= next {
		return fmt.Errorf("x = %v already past the plane at %v for state %v", p.X, next, p.State)
	}
	return nil
}
