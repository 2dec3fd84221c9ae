package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/config"
)

const testDT = 1.0 / 60

type flightRig struct {
	world   *ecs.World
	emitter *Emitter
	flight  *FlightSystem
	filter  *ecs.Filter3[components.Position, components.Velocity, components.Flight]
}

func newFlightRig(t *testing.T, regime components.Regime) *flightRig {
	t.Helper()
	world := ecs.NewWorld()
	rng := newRNG(42)
	model := NewModel(scenarioGeometry(), regime, 40)
	return &flightRig{
		world: world,
		emitter: NewEmitter(world, config.EmitterConfig{
			Policy:  config.PolicyCount,
			Speed:   360,
			Quantum: config.EmitterProfile{SpawnCount: 1},
		}, rng),
		flight: NewFlightSystem(world, NewSampler(model, 10000, rng)),
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Flight](world),
	}
}

// flights returns a copy of every live particle's flight state.
func (r *flightRig) flights() []components.Flight {
	var out []components.Flight
	query := r.filter.Query()
	for query.Next() {
		_, _, fl := query.Get()
		out = append(out, *fl)
	}
	return out
}

// run ticks until every particle has retired or the limit is hit, returning
// the accumulated counters and hits.
func (r *flightRig) run(limit int) (Step, []Hit) {
	var total Step
	var hits []Hit
	for i := 0; i < limit && len(r.flights()) > 0; i++ {
		step := r.flight.Update(testDT)
		total.Absorbed += step.Absorbed
		total.Detected += step.Detected
		total.Exhausted += step.Exhausted
		total.Passed[0] += step.Passed[0]
		total.Passed[1] += step.Passed[1]
		hits = append(hits, step.Hits...)
		r.flight.Retire()
	}
	return total, hits
}

// vyFor returns the transverse velocity that reaches y at the barrier plane.
func vyFor(y float64) float64 {
	g := scenarioGeometry()
	return y * 360 / g.BarrierX()
}

func TestFlight_BlockedBetweenSlits(t *testing.T) {
	rig := newFlightRig(t, waveTwoSlits)
	rig.emitter.Launch(0, vyFor(0), components.CategoryWave)

	step, hits := rig.run(500)
	if step.Absorbed != 1 || step.Detected != 0 || len(hits) != 0 {
		t.Fatalf("expected one absorption and no hits, got %+v hits=%d", step, len(hits))
	}
	if n := len(rig.flights()); n != 0 {
		t.Errorf("%d particles still live after absorption", n)
	}
}

func TestFlight_PassesAndLandsOnTarget(t *testing.T) {
	rig := newFlightRig(t, waveTwoSlits)
	rig.emitter.Launch(0, vyFor(62), components.CategoryWave)

	// Fly until the barrier has been crossed.
	var target float64
	for i := 0; i < 500; i++ {
		rig.flight.Update(testDT)
		fl := rig.flights()
		if len(fl) == 1 && fl[0].State == components.StateTravelingToScreen {
			if !fl[0].HasTarget || fl[0].Slit != components.SlitB {
				t.Fatalf("after barrier: %+v", fl[0])
			}
			target = fl[0].Target
			break
		}
	}

	step, hits := rig.run(500)
	if step.Detected != 1 || len(hits) != 1 {
		t.Fatalf("expected one detection, got %+v", step)
	}
	if math.Abs(hits[0].Y-target) > 1e-6 {
		t.Errorf("landed at %v, target was %v", hits[0].Y, target)
	}
	if hits[0].Slit != components.SlitB {
		t.Errorf("hit slit = %s, want B", hits[0].Slit)
	}
}

func TestFlight_SpawnedTransitionsOnFirstUpdate(t *testing.T) {
	rig := newFlightRig(t, waveTwoSlits)
	rig.emitter.Launch(0, 0, components.CategoryWave)
	if fl := rig.flights(); fl[0].State != components.StateSpawned {
		t.Fatalf("new particle state = %s, want Spawned", fl[0].State)
	}
	rig.flight.Update(testDT)
	if fl := rig.flights(); fl[0].State != components.StateTravelingToBarrier {
		t.Errorf("after one tick state = %s, want TravelingToBarrier", fl[0].State)
	}
}

func TestFlight_ObservedParticlesAreMarked(t *testing.T) {
	regime := components.Regime{Slits: components.TwoSlits, Kind: components.KindQuantum, Observed: true}
	rig := newFlightRig(t, regime)
	for i := 0; i < 20; i++ {
		rig.emitter.Launch(0, vyFor(-60), components.CategoryQuantum)
	}

	step, hits := rig.run(500)
	if step.Passed[components.SlitA] != 20 || len(hits) != 20 {
		t.Fatalf("expected 20 passes through A and 20 hits, got %+v", step)
	}
	var sum float64
	for _, h := range hits {
		if h.Category != components.CategoryObserved {
			t.Errorf("hit category = %s, want Observed", h.Category)
		}
		sum += h.Y
	}
	// Which-path sampling: all hits come from slit A's pile at -60.
	if mean := sum / 20; mean > 0 {
		t.Errorf("mean landing %v, expected below the axis", mean)
	}
}

func TestFlight_RetireRemovesOnlyFinished(t *testing.T) {
	rig := newFlightRig(t, waveTwoSlits)
	rig.emitter.Launch(0, vyFor(0), components.CategoryWave)

	// A second particle launched later is still in flight when the first is absorbed.
	for i := 0; i < 25; i++ {
		rig.flight.Update(testDT)
	}
	rig.emitter.Launch(0, vyFor(0), components.CategoryWave)
	for rig.flight.Pending() == 0 {
		rig.flight.Update(testDT)
	}
	if removed := rig.flight.Retire(); removed != 1 {
		t.Fatalf("retired %d, want 1", removed)
	}
	if n := len(rig.flights()); n != 1 {
		t.Errorf("%d live particles, want 1", n)
	}
}

func TestEmitter_CountPolicyRespectsCap(t *testing.T) {
	world := ecs.NewWorld()
	e := NewEmitter(world, config.EmitterConfig{
		Policy:       config.PolicyCount,
		Speed:        360,
		MaxParticles: 7,
		Quantum:      config.EmitterProfile{SpawnCount: 5},
	}, newRNG(1))
	regime := components.Regime{Kind: components.KindQuantum}

	if n := e.Emit(0, regime, 0); n != 5 {
		t.Errorf("first emit = %d, want 5", n)
	}
	if n := e.Emit(5, regime, 0); n != 2 {
		t.Errorf("second emit = %d, want 2 (capped)", n)
	}
	if n := e.Emit(7, regime, 0); n != 0 {
		t.Errorf("emit at cap = %d, want 0", n)
	}
	if e.Spawned() != 7 {
		t.Errorf("spawned = %d, want 7", e.Spawned())
	}
}

func TestEmitter_ChancePolicyRate(t *testing.T) {
	world := ecs.NewWorld()
	e := NewEmitter(world, config.EmitterConfig{
		Policy:  config.PolicyChance,
		Speed:   360,
		Quantum: config.EmitterProfile{SpawnChance: 0.25},
	}, newRNG(9))

	total := 0
	for i := 0; i < 4000; i++ {
		total += e.Due(components.KindQuantum)
	}
	if total < 900 || total > 1100 {
		t.Errorf("chance 0.25 over 4000 ticks spawned %d, expected ≈1000", total)
	}
}

func TestEmitter_PerKindProfiles(t *testing.T) {
	cfg := config.EmitterConfig{
		Policy:    config.PolicyCount,
		Speed:     360,
		Classical: config.EmitterProfile{SpawnCount: 2, VelocitySpread: 216},
		Quantum:   config.EmitterProfile{SpawnCount: 10, VelocitySpread: 144},
	}

	tests := []struct {
		regime    components.Regime
		wantCount int
		spread    float64
		category  components.Category
	}{
		{components.Regime{Slits: components.TwoSlits, Kind: components.KindClassical}, 2, 216, components.CategoryClassical},
		{components.Regime{Slits: components.TwoSlits, Kind: components.KindQuantum}, 10, 144, components.CategoryQuantum},
		{components.Regime{Slits: components.TwoSlits, Kind: components.KindWave}, 0, 0, components.CategoryWave},
	}
	for _, tt := range tests {
		t.Run(tt.regime.Kind.String(), func(t *testing.T) {
			world := ecs.NewWorld()
			e := NewEmitter(world, cfg, newRNG(5))
			filter := ecs.NewFilter2[components.Velocity, components.Flight](world)

			spawned := 0
			for i := 0; i < 50; i++ {
				n := e.Emit(0, tt.regime, 0)
				if n != tt.wantCount {
					t.Fatalf("emit = %d, want %d", n, tt.wantCount)
				}
				spawned += n
			}

			widest := 0.0
			count := 0
			query := filter.Query()
			for query.Next() {
				vel, fl := query.Get()
				count++
				widest = max(widest, math.Abs(vel.Y))
				if fl.Category != tt.category {
					t.Errorf("category = %v, want %v", fl.Category, tt.category)
				}
			}
			if count != spawned {
				t.Errorf("%d entities for %d spawns", count, spawned)
			}
			if widest > tt.spread {
				t.Errorf("transverse speed %v outside ±%v", widest, tt.spread)
			}
			if tt.spread > 0 && widest < tt.spread/2 {
				t.Errorf("widest transverse speed %v, expected draws across ±%v", widest, tt.spread)
			}
		})
	}
}
