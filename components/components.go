// Package components defines the data types shared by the simulation: the
// experiment geometry, the physical regime, and the ECS components that make
// up an in-flight particle.
package components

// Position is a particle's location. X runs along the beam axis from the
// source; Y is the transverse coordinate measured on the barrier and screen.
type Position struct {
	X, Y float64
}

// Velocity is a particle's velocity in units per second.
type Velocity struct {
	X, Y float64
}

// Flight holds a particle's identity and lifecycle state.
type Flight struct {
	ID       uint32
	State    State
	Category Category
	Slit     Slit    // slit the particle passed (SlitNone before the barrier)
	Target   float64 // sampled landing coordinate, valid once HasTarget is set
	// HasTarget is set when the particle clears the barrier.
	HasTarget bool
}
