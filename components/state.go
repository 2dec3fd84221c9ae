package components

// State is a particle's lifecycle state.
//
//	Spawned -> TravelingToBarrier -> TravelingToScreen -> Detected
//	                              \-> Absorbed
type State uint8

const (
	StateSpawned State = iota
	StateTravelingToBarrier
	StateTravelingToScreen
	StateAbsorbed
	StateDetected
)

// Terminal reports whether the particle has finished its flight.
func (s State) Terminal() bool {
	return s == StateAbsorbed || s == StateDetected
}

// String returns the display name for a State.
func (s State) String() string {
	names := StateNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// StateNames returns the display names for all states.
// The order matches the State constants.
func StateNames() []string {
	return []string{"Spawned", "TravelingToBarrier", "TravelingToScreen", "Absorbed", "Detected"}
}

// Slit identifies which slit a particle passed through.
type Slit int8

const (
	SlitNone Slit = -1
	SlitA    Slit = 0 // lower slit (centerY - d/2), or the only slit
	SlitB    Slit = 1 // upper slit (centerY + d/2)
)

// String returns the display name for a Slit.
func (s Slit) String() string {
	switch s {
	case SlitA:
		return "A"
	case SlitB:
		return "B"
	default:
		return "none"
	}
}

// Category is the visual class of a particle, used by front-ends for color.
type Category uint8

const (
	CategoryClassical Category = iota
	CategoryWave
	CategoryQuantum
	CategoryObserved // quantum particle that was watched at the barrier
)

// String returns the display name for a Category.
func (c Category) String() string {
	names := CategoryNames()
	if int(c) < len(names) {
		return names[c]
	}
	return "Unknown"
}

// CategoryNames returns the display names for all categories.
func CategoryNames() []string {
	return []string{"Classical", "Wave", "Quantum", "Observed"}
}
