package components

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSlitCount is returned when parsing an unsupported slit count.
	ErrUnknownSlitCount = errors.New("unknown slit count")
	// ErrUnknownParticleKind is returned when parsing an unsupported particle kind.
	ErrUnknownParticleKind = errors.New("unknown particle kind")
)

// SlitCount is the number of open slits in the barrier.
type SlitCount uint8

const (
	OneSlit SlitCount = iota
	TwoSlits
)

// String returns the config name of the slit count.
func (s SlitCount) String() string {
	if s == TwoSlits {
		return "two"
	}
	return "one"
}

// ParseSlitCount parses "one"/"1" or "two"/"2".
func ParseSlitCount(s string) (SlitCount, error) {
	switch s {
	case "one", "1", "single":
		return OneSlit, nil
	case "two", "2", "double":
		return TwoSlits, nil
	}
	return OneSlit, fmt.Errorf("%q: %w", s, ErrUnknownSlitCount)
}

// ParticleKind selects the physics of the emitted entities.
type ParticleKind uint8

const (
	KindClassical ParticleKind = iota
	KindWave
	KindQuantum
)

// String returns the config name of the kind.
func (k ParticleKind) String() string {
	switch k {
	case KindWave:
		return "wave"
	case KindQuantum:
		return "quantum"
	default:
		return "classical"
	}
}

// ParseParticleKind parses "classical", "wave" or "quantum".
func ParseParticleKind(s string) (ParticleKind, error) {
	switch s {
	case "classical":
		return KindClassical, nil
	case "wave":
		return KindWave, nil
	case "quantum":
		return KindQuantum, nil
	}
	return KindClassical, fmt.Errorf("%q: %w", s, ErrUnknownParticleKind)
}

// Regime is the combination of independent flags that selects the physics.
// Observed only matters for KindQuantum.
type Regime struct {
	Slits    SlitCount
	Kind     ParticleKind
	Observed bool
}

// Category returns the visual category for a freshly spawned particle.
func (r Regime) Category() Category {
	switch r.Kind {
	case KindWave:
		return CategoryWave
	case KindQuantum:
		return CategoryQuantum
	default:
		return CategoryClassical
	}
}

// Watched reports whether an observer collapses particles at the barrier.
func (r Regime) Watched() bool {
	return r.Kind == KindQuantum && r.Observed
}

// String returns a short label such as "two/quantum/observed".
func (r Regime) String() string {
	s := r.Slits.String() + "/" + r.Kind.String()
	if r.Watched() {
		s += "/observed"
	}
	return s
}
