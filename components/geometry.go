package components

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNonPositive is returned when a length that must be positive is not.
	ErrNonPositive = errors.New("value must be positive")
	// ErrSlitOverlap is returned when two slits are wider than their separation.
	ErrSlitOverlap = errors.New("slit width must be less than slit separation")
	// ErrNonFinite is returned when a length is NaN or infinite.
	ErrNonFinite = errors.New("value must be finite")
)

// Geometry describes the apparatus. All lengths share one unit.
type Geometry struct {
	Wavelength      float64 `yaml:"wavelength" json:"wavelength"`             // λ
	SlitWidth       float64 `yaml:"slit_width" json:"slit_width"`             // a
	SlitSeparation  float64 `yaml:"slit_separation" json:"slit_separation"`   // d
	ScreenDistance  float64 `yaml:"screen_distance" json:"screen_distance"`   // L, barrier to screen
	HalfExtent      float64 `yaml:"screen_half_extent" json:"half_extent"`    // screen spans CenterY ± HalfExtent
	CenterY         float64 `yaml:"center_y" json:"center_y"`                 // transverse axis of the apparatus
	BarrierDistance float64 `yaml:"barrier_distance" json:"barrier_distance"` // source to barrier
}

// Validate checks the geometry for the given slit count.
func (g Geometry) Validate(slits SlitCount) error {
	checks := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"wavelength", g.Wavelength, true},
		{"slit_width", g.SlitWidth, true},
		{"slit_separation", g.SlitSeparation, true},
		{"screen_distance", g.ScreenDistance, true},
		{"screen_half_extent", g.HalfExtent, true},
		{"barrier_distance", g.BarrierDistance, true},
		{"center_y", g.CenterY, false},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%s = %v: %w", c.name, c.value, ErrNonFinite)
		}
		if c.positive && c.value <= 0 {
			return fmt.Errorf("%s = %v: %w", c.name, c.value, ErrNonPositive)
		}
	}
	if slits == TwoSlits && g.SlitWidth >= g.SlitSeparation {
		return fmt.Errorf("a = %v, d = %v: %w", g.SlitWidth, g.SlitSeparation, ErrSlitOverlap)
	}
	return nil
}

// BarrierX returns the longitudinal position of the barrier plane.
func (g Geometry) BarrierX() float64 {
	return g.BarrierDistance
}

// ScreenX returns the longitudinal position of the screen plane.
func (g Geometry) ScreenX() float64 {
	return g.BarrierDistance + g.ScreenDistance
}

// ScreenMin returns the lowest transverse coordinate on the screen.
func (g Geometry) ScreenMin() float64 {
	return g.CenterY - g.HalfExtent
}

// ScreenMax returns the highest transverse coordinate on the screen.
func (g Geometry) ScreenMax() float64 {
	return g.CenterY + g.HalfExtent
}

// SlitCenter returns the transverse center of slit s.
func (g Geometry) SlitCenter(slits SlitCount, s Slit) float64 {
	if slits == OneSlit {
		return g.CenterY
	}
	if s == SlitB {
		return g.CenterY + g.SlitSeparation/2
	}
	return g.CenterY - g.SlitSeparation/2
}
