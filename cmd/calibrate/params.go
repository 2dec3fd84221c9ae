package main

import (
	"github.com/pthm-cable/doubleslit/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name string  // Human-readable name
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the parameters one calibration stage tunes.
type ParamVector struct {
	Specs []ParamSpec
}

// SpreadParams tunes the classical pile width.
func SpreadParams() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{
			Name: "classical_spread", Path: "sampler.classical_spread", Min: 1, Max: 400,
			get: func(c *config.Config) float64 { return c.Sampler.ClassicalSpread },
			set: func(c *config.Config, v float64) { c.Sampler.ClassicalSpread = v },
		},
	}}
}

// DetectorParams tunes how hits are spread over neighboring bins.
func DetectorParams() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{
			Name: "neighbor_fraction", Path: "detector.neighbor_fraction", Min: 0, Max: 1,
			get: func(c *config.Config) float64 { return c.Detector.NeighborFraction },
			set: func(c *config.Config, v float64) { c.Detector.NeighborFraction = v },
		},
	}}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw values, clamped to bounds.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := spec.Min + normalized[i]*(spec.Max-spec.Min)
		raw[i] = min(max(v, spec.Min), spec.Max)
	}
	return raw
}

// Extract reads the current values from cfg.
func (pv *ParamVector) Extract(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}

// Apply writes values into cfg. Order matches Specs.
func (pv *ParamVector) Apply(cfg *config.Config, values []float64) {
	for i, spec := range pv.Specs {
		spec.set(cfg, min(max(values[i], spec.Min), spec.Max))
	}
}
