package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Viewer overlay IDs.
const (
	OverlayParticles  OverlayID = "particles"
	OverlayHistogram  OverlayID = "histogram"
	OverlayHeatStrip  OverlayID = "heat_strip"
	OverlayModelCurve OverlayID = "model_curve"
	OverlayStats      OverlayID = "stats"
	OverlayPerf       OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "S", "V")
	Category    string      // Grouping ("scene" or "panels")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the viewer's overlays. Scene layers start enabled.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayParticles,
		Name:        "Particles",
		Description: "Particles in flight, colored by category",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "scene",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayHistogram,
		Name:        "Histogram",
		Description: "Accumulated detections per bin",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "scene",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayHeatStrip,
		Name:        "Heat Strip",
		Description: "Detections painted onto the screen plane",
		Key:         rl.KeyJ,
		KeyLabel:    "J",
		Category:    "scene",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayModelCurve,
		Name:        "Model Curve",
		Description: "Intensity the pattern converges to",
		Key:         rl.KeyM,
		KeyLabel:    "M",
		Category:    "scene",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayStats,
		Name:        "Window Stats",
		Description: "Last telemetry window",
		Key:         rl.KeyI,
		KeyLabel:    "I",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayPerf},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Per-phase tick timing",
		Key:         rl.KeyF3,
		KeyLabel:    "F3",
		Category:    "panels",
		Exclusive:   []OverlayID{OverlayStats},
	})

	for _, id := range []OverlayID{OverlayParticles, OverlayHistogram, OverlayHeatStrip} {
		r.enabled[id] = true
	}
}

// Register adds an overlay to the registry, disabled.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled sets an overlay's state. Enabling an overlay disables the
// overlays it excludes. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in registration order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeys toggles every overlay whose key pressed reports as down this
// frame and returns the IDs it toggled.
func (r *OverlayRegistry) HandleKeys(pressed func(key int32) bool) []OverlayID {
	var toggled []OverlayID
	for _, desc := range r.descriptors {
		if desc.Key != 0 && pressed(desc.Key) {
			r.Toggle(desc.ID)
			toggled = append(toggled, desc.ID)
		}
	}
	return toggled
}
