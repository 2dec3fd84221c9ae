package systems

// SystemInfo describes a simulation phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "detector")
}

// SystemRegistry holds metadata about all per-tick phases.
// This centralizes naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases to the registry.
// IDs match the telemetry phase names.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "spawn", Name: "Emitter", Description: "Spawns particles at the source", Category: "core"})
	r.Register(SystemInfo{ID: "advance", Name: "Flight", Description: "Moves particles through barrier and toward the screen", Category: "core"})
	r.Register(SystemInfo{ID: "retire", Name: "Retire", Description: "Records hits and removes finished particles", Category: "detector"})
	r.Register(SystemInfo{ID: "relax", Name: "Wave Relax", Description: "Eases the buffer toward the wave intensity", Category: "detector"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Flushes stats windows and events", Category: "internal"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
