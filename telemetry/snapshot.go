package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/doubleslit/components"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the complete engine state at one tick.
type Snapshot struct {
	Version int    `json:"version"`
	Seed    uint64 `json:"seed"`
	Tick    int32  `json:"tick"`

	Geometry components.Geometry `json:"geometry"`
	Regime   RegimeState         `json:"regime"`
	Firing   bool                `json:"firing"`

	Particles []ParticleState `json:"particles"`
	Bins      []float64       `json:"bins"`
	TotalHits int             `json:"total_hits"`

	Event *PatternEvent `json:"event,omitempty"`
}

// RegimeState is the JSON form of a regime.
type RegimeState struct {
	SlitCount    string `json:"slit_count"`
	ParticleKind string `json:"particle_kind"`
	Observed     bool   `json:"observed"`
}

// NewRegimeState converts r to its JSON form.
func NewRegimeState(r components.Regime) RegimeState {
	return RegimeState{
		SlitCount:    r.Slits.String(),
		ParticleKind: r.Kind.String(),
		Observed:     r.Observed,
	}
}

// Regime parses the stored regime.
func (rs RegimeState) Regime() (components.Regime, error) {
	slits, err := components.ParseSlitCount(rs.SlitCount)
	if err != nil {
		return components.Regime{}, err
	}
	kind, err := components.ParseParticleKind(rs.ParticleKind)
	if err != nil {
		return components.Regime{}, err
	}
	return components.Regime{Slits: slits, Kind: kind, Observed: rs.Observed}, nil
}

// ParticleState holds one in-flight particle.
type ParticleState struct {
	ID       uint32              `json:"id"`
	X        float64             `json:"x"`
	Y        float64             `json:"y"`
	VelX     float64             `json:"vel_x"`
	VelY     float64             `json:"vel_y"`
	State    components.State    `json:"state"`
	Category components.Category `json:"category"`
	Slit     components.Slit     `json:"slit"`
	Target   *float64            `json:"target,omitempty"`
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Event != nil {
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, snapshot.Event.Type)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d: expected %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}
