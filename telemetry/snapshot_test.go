package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/doubleslit/components"
)

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()

	target := 42.5
	regime := components.Regime{Slits: components.TwoSlits, Kind: components.KindQuantum, Observed: true}
	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Seed:    42,
		Tick:    1000,
		Geometry: components.Geometry{
			Wavelength: 20, SlitWidth: 15, SlitSeparation: 120,
			ScreenDistance: 750, HalfExtent: 400, BarrierDistance: 300,
		},
		Regime: NewRegimeState(regime),
		Firing: true,
		Particles: []ParticleState{
			{ID: 1, X: 100, Y: 12, VelX: 360, VelY: 40, State: components.StateTravelingToBarrier, Slit: components.SlitNone},
			{ID: 2, X: 500, Y: 70, VelX: 360, VelY: -5, State: components.StateTravelingToScreen,
				Category: components.CategoryObserved, Slit: components.SlitB, Target: &target},
		},
		Bins:      []float64{0, 1.5, 3, 1.5, 0},
		TotalHits: 1,
		Event: &PatternEvent{
			Type:        EventPatternCollapsed,
			Tick:        1000,
			Description: "test event",
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Seed != snapshot.Seed || loaded.Tick != snapshot.Tick || !loaded.Firing {
		t.Errorf("header mismatch: got %+v", loaded)
	}
	if loaded.Geometry != snapshot.Geometry {
		t.Errorf("geometry mismatch: got %+v", loaded.Geometry)
	}
	got, err := loaded.Regime.Regime()
	if err != nil || got != regime {
		t.Errorf("regime = %v (%v), want %v", got, err, regime)
	}
	if len(loaded.Particles) != 2 {
		t.Fatalf("particles = %d, want 2", len(loaded.Particles))
	}
	p := loaded.Particles[1]
	if p.State != components.StateTravelingToScreen || p.Slit != components.SlitB || p.Target == nil || *p.Target != target {
		t.Errorf("particle mismatch: %+v", p)
	}
	if loaded.Particles[0].Target != nil {
		t.Error("untargeted particle gained a target")
	}
	if len(loaded.Bins) != 5 || loaded.Bins[2] != 3 {
		t.Errorf("bins = %v", loaded.Bins)
	}
	if loaded.Event == nil || loaded.Event.Type != EventPatternCollapsed {
		t.Errorf("event not loaded: %+v", loaded.Event)
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Tick:    5000,
		Event:   &PatternEvent{Type: EventFringesResolved, Tick: 5000},
	}
	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_5000_fringes_resolved.json"); path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if expected := filepath.Join(tmpDir, "snapshot_3000.json"); path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}

func TestLoadSnapshot_RejectsOtherVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "tick": 1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected an error for an unknown snapshot version")
	}
}
