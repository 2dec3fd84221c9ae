package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/doubleslit/components"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Geometry.Wavelength != 20 || cfg.Geometry.SlitSeparation != 120 {
		t.Errorf("unexpected geometry defaults: %+v", cfg.Geometry)
	}
	want := components.Regime{Slits: components.TwoSlits, Kind: components.KindQuantum}
	if cfg.Derived.Regime != want {
		t.Errorf("derived regime = %v, want %v", cfg.Derived.Regime, want)
	}
	if cfg.Derived.ScreenX != 1050 {
		t.Errorf("derived screen plane = %v, want 1050", cfg.Derived.ScreenX)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	overlay := []byte("regime:\n  slit_count: one\n  particle_kind: wave\ngeometry:\n  wavelength: 30\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load overlay: %v", err)
	}

	if cfg.Geometry.Wavelength != 30 {
		t.Errorf("wavelength = %v, want 30", cfg.Geometry.Wavelength)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Geometry.SlitWidth != 15 {
		t.Errorf("slit width = %v, want default 15", cfg.Geometry.SlitWidth)
	}
	if cfg.Derived.Regime.Slits != components.OneSlit || cfg.Derived.Regime.Kind != components.KindWave {
		t.Errorf("unexpected regime %v", cfg.Derived.Regime)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown kind", "regime:\n  particle_kind: photon\n"},
		{"overlapping slits", "geometry:\n  slit_width: 200\n"},
		{"negative wavelength", "geometry:\n  wavelength: -5\n"},
		{"bad policy", "emitter:\n  policy: burst\n"},
		{"zero bins", "detector:\n  bins: 0\n"},
		{"damping too large", "detector:\n  relax_damping: 1.5\n"},
		{"negative classical spread", "emitter:\n  classical:\n    velocity_spread: -1\n"},
		{"quantum chance above one", "emitter:\n  quantum:\n    spawn_chance: 1.5\n"},
		{"zero classical increment", "detector:\n  hit_increment:\n    classical: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.SetRegime(components.Regime{Slits: components.OneSlit, Kind: components.KindClassical})

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Derived.Regime != cfg.Derived.Regime {
		t.Errorf("regime = %v, want %v", loaded.Derived.Regime, cfg.Derived.Regime)
	}
	if loaded.Geometry != cfg.Geometry {
		t.Errorf("geometry = %+v, want %+v", loaded.Geometry, cfg.Geometry)
	}
}

func TestEmitterProfiles(t *testing.T) {
	cfg := Default()

	classical, ok := cfg.Emitter.Profile(components.KindClassical)
	if !ok {
		t.Fatal("classical has no emitter profile")
	}
	quantum, ok := cfg.Emitter.Profile(components.KindQuantum)
	if !ok {
		t.Fatal("quantum has no emitter profile")
	}
	if _, ok := cfg.Emitter.Profile(components.KindWave); ok {
		t.Error("wave regime should not emit")
	}

	// The cannon is messier and slower to fire than the electron gun.
	if classical.VelocitySpread <= quantum.VelocitySpread {
		t.Errorf("classical spread %v not wider than quantum %v", classical.VelocitySpread, quantum.VelocitySpread)
	}
	if classical.SpawnCount >= quantum.SpawnCount {
		t.Errorf("classical rate %d not below quantum %d", classical.SpawnCount, quantum.SpawnCount)
	}

	inc := cfg.Detector.HitIncrement
	if inc.For(components.KindClassical) <= inc.For(components.KindQuantum) {
		t.Errorf("classical hit increment %v not above quantum %v", inc.Classical, inc.Quantum)
	}
	if inc.For(components.KindWave) != inc.Quantum {
		t.Errorf("wave increment = %v, want the quantum value", inc.For(components.KindWave))
	}
}

func TestLoadOverlayKeepsOtherProfileFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	overlay := []byte("emitter:\n  quantum:\n    spawn_count: 4\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load overlay: %v", err)
	}
	def := Default()
	if cfg.Emitter.Quantum.SpawnCount != 4 {
		t.Errorf("quantum spawn count = %d, want 4", cfg.Emitter.Quantum.SpawnCount)
	}
	if cfg.Emitter.Quantum.VelocitySpread != def.Emitter.Quantum.VelocitySpread {
		t.Errorf("quantum spread = %v, want default %v", cfg.Emitter.Quantum.VelocitySpread, def.Emitter.Quantum.VelocitySpread)
	}
	if cfg.Emitter.Classical != def.Emitter.Classical {
		t.Errorf("classical profile changed: %+v", cfg.Emitter.Classical)
	}
}
