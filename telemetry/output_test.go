package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/doubleslit/config"
)

func TestOutputManager_DisabledIsNil(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// A nil manager accepts every write.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WriteProfile(nil); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Errorf("nil manager Dir() = %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", om.Dir(), dir)
	}

	for i := int32(1); i <= 3; i++ {
		if err := om.WriteTelemetry(WindowStats{WindowEndTick: i * 600, Detected: int(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteEvent(PatternEvent{Type: EventSamplerDegraded, Tick: 600}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var rows []WindowStats
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	if len(rows) != 3 || rows[2].WindowEndTick != 1800 || rows[2].Detected != 3 {
		t.Errorf("rows = %+v", rows)
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "sampler_degraded") {
		t.Errorf("events.csv missing event: %q", data)
	}
}

func TestOutputManager_ProfileAndConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	rows := []ProfileRow{{Bin: 0, Y: -2.5, Value: 1, Normalized: 0.5, Model: 0.4}, {Bin: 1, Y: 2.5, Value: 2, Normalized: 1, Model: 1}}
	if err := om.WriteProfile(rows); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteProfile(rows[:1]); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "profile.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var got []ProfileRow
	if err := gocsv.UnmarshalFile(f, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("profile should be replaced, got %d rows", len(got))
	}

	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
