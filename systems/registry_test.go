package systems

import "testing"

func TestSystemRegistry(t *testing.T) {
	reg := NewSystemRegistry()
	want := []string{"spawn", "advance", "retire", "relax", "telemetry"}
	ids := reg.IDs()
	if len(ids) != len(want) {
		t.Fatalf("IDs = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
	if got := reg.GetName("advance"); got != "Flight" {
		t.Errorf("GetName(advance) = %q", got)
	}
	if got := reg.GetName("nope"); got != "nope" {
		t.Errorf("unknown id should fall back to itself, got %q", got)
	}
}
