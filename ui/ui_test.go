package ui

import (
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plume/particles"
)

func TestFieldText(t *testing.T) {
	tests := []struct {
		name string
		fd   FieldDescriptor
		want string
	}{
		{"default format", FieldDescriptor{Getter: func(any) float32 { return 1.5 }}, "1.50"},
		{"custom format", FieldDescriptor{Format: "%.0f /s", Getter: func(any) float32 { return 24 }}, "24 /s"},
		{"text getter wins", FieldDescriptor{
			Getter:     func(any) float32 { return 1 },
			TextGetter: func(any) string { return "text" },
		}, "text"},
		{"no getter", FieldDescriptor{}, ""},
	}
	for _, tt := range tests {
		if got := FieldText(tt.fd, nil); got != tt.want {
			t.Errorf("%s: FieldText = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCenteredFraction(t *testing.T) {
	tests := []struct {
		value, min, max, want float32
	}{
		{0, -10, 10, 0},
		{5, -10, 10, 0.5},
		{-20, -10, 10, -1},
		{20, -10, 10, 1},
		{3, 2, 2, 0},
	}
	for _, tt := range tests {
		if got := centeredFraction(tt.value, tt.min, tt.max); got != tt.want {
			t.Errorf("centeredFraction(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestEmitterSections(t *testing.T) {
	view := &EmitterView{
		Name:       "loco_stack",
		Kind:       "track",
		TileX:      -1,
		TileZ:      2,
		Rate:       24,
		Volume:     3,
		BaseVolume: 2,
		Color:      [4]float32{1, 0, 0, 1},
		Cursors:    particles.Cursors{Retired: 1, Active: 2, New: 5, Free: 7},
		Stats: particles.Stats{
			Emitted: 40, Freed: 30, Throttled: 2,
			Capacity: 11, Live: 3, Pending: 2, Expiring: 1, Free: 4,
		},
		FlushErrors: 1,
	}

	fields := make(map[string]FieldDescriptor)
	for _, sd := range EmitterSections() {
		for _, fd := range sd.Fields {
			fields[fd.ID] = fd
		}
	}

	texts := map[string]string{
		"kind":         "track @ tile (-1,2)",
		"rate":         "24.0 /s",
		"volume":       "3.00 m3/s",
		"cursors":      "r1 a2 n5 f7",
		"occupancy":    "3 / 2 / 1",
		"emitted":      "40",
		"throttled":    "2",
		"flush_errors": "1",
	}
	for id, want := range texts {
		fd, ok := fields[id]
		if !ok {
			t.Errorf("missing field %q", id)
			continue
		}
		if got := FieldText(fd, view); got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}

	if got := fields["pulse"].Getter(view); got != 1.5 {
		t.Errorf("pulse = %v, want 1.5", got)
	}

	// 10 usable slots, 4 free
	if got := fields["util"].Getter(view); got < 0.59 || got > 0.61 {
		t.Errorf("util = %v, want 0.6", got)
	}
	if got := fields["color"].ColorGetter(view); got != (rl.Color{R: 255, G: 0, B: 0, A: 255}) {
		t.Errorf("color = %v, want red", got)
	}
}

func TestOverlayRegistry(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayGrid) || reg.IsEnabled(OverlayPerf) {
		t.Error("unexpected default overlay state")
	}

	id, enabled, ok := reg.HandleKeyPress(rl.KeyP)
	if !ok || id != OverlayPerf || !enabled {
		t.Errorf("HandleKeyPress(P) = %v, %v, %v", id, enabled, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key toggled an overlay")
	}

	reg.SetEnabled(OverlayFollow, false)
	if reg.IsEnabled(OverlayFollow) {
		t.Error("SetEnabled(false) did not disable follow")
	}

	if got := len(reg.ByCategory("scene")); got != 3 {
		t.Errorf("scene overlays = %d, want 3", got)
	}

	legend := reg.Legend()
	if len(legend) != 3 {
		t.Fatalf("legend lines = %d, want 3", len(legend))
	}
	if want := "camera: [F] Follow Emitter"; legend[2] != want {
		t.Errorf("camera legend = %q, want %q", legend[2], want)
	}
	if !strings.Contains(legend[1], "[P] Perf Panel*") {
		t.Errorf("panels legend %q does not mark perf enabled", legend[1])
	}
}

func TestHUDLines(t *testing.T) {
	lines := HUDData{Emitters: 3, Live: 40, Capacity: 900, Drawn: 38, Tick: 120, SimTime: 2, Steps: 1, Paused: true}.Lines()
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if want := "Emitters: 3 | Live: 40 / 900 slots | Drawn: 38"; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if lines[2] != "PAUSED" {
		t.Errorf("status = %q, want PAUSED", lines[2])
	}
}
