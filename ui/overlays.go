package ui

import (
	"fmt"
	"slices"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable scene layer or panel.
type OverlayID string

const (
	OverlayGrid     OverlayID = "grid"
	OverlayTrack    OverlayID = "track"
	OverlayMarkers  OverlayID = "markers"
	OverlayEmitter  OverlayID = "emitter_panel"
	OverlayPerf     OverlayID = "perf_panel"
	OverlayControls OverlayID = "controls_panel"
	OverlayFollow   OverlayID = "follow_selected"
)

// OverlayDescriptor describes one overlay and the key that toggles it.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32
	KeyLabel string
	Category string // "scene", "panels" or "camera"
	Default  bool
}

// defaultOverlays are registered by NewOverlayRegistry, in legend order.
var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayGrid, Name: "Ground Grid", Key: rl.KeyG, KeyLabel: "G", Category: "scene", Default: true},
	{ID: OverlayTrack, Name: "Track", Key: rl.KeyT, KeyLabel: "T", Category: "scene", Default: true},
	{ID: OverlayMarkers, Name: "Emitter Markers", Key: rl.KeyM, KeyLabel: "M", Category: "scene", Default: true},
	{ID: OverlayEmitter, Name: "Emitter Panel", Key: rl.KeyI, KeyLabel: "I", Category: "panels", Default: true},
	{ID: OverlayPerf, Name: "Perf Panel", Key: rl.KeyP, KeyLabel: "P", Category: "panels"},
	{ID: OverlayControls, Name: "Controls", Key: rl.KeyC, KeyLabel: "C", Category: "panels", Default: true},
	{ID: OverlayFollow, Name: "Follow Emitter", Key: rl.KeyF, KeyLabel: "F", Category: "camera", Default: true},
}

// OverlayRegistry holds overlay descriptors and their on/off state.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register adds an overlay in its default state.
func (r *OverlayRegistry) Register(d OverlayDescriptor) {
	r.descriptors = append(r.descriptors, d)
	r.enabled[d.ID] = d.Default
}

// SetEnabled sets an overlay's state. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	if _, ok := r.enabled[id]; ok {
		r.enabled[id] = on
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	for _, d := range r.descriptors {
		if d.Key == key {
			r.enabled[d.ID] = !r.enabled[d.ID]
			return d.ID, r.enabled[d.ID], true
		}
	}
	return "", false, false
}

// ByCategory returns the overlays of one category in registration order.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, d := range r.descriptors {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Categories returns the categories in first-registration order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, d := range r.descriptors {
		if !slices.Contains(cats, d.Category) {
			cats = append(cats, d.Category)
		}
	}
	return cats
}

// Legend returns one line per category, e.g. "scene: [G] Ground Grid* [T] Track".
// Enabled overlays carry an asterisk.
func (r *OverlayRegistry) Legend() []string {
	lines := make([]string, 0, 3)
	for _, cat := range r.Categories() {
		var b strings.Builder
		b.WriteString(cat + ":")
		for _, d := range r.ByCategory(cat) {
			mark := ""
			if r.enabled[d.ID] {
				mark = "*"
			}
			fmt.Fprintf(&b, " [%s] %s%s", d.KeyLabel, d.Name, mark)
		}
		lines = append(lines, b.String())
	}
	return lines
}
