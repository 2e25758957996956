package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/plume/particles"
)

// EmitterView is the data shown for the selected emitter.
type EmitterView struct {
	Name       string
	Kind       string
	TileX      int
	TileZ      int
	Rate       float64 // particles per second
	Volume     float64 // m³/s this tick
	BaseVolume float64 // configured m³/s before pulsing and scaling
	Color      [4]float32

	Cursors     particles.Cursors
	Stats       particles.Stats
	FlushErrors int
}

// EmitterSections describes the emitter panel layout.
func EmitterSections() []SectionDescriptor {
	view := func(data any) *EmitterView { return data.(*EmitterView) }

	return []SectionDescriptor{
		{
			ID:    "output",
			Title: "Output",
			Fields: []FieldDescriptor{
				{ID: "kind", Label: "Kind", Widget: WidgetText, TextGetter: func(d any) string {
					v := view(d)
					return fmt.Sprintf("%s @ tile (%d,%d)", v.Kind, v.TileX, v.TileZ)
				}},
				{ID: "rate", Label: "Rate", Widget: WidgetText, Format: "%.1f /s", Getter: func(d any) float32 {
					return float32(view(d).Rate)
				}},
				{ID: "volume", Label: "Volume", Widget: WidgetText, Format: "%.2f m3/s", Getter: func(d any) float32 {
					return float32(view(d).Volume)
				}},
				{ID: "pulse", Label: "Pulse", Widget: WidgetCenteredBar, Range: FieldRange{Min: 0, Max: 2}, Getter: func(d any) float32 {
					v := view(d)
					if v.BaseVolume <= 0 {
						return 1
					}
					return float32(v.Volume / v.BaseVolume)
				}},
				{ID: "color", Label: "Color", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color {
					c := view(d).Color
					return rl.ColorFromNormalized(rl.Vector4{X: c[0], Y: c[1], Z: c[2], W: c[3]})
				}},
			},
		},
		{
			ID:    "buffer",
			Title: "Buffer",
			Fields: []FieldDescriptor{
				{ID: "cursors", Label: "Cursors", Widget: WidgetText, TextGetter: func(d any) string {
					c := view(d).Cursors
					return fmt.Sprintf("r%d a%d n%d f%d", c.Retired, c.Active, c.New, c.Free)
				}},
				{ID: "occupancy", Label: "Live/Pend/Exp", Widget: WidgetText, TextGetter: func(d any) string {
					s := view(d).Stats
					return fmt.Sprintf("%d / %d / %d", s.Live, s.Pending, s.Expiring)
				}},
				{ID: "util", Label: "Utilization", Widget: WidgetBar, Getter: func(d any) float32 {
					return float32(view(d).Stats.Utilization())
				}},
			},
		},
		{
			ID:    "counters",
			Title: "Counters",
			Fields: []FieldDescriptor{
				{ID: "emitted", Label: "Emitted", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(view(d).Stats.Emitted)
				}},
				{ID: "freed", Label: "Freed", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(view(d).Stats.Freed)
				}},
				{ID: "throttled", Label: "Throttled", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(view(d).Stats.Throttled)
				}},
				{ID: "flush_errors", Label: "Flush errors", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(view(d).FlushErrors)
				}},
			},
		},
	}
}

// EmitterPanel renders the selected emitter's state.
type EmitterPanel struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewEmitterPanel creates a new emitter panel.
func NewEmitterPanel(x, y, width int32) *EmitterPanel {
	return &EmitterPanel{
		renderer: NewRenderer(),
		sections: EmitterSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *EmitterPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel and returns the Y position below it.
func (p *EmitterPanel) Draw(view *EmitterView) int32 {
	r := p.renderer
	padding := r.Theme.Padding

	height := padding*2 + r.Theme.LineHeight + 4
	for _, sd := range p.sections {
		height += r.SectionHeight(sd, view)
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + padding
	rl.DrawText(view.Name, p.x+padding, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	for _, sd := range p.sections {
		y = r.DrawSection(p.x+padding, y, sd, view, p.width-padding*2)
	}
	return y
}
