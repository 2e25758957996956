package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// hotThreshold is the bar fill above which a bar switches to the hot color.
const hotThreshold = 0.9

// spacerHeight is the gap a WidgetSpacer leaves.
const spacerHeight = 6

// Renderer draws descriptor-driven panels in one theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// rowHeight is the vertical space one widget takes.
func (r *Renderer) rowHeight(w WidgetType) int32 {
	switch w {
	case WidgetBar, WidgetCenteredBar:
		return r.Theme.LineHeight + 2
	case WidgetSpacer:
		return spacerHeight
	}
	return r.Theme.LineHeight
}

// label draws "label:" at the start of a row.
func (r *Renderer) label(x, y int32, text string) {
	rl.DrawText(text+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
}

// track draws an empty bar after the label column and returns its extent.
// The bar leaves room on its right for a numeric readout.
func (r *Renderer) track(x, y, width int32) (barX, barWidth int32) {
	barX = x + r.Theme.LabelWidth
	barWidth = width - r.Theme.LabelWidth - 50
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	return barX, barWidth
}

func (r *Renderer) readout(x, y int32, text string) {
	rl.DrawText(text, x+5, y, r.Theme.FontSize, r.Theme.ValueColor)
}

// drawBar fills a [0,1] bar from the left, hot above hotThreshold.
func (r *Renderer) drawBar(x, y, width int32, fd FieldDescriptor, data any) {
	v := clampUnit(fieldValue(fd, data))
	r.label(x, y, fd.Label)
	barX, barWidth := r.track(x, y, width)

	fill := r.Theme.BarFill
	if v >= hotThreshold {
		fill = r.Theme.BarFillHot
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*v), r.Theme.BarHeight, fill)
	r.readout(barX+barWidth, y, fmt.Sprintf("%.2f", v))
}

// drawCenteredBar fills from the middle of fd.Range towards the value.
func (r *Renderer) drawCenteredBar(x, y, width int32, fd FieldDescriptor, data any) {
	v := fieldValue(fd, data)
	r.label(x, y, fd.Label)
	barX, barWidth := r.track(x, y, width)

	mid := barX + barWidth/2
	rl.DrawLine(mid, y+2, mid, y+2+r.Theme.BarHeight, r.Theme.PanelBorder)

	frac := centeredFraction(v, fd.Range.Min, fd.Range.Max)
	fill := int32(float32(barWidth/2) * frac)
	color := r.Theme.BarFillPositive
	left := mid
	if fill < 0 {
		fill = -fill
		left = mid - fill
		color = r.Theme.BarFillNegative
	}
	rl.DrawRectangle(left, y+2, fill, r.Theme.BarHeight, color)
	r.readout(barX+barWidth, y, fmt.Sprintf("%+.2f", v))
}

func (r *Renderer) drawSwatch(x, y int32, fd FieldDescriptor, data any) {
	color := rl.White
	if fd.ColorGetter != nil {
		color = fd.ColorGetter(data)
	}
	r.label(x, y, fd.Label)
	size := r.Theme.LineHeight - 4
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, size, size, color)
	rl.DrawRectangleLines(x+r.Theme.LabelWidth, y+1, size, size, r.Theme.PanelBorder)
}

// DrawField draws one field and returns the Y of the next row.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		r.label(x, y, fd.Label)
		rl.DrawText(FieldText(fd, data), x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	case WidgetBar:
		r.drawBar(x, y, width, fd, data)
	case WidgetCenteredBar:
		r.drawCenteredBar(x, y, width, fd, data)
	case WidgetColorSwatch:
		r.drawSwatch(x, y, fd, data)
	}
	return y + r.rowHeight(fd.Widget)
}

// DrawSection draws a titled group of fields and returns the Y below it.
// Hidden sections take no space.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}
	if sd.Title != "" {
		rl.DrawText(sd.Title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		y = r.DrawField(x, y, fd, data, width)
	}
	return y + 4
}

// SectionHeight returns the height DrawSection will use.
func (r *Renderer) SectionHeight(sd SectionDescriptor, data any) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return 0
	}
	h := int32(4)
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		h += r.rowHeight(fd.Widget)
	}
	return h
}

// FieldText formats a text field. TextGetter wins over Getter; numeric
// values default to two decimals.
func FieldText(fd FieldDescriptor, data any) string {
	switch {
	case fd.TextGetter != nil:
		return fd.TextGetter(data)
	case fd.Getter == nil:
		return ""
	case fd.Format == "":
		return fmt.Sprintf("%.2f", fd.Getter(data))
	default:
		return fmt.Sprintf(fd.Format, fd.Getter(data))
	}
}

func fieldValue(fd FieldDescriptor, data any) float32 {
	if fd.Getter == nil {
		return 0
	}
	return fd.Getter(data)
}

// centeredFraction maps value to [-1, 1] around the middle of [lo, hi].
func centeredFraction(value, lo, hi float32) float32 {
	half := (hi - lo) / 2
	if half <= 0 {
		return 0
	}
	return max(-1, min(1, (value-lo-half)/half))
}

func clampUnit(v float32) float32 {
	return max(0, min(1, v))
}
