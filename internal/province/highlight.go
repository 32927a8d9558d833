package province

import "github.com/itswill307/TheNewSuzerainProject/internal/geo"

// Color is a normalized RGBA color. Alpha acts as blend strength when the
// color is used as a tint.
type Color struct {
	R, G, B, A float64
}

// addTint additively blends tint scaled by its alpha, clamping channels.
func (c Color) addTint(tint Color) Color {
	return Color{
		R: geo.Clamp01(c.R + tint.R*tint.A),
		G: geo.Clamp01(c.G + tint.G*tint.A),
		B: geo.Clamp01(c.B + tint.B*tint.A),
		A: c.A,
	}
}

// Composite applies the hover and selection tints to a base color for the
// pixel/vertex belonging to province id. Negative ids act as "none"
// sentinels on either side. The selection tint applies after hover, so a
// province that is both hovered and selected reads as selected.
func Composite(base Color, id, hoveredID int32, hoverTint Color, selectedID int32, selectedTint Color) Color {
	out := base
	if hoveredID >= 0 && id == hoveredID {
		out = out.addTint(hoverTint)
	}
	if selectedID >= 0 && id == selectedID {
		out = out.addTint(selectedTint)
	}
	return out
}
