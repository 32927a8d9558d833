package province

import (
	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
	"github.com/itswill307/TheNewSuzerainProject/internal/projection"
)

// Picker resolves the pointer ray to a province once per input poll and
// tracks the hover/selection state machine. Hover follows the cursor and
// resets on any miss; selection only ever changes on a primary press edge
// that lands on a pickable province.
//
// A Picker with a nil ID map is permanently disabled: picking misses
// silently instead of crashing the rest of the frame loop.
type Picker struct {
	family projection.Family
	ids    *IDMap

	// OceanID is the sentinel decoded for ocean/background pixels. With
	// BlockOcean set, such pixels neither hover nor accept a press.
	OceanID    int32
	BlockOcean bool

	// UVOffset is the rendering-side horizontal scroll; the picked
	// coordinate shifts by the same amount before the ID lookup so picking
	// agrees with what the surface shows.
	UVOffset float64

	hovered  int32
	selected int32
}

// NewPicker builds a picker over a projection family and a loaded ID map.
// ids may be nil, which disables picking.
func NewPicker(family projection.Family, ids *IDMap) *Picker {
	return &Picker{
		family:   family,
		ids:      ids,
		hovered:  None,
		selected: None,
	}
}

// Enabled reports whether the picker has an ID buffer to sample.
func (p *Picker) Enabled() bool {
	return p.ids != nil
}

// Update runs one pick poll: invert the ray at the current morph factor,
// sample the ID buffer, and advance hover/selection. pressed must be the
// rising edge of the primary action, not its held state.
func (p *Picker) Update(ray geo.Ray, morph float64, pressed bool) {
	if p.ids == nil {
		p.hovered = None
		return
	}

	u, v, ok := p.family.Invert(ray, morph)
	if !ok {
		p.hovered = None
		return
	}

	id := p.ids.Sample(geo.WrapU(u+p.UVOffset), v)
	if id == p.OceanID && p.BlockOcean {
		// Ocean blocks both hover and the press that came with it.
		p.hovered = None
		return
	}

	p.hovered = id
	if pressed {
		p.selected = id
	}
}

// Hovered returns the province under the cursor, or None.
func (p *Picker) Hovered() int32 {
	return p.hovered
}

// Selected returns the committed selection, or None. Selection survives
// hover loss and only a later valid press overwrites it.
func (p *Picker) Selected() int32 {
	return p.selected
}
