package province

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
	"github.com/itswill307/TheNewSuzerainProject/internal/projection"
)

const pickRadius = 100.0

// pickRay aims straight at the flat map point for (u, v).
func pickRay(u, v float64) geo.Ray {
	x := (u - 0.5) * 2 * math.Pi * pickRadius
	y := (v - 0.5) * math.Pi * pickRadius
	return geo.Ray{Origin: mgl64.Vec3{x, y, -300}, Dir: mgl64.Vec3{0, 0, 1}}
}

// missRay points away from the map entirely.
func missRay() geo.Ray {
	return geo.Ray{Origin: mgl64.Vec3{0, 0, -300}, Dir: mgl64.Vec3{0, 0, -1}}
}

func newTestPicker(t *testing.T) *Picker {
	t.Helper()

	// West half ocean, north-east id 7, south-east id 300.
	path := writeIDMap(t, 8, 4, func(x, y int) int32 {
		if x < 4 {
			return 0
		}
		if y < 2 {
			return 7
		}
		return 300
	})
	ids, err := LoadIDMap(path, 0)
	require.NoError(t, err)

	p := NewPicker(projection.PlaneSphere{Radius: pickRadius}, ids)
	p.OceanID = 0
	p.BlockOcean = true
	return p
}

func TestPickerHoverAndSelect(t *testing.T) {
	p := newTestPicker(t)
	require.True(t, p.Enabled())
	require.Equal(t, None, p.Hovered())
	require.Equal(t, None, p.Selected())

	// Hover without a press never selects.
	p.Update(pickRay(0.8, 0.75), 0, false)
	require.Equal(t, int32(7), p.Hovered())
	require.Equal(t, None, p.Selected())

	// Press commits the hovered province.
	p.Update(pickRay(0.8, 0.75), 0, true)
	require.Equal(t, int32(7), p.Selected())

	// Hovering elsewhere leaves the selection alone.
	p.Update(pickRay(0.8, 0.25), 0, false)
	require.Equal(t, int32(300), p.Hovered())
	require.Equal(t, int32(7), p.Selected())

	// A press on another province moves the selection.
	p.Update(pickRay(0.8, 0.25), 0, true)
	require.Equal(t, int32(300), p.Selected())
}

func TestPickerOceanBlocks(t *testing.T) {
	p := newTestPicker(t)

	p.Update(pickRay(0.8, 0.75), 0, true)
	require.Equal(t, int32(7), p.Selected())

	// Ocean clears hover and swallows the press; selection stays.
	p.Update(pickRay(0.2, 0.5), 0, true)
	require.Equal(t, None, p.Hovered())
	require.Equal(t, int32(7), p.Selected())
}

func TestPickerOceanSelectableWhenUnblocked(t *testing.T) {
	p := newTestPicker(t)
	p.BlockOcean = false

	p.Update(pickRay(0.2, 0.5), 0, true)
	require.Equal(t, int32(0), p.Hovered())
	require.Equal(t, int32(0), p.Selected())
}

func TestPickerMissClearsHoverOnly(t *testing.T) {
	p := newTestPicker(t)

	p.Update(pickRay(0.8, 0.75), 0, true)
	require.Equal(t, int32(7), p.Selected())

	p.Update(missRay(), 0, true)
	require.Equal(t, None, p.Hovered())
	require.Equal(t, int32(7), p.Selected())
}

func TestPickerUVOffset(t *testing.T) {
	p := newTestPicker(t)

	// A half-turn scroll lands the western cursor on the eastern ids.
	p.UVOffset = 0.5
	p.Update(pickRay(0.3, 0.75), 0, false)
	require.Equal(t, int32(7), p.Hovered())
}

func TestPickerDisabledWithoutIDMap(t *testing.T) {
	p := NewPicker(projection.PlaneSphere{Radius: pickRadius}, nil)
	require.False(t, p.Enabled())

	p.Update(pickRay(0.8, 0.75), 0, true)
	require.Equal(t, None, p.Hovered())
	require.Equal(t, None, p.Selected())
}

func TestCompositeTints(t *testing.T) {
	base := Color{R: 0.2, G: 0.2, B: 0.2, A: 1}
	hover := Color{R: 1, G: 1, B: 0, A: 0.25}
	sel := Color{R: 0, G: 1, B: 0, A: 0.5}

	// Unrelated province: untouched.
	require.Equal(t, base, Composite(base, 3, 7, hover, 300, sel))

	// Hovered only.
	got := Composite(base, 7, 7, hover, 300, sel)
	require.InDelta(t, 0.45, got.R, 1e-9)
	require.InDelta(t, 0.45, got.G, 1e-9)
	require.InDelta(t, 0.2, got.B, 1e-9)

	// Hovered and selected: both tints apply, channels clamp.
	got = Composite(base, 7, 7, hover, 7, sel)
	require.InDelta(t, 0.45, got.R, 1e-9)
	require.InDelta(t, 0.95, got.G, 1e-9)

	// None sentinels never match any id.
	require.Equal(t, base, Composite(base, 7, None, hover, None, sel))
}
