package projection

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

const testRadius = 100.0

// rayAt aims a ray straight down the surface normal at (u, v), from three
// radii out. Every family must recover the coordinate it was aimed at.
func rayAt(f Family, u, v, morph float64) geo.Ray {
	pt := f.Forward(u, v, morph)
	origin := pt.Position.Add(pt.Normal.Mul(3 * testRadius))
	return geo.Ray{Origin: origin, Dir: pt.Normal.Mul(-1)}
}

// vertRay starts below the flat map at (x, y) heading in dir.
func vertRay(x, y float64, dir mgl64.Vec3) geo.Ray {
	return geo.Ray{Origin: mgl64.Vec3{x, y, -3 * testRadius}, Dir: dir.Normalize()}
}

// checkRoundTrip inverts the normal ray at (u, v) and compares the
// recovered coordinate wrap-aware in u.
func checkRoundTrip(t *testing.T, f Family, u, v, morph float64) {
	t.Helper()
	gu, gv, ok := f.Invert(rayAt(f, u, v, morph), morph)
	require.True(t, ok, "%s: no hit at u=%v v=%v morph=%v", f.Name(), u, v, morph)
	require.InDelta(t, 0, geo.UDist(gu, u), 1e-3, "%s: u at u=%v v=%v morph=%v", f.Name(), u, v, morph)
	require.InDelta(t, v, gv, 1e-3, "%s: v at u=%v v=%v morph=%v", f.Name(), u, v, morph)
}

func TestNewKnownFamilies(t *testing.T) {
	for _, name := range Names() {
		f, err := New(name, testRadius)
		require.NoError(t, err)
		require.Equal(t, name, f.Name())
	}
	_, err := New("mercator", testRadius)
	require.Error(t, err)
}

func TestForwardDeterministic(t *testing.T) {
	for _, name := range Names() {
		f, err := New(name, testRadius)
		require.NoError(t, err)
		a := f.Forward(0.37, 0.62, 0.41)
		b := f.Forward(0.37, 0.62, 0.41)
		require.Equal(t, a, b, "%s: forward must be pure", name)

		ray := rayAt(f, 0.37, 0.62, 0.41)
		u1, v1, ok1 := f.Invert(ray, 0.41)
		u2, v2, ok2 := f.Invert(ray, 0.41)
		require.Equal(t, ok1, ok2, "%s: invert must be pure", name)
		require.Equal(t, u1, u2)
		require.Equal(t, v1, v2)
	}
}

func TestForwardNormalsUnit(t *testing.T) {
	for _, name := range Names() {
		f, err := New(name, testRadius)
		require.NoError(t, err)
		for _, morph := range []float64{0, 0.5, 1} {
			for _, u := range []float64{0.1, 0.5, 0.9} {
				for _, v := range []float64{0.1, 0.5, 0.9} {
					n := f.Forward(u, v, morph).Normal
					require.InDelta(t, 1, n.Len(), 1e-9,
						"%s: normal length at u=%v v=%v morph=%v", name, u, v, morph)
				}
			}
		}
	}
}
