package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

// Sinusoidal pinches the flat map toward the poles without leaving the
// plane: the horizontal scale blends from 1 to cos(latitude) with the morph
// factor while the surface stays at z=0. Its inverse is fully closed-form.
type Sinusoidal struct {
	Radius float64
}

func (s Sinusoidal) Name() string { return "sinusoidal" }

func (s Sinusoidal) derivs(u, v, morph float64) (pos, pu, pv mgl64.Vec3) {
	r := s.Radius
	lon := geo.LonOf(u)
	lat := geo.LatOf(v)
	scaleX := geo.Lerp(1, math.Cos(lat), morph)

	pos = mgl64.Vec3{lon * scaleX * r, lat * r, 0}
	pu = mgl64.Vec3{2 * math.Pi * scaleX * r, 0, 0}
	// d(scaleX)/dv = -morph*sin(lat)*pi
	pv = mgl64.Vec3{-lon * morph * math.Sin(lat) * math.Pi * r, math.Pi * r, 0}
	return pos, pu, pv
}

func (s Sinusoidal) Forward(u, v, morph float64) ProjectedPoint {
	pos, pu, pv := s.derivs(u, v, morph)
	n := pu.Cross(pv)
	if n.Len() < normalEps {
		// Pinched to zero width at a pole; the surface is still the plane.
		return ProjectedPoint{Position: pos, Normal: mgl64.Vec3{0, 0, -1}}
	}
	return ProjectedPoint{Position: pos, Normal: n.Normalize().Mul(-1)}
}

// Invert intersects the ray with the map plane and unwinds the pinch
// analytically. Near the poles the width factor collapses, so only points
// sitting on the central meridian resolve there.
func (s Sinusoidal) Invert(ray geo.Ray, morph float64) (float64, float64, bool) {
	pt, ok := planeHit(ray)
	if !ok {
		return 0, 0, false
	}

	lat := pt.Y() / s.Radius
	if math.Abs(lat) > math.Pi/2+convergeTol {
		return 0, 0, false
	}
	lat = geo.Clamp(lat, -math.Pi/2, math.Pi/2)

	var lon float64
	widthFactor := geo.Lerp(1, math.Cos(lat), morph)
	if math.Abs(widthFactor) < normalEps {
		if math.Abs(pt.X()) > convergeTol*s.Radius {
			return 0, 0, false
		}
		lon = 0
	} else {
		lon = pt.X() / (s.Radius * widthFactor)
	}
	if math.Abs(lon) > math.Pi+convergeTol {
		return 0, 0, false
	}

	return geo.UOf(lon), geo.VOf(lat), true
}
