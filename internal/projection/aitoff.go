package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

// Aitoff blends the flat equirectangular map with the classic Aitoff
// azimuthal projection. The surface never leaves the z=0 plane, so the
// normal is constant; all the shape lives in how (lat, lon) lands on the
// plane. The inverse is a 2-unknown Newton solve with a numeric Jacobian.
type Aitoff struct {
	Radius float64
}

func (a Aitoff) Name() string { return "aitoff" }

// project maps (lat, lon) to the blended planar point.
func (a Aitoff) project(lat, lon, morph float64) (x, y float64) {
	r := a.Radius

	flatX := lon * r
	flatY := lat * r

	alpha := math.Acos(geo.Clamp(math.Cos(lat)*math.Cos(lon/2), -1, 1))
	// sinc singularity: alpha/sin(alpha) -> 1 as alpha -> 0.
	invSinc := 1.0
	if alpha > 1e-7 {
		invSinc = alpha / math.Sin(alpha)
	}
	aitX := 2 * math.Cos(lat) * math.Sin(lon/2) * invSinc * r
	aitY := math.Sin(lat) * invSinc * r

	return geo.Lerp(flatX, aitX, morph), geo.Lerp(flatY, aitY, morph)
}

func (a Aitoff) Forward(u, v, morph float64) ProjectedPoint {
	x, y := a.project(geo.LatOf(v), geo.LonOf(u), morph)
	return ProjectedPoint{
		Position: mgl64.Vec3{x, y, 0},
		Normal:   mgl64.Vec3{0, 0, -1},
	}
}

// Invert intersects the map plane and solves the blended Aitoff equation
// for (lat, lon), seeding from the equirectangular reading of the hit
// point. The equator and central meridian are fixed points of the Aitoff
// blend, so the seed is already close over most of the map.
func (a Aitoff) Invert(ray geo.Ray, morph float64) (float64, float64, bool) {
	pt, ok := planeHit(ray)
	if !ok {
		return 0, 0, false
	}

	lat0, lon0 := a.seed(pt.X(), pt.Y(), morph)

	fwd := func(lat, lon float64) (float64, float64) {
		return a.project(lat, lon, morph)
	}
	lat, lon, ok := newton2(fwd, pt.X(), pt.Y(), lat0, lon0, a.Radius)
	if !ok {
		return 0, 0, false
	}
	return geo.UOf(lon), geo.VOf(lat), true
}

// seed picks a starting point for the Newton solve. The equirectangular
// reading is near-exact at low morph and near the map center, but at
// full morph the meridians converge toward the poles and the flat
// reading lands far from the true longitude. A second candidate inverts
// the azimuthal x term at the equirectangular latitude, and a third reads
// latitude off the pure azimuthal y term before inverting x, which is the
// only reading that survives the outline corners where the first two
// collapse. Whichever candidate reproduces the hit point best wins.
func (a Aitoff) seed(x, y, morph float64) (lat, lon float64) {
	lat = geo.Clamp(y/a.Radius, -math.Pi/2, math.Pi/2)
	lon = geo.WrapAngle(x / a.Radius)
	if morph < 0.5 {
		return lat, lon
	}

	azLon := func(lat float64) float64 {
		cosLat := math.Cos(lat)
		if cosLat < 1e-6 {
			cosLat = 1e-6
		}
		return 2 * math.Asin(geo.Clamp(x/(a.Radius*math.Pi*cosLat), -1, 1))
	}
	azLat := math.Asin(geo.Clamp(2*y/(a.Radius*math.Pi), -1, 1))

	candidates := [][2]float64{
		{lat, lon},
		{lat, azLon(lat)},
		{azLat, azLon(azLat)},
	}
	best := math.MaxFloat64
	for _, c := range candidates {
		cx, cy := a.project(c[0], c[1], morph)
		if d := math.Hypot(cx-x, cy-y); d < best {
			best = d
			lat, lon = c[0], c[1]
		}
	}
	return lat, lon
}
