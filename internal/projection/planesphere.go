package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

// PlaneSphere morphs a flat rectangular map into a sphere. The working
// sphere radius shrinks from 3R at morph=0 to R at morph=1, and its center
// sits at z=R_eff so the front of the sphere stays tangent to the flat map
// plane at the origin. Positions blend the flat parameterization with the
// spherical patch linearly in the morph factor.
type PlaneSphere struct {
	Radius float64
}

func (p PlaneSphere) Name() string { return "planesphere" }

func (p PlaneSphere) effRadius(morph float64) float64 {
	return geo.Lerp(3*p.Radius, p.Radius, morph)
}

func (p PlaneSphere) center(morph float64) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, p.effRadius(morph)}
}

// derivs evaluates the blended surface and its analytic partial derivatives
// with respect to u and v. The tangents of the two endpoint surfaces are
// blended before the normal is formed, which keeps the normal continuous
// through the whole morph range.
func (p PlaneSphere) derivs(u, v, morph float64) (pos, pu, pv mgl64.Vec3) {
	r := p.Radius
	lon := geo.LonOf(u)
	lat := geo.LatOf(v)

	flat := mgl64.Vec3{lon * r, lat * r, 0}
	flatPu := mgl64.Vec3{2 * math.Pi * r, 0, 0}
	flatPv := mgl64.Vec3{0, math.Pi * r, 0}

	re := p.effRadius(morph)
	sinLon, cosLon := math.Sincos(lon)
	sinLat, cosLat := math.Sincos(lat)

	sph := p.center(morph).Add(mgl64.Vec3{
		re * cosLat * sinLon,
		re * sinLat,
		-re * cosLat * cosLon,
	})
	sphPu := mgl64.Vec3{
		re * cosLat * cosLon,
		0,
		re * cosLat * sinLon,
	}.Mul(2 * math.Pi)
	sphPv := mgl64.Vec3{
		-re * sinLat * sinLon,
		re * cosLat,
		re * sinLat * cosLon,
	}.Mul(math.Pi)

	pos = lerp3(flat, sph, morph)
	pu = lerp3(flatPu, sphPu, morph)
	pv = lerp3(flatPv, sphPv, morph)
	return pos, pu, pv
}

func (p PlaneSphere) Forward(u, v, morph float64) ProjectedPoint {
	pos, pu, pv := p.derivs(u, v, morph)
	return ProjectedPoint{Position: pos, Normal: viewerNormal(pu, pv)}
}

// Invert refines closed-form seed candidates with the shared 3-unknown
// Newton solve on the true blended surface, keeping the hit nearest the
// ray origin.
func (p PlaneSphere) Invert(ray geo.Ray, morph float64) (float64, float64, bool) {
	return solveSeeded(ray, morph, p.derivs, p.seedCandidates(ray, morph), p.Radius)
}

// seedCandidates reads starting coordinates off both endpoint surfaces.
// Mid-morph neither closed form is exact and either can land on the wrong
// branch near the seam, so every candidate runs and the solve keeps
// whichever converges first along the ray.
func (p PlaneSphere) seedCandidates(ray geo.Ray, morph float64) []Seed {
	var seeds []Seed
	if pt, ok := planeHit(ray); ok {
		seeds = append(seeds, Seed{
			U: geo.Clamp01(pt.X()/(2*math.Pi*p.Radius) + 0.5),
			V: geo.Clamp01(pt.Y()/(math.Pi*p.Radius) + 0.5),
		})
	}
	if u, v, ok := p.sphereSeed(ray, morph); ok {
		seeds = append(seeds, Seed{U: u, V: v})
	}
	return seeds
}

// sphereSeed intersects the ray with the morph's working sphere using the
// quadratic formula and keeps the nearest positive root. A ray that misses
// the sphere but still runs forward seeds from its closest approach
// instead; mid-morph the blended surface bulges past the working sphere,
// so a miss against the sphere is not yet a miss against the surface.
func (p PlaneSphere) sphereSeed(ray geo.Ray, morph float64) (float64, float64, bool) {
	re := p.effRadius(morph)
	oc := ray.Origin.Sub(p.center(morph))

	a := ray.Dir.Dot(ray.Dir)
	b := 2 * oc.Dot(ray.Dir)
	c := oc.Dot(oc) - re*re
	disc := b*b - 4*a*c

	var t float64
	if disc < 0 {
		t = -b / (2 * a)
		if t < 0 {
			return 0, 0, false
		}
	} else {
		sqrtD := math.Sqrt(disc)
		t = (-b - sqrtD) / (2 * a)
		if t < 0 {
			t = (-b + sqrtD) / (2 * a)
			if t < 0 {
				return 0, 0, false
			}
		}
	}

	q := ray.At(t).Sub(p.center(morph)).Normalize()
	lat := math.Asin(geo.Clamp(q.Y(), -1, 1))
	lon := math.Atan2(q.X(), -q.Z())
	return geo.UOf(lon), geo.VOf(lat), true
}
