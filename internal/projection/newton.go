package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

// surfaceDerivs evaluates a surface point together with its analytic (or
// numeric) partial derivatives with respect to u and v.
type surfaceDerivs func(u, v, morph float64) (pos, pu, pv mgl64.Vec3)

// Seed is one candidate starting coordinate for the 3-unknown solve.
type Seed struct {
	U, V float64
}

// solveSeeded runs the Newton solve from every candidate seed, each paired
// with its seam twin, and keeps the hit nearest the ray origin. A curved
// morphing surface can intersect one ray more than once; only the first
// intersection along the ray is the pick.
func solveSeeded(ray geo.Ray, morph float64, derivs surfaceDerivs, seeds []Seed, radius float64) (float64, float64, bool) {
	bestT := math.MaxFloat64
	var bestU, bestV float64
	for _, s := range seamTwins(seeds) {
		u, v, t, ok := newton3(ray, morph, derivs, s.U, s.V, radius)
		if ok && t < bestT {
			bestT, bestU, bestV = t, u, v
		}
	}
	return bestU, bestV, bestT < math.MaxFloat64
}

// seamTwins pairs each seed with its wrapped twin so a solve near the u
// seam can approach the target from either side of the cut.
func seamTwins(seeds []Seed) []Seed {
	out := make([]Seed, 0, 2*len(seeds))
	for _, s := range seeds {
		out = append(out, s)
		if s.U >= 0.5 {
			out = append(out, Seed{U: s.U - 1, V: s.V})
		} else {
			out = append(out, Seed{U: s.U + 1, V: s.V})
		}
	}
	return out
}

// newton3 refines a seeded (u, v) against a ray by solving for the ray
// parameter and both surface coordinates simultaneously. Each step builds
// the 3x3 system
//
//	[dir | -dP/du | -dP/dv] * [dt du dv]^T = -(origin + t*dir - P(u, v))
//
// and applies the explicit matrix inverse. u is deliberately not wrapped
// between steps: at intermediate morph the surface is cut at the seam and
// wrapping would jump the iterate onto a discontinuous branch. The solve
// instead walks the smooth analytic continuation inside a band around its
// seed and only the final coordinate wraps. A result whose wrapped
// coordinate does not describe the same point on the cut strip lies off
// the surface and counts as a miss, as does any final residual above the
// loose hit tolerance or a non-positive ray parameter.
func newton3(ray geo.Ray, morph float64, derivs surfaceDerivs, u, v, radius float64) (float64, float64, float64, bool) {
	const uBand = 0.75 // keeps the solve on its seed's branch

	u0 := u
	pos, _, _ := derivs(u, v, morph)
	t := pos.Sub(ray.Origin).Dot(ray.Dir)

	stop := convergeTol * radius
	for i := 0; i < maxNewtonSteps; i++ {
		var pu, pv mgl64.Vec3
		pos, pu, pv = derivs(u, v, morph)

		f := ray.At(t).Sub(pos)
		if f.Len() < stop {
			break
		}

		m := mgl64.Mat3FromCols(ray.Dir, pu.Mul(-1), pv.Mul(-1))
		if math.Abs(m.Det()) < detEpsilon {
			break
		}
		step := m.Inv().Mul3x1(f.Mul(-1))

		t += step.X()
		u = geo.Clamp(u+step.Y(), u0-uBand, u0+uBand)
		v = geo.Clamp01(v + step.Z())
	}

	pos, _, _ = derivs(u, v, morph)
	if t <= 0 || ray.At(t).Sub(pos).Len() > hitTol*radius {
		return 0, 0, 0, false
	}

	wrapped := geo.WrapU(u)
	if wrapped != u {
		wpos, _, _ := derivs(wrapped, v, morph)
		if ray.At(t).Sub(wpos).Len() > hitTol*radius {
			return 0, 0, 0, false
		}
	}
	return wrapped, v, t, true
}

// newton2 solves a planar nonlinear projection for (lat, lon) given a target
// point on the z=0 plane. The 2x2 Jacobian is estimated with central
// differences; latitude is clamped to the valid band and longitude wrapped
// after every step. A final residual above the hit tolerance is a miss.
func newton2(fwd func(lat, lon float64) (x, y float64), targetX, targetY, lat, lon, radius float64) (float64, float64, bool) {
	const h = jacobianStep

	stop := convergeTol * radius
	for i := 0; i < maxNewtonSteps; i++ {
		x, y := fwd(lat, lon)
		fx := x - targetX
		fy := y - targetY
		if math.Hypot(fx, fy) < stop {
			break
		}

		// Central-difference Jacobian.
		xa, ya := fwd(lat+h, lon)
		xb, yb := fwd(lat-h, lon)
		xc, yc := fwd(lat, lon+h)
		xd, yd := fwd(lat, lon-h)
		j00 := (xa - xb) / (2 * h) // dx/dlat
		j10 := (ya - yb) / (2 * h) // dy/dlat
		j01 := (xc - xd) / (2 * h) // dx/dlon
		j11 := (yc - yd) / (2 * h) // dy/dlon

		det := j00*j11 - j01*j10
		if math.Abs(det) < detEpsilon {
			break
		}
		dLat := (-fx*j11 + fy*j01) / det
		dLon := (-fy*j00 + fx*j10) / det

		lat = geo.Clamp(lat+dLat, -math.Pi/2, math.Pi/2)
		lon = geo.WrapAngle(lon + dLon)
	}

	x, y := fwd(lat, lon)
	if math.Hypot(x-targetX, y-targetY) > hitTol*radius {
		return 0, 0, false
	}
	return lat, lon, true
}
