// Package projection implements the forward and inverse mappings between
// normalized surface coordinates and points on the morphing map surface.
//
// Every family exposes the same contract: Forward evaluates the surface at
// (u, v) for a morph factor in [0,1] and returns a position with a
// viewer-facing unit normal; Invert recovers the surface coordinate under a
// ray, or reports a miss. Both directions evaluate the exact same formulas,
// which is what keeps cursor picking aligned with the rendered surface.
package projection

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

// Solver limits shared by every family. The iteration caps bound the work
// done per frame; no solve may loop past them.
const (
	maxNewtonSteps = 8
	detEpsilon     = 1e-10
	parallelEps    = 1e-6
	jacobianStep   = 1e-4
	normalEps      = 1e-9
)

// convergeTol is the early-exit residual for Newton solves, relative to the
// map radius. hitTol is the loosest residual still reported as a hit once
// the iteration budget is exhausted.
const (
	convergeTol = 1e-6
	hitTol      = 1e-3
)

// ProjectedPoint is the result of a forward evaluation: a position on the
// surface and its unit normal, flipped to face the viewer. It is always
// recomputed, never cached.
type ProjectedPoint struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
}

// Family is one projection variant: a forward surface evaluation and the
// matching ray inverse. Implementations are pure and deterministic; Invert
// reports ok=false for geometric misses instead of returning an error.
type Family interface {
	Name() string
	Forward(u, v, morph float64) ProjectedPoint
	Invert(ray geo.Ray, morph float64) (u, v float64, ok bool)
}

// New returns the family registered under name, backed by a map of the
// given radius.
func New(name string, radius float64) (Family, error) {
	switch name {
	case "planesphere":
		return PlaneSphere{Radius: radius}, nil
	case "sinusoidal":
		return Sinusoidal{Radius: radius}, nil
	case "aitoff":
		return Aitoff{Radius: radius}, nil
	case "generalized":
		return NewGeneralized(radius), nil
	}
	return nil, fmt.Errorf("unknown projection family %q", name)
}

// Names lists the registered projection families.
func Names() []string {
	return []string{"planesphere", "sinusoidal", "aitoff", "generalized"}
}

// viewerNormal orients the cross product of the u and v tangents toward the
// viewer side of the surface, falling back to the fixed up axis when the
// tangents degenerate (for example at the poles of a fully morphed sphere).
func viewerNormal(tu, tv mgl64.Vec3) mgl64.Vec3 {
	n := tu.Cross(tv)
	if n.Len() < normalEps {
		return mgl64.Vec3{0, 1, 0}
	}
	return n.Normalize().Mul(-1)
}

func lerp3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// planeHit intersects a ray with the z=0 plane. Rays nearly parallel to the
// plane are rejected rather than producing unbounded parameters.
func planeHit(ray geo.Ray) (mgl64.Vec3, bool) {
	if math.Abs(ray.Dir.Z()) < parallelEps {
		return mgl64.Vec3{}, false
	}
	t := -ray.Origin.Z() / ray.Dir.Z()
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return ray.At(t), true
}
