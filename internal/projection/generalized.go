package projection

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

// SurfaceFunc evaluates a morphing surface position for a surface
// coordinate and morph factor.
type SurfaceFunc func(u, v, morph float64) mgl64.Vec3

// SeedFunc proposes initial coordinate candidates for a ray. An empty
// slice reports that the ray cannot hit the surface at all.
type SeedFunc func(ray geo.Ray, morph float64) []Seed

// Generalized inverts an arbitrary morphing surface with no closed-form
// geometry: partial derivatives come from central differences and the
// inverse runs the same 3-unknown Newton solve the analytic families use.
// It exists so a new surface only needs its forward formula to become
// pickable.
type Generalized struct {
	Radius  float64
	Surface SurfaceFunc
	Seed    SeedFunc
}

// NewGeneralized returns a Generalized family evaluating the plane/sphere
// morph surface numerically. It must agree with PlaneSphere at every sample
// point; the analytic family is simply the cheaper route to the same
// numbers.
func NewGeneralized(radius float64) Generalized {
	ps := PlaneSphere{Radius: radius}
	return Generalized{
		Radius: radius,
		Surface: func(u, v, morph float64) mgl64.Vec3 {
			pos, _, _ := ps.derivs(u, v, morph)
			return pos
		},
		Seed: ps.seedCandidates,
	}
}

func (g Generalized) Name() string { return "generalized" }

// derivs estimates the surface tangents with central differences. u samples
// stay unwrapped so the estimate follows the smooth continuation across the
// seam cut; v samples clamp at the caps, degrading to a one-sided estimate
// there.
func (g Generalized) derivs(u, v, morph float64) (pos, pu, pv mgl64.Vec3) {
	const h = jacobianStep

	pos = g.Surface(u, v, morph)
	pu = g.Surface(u+h, v, morph).
		Sub(g.Surface(u-h, v, morph)).Mul(1 / (2 * h))

	vLo := geo.Clamp01(v - h)
	vHi := geo.Clamp01(v + h)
	dv := vHi - vLo
	if dv < normalEps {
		return pos, pu, mgl64.Vec3{}
	}
	pv = g.Surface(u, vHi, morph).Sub(g.Surface(u, vLo, morph)).Mul(1 / dv)
	return pos, pu, pv
}

func (g Generalized) Forward(u, v, morph float64) ProjectedPoint {
	pos, pu, pv := g.derivs(u, v, morph)
	return ProjectedPoint{Position: pos, Normal: viewerNormal(pu, pv)}
}

func (g Generalized) Invert(ray geo.Ray, morph float64) (float64, float64, bool) {
	return solveSeeded(ray, morph, g.derivs, g.seeds(ray, morph), g.Radius)
}

// seeds uses the configured closed-form seeder when one exists and otherwise
// falls back to a coarse grid scan for the sample closest to the ray.
func (g Generalized) seeds(ray geo.Ray, morph float64) []Seed {
	if g.Seed != nil {
		return g.Seed(ray, morph)
	}

	const cols, rows = 16, 8
	bestU, bestV := 0.5, 0.5
	bestDist := -1.0
	for j := 0; j <= rows; j++ {
		v := float64(j) / rows
		for i := 0; i < cols; i++ {
			u := float64(i) / cols
			p := g.Surface(u, v, morph)
			t := p.Sub(ray.Origin).Dot(ray.Dir)
			if t < 0 {
				continue
			}
			d := ray.At(t).Sub(p).Len()
			if bestDist < 0 || d < bestDist {
				bestDist = d
				bestU, bestV = u, v
			}
		}
	}
	if bestDist < 0 {
		return nil
	}
	return []Seed{{U: bestU, V: bestV}}
}
