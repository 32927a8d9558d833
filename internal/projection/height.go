package projection

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/itswill307/TheNewSuzerainProject/internal/geo"
)

// HeightField samples normalized elevation at a surface coordinate.
// Implementations must wrap u and clamp v themselves only if sampled
// directly; Displacement passes already-wrapped coordinates.
type HeightField interface {
	Sample(u, v float64) float64
}

// Displacement applies an elevation offset along the negated surface
// normal, matching the per-vertex displacement the rendering surface
// performs. UOffset is the rendering-side horizontal scroll, applied before
// the height lookup so terrain stays glued to the scrolled texture.
type Displacement struct {
	Field   HeightField
	Scale   float64
	Bias    float64
	UOffset float64
}

// Apply returns the displaced position for a forward-projected point.
// With no height field configured the position passes through untouched.
func (d Displacement) Apply(u, v float64, pt ProjectedPoint) mgl64.Vec3 {
	if d.Field == nil {
		return pt.Position
	}
	h := d.Field.Sample(geo.WrapU(u+d.UOffset), geo.Clamp01(v))
	return pt.Position.Sub(pt.Normal.Mul((h - d.Bias) * d.Scale))
}
