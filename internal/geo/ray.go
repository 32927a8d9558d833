package geo

import "github.com/go-gl/mathgl/mgl64"

// Ray is an origin plus a unit direction in the map's local frame.
// Callers are expected to have transformed screen or world rays into the
// map frame before handing them to the projection code.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// NewRay builds a ray from origin toward target, normalizing the direction.
func NewRay(origin, target mgl64.Vec3) Ray {
	return Ray{Origin: origin, Dir: target.Sub(origin).Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
