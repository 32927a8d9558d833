// Package geo provides the scalar helpers and ray primitive shared by the
// projection and view code.
//
// Surface coordinates (u, v) live in [0,1]x[0,1]: u wraps horizontally
// (periodic mod 1) and v clamps vertically. u maps to longitude in
// (-pi, pi], v to latitude in [-pi/2, pi/2].
package geo

import "math"

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// WrapU wraps a horizontal surface coordinate into [0, 1).
func WrapU(u float64) float64 {
	u = math.Mod(u, 1)
	if u < 0 {
		u++
	}
	return u
}

// WrapAngle wraps an angle in radians into (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// WrapDeg wraps an angle in degrees into [0, 360).
func WrapDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// UDist is the wrap-aware distance between two horizontal coordinates.
func UDist(a, b float64) float64 {
	d := math.Abs(WrapU(a) - WrapU(b))
	if d > 0.5 {
		d = 1 - d
	}
	return d
}

// LonOf converts a horizontal surface coordinate to longitude in radians.
func LonOf(u float64) float64 {
	return (u - 0.5) * 2 * math.Pi
}

// LatOf converts a vertical surface coordinate to latitude in radians.
func LatOf(v float64) float64 {
	return (v - 0.5) * math.Pi
}

// UOf converts a longitude in radians back to a horizontal coordinate.
func UOf(lon float64) float64 {
	return WrapU(lon/(2*math.Pi) + 0.5)
}

// VOf converts a latitude in radians back to a vertical coordinate.
func VOf(lat float64) float64 {
	return Clamp01(lat/math.Pi + 0.5)
}
