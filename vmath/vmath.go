// Package vmath holds the float64 math helpers shared by physics, terrain and
// the sandbox renderer. Vectors are mgl64 values; angles are radians.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	Pi    = math.Pi
	TwoPi = 2 * math.Pi
	// Epsilon is the tolerance used by float comparisons in the simulation
	Epsilon = 1e-9
)

// NormAngle wraps an angle into [0, 2π)
func NormAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// Direction returns the signed shortest rotation from a to b, in (-π, π]
func Direction(a, b float64) float64 {
	d := NormAngle(b) - NormAngle(a)
	if d > Pi {
		d -= TwoPi
	} else if d <= -Pi {
		d += TwoPi
	}
	return d
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Norm01 clamps v to [0, 1]
func Norm01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Sign returns -1, 0 or 1
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Smooth moves actual toward hope by a fraction t of the gap, clamped so it never overshoots
func Smooth(actual, hope, t float64) float64 {
	f := Norm01(t)
	return actual + (hope-actual)*f
}

// Approach moves actual toward target by at most step
func Approach(actual, target, step float64) float64 {
	if step <= 0 {
		return actual
	}
	if actual < target {
		actual += step
		if actual > target {
			actual = target
		}
	} else if actual > target {
		actual -= step
		if actual < target {
			actual = target
		}
	}
	return actual
}

// Sanitize replaces NaN and infinities with zero
func Sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SanitizeVec3 applies Sanitize per component
func SanitizeVec3(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{Sanitize(v[0]), Sanitize(v[1]), Sanitize(v[2])}
}

// DistanceProjected is the distance between two points on the XZ plane
func DistanceProjected(a, b mgl64.Vec3) float64 {
	dx := a[0] - b[0]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dz*dz)
}
