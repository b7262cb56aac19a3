package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClosestOnSegment returns the point of segment ab nearest to p
func ClosestOnSegment(p, a, b mgl64.Vec2) mgl64.Vec2 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < Epsilon {
		return a
	}
	t := Norm01(p.Sub(a).Dot(ab) / l2)
	return a.Add(ab.Mul(t))
}

// PointInPolygon reports whether p lies inside the closed polygon (even-odd rule)
func PointInPolygon(p mgl64.Vec2, poly []mgl64.Vec2) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a[1] > p[1]) != (b[1] > p[1]) {
			x := (b[0]-a[0])*(p[1]-a[1])/(b[1]-a[1]) + a[0]
			if p[0] < x {
				inside = !inside
			}
		}
	}
	return inside
}

// PushOutOfPolygon returns the smallest translation moving p outside poly.
// The zero vector is returned when p is already outside.
func PushOutOfPolygon(p mgl64.Vec2, poly []mgl64.Vec2) mgl64.Vec2 {
	if len(poly) < 3 || !PointInPolygon(p, poly) {
		return mgl64.Vec2{}
	}
	best := mgl64.Vec2{}
	bestLen := math.MaxFloat64
	n := len(poly)
	for i := 0; i < n; i++ {
		c := ClosestOnSegment(p, poly[i], poly[(i+1)%n])
		d := c.Sub(p)
		if l := d.Len(); l < bestLen {
			bestLen = l
			best = d
		}
	}
	return best
}

// PushOutOfCircle returns the translation moving p outside the circle, or zero
func PushOutOfCircle(p, center mgl64.Vec2, radius float64) mgl64.Vec2 {
	d := p.Sub(center)
	l := d.Len()
	if l >= radius {
		return mgl64.Vec2{}
	}
	if l < Epsilon {
		return mgl64.Vec2{radius, 0}
	}
	return d.Mul((radius - l) / l)
}
