package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Object-local axes: +X forward, +Y up, +Z lateral.
// Angles: X is roll, Y is yaw (heading), Z is pitch.

// RotationZXY builds the local-to-world matrix, applying pitch, then roll, then yaw
func RotationZXY(angle mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DY(angle[1]).Mul3(mgl64.Rotate3DX(angle[0])).Mul3(mgl64.Rotate3DZ(angle[2]))
}

// Transform maps a local point to world space
func Transform(local, pos, angle mgl64.Vec3) mgl64.Vec3 {
	return RotationZXY(angle).Mul3x1(local).Add(pos)
}

// Heading returns the unit forward vector on the XZ plane for a yaw angle
func Heading(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
}

// RotateXZ rotates a local XZ point by yaw, matching RotationZXY for level bodies
func RotateXZ(p mgl64.Vec2, yaw float64) mgl64.Vec2 {
	c, s := math.Cos(yaw), math.Sin(yaw)
	return mgl64.Vec2{p[0]*c + p[1]*s, -p[0]*s + p[1]*c}
}

// RotateAround rotates p around center on the XZ plane by delta yaw
func RotateAround(p, center mgl64.Vec3, delta float64) mgl64.Vec3 {
	r := RotateXZ(mgl64.Vec2{p[0] - center[0], p[2] - center[2]}, delta)
	return mgl64.Vec3{center[0] + r[0], p[1], center[2] + r[1]}
}

// XZ drops the vertical component
func XZ(v mgl64.Vec3) mgl64.Vec2 {
	return mgl64.Vec2{v[0], v[2]}
}

// FromXZ lifts a plane point to 3D at height y
func FromXZ(p mgl64.Vec2, y float64) mgl64.Vec3 {
	return mgl64.Vec3{p[0], y, p[1]}
}
