package core

import "github.com/go-gl/mathgl/mgl64"

// CrashSphere is a collision sphere in object-local coordinates
type CrashSphere struct {
	Pos      mgl64.Vec3
	Radius   float64
	Hardness float64
	Sound    SoundType
}

// CrashLine is a closed polygon footprint on the XZ plane in object-local coordinates
type CrashLine struct {
	Points   []mgl64.Vec2
	Hardness float64
	Sound    SoundType
}

// Sphere is a world-space sphere
type Sphere struct {
	Pos    mgl64.Vec3
	Radius float64
}
