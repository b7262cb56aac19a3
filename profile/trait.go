package profile

import "github.com/lixenwraith/rover/core"

// MotorSound selects the loops played for idle and full throttle
type MotorSound struct {
	Idle core.SoundType
	Full core.SoundType
}

// Trait is the behavior profile of an object type, looked up once per object
type Trait struct {
	Name     string
	Category core.Category
	Physics  core.PhysicsType
	Flying   core.FlyKind

	// Upright bodies ignore terrain tilt
	Upright bool
	// Rectangular bodies collide through hitbox corners instead of spheres
	Rectangular bool
	Amphibious  bool
	UsesPower   bool
	// WheelParticles emits dust and burnout smoke from the wheels
	WheelParticles bool
	MotorSound     MotorSound

	// PassThrough obstacles never block a moving body
	PassThrough bool
	Explosive   bool
	// Movable obstacles are pushed by collisions
	Movable bool

	DamageThreshold float64
	DamageDivisor   float64

	Spheres []core.CrashSphere
	Lines   []core.CrashLine

	// JostleRadius is non-zero for bodies that sway when brushed
	JostleRadius float64
}

// IsFlying reports whether the type can leave the ground
func (t Trait) IsFlying() bool {
	return t.Flying != core.FlyNone
}

// IsMarker reports whether the type is a waypoint or circuit door
func (t Trait) IsMarker() bool {
	return t.Category == core.CategoryMarker
}
