// Package profile holds the immutable per-object-type tables consulted by
// physics: the physical Character and the behavior Trait.
package profile

import "github.com/go-gl/mathgl/mgl64"

// MotionProfile is the per-axis tuning copied into a physics Motion at construction
type MotionProfile struct {
	AdvanceAccel mgl64.Vec3
	RecedeAccel  mgl64.Vec3
	StopAccel    mgl64.Vec3
	AdvanceSpeed mgl64.Vec3
	RecedeSpeed  mgl64.Vec3
	TerrainForce mgl64.Vec3
	TerrainSlide mgl64.Vec3
}

// Character is the physical profile of an object type
type Character struct {
	Mass float64

	// Contact points relative to origin, sampled for terrain tilt
	WheelFront float64
	WheelBack  float64
	WheelLeft  float64
	WheelRight float64

	// Height is the body height; deeper submersion drowns
	Height float64

	// Rectangular hitbox half extents
	CrashFront float64
	CrashBack  float64
	CrashWidth float64

	SuspStiffness float64
	SuspDamping   float64
	SuspStroke    float64

	// Grip is the fraction of lateral speed removed per second
	Grip float64

	// ReactorRange is seconds of jet flight from a full reactor
	ReactorRange float64
	// ReactorRecharge is seconds to refill an empty reactor
	ReactorRecharge float64

	// FallDamageSpeed is the landing vertical speed above which the body takes damage
	FallDamageSpeed float64

	// EnergyUse scales per-second energy consumption at full intent
	EnergyUse float64

	Linear   MotionProfile
	Circular MotionProfile
}

// Corners returns the four rectangular hitbox corners in local XZ, clockwise from front-left
func (c Character) Corners() [4]mgl64.Vec2 {
	return [4]mgl64.Vec2{
		{c.CrashFront, -c.CrashWidth},
		{c.CrashFront, c.CrashWidth},
		{-c.CrashBack, c.CrashWidth},
		{-c.CrashBack, -c.CrashWidth},
	}
}

// ContactPoints returns front, back, left and right sample points in local XZ
func (c Character) ContactPoints() (front, back, left, right mgl64.Vec2) {
	return mgl64.Vec2{c.WheelFront, 0}, mgl64.Vec2{-c.WheelBack, 0},
		mgl64.Vec2{0, -c.WheelLeft}, mgl64.Vec2{0, c.WheelRight}
}
