package parameter

// Collision response
const (
	// HeadOnCos is the |cos| between velocity and edge normal above which a hit counts as head-on
	HeadOnCos = 0.7

	// HeadOnRestitution is the fraction of speed kept (reversed) by a head-on hit
	HeadOnRestitution = 0.3

	// GlancingDamping is the fraction of speed kept by a glancing hit
	GlancingDamping = 0.8

	// PushRestitution is the elasticity of mass-weighted repulsion between movable bodies
	PushRestitution = 0.5

	// RepeatDamping scales impact force for each consecutive tick of repeated collision
	RepeatDamping = 0.5

	// RepeatMax caps the repeat counter
	RepeatMax = 4

	// MinImpactForce is the force under which a collision is silent
	MinImpactForce = 0.5
)

// Jostle
const (
	// JostleSoundInterval is the minimum delay (seconds) between two jostle sounds
	JostleSoundInterval = 0.2

	// JostleForceScale maps sphere overlap ratio to jostle force
	JostleForceScale = 1.0
)

// Markers
const (
	// WaypointRadius is the XZ distance at which a waypoint is collected
	WaypointRadius = 4.0

	// TargetRadius is the XZ distance at which a circuit door is passed
	TargetRadius = 6.0
)

// Damage defaults per category
const (
	BuildingDamageThreshold = 25.0
	BuildingDamageDivisor   = 400.0

	VehicleDamageThreshold = 10.0
	VehicleDamageDivisor   = 200.0

	InsectDamageThreshold = 10.0
	InsectDamageDivisor   = 100.0

	// ExplosiveTrigger is the impact force that detonates explosives
	ExplosiveTrigger = 8.0
)
